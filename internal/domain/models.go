package domain

// CompanySize is one organization-size tier. Its multiplier scales every
// priced answer for the rest of the session.
type CompanySize struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Description string  `json:"description,omitempty"`
	Icon        string  `json:"icon,omitempty"`
	Multiplier  float64 `json:"multiplier"` // must be > 0
}

// ComplexityMultiplier is a follow-up complexity choice scaling the
// selected option's base price.
type ComplexityMultiplier struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Description string  `json:"description,omitempty"`
	Echo        string  `json:"echo,omitempty"`
	Value       float64 `json:"value"` // must be > 0
}

// Option is one selectable answer for a question. Echo is the simulated
// user message shown after selection. Sub-options, when present, replace
// the multiplier step for that option.
type Option struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Description string   `json:"description,omitempty"`
	Echo        string   `json:"echo,omitempty"`
	BasePrice   int      `json:"basePrice"`
	Hours       int      `json:"hours"`
	SubOptions  []Option `json:"subOptions,omitempty"`
}

// Question is one node of the scripted dialogue.
type Question struct {
	ID                 string                 `json:"id"`
	Stage              string                 `json:"stage,omitempty"`
	Prompt             string                 `json:"prompt"`
	FollowUp           string                 `json:"followUp,omitempty"`
	Options            []Option               `json:"options"`
	Multipliers        []ComplexityMultiplier `json:"multipliers,omitempty"`
	RequiresMultiplier bool                   `json:"requiresMultiplier"`
}

// HasSubOptions reports whether any option of the question carries
// sub-options, i.e. whether the dialogue may spend an extra step here.
func (q Question) HasSubOptions() bool {
	for _, opt := range q.Options {
		if len(opt.SubOptions) > 0 {
			return true
		}
	}
	return false
}

// Option returns the option with the given id, searching main options only.
func (q Question) Option(id string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// Multiplier returns the complexity multiplier with the given id.
func (q Question) Multiplier(id string) (ComplexityMultiplier, bool) {
	for _, m := range q.Multipliers {
		if m.ID == id {
			return m, true
		}
	}
	return ComplexityMultiplier{}, false
}

// QuoteContent is the full localized content tree for one language,
// loaded once per session and treated as immutable.
type QuoteContent struct {
	Language     string            `json:"language"`
	CompanySizes []CompanySize     `json:"companySizes"`
	Questions    []Question        `json:"questions"`
	UI           map[string]string `json:"ui,omitempty"`
	Explanations map[string]string `json:"explanations,omitempty"`
}

// CompanySize returns the tier with the given id.
func (c QuoteContent) CompanySize(id string) (CompanySize, bool) {
	for _, cs := range c.CompanySizes {
		if cs.ID == id {
			return cs, true
		}
	}
	return CompanySize{}, false
}

// Validate checks the shape contracts the dialogue relies on: at least one
// company-size tier with a positive multiplier, exactly as many questions
// as there are priced stage slots, and positive multiplier values.
func (c QuoteContent) Validate() error {
	if len(c.CompanySizes) == 0 {
		return ErrContentShape
	}
	for _, cs := range c.CompanySizes {
		if cs.Multiplier <= 0 {
			return ErrContentShape
		}
	}
	if len(c.Questions) != PricedStageCount {
		return ErrContentShape
	}
	for _, q := range c.Questions {
		if len(q.Options) == 0 {
			return ErrContentShape
		}
		if q.RequiresMultiplier && len(q.Multipliers) == 0 {
			return ErrContentShape
		}
		for _, m := range q.Multipliers {
			if m.Value <= 0 {
				return ErrContentShape
			}
		}
	}
	return nil
}
