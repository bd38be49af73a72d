package domain

import "time"

const (
	// PricedStageCount is the number of priced stage slots the dialogue
	// must fill; the content tree is validated against it.
	PricedStageCount = 6
	// FreeStageHours is the baseline effort of the two free stages.
	FreeStageHours = 20
	// HoursPerWeek converts total effort into an estimated duration.
	HoursPerWeek = 40
)

// StepDetail is the audit snapshot captured when an answer is created:
// what was echoed, what the pricing inputs were, and which company-size
// tier was in effect at that moment.
type StepDetail struct {
	Echo                  string  `json:"echo,omitempty"`
	OptionLabel           string  `json:"optionLabel,omitempty"`
	MultiplierLabel       string  `json:"multiplierLabel,omitempty"`
	MultiplierValue       float64 `json:"multiplierValue"`
	CompanySizeID         string  `json:"companySizeId"`
	CompanySizeMultiplier float64 `json:"companySizeMultiplier"`
}

// Answer records one completed question turn. Answers are append-only:
// once created they are never mutated, and the company-size multiplier is
// a per-answer snapshot rather than a live reference.
type Answer struct {
	QuestionID   string     `json:"questionId"`
	OptionID     string     `json:"optionId,omitempty"`
	MultiplierID string     `json:"multiplierId,omitempty"`
	BasePrice    int        `json:"basePrice"`
	FinalPrice   int        `json:"finalPrice"`
	Hours        int        `json:"hours"`
	CompanySize  bool       `json:"companySize,omitempty"` // pseudo-answer for the tier selection
	Detail       StepDetail `json:"detail"`
}

// StageTemplate is one entry of the fixed 8-stage engagement breakdown.
// The first two stages are free with fixed hours; the remaining six are
// filled positionally from the priced answers.
type StageTemplate struct {
	ID    string
	Name  string
	Free  bool
	Hours int // fixed hours for free stages, zero otherwise
}

// StageTemplates returns the fixed stage list. The free-stage hours sum to
// FreeStageHours.
func StageTemplates() []StageTemplate {
	return []StageTemplate{
		{ID: "discovery", Name: "Discovery & Scoping", Free: true, Hours: 8},
		{ID: "solution-design", Name: "Solution Design", Free: true, Hours: 12},
		{ID: "platform-setup", Name: "Agent Platform Setup"},
		{ID: "knowledge-integration", Name: "Knowledge Integration"},
		{ID: "workflow-automation", Name: "Workflow Automation"},
		{ID: "channel-deployment", Name: "Channel Deployment"},
		{ID: "security-compliance", Name: "Security & Compliance"},
		{ID: "launch-handover", Name: "Launch & Handover"},
	}
}

// StageQuote is one priced (or free) row of the final breakdown.
type StageQuote struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Free       bool   `json:"free"`
	Hours      int    `json:"hours"`
	BasePrice  int    `json:"basePrice"`
	Price      int    `json:"price"`
	HourlyRate int    `json:"hourlyRate"`
	// Adjusted is set when the base price differs from the final price, in
	// which case both values are shown (base struck through).
	Adjusted bool `json:"adjusted"`
}

// QuoteBreakdown is the finished quote: the 8-stage list plus aggregates.
type QuoteBreakdown struct {
	Stages         []StageQuote `json:"stages"`
	TotalPrice     int          `json:"totalPrice"`
	TotalHours     int          `json:"totalHours"`
	EstimatedWeeks int          `json:"estimatedWeeks"`
	CompletionDate time.Time    `json:"completionDate"`
	CompletionText string       `json:"completionText"`
	Language       string       `json:"language"`
}

// SnapshotVersion is the current session snapshot schema version.
const SnapshotVersion = 1

// SessionSnapshot is the explicit serialization record used to carry a
// dialogue session across reconnects. Restore rejects unknown versions.
type SessionSnapshot struct {
	Version        int       `json:"version"`
	SessionID      string    `json:"sessionId"`
	Language       string    `json:"language"`
	State          string    `json:"state"`
	QuestionIndex  int       `json:"questionIndex"`
	CompletedSteps int       `json:"completedSteps"`
	CompanySizeID  string    `json:"companySizeId,omitempty"`
	PendingOption  string    `json:"pendingOption,omitempty"`
	Answers        []Answer  `json:"answers"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
