package app

import (
	"context"
	"math"
	"sync"
	"time"

	"arcadia-quote-service/internal/domain"
)

// SessionRepository abstracts how dialogue sessions are stored (in-memory,
// Redis, etc). Active sessions live in process; snapshots carry them across
// reconnects.
type SessionRepository interface {
	Put(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
	SaveSnapshot(ctx context.Context, snap domain.SessionSnapshot) error
	LoadSnapshot(ctx context.Context, sessionID string) (domain.SessionSnapshot, bool, error)
}

// ContentRepository loads the localized question/option/multiplier tree
// (from cache/backing store).
type ContentRepository interface {
	GetContent(ctx context.Context, language string) (domain.QuoteContent, error)
}

// LeadService is the identity/lead collaborator: a small set of named
// remote operations returning an identifier or an error. No retry policy
// beyond a single user-triggered resubmission.
type LeadService interface {
	CreateLead(ctx context.Context, lead domain.Lead) (string, error)
	CreateDemoRequest(ctx context.Context, req domain.LeadRequest) (string, error)
	CreateQuoteRequest(ctx context.Context, req domain.LeadRequest) (string, error)
	CreateFinalQuote(ctx context.Context, req domain.LeadRequest) (string, error)
	CreateQuotation(ctx context.Context, req domain.LeadRequest) (string, error)
	GetLeadByEmail(ctx context.Context, email string) (domain.Lead, error)
	GetLeadRequests(ctx context.Context, leadID string) ([]domain.LeadRequest, error)
	GetRequestsByRecipient(ctx context.Context, recipient string) ([]domain.LeadRequest, error)
}

// QuoteService drives conversational quote sessions.
type QuoteService struct {
	sessions        SessionRepository
	content         ContentRepository
	defaultLanguage string
}

func NewQuoteService(sessions SessionRepository, content ContentRepository, defaultLanguage string) *QuoteService {
	if defaultLanguage == "" {
		defaultLanguage = "en"
	}
	return &QuoteService{sessions: sessions, content: content, defaultLanguage: defaultLanguage}
}

// SessionState names the dialogue states.
type SessionState string

const (
	StateAwaitingCompanySize SessionState = "awaiting_company_size"
	StateAwaitingMainOption  SessionState = "awaiting_main_option"
	StateAwaitingSubOption   SessionState = "awaiting_sub_option"
	StateAwaitingMultiplier  SessionState = "awaiting_multiplier"
	StateComplete            SessionState = "complete"
)

// Turn is the outcome of one user interaction: what to echo back, what to
// present next, and the running totals.
type Turn struct {
	State       SessionState                  `json:"state"`
	Echo        string                        `json:"echo,omitempty"`
	Answer      *domain.Answer                `json:"answer,omitempty"`
	Question    *domain.Question              `json:"question,omitempty"`
	SubOptions  []domain.Option               `json:"subOptions,omitempty"`
	Multipliers []domain.ComplexityMultiplier `json:"multipliers,omitempty"`
	FollowUp    string                        `json:"followUp,omitempty"`
	Progress    float64                       `json:"progress"`
	TotalPrice  int                           `json:"totalPrice"`
	TotalHours  int                           `json:"totalHours"`
}

// StartSession creates (or resumes) a dialogue session for a language.
// Content is fetched for the requested language; on failure the default
// language is tried exactly once. Without valid content the session cannot
// start: no scripted content is ever synthesized.
func (s *QuoteService) StartSession(ctx context.Context, sessionID, language string) (*Session, error) {
	if session, ok := s.sessions.Get(sessionID); ok {
		return session, nil
	}
	if snap, ok, err := s.sessions.LoadSnapshot(ctx, sessionID); err == nil && ok {
		return s.resume(ctx, snap)
	}
	if language == "" {
		language = s.defaultLanguage
	}

	content, err := s.loadContent(ctx, language)
	if err != nil {
		return nil, err
	}
	session := NewSession(sessionID, content)
	s.sessions.Put(session)
	_ = s.sessions.SaveSnapshot(ctx, session.Snapshot())
	return session, nil
}

func (s *QuoteService) loadContent(ctx context.Context, language string) (domain.QuoteContent, error) {
	content, err := s.content.GetContent(ctx, language)
	if err != nil && language != s.defaultLanguage {
		// Single fallback fetch in the default language, then fail closed.
		content, err = s.content.GetContent(ctx, s.defaultLanguage)
	}
	if err != nil {
		return domain.QuoteContent{}, err
	}
	if err := content.Validate(); err != nil {
		return domain.QuoteContent{}, err
	}
	return content, nil
}

func (s *QuoteService) resume(ctx context.Context, snap domain.SessionSnapshot) (*Session, error) {
	if snap.Version != domain.SnapshotVersion {
		return nil, domain.ErrSnapshotVersion
	}
	content, err := s.loadContent(ctx, snap.Language)
	if err != nil {
		return nil, err
	}
	session, err := RestoreSession(content, snap)
	if err != nil {
		return nil, err
	}
	s.sessions.Put(session)
	return session, nil
}

// SelectCompanySize confirms the organization-size tier for a session.
func (s *QuoteService) SelectCompanySize(ctx context.Context, sessionID, sizeID string) (Turn, error) {
	return s.apply(ctx, sessionID, func(session *Session) (Turn, error) {
		return session.selectCompanySize(sizeID)
	})
}

// SelectOption applies a main-option selection for the current question.
func (s *QuoteService) SelectOption(ctx context.Context, sessionID, optionID string) (Turn, error) {
	return s.apply(ctx, sessionID, func(session *Session) (Turn, error) {
		return session.selectOption(optionID)
	})
}

// SelectSubOption applies a sub-option selection for the pending option.
func (s *QuoteService) SelectSubOption(ctx context.Context, sessionID, optionID string) (Turn, error) {
	return s.apply(ctx, sessionID, func(session *Session) (Turn, error) {
		return session.selectSubOption(optionID)
	})
}

// SelectMultiplier applies a complexity-multiplier selection, finishing the
// current question turn.
func (s *QuoteService) SelectMultiplier(ctx context.Context, sessionID, multiplierID string) (Turn, error) {
	return s.apply(ctx, sessionID, func(session *Session) (Turn, error) {
		return session.selectMultiplier(multiplierID)
	})
}

func (s *QuoteService) apply(ctx context.Context, sessionID string, fn func(*Session) (Turn, error)) (Turn, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return Turn{}, domain.ErrSessionNotFound
	}
	turn, err := fn(session)
	if err != nil {
		return Turn{}, err
	}
	_ = s.sessions.SaveSnapshot(ctx, session.Snapshot())
	return turn, nil
}

// Explain returns supplementary text for an option or multiplier id. It is
// a side query: it never advances the dialogue or alters progress.
func (s *QuoteService) Explain(sessionID, targetID string) (string, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	return session.explain(targetID)
}

// Results builds the final stage breakdown for a completed session.
func (s *QuoteService) Results(sessionID string) (domain.QuoteBreakdown, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.QuoteBreakdown{}, domain.ErrSessionNotFound
	}
	return session.Results(time.Now())
}

// EndSession drops a session and its persisted snapshot.
func (s *QuoteService) EndSession(ctx context.Context, sessionID string) {
	s.sessions.Delete(sessionID)
}

// Session is the in-memory state of one quote dialogue. Content is
// immutable for the session lifetime; answers are append-only.
type Session struct {
	id      string
	content domain.QuoteContent

	mu             sync.RWMutex
	state          SessionState
	questionIndex  int
	completedSteps int
	totalSteps     int
	companySize    *domain.CompanySize
	pendingOption  *domain.Option
	answers        []domain.Answer
	now            func() time.Time
}

// NewSession starts a session in the company-size state.
func NewSession(id string, content domain.QuoteContent) *Session {
	return &Session{
		id:         id,
		content:    content,
		state:      StateAwaitingCompanySize,
		totalSteps: TotalSteps(content),
		now:        time.Now,
	}
}

// TotalSteps derives the static step count from content: one for the
// company-size selection, then per question one for the main option plus
// one if any option has sub-options plus one if a multiplier is required.
// Computed once after content load; never changes.
func TotalSteps(content domain.QuoteContent) int {
	total := 1
	for _, q := range content.Questions {
		total++
		if q.HasSubOptions() {
			total++
		}
		if q.RequiresMultiplier {
			total++
		}
	}
	return total
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Content exposes the immutable content tree driving this session.
func (s *Session) Content() domain.QuoteContent { return s.content }

// State returns the current dialogue state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// CurrentQuestion returns the question being answered, if any.
func (s *Session) CurrentQuestion() (domain.Question, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentQuestionLocked()
}

func (s *Session) currentQuestionLocked() (domain.Question, bool) {
	if s.questionIndex < 0 || s.questionIndex >= len(s.content.Questions) {
		return domain.Question{}, false
	}
	return s.content.Questions[s.questionIndex], true
}

// Progress reports completion as completedSteps/(totalSteps-1)*100, capped
// at 100. It is monotonically non-decreasing and exactly 100 at Complete.
func (s *Session) Progress() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progressLocked()
}

func (s *Session) progressLocked() float64 {
	if s.state == StateComplete {
		return 100
	}
	if s.totalSteps <= 1 {
		return 0
	}
	p := float64(s.completedSteps) / float64(s.totalSteps-1) * 100
	if p > 100 {
		p = 100
	}
	return p
}

// Answers returns a copy of the full answer sequence, company-size
// pseudo-answer included.
func (s *Session) Answers() []domain.Answer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Answer, len(s.answers))
	copy(out, s.answers)
	return out
}

// PricedAnswers returns the answers that carry pricing, in question order.
func (s *Session) PricedAnswers() []domain.Answer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pricedAnswers(s.answers)
}

func pricedAnswers(answers []domain.Answer) []domain.Answer {
	out := make([]domain.Answer, 0, len(answers))
	for _, a := range answers {
		if !a.CompanySize {
			out = append(out, a)
		}
	}
	return out
}

// TotalPrice sums the final prices of all answers.
func (s *Session) TotalPrice() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalPriceLocked()
}

func (s *Session) totalPriceLocked() int {
	total := 0
	for _, a := range s.answers {
		total += a.FinalPrice
	}
	return total
}

// TotalHours sums answer hours plus the fixed free-stage effort.
func (s *Session) TotalHours() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalHoursLocked()
}

func (s *Session) totalHoursLocked() int {
	total := domain.FreeStageHours
	for _, a := range s.answers {
		total += a.Hours
	}
	return total
}

// Results renders the stage breakdown; the session must be complete.
func (s *Session) Results(now time.Time) (domain.QuoteBreakdown, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateComplete {
		return domain.QuoteBreakdown{}, domain.ErrSessionIncomplete
	}
	return BuildBreakdown(pricedAnswers(s.answers), s.content.Language, now), nil
}

func (s *Session) selectCompanySize(sizeID string) (Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingCompanySize {
		return Turn{}, domain.ErrInvalidTransition
	}
	size, ok := s.content.CompanySize(sizeID)
	if !ok {
		return Turn{}, domain.ErrCompanySizeNotFound
	}

	s.companySize = &size
	// Pseudo-answer: captures the tier choice with zero price and hours so
	// the selection is part of the auditable sequence.
	s.answers = append(s.answers, domain.Answer{
		QuestionID:  "company-size",
		OptionID:    size.ID,
		CompanySize: true,
		Detail: domain.StepDetail{
			OptionLabel:           size.Label,
			CompanySizeID:         size.ID,
			CompanySizeMultiplier: size.Multiplier,
		},
	})
	s.completedSteps++
	s.state = StateAwaitingMainOption
	s.questionIndex = 0

	turn := s.turnLocked()
	turn.Echo = size.Label
	return turn, nil
}

func (s *Session) selectOption(optionID string) (Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingMainOption {
		return Turn{}, domain.ErrInvalidTransition
	}
	question, ok := s.currentQuestionLocked()
	if !ok {
		return Turn{}, domain.ErrInvalidTransition
	}
	option, ok := question.Option(optionID)
	if !ok {
		return Turn{}, domain.ErrOptionNotFound
	}
	s.completedSteps++

	if len(option.SubOptions) > 0 {
		opt := option
		s.pendingOption = &opt
		s.state = StateAwaitingSubOption
		turn := s.turnLocked()
		turn.Echo = option.Echo
		turn.SubOptions = option.SubOptions
		turn.FollowUp = question.FollowUp
		return turn, nil
	}
	if question.RequiresMultiplier {
		opt := option
		s.pendingOption = &opt
		s.state = StateAwaitingMultiplier
		turn := s.turnLocked()
		turn.Echo = option.Echo
		turn.Multipliers = question.Multipliers
		turn.FollowUp = question.FollowUp
		return turn, nil
	}
	return s.finishTurnLocked(question, option, nil)
}

func (s *Session) selectSubOption(optionID string) (Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingSubOption || s.pendingOption == nil {
		return Turn{}, domain.ErrInvalidTransition
	}
	question, ok := s.currentQuestionLocked()
	if !ok {
		return Turn{}, domain.ErrInvalidTransition
	}
	var selected *domain.Option
	for i := range s.pendingOption.SubOptions {
		if s.pendingOption.SubOptions[i].ID == optionID {
			selected = &s.pendingOption.SubOptions[i]
			break
		}
	}
	if selected == nil {
		return Turn{}, domain.ErrOptionNotFound
	}
	s.completedSteps++

	// The sub-option replaces the main option as the chosen one; it does
	// not produce an extra answer.
	option := *selected
	if question.RequiresMultiplier {
		s.pendingOption = &option
		s.state = StateAwaitingMultiplier
		turn := s.turnLocked()
		turn.Echo = option.Echo
		turn.Multipliers = question.Multipliers
		turn.FollowUp = question.FollowUp
		return turn, nil
	}
	return s.finishTurnLocked(question, option, nil)
}

func (s *Session) selectMultiplier(multiplierID string) (Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingMultiplier || s.pendingOption == nil {
		return Turn{}, domain.ErrInvalidTransition
	}
	question, ok := s.currentQuestionLocked()
	if !ok {
		return Turn{}, domain.ErrInvalidTransition
	}
	multiplier, ok := question.Multiplier(multiplierID)
	if !ok {
		return Turn{}, domain.ErrMultiplierNotFound
	}
	s.completedSteps++
	return s.finishTurnLocked(question, *s.pendingOption, &multiplier)
}

// finishTurnLocked computes and appends the answer for the current
// question, then advances to the next question or the terminal state.
func (s *Session) finishTurnLocked(question domain.Question, option domain.Option, multiplier *domain.ComplexityMultiplier) (Turn, error) {
	if s.companySize == nil {
		return Turn{}, domain.ErrInvalidTransition
	}

	multValue := 1.0
	multID := ""
	multLabel := ""
	echo := option.Echo
	if multiplier != nil {
		multValue = multiplier.Value
		multID = multiplier.ID
		multLabel = multiplier.Label
		if multiplier.Echo != "" {
			echo = multiplier.Echo
		}
	}
	final := int(math.Round(float64(option.BasePrice) * multValue * s.companySize.Multiplier))

	answer := domain.Answer{
		QuestionID:   question.ID,
		OptionID:     option.ID,
		MultiplierID: multID,
		BasePrice:    option.BasePrice,
		FinalPrice:   final,
		Hours:        option.Hours,
		Detail: domain.StepDetail{
			Echo:                  echo,
			OptionLabel:           option.Label,
			MultiplierLabel:       multLabel,
			MultiplierValue:       multValue,
			CompanySizeID:         s.companySize.ID,
			CompanySizeMultiplier: s.companySize.Multiplier,
		},
	}
	s.answers = append(s.answers, answer)
	s.pendingOption = nil

	s.questionIndex++
	if s.questionIndex >= len(s.content.Questions) {
		s.state = StateComplete
	} else {
		s.state = StateAwaitingMainOption
	}

	turn := s.turnLocked()
	turn.Echo = echo
	turn.Answer = &answer
	return turn, nil
}

// turnLocked assembles the shared Turn fields for the current state.
func (s *Session) turnLocked() Turn {
	turn := Turn{
		State:      s.state,
		Progress:   s.progressLocked(),
		TotalPrice: s.totalPriceLocked(),
		TotalHours: s.totalHoursLocked(),
	}
	if s.state == StateAwaitingMainOption {
		if q, ok := s.currentQuestionLocked(); ok {
			question := q
			turn.Question = &question
		}
	}
	return turn
}

// View renders the session's current presentation state: what the client
// should be showing right now. Used when a connection (re)attaches.
func (s *Session) View() Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turn := s.turnLocked()
	question, ok := s.currentQuestionLocked()
	if !ok {
		return turn
	}
	switch s.state {
	case StateAwaitingSubOption:
		if s.pendingOption != nil {
			turn.SubOptions = s.pendingOption.SubOptions
			turn.FollowUp = question.FollowUp
		}
	case StateAwaitingMultiplier:
		turn.Multipliers = question.Multipliers
		turn.FollowUp = question.FollowUp
	}
	return turn
}

func (s *Session) explain(targetID string) (string, error) {
	text, ok := s.content.Explanations[targetID]
	if !ok {
		return "", domain.ErrExplanationNotFound
	}
	return text, nil
}

// Snapshot serializes the session into the versioned handoff record.
func (s *Session) Snapshot() domain.SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := domain.SessionSnapshot{
		Version:        domain.SnapshotVersion,
		SessionID:      s.id,
		Language:       s.content.Language,
		State:          string(s.state),
		QuestionIndex:  s.questionIndex,
		CompletedSteps: s.completedSteps,
		Answers:        make([]domain.Answer, len(s.answers)),
		UpdatedAt:      s.now(),
	}
	copy(snap.Answers, s.answers)
	if s.companySize != nil {
		snap.CompanySizeID = s.companySize.ID
	}
	if s.pendingOption != nil {
		snap.PendingOption = s.pendingOption.ID
	}
	return snap
}

// RestoreSession rebuilds a session from a snapshot against freshly loaded
// content for the snapshot's language.
func RestoreSession(content domain.QuoteContent, snap domain.SessionSnapshot) (*Session, error) {
	if snap.Version != domain.SnapshotVersion {
		return nil, domain.ErrSnapshotVersion
	}
	session := NewSession(snap.SessionID, content)
	session.state = SessionState(snap.State)
	session.questionIndex = snap.QuestionIndex
	session.completedSteps = snap.CompletedSteps
	session.answers = make([]domain.Answer, len(snap.Answers))
	copy(session.answers, snap.Answers)

	if snap.CompanySizeID != "" {
		size, ok := content.CompanySize(snap.CompanySizeID)
		if !ok {
			return nil, domain.ErrCompanySizeNotFound
		}
		session.companySize = &size
	}
	if snap.PendingOption != "" {
		question, ok := session.currentQuestionLocked()
		if !ok {
			return nil, domain.ErrInvalidTransition
		}
		option, ok := findOption(question, snap.PendingOption)
		if !ok {
			return nil, domain.ErrOptionNotFound
		}
		session.pendingOption = &option
	}
	return session, nil
}

// findOption searches a question's main options and their sub-options.
func findOption(question domain.Question, id string) (domain.Option, bool) {
	for _, opt := range question.Options {
		if opt.ID == id {
			return opt, true
		}
		for _, sub := range opt.SubOptions {
			if sub.ID == id {
				return sub, true
			}
		}
	}
	return domain.Option{}, false
}
