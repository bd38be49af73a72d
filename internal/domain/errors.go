package domain

import "errors"

var (
	// ErrContentNotFound indicates no content tree exists for a language.
	ErrContentNotFound = errors.New("quote content not found")
	// ErrContentShape indicates a content tree that cannot drive the
	// dialogue (wrong question count, empty options, bad multipliers).
	ErrContentShape = errors.New("quote content has invalid shape")
	// ErrSessionNotFound is returned when a dialogue session does not exist.
	ErrSessionNotFound = errors.New("quote session not found")
	// ErrInvalidTransition is returned when an action does not match the
	// session's current state.
	ErrInvalidTransition = errors.New("action not valid in current dialogue state")
	// ErrCompanySizeNotFound indicates an unknown organization-size tier id.
	ErrCompanySizeNotFound = errors.New("company size not found")
	// ErrOptionNotFound indicates a selected option id is invalid.
	ErrOptionNotFound = errors.New("option not found")
	// ErrMultiplierNotFound indicates a selected multiplier id is invalid.
	ErrMultiplierNotFound = errors.New("complexity multiplier not found")
	// ErrExplanationNotFound indicates there is no explanation text for an id.
	ErrExplanationNotFound = errors.New("explanation not found")
	// ErrSessionIncomplete is returned when results are requested before
	// the dialogue reaches its terminal state.
	ErrSessionIncomplete = errors.New("quote session not complete")
	// ErrLeadNotFound indicates no lead exists for the given key.
	ErrLeadNotFound = errors.New("lead not found")
	// ErrDuplicateLead is returned when a lead with the same email already
	// exists; callers surface this distinctly from generic failures.
	ErrDuplicateLead = errors.New("lead already exists for this email")
	// ErrSnapshotVersion is returned when a persisted session snapshot has
	// an unsupported schema version.
	ErrSnapshotVersion = errors.New("unsupported session snapshot version")
)
