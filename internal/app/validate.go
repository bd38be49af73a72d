package app

import (
	"regexp"
	"strings"

	"arcadia-quote-service/internal/domain"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9 ().-]{7,20}$`)
)

// FieldErrors maps field names to validation messages. Validation is
// local and synchronous: an invalid payload never reaches the lead store.
type FieldErrors map[string]string

// ValidateLead checks required fields and contact formats for a lead
// submission. Returns nil when the payload is acceptable.
func ValidateLead(lead domain.Lead) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(lead.FirstName) == "" {
		errs["firstName"] = "first name is required"
	}
	if strings.TrimSpace(lead.LastName) == "" {
		errs["lastName"] = "last name is required"
	}
	if strings.TrimSpace(lead.Email) == "" {
		errs["email"] = "email is required"
	} else if !emailPattern.MatchString(lead.Email) {
		errs["email"] = "email is not valid"
	}
	if lead.Phone != "" && !phonePattern.MatchString(lead.Phone) {
		errs["phone"] = "phone number is not valid"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateRequest checks a lead request before submission. Quote-flavored
// requests must carry their answer list.
func ValidateRequest(req domain.LeadRequest) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(req.LeadID) == "" {
		errs["leadId"] = "lead id is required"
	}
	switch req.Kind {
	case domain.RequestDemo:
	case domain.RequestQuote, domain.RequestFinalQuote, domain.RequestQuotation:
		if len(req.Answers) == 0 {
			errs["answers"] = "answers are required for quote requests"
		}
	default:
		errs["kind"] = "unknown request kind"
	}
	if req.Recipient != "" && !emailPattern.MatchString(req.Recipient) {
		errs["recipient"] = "recipient email is not valid"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
