package domain

import "time"

// Lead is a prospective customer record created from a form submission,
// independent of any authenticated account.
type Lead struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	FirstName   string    `json:"firstName" bson:"firstName"`
	LastName    string    `json:"lastName" bson:"lastName"`
	Email       string    `json:"email" bson:"email"`
	Phone       string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Company     string    `json:"company,omitempty" bson:"company,omitempty"`
	CompanySize string    `json:"companySize,omitempty" bson:"companySize,omitempty"`
	Language    string    `json:"language,omitempty" bson:"language,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// RequestKind distinguishes the lead-request flavors the site produces.
type RequestKind string

const (
	RequestDemo       RequestKind = "demo"
	RequestQuote      RequestKind = "quote"
	RequestFinalQuote RequestKind = "final-quote"
	RequestQuotation  RequestKind = "quotation"
)

// LeadRequest is one submission tied to a lead: a demo request, a quote
// request, a finished quote, or a formal quotation. Quote-flavored requests
// carry the full answer list and stage breakdown.
type LeadRequest struct {
	ID        string          `json:"id" bson:"_id,omitempty"`
	Kind      RequestKind     `json:"kind" bson:"kind"`
	LeadID    string          `json:"leadId" bson:"leadId"`
	Recipient string          `json:"recipient,omitempty" bson:"recipient,omitempty"`
	Language  string          `json:"language,omitempty" bson:"language,omitempty"`
	Message   string          `json:"message,omitempty" bson:"message,omitempty"`
	Answers   []Answer        `json:"answers,omitempty" bson:"answers,omitempty"`
	Breakdown *QuoteBreakdown `json:"breakdown,omitempty" bson:"breakdown,omitempty"`
	CreatedAt time.Time       `json:"createdAt" bson:"createdAt"`
}
