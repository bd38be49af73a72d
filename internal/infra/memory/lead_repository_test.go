package memory

import (
	"context"
	"errors"
	"testing"

	"arcadia-quote-service/internal/domain"
)

func TestLeadRepositoryDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewLeadRepository()

	id, err := repo.CreateLead(ctx, domain.Lead{FirstName: "Ana", LastName: "Reyes", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("create lead: %v", err)
	}
	if id == "" {
		t.Fatalf("expected generated id")
	}

	_, err = repo.CreateLead(ctx, domain.Lead{FirstName: "Ana", LastName: "Reyes", Email: "ANA@example.com"})
	if !errors.Is(err, domain.ErrDuplicateLead) {
		t.Fatalf("expected duplicate lead error, got %v", err)
	}
}

func TestLeadRepositoryRequests(t *testing.T) {
	ctx := context.Background()
	repo := NewLeadRepository()

	leadID, err := repo.CreateLead(ctx, domain.Lead{FirstName: "Ana", LastName: "Reyes", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("create lead: %v", err)
	}

	if _, err := repo.CreateDemoRequest(ctx, domain.LeadRequest{LeadID: leadID, Recipient: "sales@vendor.com"}); err != nil {
		t.Fatalf("create demo request: %v", err)
	}
	if _, err := repo.CreateQuoteRequest(ctx, domain.LeadRequest{
		LeadID:    leadID,
		Recipient: "sales@vendor.com",
		Answers:   []domain.Answer{{QuestionID: "q1", OptionID: "o1", BasePrice: 1000, FinalPrice: 1200, Hours: 40}},
	}); err != nil {
		t.Fatalf("create quote request: %v", err)
	}

	byLead, err := repo.GetLeadRequests(ctx, leadID)
	if err != nil || len(byLead) != 2 {
		t.Fatalf("expected 2 requests for lead, got %d err=%v", len(byLead), err)
	}
	byRecipient, err := repo.GetRequestsByRecipient(ctx, "sales@vendor.com")
	if err != nil || len(byRecipient) != 2 {
		t.Fatalf("expected 2 requests for recipient, got %d err=%v", len(byRecipient), err)
	}

	if _, err := repo.CreateDemoRequest(ctx, domain.LeadRequest{LeadID: "missing"}); !errors.Is(err, domain.ErrLeadNotFound) {
		t.Fatalf("expected lead not found, got %v", err)
	}
}
