package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"arcadia-quote-service/internal/domain"
)

// LeadRepository is an in-memory implementation of app.LeadService for
// tests and no-database runs.
type LeadRepository struct {
	mu       sync.RWMutex
	seq      int
	leads    map[string]domain.Lead
	requests map[string]domain.LeadRequest
}

func NewLeadRepository() *LeadRepository {
	return &LeadRepository{
		leads:    make(map[string]domain.Lead),
		requests: make(map[string]domain.LeadRequest),
	}
}

func (r *LeadRepository) CreateLead(_ context.Context, lead domain.Lead) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.leads {
		if strings.EqualFold(existing.Email, lead.Email) {
			return "", domain.ErrDuplicateLead
		}
	}
	r.seq++
	lead.ID = fmt.Sprintf("lead-%d", r.seq)
	lead.CreatedAt = time.Now()
	r.leads[lead.ID] = lead
	return lead.ID, nil
}

func (r *LeadRepository) GetLeadByEmail(_ context.Context, email string) (domain.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, lead := range r.leads {
		if strings.EqualFold(lead.Email, email) {
			return lead, nil
		}
	}
	return domain.Lead{}, domain.ErrLeadNotFound
}

func (r *LeadRepository) CreateDemoRequest(ctx context.Context, req domain.LeadRequest) (string, error) {
	req.Kind = domain.RequestDemo
	return r.createRequest(req)
}

func (r *LeadRepository) CreateQuoteRequest(ctx context.Context, req domain.LeadRequest) (string, error) {
	req.Kind = domain.RequestQuote
	return r.createRequest(req)
}

func (r *LeadRepository) CreateFinalQuote(ctx context.Context, req domain.LeadRequest) (string, error) {
	req.Kind = domain.RequestFinalQuote
	return r.createRequest(req)
}

func (r *LeadRepository) CreateQuotation(ctx context.Context, req domain.LeadRequest) (string, error) {
	req.Kind = domain.RequestQuotation
	return r.createRequest(req)
}

func (r *LeadRepository) createRequest(req domain.LeadRequest) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.leads[req.LeadID]; !ok {
		return "", domain.ErrLeadNotFound
	}
	r.seq++
	req.ID = fmt.Sprintf("req-%d", r.seq)
	req.CreatedAt = time.Now()
	r.requests[req.ID] = req
	return req.ID, nil
}

func (r *LeadRepository) GetLeadRequests(_ context.Context, leadID string) ([]domain.LeadRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.LeadRequest, 0)
	for _, req := range r.requests {
		if req.LeadID == leadID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *LeadRepository) GetRequestsByRecipient(_ context.Context, recipient string) ([]domain.LeadRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.LeadRequest, 0)
	for _, req := range r.requests {
		if strings.EqualFold(req.Recipient, recipient) {
			out = append(out, req)
		}
	}
	return out, nil
}
