package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"arcadia-quote-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// LeadRepository handles MongoDB operations for leads and their requests.
// It fills the lead/identity collaborator role: a small set of named
// operations returning an identifier or an error.
type LeadRepository struct {
	leads    *mongo.Collection
	requests *mongo.Collection
}

func NewLeadRepository(db *mongo.Database) *LeadRepository {
	return &LeadRepository{
		leads:    db.Collection("leads"),
		requests: db.Collection("lead_requests"),
	}
}

func (r *LeadRepository) CreateLead(ctx context.Context, lead domain.Lead) (string, error) {
	lead.Email = strings.ToLower(strings.TrimSpace(lead.Email))

	// Duplicate probe first so the caller can surface a dedicated message.
	err := r.leads.FindOne(ctx, bson.M{"email": lead.Email}).Err()
	if err == nil {
		return "", domain.ErrDuplicateLead
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", fmt.Errorf("lead lookup: %w", err)
	}

	lead.ID = primitive.NewObjectID().Hex()
	lead.CreatedAt = time.Now()
	if _, err := r.leads.InsertOne(ctx, lead); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrDuplicateLead
		}
		return "", fmt.Errorf("insert lead: %w", err)
	}
	return lead.ID, nil
}

func (r *LeadRepository) GetLeadByEmail(ctx context.Context, email string) (domain.Lead, error) {
	var lead domain.Lead
	err := r.leads.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&lead)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Lead{}, domain.ErrLeadNotFound
	}
	if err != nil {
		return domain.Lead{}, fmt.Errorf("find lead: %w", err)
	}
	return lead, nil
}

func (r *LeadRepository) CreateDemoRequest(ctx context.Context, req domain.LeadRequest) (string, error) {
	req.Kind = domain.RequestDemo
	return r.createRequest(ctx, req)
}

func (r *LeadRepository) CreateQuoteRequest(ctx context.Context, req domain.LeadRequest) (string, error) {
	req.Kind = domain.RequestQuote
	return r.createRequest(ctx, req)
}

func (r *LeadRepository) CreateFinalQuote(ctx context.Context, req domain.LeadRequest) (string, error) {
	req.Kind = domain.RequestFinalQuote
	return r.createRequest(ctx, req)
}

func (r *LeadRepository) CreateQuotation(ctx context.Context, req domain.LeadRequest) (string, error) {
	req.Kind = domain.RequestQuotation
	return r.createRequest(ctx, req)
}

func (r *LeadRepository) createRequest(ctx context.Context, req domain.LeadRequest) (string, error) {
	err := r.leads.FindOne(ctx, bson.M{"_id": req.LeadID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", domain.ErrLeadNotFound
	}
	if err != nil {
		return "", fmt.Errorf("lead lookup: %w", err)
	}

	req.ID = primitive.NewObjectID().Hex()
	req.CreatedAt = time.Now()
	if _, err := r.requests.InsertOne(ctx, req); err != nil {
		return "", fmt.Errorf("insert request: %w", err)
	}
	return req.ID, nil
}

func (r *LeadRepository) GetLeadRequests(ctx context.Context, leadID string) ([]domain.LeadRequest, error) {
	return r.findRequests(ctx, bson.M{"leadId": leadID})
}

func (r *LeadRepository) GetRequestsByRecipient(ctx context.Context, recipient string) ([]domain.LeadRequest, error) {
	return r.findRequests(ctx, bson.M{"recipient": recipient})
}

func (r *LeadRepository) findRequests(ctx context.Context, filter bson.M) ([]domain.LeadRequest, error) {
	cursor, err := r.requests.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find requests: %w", err)
	}
	defer cursor.Close(ctx)

	requests := make([]domain.LeadRequest, 0)
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("decode requests: %w", err)
	}
	return requests, nil
}
