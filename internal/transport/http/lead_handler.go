package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"arcadia-quote-service/internal/app"
	"arcadia-quote-service/internal/domain"
	"github.com/gorilla/mux"
)

// LeadHandler exposes the lead/identity operations over REST. Failed
// submissions return an error body and leave nothing half-written; the
// client may simply retry.
type LeadHandler struct {
	leads app.LeadService
}

func NewLeadHandler(leads app.LeadService) *LeadHandler {
	return &LeadHandler{leads: leads}
}

// CreateLead handles POST /v1/leads.
func (h *LeadHandler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var lead domain.Lead
	if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fieldErrs := app.ValidateLead(lead); fieldErrs != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"fieldErrors": fieldErrs})
		return
	}

	id, err := h.leads.CreateLead(r.Context(), lead)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateLead) {
			// Distinct from generic failures so the client can tell the
			// user this email is already registered.
			writeError(w, http.StatusConflict, domain.ErrDuplicateLead.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// GetLeadByEmail handles GET /v1/leads?email=.
func (h *LeadHandler) GetLeadByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "missing email")
		return
	}
	lead, err := h.leads.GetLeadByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrLeadNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// GetLeadRequests handles GET /v1/leads/{id}/requests.
func (h *LeadHandler) GetLeadRequests(w http.ResponseWriter, r *http.Request) {
	leadID := mux.Vars(r)["id"]
	requests, err := h.leads.GetLeadRequests(r.Context(), leadID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"requests": requests})
}

// GetRequestsByRecipient handles GET /v1/requests?recipient=.
func (h *LeadHandler) GetRequestsByRecipient(w http.ResponseWriter, r *http.Request) {
	recipient := r.URL.Query().Get("recipient")
	if recipient == "" {
		writeError(w, http.StatusBadRequest, "missing recipient")
		return
	}
	requests, err := h.leads.GetRequestsByRecipient(r.Context(), recipient)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"requests": requests})
}

// CreateDemoRequest handles POST /v1/demo-requests.
func (h *LeadHandler) CreateDemoRequest(w http.ResponseWriter, r *http.Request) {
	h.createRequest(w, r, domain.RequestDemo, h.leads.CreateDemoRequest)
}

// CreateQuoteRequest handles POST /v1/quote-requests.
func (h *LeadHandler) CreateQuoteRequest(w http.ResponseWriter, r *http.Request) {
	h.createRequest(w, r, domain.RequestQuote, h.leads.CreateQuoteRequest)
}

// CreateFinalQuote handles POST /v1/final-quotes.
func (h *LeadHandler) CreateFinalQuote(w http.ResponseWriter, r *http.Request) {
	h.createRequest(w, r, domain.RequestFinalQuote, h.leads.CreateFinalQuote)
}

// CreateQuotation handles POST /v1/quotations.
func (h *LeadHandler) CreateQuotation(w http.ResponseWriter, r *http.Request) {
	h.createRequest(w, r, domain.RequestQuotation, h.leads.CreateQuotation)
}

func (h *LeadHandler) createRequest(w http.ResponseWriter, r *http.Request, kind domain.RequestKind, create func(ctx context.Context, req domain.LeadRequest) (string, error)) {
	var req domain.LeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Kind = kind
	if fieldErrs := app.ValidateRequest(req); fieldErrs != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"fieldErrors": fieldErrs})
		return
	}

	id, err := create(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrLeadNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}
