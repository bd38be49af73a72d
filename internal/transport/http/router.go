package http

import (
	"encoding/json"
	"net/http"

	"arcadia-quote-service/internal/app"
	"github.com/gorilla/mux"
)

// NewRouter builds the HTTP surface: the websocket dialogue endpoint plus
// the REST lead/request endpoints.
func NewRouter(quotes *app.QuoteService, leads app.LeadService) http.Handler {
	r := mux.NewRouter()

	wsHandler := NewWSHandler(quotes)
	leadHandler := NewLeadHandler(leads)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.HandleFunc("/ws", wsHandler.ServeWS).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/leads", leadHandler.CreateLead).Methods("POST")
	v1.HandleFunc("/leads", leadHandler.GetLeadByEmail).Methods("GET")
	v1.HandleFunc("/leads/{id}/requests", leadHandler.GetLeadRequests).Methods("GET")
	v1.HandleFunc("/demo-requests", leadHandler.CreateDemoRequest).Methods("POST")
	v1.HandleFunc("/quote-requests", leadHandler.CreateQuoteRequest).Methods("POST")
	v1.HandleFunc("/final-quotes", leadHandler.CreateFinalQuote).Methods("POST")
	v1.HandleFunc("/quotations", leadHandler.CreateQuotation).Methods("POST")
	v1.HandleFunc("/requests", leadHandler.GetRequestsByRecipient).Methods("GET")

	return r
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
