package http

import (
	"encoding/json"
	"log"
	"net/http"

	"arcadia-quote-service/internal/app"
	"github.com/gorilla/websocket"
)

// WSHandler drives the conversational quote dialogue over a websocket.
type WSHandler struct {
	service  *app.QuoteService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuoteService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectionPayload struct {
	ID string `json:"id"`
}

type explanationResult struct {
	TargetID string `json:"targetId"`
	Text     string `json:"text"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type sessionPayload struct {
	SessionID string            `json:"sessionId"`
	Language  string            `json:"language"`
	UI        map[string]string `json:"ui,omitempty"`
	View      app.Turn          `json:"view"`
	// CompanySizes is sent so the client can render the tier slider; it is
	// present regardless of state since the list is static per session.
	CompanySizes any `json:"companySizes"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the
// dialogue use cases. A session starts (or resumes from its snapshot) on
// connect; each selection message advances the state machine.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	language := r.URL.Query().Get("lang")
	if sessionID == "" {
		http.Error(w, "missing sessionId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session, err := h.service.StartSession(r.Context(), sessionID, language)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	content := session.Content()
	send <- outboundMessage[any]{Type: "session", Payload: sessionPayload{
		SessionID:    session.ID(),
		Language:     content.Language,
		UI:           content.UI,
		View:         session.View(),
		CompanySizes: content.CompanySizes,
	}}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}

		var payload selectionPayload
		if len(inbound.Payload) > 0 {
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid payload"}}
				continue
			}
		}

		switch inbound.Type {
		case "companySize":
			h.applyTurn(send, func() (app.Turn, error) {
				return h.service.SelectCompanySize(r.Context(), sessionID, payload.ID)
			})
		case "option":
			h.applyTurn(send, func() (app.Turn, error) {
				return h.service.SelectOption(r.Context(), sessionID, payload.ID)
			})
		case "subOption":
			h.applyTurn(send, func() (app.Turn, error) {
				return h.service.SelectSubOption(r.Context(), sessionID, payload.ID)
			})
		case "multiplier":
			h.applyTurn(send, func() (app.Turn, error) {
				return h.service.SelectMultiplier(r.Context(), sessionID, payload.ID)
			})
		case "explain":
			text, err := h.service.Explain(sessionID, payload.ID)
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[any]{Type: "explanation", Payload: explanationResult{TargetID: payload.ID, Text: text}}
		case "results":
			breakdown, err := h.service.Results(sessionID)
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[any]{Type: "quote", Payload: breakdown}
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(send)
	<-writerDone
}

func (h *WSHandler) applyTurn(send chan<- outboundMessage[any], fn func() (app.Turn, error)) {
	turn, err := fn()
	if err != nil {
		send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
		return
	}
	send <- outboundMessage[any]{Type: "turn", Payload: turn}
}
