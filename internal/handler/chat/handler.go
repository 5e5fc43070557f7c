package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/w-h-a/medrag/conversation"
	"github.com/w-h-a/medrag/internal/service/query"
)

const maxBodyBytes = 1 << 20

const internalError = "Internal server error"

type Responder interface {
	Respond(ctx context.Context, conv []conversation.Message) (string, error)
}

type request struct {
	Messages []conversation.Message `json:"messages"`
}

type answer struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

type failure struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

type chatHandler struct {
	responder Responder
}

func (h *chatHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		slog.WarnContext(ctx, "rejected chat request", "error", err)
		writeJSON(w, http.StatusBadRequest, failure{Error: "invalid request body"})
		return
	}
	defer r.Body.Close()

	if len(req.Messages) == 0 {
		writeJSON(w, http.StatusBadRequest, failure{Error: "messages must not be empty"})
		return
	}

	text, err := h.responder.Respond(ctx, req.Messages)
	if errors.Is(err, query.ErrInvalidConversation) {
		writeJSON(w, http.StatusBadRequest, failure{Error: err.Error()})
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "chat request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, failure{Error: internalError})
		return
	}

	writeJSON(w, http.StatusOK, answer{Message: text, Success: true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func NewHandler(responder Responder) *chatHandler {
	return &chatHandler{
		responder: responder,
	}
}
