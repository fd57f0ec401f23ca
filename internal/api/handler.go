// Package api serves the strategy catalog, instructor notes and the
// assistant chat as JSON over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/polaris/internal/assistant"
	"github.com/alexanderramin/polaris/internal/notes"
)

const maxBodyBytes = 1 << 20

// Handler carries the dependencies shared by every route.
type Handler struct {
	notes    *notes.Store
	answerer assistant.Answerer
	chats    *chatRegistry
	log      *slog.Logger
}

// NewHandler creates a Handler. A nil logger discards output.
func NewHandler(store *notes.Store, answerer assistant.Answerer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		notes:    store,
		answerer: answerer,
		chats:    newChatRegistry(),
		log:      logger,
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// decode reads a JSON request body into v.
func decode(r *http.Request, v any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty request body")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// textBody is the request shape shared by the chat and render routes.
type textBody struct {
	Text string `json:"text"`
}
