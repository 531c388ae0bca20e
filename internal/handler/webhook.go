// Package handler contains the HTTP-facing layer: the webhook endpoints
// and the diagnostics endpoint. Handlers parse and acknowledge; all dialog
// logic lives in the service layer.
package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/isufellowship/attendance-bot/internal/repository"
	"github.com/isufellowship/attendance-bot/internal/service"
	"github.com/isufellowship/attendance-bot/internal/whatsapp"
)

// WebhookHandler serves the Cloud API webhook endpoints.
type WebhookHandler struct {
	conversation *service.ConversationService
	verifyToken  string
	logger       *slog.Logger
}

// NewWebhookHandler creates a webhook handler.
func NewWebhookHandler(conversation *service.ConversationService, verifyToken string, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		conversation: conversation,
		verifyToken:  verifyToken,
		logger:       logger,
	}
}

// HandleVerify answers the platform's GET handshake: echo hub.challenge
// iff hub.verify_token matches the configured secret.
func (h *WebhookHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("hub.verify_token") == h.verifyToken {
		w.Write([]byte(q.Get("hub.challenge")))
		return
	}
	w.Write([]byte("Invalid verification token"))
}

// HandleEvent processes a POST delivery. The platform retries anything it
// does not see acknowledged, so the reply is always 200 "ok" — processing
// failures are logged, never surfaced to the caller.
func (h *WebhookHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	defer func() {
		w.Write([]byte("ok"))
	}()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Warn("failed to read webhook body", slog.String("error", err.Error()))
		return
	}

	ev, err := whatsapp.ParseEvent(body)
	if err != nil {
		h.logger.Warn("failed to decode webhook payload", slog.String("error", err.Error()))
		return
	}
	if ev == nil {
		h.logger.Debug("webhook payload carried no user event, ignoring")
		return
	}

	h.logger.Info("processing message",
		slog.String("from", ev.From),
		slog.String("kind", string(ev.Kind)),
	)

	if err := h.conversation.HandleEvent(r.Context(), *ev); err != nil {
		h.logger.Error("error processing webhook event",
			slog.String("from", ev.From),
			slog.String("error", err.Error()),
		)
	}
}

// DirectoryHandler exposes a read-only snapshot of known user ids.
type DirectoryHandler struct {
	directory repository.UserDirectory
	logger    *slog.Logger
}

// NewDirectoryHandler creates the diagnostics handler.
func NewDirectoryHandler(directory repository.UserDirectory, logger *slog.Logger) *DirectoryHandler {
	return &DirectoryHandler{directory: directory, logger: logger}
}

// HandleList returns {count, ids} for all registered users.
//
// HTTP: GET /api/directory
func (h *DirectoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ids, err := h.directory.AllIDs(r.Context())
	if err != nil {
		h.logger.Error("failed to list directory ids", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"count": len(ids),
		"ids":   ids,
	}); err != nil {
		h.logger.Error("failed to encode directory response", slog.String("error", err.Error()))
	}
}
