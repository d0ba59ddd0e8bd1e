package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/sakif/yawmiyat/internal/apperror"
	"github.com/sakif/yawmiyat/internal/assistant"
	"github.com/sakif/yawmiyat/internal/service"
)

type AssistantHandler struct {
	assistant *assistant.Assistant
	journal   *service.JournalService
	users     *service.UserService
	logger    *slog.Logger
}

func NewAssistantHandler(a *assistant.Assistant, journal *service.JournalService, users *service.UserService, logger *slog.Logger) *AssistantHandler {
	return &AssistantHandler{assistant: a, journal: journal, users: users, logger: logger}
}

type askRequest struct {
	Message string              `json:"message"`
	History []assistant.Message `json:"history"`
}

type askResponse struct {
	Response string `json:"response"`
}

// HandleAsk answers a question about the caller's journal. The entries and
// the Gemini key are read server side; the client only sends the question
// and its conversation history.
//
// HTTP: POST /api/assistant
func (h *AssistantHandler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req askRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, apperror.ValidationFailed("message", "message is required"))
		return
	}

	settings, err := h.users.Settings(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	entries, err := h.journal.All(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	reply := h.assistant.Ask(r.Context(), settings.GeminiAPIKey, req.Message, entries, req.History)
	writeJSON(w, http.StatusOK, askResponse{Response: reply})
}
