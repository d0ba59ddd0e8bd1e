package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/yawmiyat/internal/model"
	"github.com/sakif/yawmiyat/internal/service"
)

// SettingsHandler reads and writes the user's preferences.
type SettingsHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

func NewSettingsHandler(users *service.UserService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{users: users, logger: logger}
}

// HTTP: GET /api/settings
func (h *SettingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	settings, err := h.users.Settings(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// HandleUpdate replaces the settings. Fields missing from the body fall
// back to their defaults.
//
// HTTP: PUT /api/settings
func (h *SettingsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	settings := model.DefaultSettings()
	if err := decodeJSON(w, r, maxBodyBytes, &settings); err != nil {
		writeError(w, err)
		return
	}

	saved, err := h.users.UpdateSettings(r.Context(), userID, settings)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// HTTP: DELETE /api/settings
func (h *SettingsHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	saved, err := h.users.ResetSettings(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
