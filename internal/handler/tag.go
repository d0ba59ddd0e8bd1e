package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/yawmiyat/internal/service"
)

// TagHandler manages the saved tags of the logged-in user.
type TagHandler struct {
	tags   *service.TagService
	logger *slog.Logger
}

func NewTagHandler(tags *service.TagService, logger *slog.Logger) *TagHandler {
	return &TagHandler{tags: tags, logger: logger}
}

// HTTP: GET /api/tags
func (h *TagHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tags, err := h.tags.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

// HandleCreate saves a tag.
//
// HTTP: POST /api/tags
// BODY: {"name": "عمل", "color": "#3b82f6"}
func (h *TagHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := decodeJSON(w, r, maxBodyBytes, &in); err != nil {
		writeError(w, err)
		return
	}

	tag, err := h.tags.Create(r.Context(), userID, in.Name, in.Color)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tag)
}

// HTTP: DELETE /api/tags/{id}
func (h *TagHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.tags.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
