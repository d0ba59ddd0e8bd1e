// Package handler contains the HTTP handlers of the journal API.
//
// A handler parses the request, calls one service method and writes the
// response through writeJSON / writeError. Business rules live in
// internal/service; handlers only translate between HTTP and the services.
package handler

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/sakif/yawmiyat/internal/render"
	"github.com/sakif/yawmiyat/internal/service"
)

// PageHandler renders an entry as a standalone HTML page. The templates are
// parsed once, in NewPageHandler.
type PageHandler struct {
	journal *service.JournalService
	page    *render.Page
	logger  *slog.Logger
}

func NewPageHandler(journal *service.JournalService, logger *slog.Logger) (*PageHandler, error) {
	page, err := render.NewPage()
	if err != nil {
		return nil, err
	}
	return &PageHandler{journal: journal, page: page, logger: logger}, nil
}

// HandleEntryPage serves the read view of one entry. The optional selected
// and editing parameters highlight a block the way the editor would.
//
// HTTP: GET /api/entries/{id}/page?selected=&editing=
func (h *PageHandler) HandleEntryPage(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	entry, err := h.journal.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	st := render.State{
		Selected: r.URL.Query().Get("selected"),
		Editing:  r.URL.Query().Get("editing"),
	}

	// Render into a buffer so a template failure can still become a 500.
	var buf bytes.Buffer
	if err := h.page.HTML(&buf, *entry, st); err != nil {
		h.logger.Error("failed to render entry page",
			slog.String("id", entry.ID),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
