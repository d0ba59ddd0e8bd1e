package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/yawmiyat/internal/apperror"
	"github.com/sakif/yawmiyat/internal/journal"
	"github.com/sakif/yawmiyat/internal/model"
	"github.com/sakif/yawmiyat/internal/service"
)

// EntryHandler serves the journal entries of the logged-in user.
type EntryHandler struct {
	journal *service.JournalService
	logger  *slog.Logger
}

func NewEntryHandler(journal *service.JournalService, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{journal: journal, logger: logger}
}

// HandleList searches, filters, sorts and pages entries.
//
// HTTP: GET /api/entries?q=&favorites=true&hasMood=true&mood=&tag=&month=YYYY-MM&sort=&limit=&offset=
func (h *EntryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	q, err := parseListQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	page, err := h.journal.List(r.Context(), userID, q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func parseListQuery(r *http.Request) (service.ListQuery, error) {
	v := r.URL.Query()

	order, err := journal.ParseOrder(v.Get("sort"))
	if err != nil {
		return service.ListQuery{}, apperror.ValidationFailed("sort", err.Error())
	}

	q := service.ListQuery{
		Filter: journal.Filter{
			Query:         v.Get("q"),
			FavoritesOnly: v.Get("favorites") == "true",
			HasMood:       v.Get("hasMood") == "true",
			Mood:          model.Mood(v.Get("mood")),
			Tag:           v.Get("tag"),
			Month:         v.Get("month"),
		},
		Order: order,
	}

	for _, p := range []struct {
		name string
		dst  *int
	}{{"limit", &q.Limit}, {"offset", &q.Offset}} {
		raw := v.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return service.ListQuery{}, apperror.ValidationFailed(p.name, p.name+" must be an integer")
		}
		*p.dst = n
	}
	return q, nil
}

// HTTP: GET /api/entries/{id}
func (h *EntryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	entry, err := h.journal.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// HandleCreate stores a new entry. Title and date may be omitted.
//
// HTTP: POST /api/entries
func (h *EntryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in service.EntryInput
	if err := decodeJSON(w, r, maxBodyBytes, &in); err != nil {
		writeError(w, err)
		return
	}

	entry, err := h.journal.Create(r.Context(), userID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// HTTP: PUT /api/entries/{id}
// Fields left out of the body keep their stored values.
func (h *EntryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in service.EntryPatch
	if err := decodeJSON(w, r, maxBodyBytes, &in); err != nil {
		writeError(w, err)
		return
	}

	entry, err := h.journal.Update(r.Context(), userID, r.PathValue("id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// HTTP: DELETE /api/entries/{id}
func (h *EntryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.journal.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteMany removes several entries at once.
//
// HTTP: POST /api/entries/delete
// BODY: {"ids": ["...", "..."]}
func (h *EntryHandler) HandleDeleteMany(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in struct {
		IDs []string `json:"ids"`
	}
	if err := decodeJSON(w, r, maxBodyBytes, &in); err != nil {
		writeError(w, err)
		return
	}

	n, err := h.journal.DeleteMany(r.Context(), userID, in.IDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": n})
}

// HTTP: POST /api/entries/{id}/favorite
func (h *EntryHandler) HandleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	fav, err := h.journal.ToggleFavorite(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"isFavorite": fav})
}

// HTTP: GET /api/stats
func (h *EntryHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	stats, err := h.journal.Stats(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// HTTP: GET /api/calendar?month=YYYY-MM
func (h *EntryHandler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	days, err := h.journal.Calendar(r.Context(), userID, r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}
