package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/yawmiyat/internal/model"
	"github.com/sakif/yawmiyat/internal/service"
	"github.com/sakif/yawmiyat/internal/smartform"
)

// TemplateHandler serves smart form templates and their submissions.
type TemplateHandler struct {
	templates *service.TemplateService
	logger    *slog.Logger
}

func NewTemplateHandler(templates *service.TemplateService, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{templates: templates, logger: logger}
}

// HTTP: GET /api/templates
func (h *TemplateHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	templates, err := h.templates.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"templates":  templates,
		"categories": model.TemplateCategories,
	})
}

// templateView is a template together with its field render descriptors.
type templateView struct {
	*model.Template
	Form []smartform.FieldView `json:"form"`
}

// HTTP: GET /api/templates/{id}
func (h *TemplateHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	tpl, err := h.templates.Get(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, templateView{Template: tpl, Form: smartform.Fields(*tpl)})
}

// HTTP: POST /api/templates
func (h *TemplateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "", http.StatusCreated)
}

// HTTP: PUT /api/templates/{id}
func (h *TemplateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, r.PathValue("id"), http.StatusOK)
}

func (h *TemplateHandler) save(w http.ResponseWriter, r *http.Request, id string, status int) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var tpl model.Template
	if err := decodeJSON(w, r, maxBodyBytes, &tpl); err != nil {
		writeError(w, err)
		return
	}
	tpl.ID = id

	saved, err := h.templates.Save(r.Context(), userID, tpl)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, saved)
}

// HTTP: DELETE /api/templates/{id}
func (h *TemplateHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.templates.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type formValues struct {
	Values map[string]any `json:"values"`
}

// HandleCompletion reports the completion percentage of a partly filled form.
//
// HTTP: POST /api/templates/{id}/completion
// BODY: {"values": {"1": "...", "2": 4}}
func (h *TemplateHandler) HandleCompletion(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in formValues
	if err := decodeJSON(w, r, maxBodyBytes, &in); err != nil {
		writeError(w, err)
		return
	}

	pct, err := h.templates.Completion(r.Context(), userID, r.PathValue("id"), in.Values)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"completion": pct})
}

// HandleSubmit turns a filled form into a new entry.
//
// HTTP: POST /api/templates/{id}/submit
func (h *TemplateHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var in formValues
	if err := decodeJSON(w, r, maxBodyBytes, &in); err != nil {
		writeError(w, err)
		return
	}

	entry, err := h.templates.Submit(r.Context(), userID, r.PathValue("id"), in.Values)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}
