package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sakif/yawmiyat/internal/apperror"
	"github.com/sakif/yawmiyat/internal/block"
)

// blockRequest is the body of "insert block". Only the fields of the
// requested type are read.
type blockRequest struct {
	Type      block.Variant `json:"type"`
	Text      string        `json:"text"`
	Code      string        `json:"code"`
	Name      string        `json:"name"`
	Author    string        `json:"author"`
	Language  string        `json:"language"`
	Color     string        `json:"color"`
	Title     string        `json:"title"`
	Date      string        `json:"date"`
	Time      string        `json:"time"`
	Location  string        `json:"location"`
	Icon      string        `json:"icon"`
	Target    float64       `json:"target"`
	Current   float64       `json:"current"`
	Unit      string        `json:"unit"`
	ShapeType string        `json:"shapeType"`
	FillColor string        `json:"fillColor"`
	Position  *block.Point  `json:"position"`
	Items     []struct {
		Name     string   `json:"name"`
		Quantity *float64 `json:"quantity"`
		Checked  bool     `json:"checked"`
	} `json:"items"`
}

func (req blockRequest) input() block.Input {
	in := block.Input{
		Text:      req.Text,
		Code:      req.Code,
		Name:      req.Name,
		Author:    req.Author,
		Language:  req.Language,
		Color:     req.Color,
		Title:     req.Title,
		Date:      req.Date,
		Time:      req.Time,
		Location:  req.Location,
		Icon:      req.Icon,
		Target:    req.Target,
		Current:   req.Current,
		Unit:      req.Unit,
		ShapeType: block.ShapeType(req.ShapeType),
		FillColor: req.FillColor,
		Position:  req.Position,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, block.ItemInput{Name: it.Name, Quantity: it.Quantity, Checked: it.Checked})
	}
	return in
}

// HandleAddBlock appends a new block to an entry.
//
// HTTP: POST /api/entries/{id}/blocks
// BODY: {"type": "quote", "text": "...", "author": "..."}
func (h *EntryHandler) HandleAddBlock(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req blockRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		writeError(w, err)
		return
	}

	b, err := h.journal.AddBlock(r.Context(), userID, r.PathValue("id"), req.Type, req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// blockPatch is a partial block. "metadata" needs "type" next to it so it
// can be decoded; a type that differs from the block's is rejected.
type blockPatch struct {
	Type     block.Variant   `json:"type"`
	Content  *string         `json:"content"`
	Style    *block.Style    `json:"style"`
	Metadata json.RawMessage `json:"metadata"`
	Position *block.Point    `json:"position"`
	Size     *block.Size     `json:"size"`
}

func (p blockPatch) patch() (block.Patch, error) {
	out := block.Patch{Content: p.Content, Style: p.Style, Position: p.Position, Size: p.Size}
	if len(p.Metadata) == 0 {
		return out, nil
	}
	if p.Type == "" {
		return block.Patch{}, apperror.ValidationFailed("type", "metadata requires the block type")
	}

	raw, err := json.Marshal(map[string]any{"id": "patch", "type": p.Type, "metadata": p.Metadata})
	if err != nil {
		return block.Patch{}, err
	}
	var decoded block.Block
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return block.Patch{}, apperror.ValidationFailed("metadata", err.Error())
	}
	out.Data = decoded.Data
	return out, nil
}

// HandleUpdateBlock applies a partial update. "style" replaces the style.
//
// HTTP: PATCH /api/entries/{id}/blocks/{blockID}
func (h *EntryHandler) HandleUpdateBlock(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req blockPatch
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		writeError(w, err)
		return
	}
	p, err := req.patch()
	if err != nil {
		writeError(w, err)
		return
	}

	b, err := h.journal.UpdateBlock(r.Context(), userID, r.PathValue("id"), r.PathValue("blockID"), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// HandleStyleBlock merges the body into the block's style.
//
// HTTP: POST /api/entries/{id}/blocks/{blockID}/style
func (h *EntryHandler) HandleStyleBlock(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var style block.Style
	if err := decodeJSON(w, r, maxBodyBytes, &style); err != nil {
		writeError(w, err)
		return
	}

	b, err := h.journal.StyleBlock(r.Context(), userID, r.PathValue("id"), r.PathValue("blockID"), style)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// HTTP: POST /api/entries/{id}/blocks/{blockID}/duplicate
func (h *EntryHandler) HandleDuplicateBlock(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	b, err := h.journal.DuplicateBlock(r.Context(), userID, r.PathValue("id"), r.PathValue("blockID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// HTTP: DELETE /api/entries/{id}/blocks/{blockID}
func (h *EntryHandler) HandleDeleteBlock(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.journal.DeleteBlock(r.Context(), userID, r.PathValue("id"), r.PathValue("blockID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
