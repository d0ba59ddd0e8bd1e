package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/yawmiyat/internal/apperror"
	"github.com/sakif/yawmiyat/internal/service"
)

// maxImportBytes caps backup uploads.
const maxImportBytes = 32 << 20

// ExportHandler downloads and restores backups.
type ExportHandler struct {
	exports *service.ExportService
	logger  *slog.Logger
}

func NewExportHandler(exports *service.ExportService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{exports: exports, logger: logger}
}

// HandleExport sends the whole journal as a file download.
//
// HTTP: GET /api/export?format=json|text
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	format := service.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = service.FormatJSON
	}

	data, err := h.exports.Export(r.Context(), userID, format)
	if err != nil {
		writeError(w, err)
		return
	}

	ext, contentType := "json", "application/json"
	if format == service.FormatText {
		ext, contentType = "txt", "text/plain; charset=utf-8"
	}
	filename := fmt.Sprintf("yawmiyat-%s.%s", time.Now().Format("2006-01-02"), ext)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(data)
}

// HandleImport restores a JSON backup sent as the raw request body.
//
// HTTP: POST /api/import
func (h *ExportHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		writeError(w, apperror.ValidationFailed("body", "backup is too large or unreadable"))
		return
	}

	res, err := h.exports.Import(r.Context(), userID, data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
