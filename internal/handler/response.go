package handler

// RESPONSE HELPERS:
// Every handler answers through writeJSON / writeError so the client sees one
// error shape for every failure:
//
//	{"error": "not_found", "message": "entry not found with id abc123"}
//
// Block validation failures also list the missing inputs:
//
//	{"error": "validation_error", "message": "...", "missingFields": ["date", "time"]}

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sakif/yawmiyat/internal/apperror"
	"github.com/sakif/yawmiyat/internal/auth"
)

// maxBodyBytes caps JSON request bodies. Imports get their own, larger limit.
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error         string   `json:"error"`
	Message       string   `json:"message"`
	Field         string   `json:"field,omitempty"`
	MissingFields []string `json:"missingFields,omitempty"`
}

// writeJSON sets the headers before the body; once Encode writes, later
// header changes are ignored.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to its HTTP status.
//
// ERROR MAPPING:
//   *apperror.ValidationError → 400 with missingFields
//   apperror.ErrValidation    → 400
//   apperror.ErrUnauthorized  → 401
//   apperror.ErrForbidden     → 403
//   apperror.ErrNotFound      → 404
//   apperror.ErrConflict      → 409
//   anything else             → 500, message hidden
//
// errors.Is walks the whole chain, so a service error such as
// fmt.Errorf("creating entry: %w", apperror.ValidationFailed(...)) still maps
// to 400. Anything unrecognised is a 500 whose details stay in the log.
func writeError(w http.ResponseWriter, err error) {
	var verr *apperror.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:         "validation_error",
			Message:       verr.Error(),
			MissingFields: verr.MissingFields,
		})
		return
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
			errorType = "unauthorized"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
			errorType = "forbidden"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
			errorType = "conflict"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
			Field:   appErr.Field,
		})
		return
	}

	slog.Error("unhandled error", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

// decodeJSON reads a JSON body of at most limit bytes into dst. Decoding
// failures come back as validation errors.
//
// BODY LIMITS:
// MaxBytesReader fails the read once limit is passed and tells the server
// to close the connection, so an oversized upload stops early. Most routes
// use maxBodyBytes. /api/import reads the raw backup under maxImportBytes.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperror.ValidationFailed("body", fmt.Sprintf("request body must be at most %d bytes", tooLarge.Limit))
		}
		return apperror.ValidationFailed("body", "invalid JSON body: "+err.Error())
	}
	return nil
}

// currentUser returns the id RequireAuth stored in the context. Routes that
// call it are always behind RequireAuth; a missing id means a wiring bug and
// is answered with 401 rather than a panic.
func currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("غير مصرح"))
		return "", false
	}
	return userID, true
}
