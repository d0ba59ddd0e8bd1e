// Package apperror defines the domain errors shared by every layer.
//
// Services and the block/document packages return these values; the HTTP
// layer maps them to status codes with errors.Is / errors.As.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("Validation Error")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// Unauthorized is returned when credentials are missing or wrong.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// ValidationError reports which required inputs were missing when a content
// block of the given variant was constructed.
//
// It matches ErrValidation under errors.Is, so callers that only care about
// the category do not need to know about this type.
type ValidationError struct {
	Variant       string
	MissingFields []string
}

// MissingFields builds a ValidationError for variant.
func MissingFields(variant string, fields ...string) *ValidationError {
	return &ValidationError{Variant: variant, MissingFields: fields}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s block is missing required fields: %s",
		e.Variant, strings.Join(e.MissingFields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
