package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("entry", "abc123"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("title", "title is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Conflict wraps ErrConflict",
			err:       Conflict("tag", "عمل"),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "Unauthorized wraps ErrUnauthorized",
			err:       Unauthorized("invalid credentials"),
			target:    ErrUnauthorized,
			wantMatch: true,
		},
		{
			name:      "block ValidationError matches ErrValidation",
			err:       MissingFields("appointment", "time"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "wrapped block ValidationError still matches",
			err:       fmt.Errorf("inserting block: %w", MissingFields("quote", "text")),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("entry", "abc123"),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "ValidationError does NOT match ErrNotFound",
			err:       MissingFields("code", "code"),
			target:    ErrNotFound,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMessage string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("block", "b1"),
			wantMessage: "block not found with id b1",
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("name", "template name is required"),
			wantMessage: "template name is required",
		},
		{
			name:        "ValidationError lists missing fields",
			err:         MissingFields("appointment", "title", "time"),
			wantMessage: "appointment block is missing required fields: title, time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestValidationErrorAs(t *testing.T) {
	err := fmt.Errorf("creating block: %w", MissingFields("shopping-list", "items"))

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("errors.As() did not find *ValidationError")
	}
	if ve.Variant != "shopping-list" {
		t.Errorf("Variant = %q, want %q", ve.Variant, "shopping-list")
	}
	if len(ve.MissingFields) != 1 || ve.MissingFields[0] != "items" {
		t.Errorf("MissingFields = %v, want [items]", ve.MissingFields)
	}
}

func TestUnwrap(t *testing.T) {
	err := NotFound("entry", "abc123")
	if unwrapped := err.Unwrap(); unwrapped != ErrNotFound {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrNotFound)
	}
}

func TestValidationFailedField(t *testing.T) {
	err := ValidationFailed("email", "invalid email format")
	if err.Field != "email" {
		t.Errorf("Field = %q, want %q", err.Field, "email")
	}
}
