package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "Workspace not found",
			},
			expected: "NOT_FOUND: Workspace not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("database connection failed"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: database connection failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Internal("wrapped", originalErr)

	unwrapped := errors.Unwrap(appErr)
	if unwrapped != originalErr {
		t.Errorf("Unwrap() should return original error")
	}
}

func TestBookingOverlap_Distinguishable(t *testing.T) {
	overlap := BookingOverlap("workspace already reserved for this interval")
	conflict := Conflict("email already registered")

	if overlap.HTTPStatus != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, overlap.HTTPStatus)
	}
	if overlap.Code == conflict.Code {
		t.Errorf("overlap and generic conflict must carry distinct codes")
	}
	if !IsCode(overlap, CodeBookingOverlap) {
		t.Errorf("IsCode should match %s", CodeBookingOverlap)
	}
	if IsCode(conflict, CodeBookingOverlap) {
		t.Errorf("IsCode should not match generic conflict")
	}
}

func TestAsAppError(t *testing.T) {
	plain := errors.New("boom")
	appErr := AsAppError(plain)

	if appErr.Code != CodeInternal {
		t.Errorf("expected unexpected errors to map to %s, got %s", CodeInternal, appErr.Code)
	}
	if errors.Unwrap(appErr) != plain {
		t.Errorf("expected original error to be preserved")
	}

	already := NotFound("Booking")
	if AsAppError(already) != already {
		t.Errorf("expected AppError to pass through unchanged")
	}
}
