package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/saadjs/drinklog/internal/apperr"
)

func TestFieldErrorMatchesInvalidInput(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("log drink: %w", apperr.Invalid("volume_ml", -1.0, "must be >= 0, got"))
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected wrapped field error to match ErrInvalidInput")
	}
	var fe *apperr.FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldError in chain")
	}
	if fe.Field != "volume_ml" || fe.Value != -1.0 {
		t.Fatalf("unexpected field error %+v", fe)
	}
	if errors.Is(err, apperr.ErrSerialization) {
		t.Fatalf("field error must not match ErrSerialization")
	}
}

func TestNotNegative(t *testing.T) {
	t.Parallel()
	if err := apperr.NotNegative("strength_percent", 0); err != nil {
		t.Fatalf("expected zero to pass, got %v", err)
	}
	err := apperr.NotNegative("strength_percent", -0.5)
	if err == nil {
		t.Fatalf("expected error for negative value")
	}
	if got := err.Error(); got != "strength_percent: must be >= 0, got -0.5" {
		t.Fatalf("unexpected message %q", got)
	}
}
