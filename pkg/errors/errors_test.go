// Package errors tests
package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := FormatError("unknown header style", nil)
	want := "[FORMAT] unknown header style"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestErrorMessageWithCause(t *testing.T) {
	cause := fmt.Errorf("exit status 1")
	err := ProducerError("flatten command failed", cause)

	if err.Error() != "[PRODUCER] flatten command failed: exit status 1" {
		t.Errorf("unexpected message: %q", err.Error())
	}

	if !stderrors.Is(err, cause) {
		t.Error("Unwrap should expose the cause")
	}
}

func TestIsType(t *testing.T) {
	err := ValidationError("limit must be positive", nil)

	if !IsType(err, ErrValidation) {
		t.Error("IsType(ErrValidation) = false, want true")
	}
	if IsType(err, ErrConfig) {
		t.Error("IsType(ErrConfig) = true, want false")
	}
	if IsType(nil, ErrValidation) {
		t.Error("IsType(nil) = true, want false")
	}
}

func TestIsTypeWrapped(t *testing.T) {
	inner := TimeoutError("producer timed out", nil)
	wrapped := fmt.Errorf("fit failed: %w", inner)

	if !IsType(wrapped, ErrTimeout) {
		t.Error("IsType should see through fmt.Errorf wrapping")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"producer", ProducerError("broken pipe", nil), true},
		{"timeout", TimeoutError("deadline exceeded", nil), true},
		{"config", ConfigError("bad yaml", nil), false},
		{"validation", ValidationError("bad input", nil), false},
		{"plain error", fmt.Errorf("plain"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.retryable {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.retryable)
			}
		})
	}
}

func TestWithContext(t *testing.T) {
	err := BudgetError("zero chunk budget", nil).
		WithContext("maxContextTokens", 0)

	if err.Context["maxContextTokens"] != 0 {
		t.Error("WithContext did not record the value")
	}
}
