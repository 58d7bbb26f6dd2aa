// Package errors provides typed errors for contextfit
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// ErrConfig indicates a configuration error
	ErrConfig ErrorType = iota
	// ErrFormat indicates an unsupported or malformed dump format
	ErrFormat
	// ErrProducer indicates a dump producer (subprocess) error
	ErrProducer
	// ErrValidation indicates an input validation error
	ErrValidation
	// ErrTimeout indicates a timeout occurred
	ErrTimeout
	// ErrBudget indicates a size budget precondition was violated
	ErrBudget
	// ErrCache indicates a cache access error
	ErrCache
)

// FitError is the base error type for all contextfit errors
type FitError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error returns the error message
func (e *FitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", errorTypeString(e.Type), e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", errorTypeString(e.Type), e.Message)
}

// Unwrap returns the underlying cause
func (e *FitError) Unwrap() error {
	return e.Cause
}

// New creates a new FitError
func New(errType ErrorType, message string, cause error) *FitError {
	return &FitError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// WithContext adds context to the error
func (e *FitError) WithContext(key string, value interface{}) *FitError {
	e.Context[key] = value
	return e
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	var fitErr *FitError
	if err == nil {
		return false
	}
	if errors.As(err, &fitErr) {
		return fitErr.Type == errType
	}
	return false
}

// IsRetryable returns true if the error is transient and retryable
func IsRetryable(err error) bool {
	var fitErr *FitError
	if !errors.As(err, &fitErr) {
		return false
	}

	switch fitErr.Type {
	case ErrProducer, ErrTimeout:
		// Producer subprocess failures and timeouts are transient
		return true
	default:
		return false
	}
}

func errorTypeString(et ErrorType) string {
	switch et {
	case ErrConfig:
		return "CONFIG"
	case ErrFormat:
		return "FORMAT"
	case ErrProducer:
		return "PRODUCER"
	case ErrValidation:
		return "VALIDATION"
	case ErrTimeout:
		return "TIMEOUT"
	case ErrBudget:
		return "BUDGET"
	case ErrCache:
		return "CACHE"
	default:
		return "UNKNOWN"
	}
}

// Convenience functions for common errors

// ConfigError creates a configuration error
func ConfigError(message string, cause error) *FitError {
	return New(ErrConfig, message, cause)
}

// FormatError creates a dump format error
func FormatError(message string, cause error) *FitError {
	return New(ErrFormat, message, cause)
}

// ProducerError creates a dump producer error
func ProducerError(message string, cause error) *FitError {
	return New(ErrProducer, message, cause)
}

// ValidationError creates a validation error
func ValidationError(message string, cause error) *FitError {
	return New(ErrValidation, message, cause)
}

// TimeoutError creates a timeout error
func TimeoutError(message string, cause error) *FitError {
	return New(ErrTimeout, message, cause)
}

// BudgetError creates a budget precondition error
func BudgetError(message string, cause error) *FitError {
	return New(ErrBudget, message, cause)
}

// CacheError creates a cache error
func CacheError(message string, cause error) *FitError {
	return New(ErrCache, message, cause)
}
