package errors

import (
	stderrors "errors"
	"fmt"
)

// FadeError is the structured error type for fade.
// It carries a stable code for matching plus context for logs and user output.
type FadeError struct {
	// Code is the unique error code (e.g., "ERR_301_LAUNCH_FAILED").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is derived from the code.
	Category Category

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error.
	Cause error

	// Suggestion is an actionable hint for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *FadeError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *FadeError) Unwrap() error {
	return e.Cause
}

// Is matches by code so errors.Is works against sentinel FadeErrors.
func (e *FadeError) Is(target error) bool {
	if t, ok := target.(*FadeError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
func (e *FadeError) WithDetail(key, value string) *FadeError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
func (e *FadeError) WithSuggestion(suggestion string) *FadeError {
	e.Suggestion = suggestion
	return e
}

// New creates a new FadeError with the given code and message.
func New(code string, message string, cause error) *FadeError {
	return &FadeError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a FadeError from an existing error, reusing its message.
func Wrap(code string, err error) *FadeError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ValidationError creates an input validation error.
func ValidationError(message string, cause error) *FadeError {
	return New(ErrCodeInvalidInput, message, cause)
}

// GetCode extracts the error code from anywhere in the chain.
// Returns empty string if no FadeError is present.
func GetCode(err error) string {
	var fe *FadeError
	if stderrors.As(err, &fe) {
		return fe.Code
	}
	return ""
}
