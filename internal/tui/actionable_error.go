package tui

import (
	"errors"

	deverrors "github.com/rrajen/sfdx-utility-plugins/internal/errors"
)

// ActionableError wraps an error with an actionable suggestion.
//
//	err := NewActionableError("deployment not found", "Verify the id and the --target-org alias.")
//	output.Error(err)
//	// Outputs: ✗ deployment not found
//	//          ▸ Try: Verify the id and the --target-org alias.
type ActionableError struct {
	// Message is the primary error message.
	Message string

	// Suggestion is what the user can do about it. Empty when nothing helps.
	Suggestion string

	// Context is appended to the message in parentheses when present.
	Context string

	cause error
}

// NewActionableError creates a new ActionableError with message and suggestion.
func NewActionableError(msg, suggestion string) *ActionableError {
	return &ActionableError{
		Message:    msg,
		Suggestion: suggestion,
	}
}

// FromError builds an ActionableError from err using the user-facing text
// registered for its sentinel. The original error text becomes the context
// when it adds something, and remains reachable through Unwrap.
func FromError(err error) *ActionableError {
	if err == nil {
		return nil
	}
	var ae *ActionableError
	if errors.As(err, &ae) {
		return ae
	}

	msg, action := deverrors.Actionable(err)
	out := NewActionableError(msg, action)
	out.cause = err
	if detail := err.Error(); detail != msg {
		out = out.WithContext(detail)
	}
	return out
}

// Error implements the error interface.
// Returns the message with context if provided, e.g., "file not found (/path/to/file)".
func (e *ActionableError) Error() string {
	if e.Context != "" {
		return e.Message + " (" + e.Context + ")"
	}
	return e.Message
}

// Unwrap returns the error the ActionableError was built from, if any.
func (e *ActionableError) Unwrap() error {
	return e.cause
}

// WithContext adds optional context to the error.
// Returns the same error for method chaining.
func (e *ActionableError) WithContext(ctx string) *ActionableError {
	e.Context = ctx
	return e
}
