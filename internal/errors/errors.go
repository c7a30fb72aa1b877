package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a Sapling error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrNoteTooLarge   ErrorCode = "NOTE_TOO_LARGE"  // 413
	ErrInvalidCatalog ErrorCode = "INVALID_CATALOG" // 422
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// SaplingError represents a structured error with code, status, and details.
type SaplingError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *SaplingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *SaplingError {
	return &SaplingError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewSpeciesNotFound creates a 404 error for an unknown species id.
// Suggestions are the closest known ids and may be empty.
func NewSpeciesNotFound(id string, suggestions []string) *SaplingError {
	if suggestions == nil {
		suggestions = []string{}
	}
	msg := fmt.Sprintf("species not found: %s", id)
	if len(suggestions) > 0 {
		msg = fmt.Sprintf("species not found: %s (did you mean %q?)", id, suggestions[0])
	}
	return &SaplingError{
		Code:    ErrNotFound,
		Status:  404,
		Message: msg,
		Details: map[string]any{"identifier": id, "suggestions": suggestions},
	}
}

// NewPledgeNotFound creates a 404 error for when a pledge cannot be found.
func NewPledgeNotFound(id string) *SaplingError {
	return &SaplingError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("pledge not found: %s", id),
		Details: map[string]any{"identifier": id},
	}
}

// NewNoteTooLarge creates a 413 error when a pledge note exceeds the size limit.
func NewNoteTooLarge(max, actual int) *SaplingError {
	return &SaplingError{
		Code:    ErrNoteTooLarge,
		Status:  413,
		Message: fmt.Sprintf("note exceeds maximum size: %d chars (max %d)", actual, max),
		Details: map[string]any{"max_chars": max, "actual_chars": actual},
	}
}

// NewInvalidCatalog creates a 422 error for a species catalog that fails validation.
func NewInvalidCatalog(msg string) *SaplingError {
	return &SaplingError{
		Code:    ErrInvalidCatalog,
		Status:  422,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
// The message stays generic; the cause is kept in Details for logging.
func NewInternal(err error) *SaplingError {
	details := map[string]any{}
	if err != nil {
		details["internal_error"] = err.Error()
	}
	return &SaplingError{
		Code:    ErrInternal,
		Status:  500,
		Message: "an internal error occurred",
		Details: details,
	}
}

// Is checks if an error (or anything it wraps) is a SaplingError with the given code.
func Is(err error, code ErrorCode) bool {
	var sErr *SaplingError
	if stderrors.As(err, &sErr) {
		return sErr.Code == code
	}
	return false
}
