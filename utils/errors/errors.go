package errors

import (
	"fmt"
	"net/http"
)

// APIError represents a custom error type for API responses
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Details string `json:"details,omitempty"`
}

// Error returns the error message
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAPIError(code, message string, status int, details ...string) *APIError {
	err := &APIError{
		Code:    code,
		Message: message,
		Status:  status,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

var (
	ErrInvalidInput     = NewAPIError("INVALID_INPUT", "Invalid request data", http.StatusBadRequest)
	ErrValidation       = NewAPIError("VALIDATION_ERROR", "State failed validation", http.StatusBadRequest)
	ErrUnauthorized     = NewAPIError("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	ErrNotFound         = NewAPIError("NOT_FOUND", "Resource not found", http.StatusNotFound)
	ErrConstraint       = NewAPIError("CONSTRAINT_VIOLATION", "Itinerary constraint violated", http.StatusConflict)
	ErrInsufficientData = NewAPIError("INSUFFICIENT_DATA", "Not enough data to complete the request", http.StatusUnprocessableEntity)
	ErrBadGateway       = NewAPIError("UPSTREAM_ERROR", "Place search provider failed", http.StatusBadGateway)
	ErrInternal         = NewAPIError("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError)
)

func Wrap(err error, code, message string, status int) *APIError {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}
	return NewAPIError(code, message, status, err.Error())
}

// WithDetails copies base and attaches the error text as details.
func WithDetails(base *APIError, err error) *APIError {
	return NewAPIError(base.Code, base.Message, base.Status, err.Error())
}
