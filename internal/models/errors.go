package models

import (
	"errors"
	"fmt"
)

// Error codes used across the application.
const (
	CodeAlreadyExists      = "ALREADY_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeNotFound           = "NOT_FOUND"
	CodeValidation         = "VALIDATION_ERROR"
	CodeGatewayUnavailable = "GATEWAY_UNAVAILABLE"
	CodeSearchSuperseded   = "SEARCH_SUPERSEDED"
	CodeInternal           = "INTERNAL_ERROR"
)

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors

func NewAlreadyExistsError(username string) *AppError {
	return &AppError{
		Code:    CodeAlreadyExists,
		Message: fmt.Sprintf("an account named %q already exists", username),
	}
}

// NewInvalidCredentialsError deliberately carries no detail about whether the
// username or the password was wrong.
func NewInvalidCredentialsError() *AppError {
	return &AppError{
		Code:    CodeInvalidCredentials,
		Message: "invalid username or password",
	}
}

func NewUnauthenticatedError(action string) *AppError {
	return &AppError{
		Code:    CodeUnauthenticated,
		Message: fmt.Sprintf("%s requires an active session", action),
	}
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewGatewayUnavailableError(err error) *AppError {
	return &AppError{
		Code:    CodeGatewayUnavailable,
		Message: "generative assistant unavailable",
		Err:     err,
	}
}

// NewSearchSupersededError marks a search result that arrived after a newer
// query was issued. Callers discard it instead of rendering stale results.
func NewSearchSupersededError() *AppError {
	return &AppError{
		Code:    CodeSearchSuperseded,
		Message: "search result superseded by a newer query",
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "internal error",
		Err:     err,
	}
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
