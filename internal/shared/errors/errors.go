// Package errors defines the single application error type returned by use
// cases and rendered by the HTTP layer into the response envelope.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType is the machine-readable code carried in the error envelope.
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
	ErrorTypeBadRequest   ErrorType = "BAD_REQUEST"
	ErrorTypeRateLimited  ErrorType = "RATE_LIMITED"

	ErrorTypeInvalidStatusTransition ErrorType = "INVALID_STATUS_TRANSITION"
	ErrorTypeFileTooLarge            ErrorType = "FILE_TOO_LARGE"
	ErrorTypeUnsupportedFileType     ErrorType = "UNSUPPORTED_FILE_TYPE"
	ErrorTypePreviewNotAvailable     ErrorType = "PREVIEW_NOT_AVAILABLE"
)

// AppError carries a code, a user-facing message and the HTTP status to
// answer with.
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// New builds an AppError of an arbitrary type.
func New(errType ErrorType, status int, message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    errType,
		Message: message,
		Code:    status,
		Details: detail,
	}
}

func NewValidationError(message string, details ...string) *AppError {
	return New(ErrorTypeValidation, http.StatusBadRequest, message, details...)
}

func NewNotFoundError(message string, details ...string) *AppError {
	return New(ErrorTypeNotFound, http.StatusNotFound, message, details...)
}

func NewConflictError(message string, details ...string) *AppError {
	return New(ErrorTypeConflict, http.StatusConflict, message, details...)
}

func NewUnauthorizedError(message string, details ...string) *AppError {
	return New(ErrorTypeUnauthorized, http.StatusUnauthorized, message, details...)
}

func NewForbiddenError(message string, details ...string) *AppError {
	return New(ErrorTypeForbidden, http.StatusForbidden, message, details...)
}

func NewInternalError(message string, details ...string) *AppError {
	return New(ErrorTypeInternal, http.StatusInternalServerError, message, details...)
}

func NewBadRequestError(message string, details ...string) *AppError {
	return New(ErrorTypeBadRequest, http.StatusBadRequest, message, details...)
}

func NewRateLimitedError(message string, details ...string) *AppError {
	return New(ErrorTypeRateLimited, http.StatusTooManyRequests, message, details...)
}

// NewInvalidStatusTransitionError reports a rejected ticket lifecycle move.
func NewInvalidStatusTransitionError(from, to string) *AppError {
	return New(ErrorTypeInvalidStatusTransition, http.StatusBadRequest,
		fmt.Sprintf("cannot change status from %s to %s", from, to))
}

func NewFileTooLargeError(name string, limit int64) *AppError {
	return New(ErrorTypeFileTooLarge, http.StatusRequestEntityTooLarge,
		fmt.Sprintf("file %q exceeds the %d byte limit", name, limit))
}

func NewUnsupportedFileTypeError(name string, details ...string) *AppError {
	return New(ErrorTypeUnsupportedFileType, http.StatusUnsupportedMediaType,
		fmt.Sprintf("file type of %q is not allowed", name), details...)
}

func NewPreviewNotAvailableError(mimeType string) *AppError {
	return New(ErrorTypePreviewNotAvailable, http.StatusBadRequest,
		"preview is not available for this file type", mimeType)
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts the AppError from err's chain, or nil.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasType reports whether err carries an AppError of the given type.
func HasType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

func IsConflictError(err error) bool {
	return HasType(err, ErrorTypeConflict)
}

func IsNotFoundError(err error) bool {
	return HasType(err, ErrorTypeNotFound)
}

func IsValidationError(err error) bool {
	return HasType(err, ErrorTypeValidation)
}

func IsForbiddenError(err error) bool {
	return HasType(err, ErrorTypeForbidden)
}

// IsDuplicateError recognises unique-constraint violations from the
// supported SQL drivers.
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || // mysql
		strings.Contains(msg, "duplicate key") || // postgres
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed") // sqlite
}
