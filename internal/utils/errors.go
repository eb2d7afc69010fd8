package utils

import (
	"errors"
	"net/http"
)

// AppError carries an application error code alongside a message fit
// for the API response. Origin keeps the underlying cause, if any.
type AppError struct {
	Code    string
	Message string
	Origin  error
}

func (e *AppError) Error() string {
	if e.Origin != nil {
		return e.Message + ": " + e.Origin.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Origin
}

// Standard error codes for the application.
const (
	ErrInvalidInput         = "INVALID_INPUT"
	ErrInvalidCredentials   = "INVALID_CREDENTIALS"
	ErrUnauthorized         = "UNAUTHORIZED"
	ErrForbidden            = "FORBIDDEN"
	ErrNotFound             = "NOT_FOUND"
	ErrDuplicate            = "DUPLICATE"
	ErrPayloadTooLarge      = "PAYLOAD_TOO_LARGE"
	ErrUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"
	ErrDatabase             = "DATABASE_ERROR"
)

func NewAppError(code, message string, origin error) *AppError {
	return &AppError{Code: code, Message: message, Origin: origin}
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: ErrInvalidInput, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: ErrNotFound, Message: message}
}

func NewDuplicateError(message string) *AppError {
	return &AppError{Code: ErrDuplicate, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: ErrForbidden, Message: message}
}

func NewInvalidCredentialsError() *AppError {
	return &AppError{Code: ErrInvalidCredentials, Message: "Invalid credentials"}
}

// IsErrorCode reports whether err is an AppError with the given code.
func IsErrorCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// HTTPStatus maps an application error code to an HTTP status code.
// Wrong-current-password on password change is a 400, not a 401, which
// is why INVALID_CREDENTIALS maps to bad request; login translates its
// failures to 401 explicitly.
func HTTPStatus(code string) int {
	switch code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrInvalidInput, ErrInvalidCredentials, ErrDuplicate,
		ErrPayloadTooLarge, ErrUnsupportedMediaType:
		return http.StatusBadRequest
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
