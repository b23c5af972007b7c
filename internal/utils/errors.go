package utils

import (
	"errors"
	"net/http"
)

// Domain-level sentinel errors used by the service layer.
var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrEmailExists        = errors.New("email_exists")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidPortalToken = errors.New("invalid_portal_token")
	ErrRowVersionConflict = errors.New("row_version_conflict")
	ErrRateLimitExceeded  = errors.New("rate_limit_exceeded")
	ErrExternalService    = errors.New("external_service_failure")
	ErrNoRowsUpdated      = errors.New("no_rows_updated")
)

// AppError lets services hand controllers a fully-formed HTTP outcome.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError is a small convenience for the common case.
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{StatusCode: status, Code: code, Message: message, Err: err}
}

// HandleAppError centralizes translating service errors into responses.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
		return
	}
	RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
}
