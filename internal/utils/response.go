package utils

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Stable error codes returned to every portal. Front-ends key their
// messaging off these, so treat the strings as a wire contract.
const (
	ErrCodeInvalidPayload         = "invalid_payload"
	ErrCodeValidation             = "validation_error"
	ErrCodeUnauthorized           = "unauthorized"
	ErrCodeTokenExpired           = "token_expired"
	ErrCodeInvalidCredentials     = "invalid_credentials"
	ErrCodeInternal               = "internal_server_error"
	ErrCodeNotFound               = "not_found"
	ErrCodeConflict               = "conflict"
	ErrCodeRowVersionConflict     = "row_version_conflict"
	ErrCodeRateLimitExceeded      = "rate_limit_exceeded"
	ErrCodeLocationInaccurate     = "location_inaccurate"
	ErrCodeLocationTooFar         = "location_too_far"
	ErrCodeInvalidPortalToken     = "invalid_portal_token"
	ErrCodePhotoRejected          = "photo_rejected"
	ErrCodeExternalServiceFailure = "external_service_failure"
)

// ErrorResponse carries a machine code, a user-safe message, and an
// optional Details payload (e.g. the conflicting job after a version race).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// RespondErrorWithCode writes the standard JSON error body and logs the
// developer-facing error (if supplied) without leaking it to the client.
func RespondErrorWithCode(
	w http.ResponseWriter,
	status int,
	errorCode string,
	publicMessage string,
	details any,
	devErrs ...error,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	body := ErrorResponse{
		Code:    errorCode,
		Message: publicMessage,
	}
	if details != nil {
		body.Details = details
	}
	_ = json.NewEncoder(w).Encode(body)

	if len(devErrs) > 0 && devErrs[0] != nil {
		Logger.WithFields(logrus.Fields{
			"status": status,
			"error":  devErrs[0].Error(),
		}).Error(publicMessage)
	} else {
		Logger.WithFields(logrus.Fields{
			"status": status,
		}).Error(publicMessage)
	}
}

func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
