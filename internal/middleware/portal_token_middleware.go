package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/binbird1-hash/binbird-backend/internal/repositories"
	"github.com/binbird1-hash/binbird-backend/internal/utils"
)

const (
	ContextKeyPortalClientID = contextKey("portalClientID")

	PortalTokenHeader = "X-Portal-Token"
)

// PortalTokenMiddleware authenticates client-portal requests with an
// opaque bearer token issued by an admin. The token is hashed before
// lookup; a hit attaches the client ID to the context.
func PortalTokenMiddleware(tokenRepo repositories.PortalTokenRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(PortalTokenHeader)
			if raw == "" {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeInvalidPortalToken, "Missing portal token", nil,
				)
				return
			}

			hash := utils.HashToken(raw)
			tok, err := tokenRepo.GetByHash(r.Context(), hash)
			if err != nil {
				utils.RespondErrorWithCode(
					w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to validate portal token", nil, err,
				)
				return
			}
			if tok == nil || tok.Expired(time.Now()) {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeInvalidPortalToken, "Invalid or expired portal token", nil,
				)
				return
			}

			// Best effort; portal access must not fail on bookkeeping.
			if touchErr := tokenRepo.TouchLastUsed(r.Context(), hash); touchErr != nil {
				utils.Logger.WithError(touchErr).Warn("Failed to record portal token use")
			}

			ctx := context.WithValue(r.Context(), ContextKeyPortalClientID, tok.ClientID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
