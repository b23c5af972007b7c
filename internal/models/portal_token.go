package models

import (
	"time"

	"github.com/google/uuid"
)

// PortalToken grants a client passwordless read access to their portal.
// Only the SHA-256 hash of the token is stored.
type PortalToken struct {
	TokenHash string    `json:"-"`
	ClientID  uuid.UUID `json:"client_id"`

	ExpiresAt  time.Time  `json:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (t *PortalToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
