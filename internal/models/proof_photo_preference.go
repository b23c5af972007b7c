package models

import (
	"time"

	"github.com/google/uuid"
)

type ProofDeliveryChannel string

const (
	ProofDeliveryEmail  ProofDeliveryChannel = "email"
	ProofDeliveryPortal ProofDeliveryChannel = "portal"
)

// ProofPhotoPreference controls whether (and how) a client receives the
// proof photo after each completed job. One row per client, upserted.
type ProofPhotoPreference struct {
	ClientID uuid.UUID            `json:"client_id"`
	Enabled  bool                 `json:"enabled"`
	Delivery ProofDeliveryChannel `json:"delivery"`

	UpdatedAt time.Time `json:"updated_at"`
}
