package dtos

import (
	"time"

	"github.com/google/uuid"
)

type IssuePortalTokenRequest struct {
	ClientID uuid.UUID `json:"client_id" validate:"required"`
	// RevokeExisting drops the client's older tokens first.
	RevokeExisting bool `json:"revoke_existing"`
}

// IssuePortalTokenResponse is the only place the raw token ever
// appears; the server keeps just its hash.
type IssuePortalTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PortalSummaryResponse is the client portal landing view: which bins
// go out this week and on what days.
type PortalSummaryResponse struct {
	ClientName    string `json:"client_name"`
	Address       string `json:"address"`
	CollectionDay string `json:"collection_day"`
	PutBinsOutDay string `json:"put_bins_out_day"`
	BinsThisWeek  string `json:"bins_this_week"`
}

type PortalLogEntry struct {
	LogID       uuid.UUID `json:"log_id"`
	CompletedAt time.Time `json:"completed_at"`
	Notes       string    `json:"notes,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"`
}

type PortalLogsResponse struct {
	Results []PortalLogEntry `json:"results"`
	Total   int              `json:"total"`
}

type UpdatePhotoPreferenceRequest struct {
	Enabled  *bool  `json:"enabled" validate:"required"`
	Delivery string `json:"delivery" validate:"required,oneof=email portal"`
}

type PhotoPreferenceResponse struct {
	ClientID uuid.UUID `json:"client_id"`
	Enabled  bool      `json:"enabled"`
	Delivery string    `json:"delivery"`
}
