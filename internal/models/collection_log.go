package models

import (
	"time"

	"github.com/google/uuid"
)

// CollectionLog is the proof record written when staff complete a job:
// a photo in object storage plus the GPS fix it was taken from.
type CollectionLog struct {
	ID    uuid.UUID `json:"id"`
	JobID uuid.UUID `json:"job_id"`

	PhotoKey string `json:"photo_key"` // S3 object key, not a URL

	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	AccuracyM   float64   `json:"accuracy_m"`
	Notes       string    `json:"notes,omitempty"`
	CompletedAt time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
}
