package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/binbird1-hash/binbird-backend/internal/models"
)

type ListJobsResponse struct {
	Results []*models.Job `json:"results"`
	Total   int           `json:"total"`
}

// CompleteJobRequest is the metadata half of the multipart completion
// upload; the photo travels as the "photo" file part.
type CompleteJobRequest struct {
	JobID     uuid.UUID `json:"job_id" validate:"required"`
	Lat       float64   `json:"lat" validate:"min=-90,max=90"`
	Lng       float64   `json:"lng" validate:"min=-180,max=180"`
	Accuracy  float64   `json:"accuracy" validate:"min=0"`
	Timestamp int64     `json:"timestamp" validate:"required"`
	IsMock    bool      `json:"is_mock"`
	Notes     string    `json:"notes"`
}

type CompleteJobResponse struct {
	Job *models.Job           `json:"job"`
	Log *models.CollectionLog `json:"log"`
}

type GenerateJobsRequest struct {
	// Date is "2006-01-02"; empty means every active client's local today.
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type GenerateJobsResponse struct {
	Date    string `json:"date,omitempty"`
	Deleted int64  `json:"deleted"`
	Created int    `json:"created"`
}

type LogListResponse struct {
	Results []*models.CollectionLog `json:"results"`
	Total   int                     `json:"total"`
}

type PhotoURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
