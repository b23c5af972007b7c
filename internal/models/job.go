package models

import (
	"time"

	"github.com/google/uuid"
)

// JobType is the direction of a bin run.
type JobType string

const (
	JobPutOut  JobType = "put_out"
	JobBringIn JobType = "bring_in"
)

// Job is one scheduled or completed bin task at a client property.
// Address and coordinates are snapshotted at generation time so the run
// sheet survives later edits to the client record.
type Job struct {
	Versioned

	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	ClientID  uuid.UUID `json:"client_id"`

	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	JobType     JobType   `json:"job_type"`
	BinsSummary string    `json:"bins_summary"` // e.g. "Red, Yellow"
	DayLabel    string    `json:"day_label"`    // e.g. "Tuesday"
	ServiceDate time.Time `json:"service_date"`

	AssignedStaffID *uuid.UUID `json:"assigned_staff_id,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (j *Job) GetID() string {
	return j.ID.String()
}

func (j *Job) Completed() bool {
	return j.CompletedAt != nil
}
