package models

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatusType string

const (
	RequestStatusPending  RequestStatusType = "pending"
	RequestStatusApproved RequestStatusType = "approved"
	RequestStatusRejected RequestStatusType = "rejected"
)

// PropertyRequest is a client-submitted ask to add a new serviced
// address. Approval materializes a Client row.
type PropertyRequest struct {
	ID          uuid.UUID `json:"id"`
	RequesterID uuid.UUID `json:"requester_id"`

	Address  string `json:"address"`
	Suburb   string `json:"suburb"`
	State    string `json:"state"`
	Postcode string `json:"postcode"`

	CollectionDay string `json:"collection_day"`
	Notes         string `json:"notes,omitempty"`

	Status     RequestStatusType `json:"status"`
	ApproverID *uuid.UUID        `json:"approver_id,omitempty"`
	DecidedAt  *time.Time        `json:"decided_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
