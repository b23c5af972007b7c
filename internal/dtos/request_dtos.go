package dtos

import "github.com/binbird1-hash/binbird-backend/internal/models"

type SubmitPropertyRequestRequest struct {
	Address  string `json:"address" validate:"required"`
	Suburb   string `json:"suburb" validate:"required"`
	State    string `json:"state" validate:"required"`
	Postcode string `json:"postcode" validate:"required"`

	CollectionDay string `json:"collection_day" validate:"required"`
	Notes         string `json:"notes"`
}

type PropertyRequestListResponse struct {
	Results []*models.PropertyRequest `json:"results"`
	Total   int                       `json:"total"`
}
