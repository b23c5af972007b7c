package dtos

import (
	"github.com/google/uuid"

	"github.com/binbird1-hash/binbird-backend/internal/models"
)

// BinConfigDTO is the per-colour schedule as entered in the admin
// portal. Frequency strings are normalized downstream.
type BinConfigDTO struct {
	Frequency string `json:"frequency" validate:"required,oneof=Weekly Fortnightly Never weekly fortnightly never"`
	Flip      bool   `json:"flip"`
}

type CreateClientRequest struct {
	AccountID uuid.UUID `json:"account_id" validate:"required"`

	Name     string `json:"name" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Suburb   string `json:"suburb" validate:"required"`
	State    string `json:"state" validate:"required"`
	Postcode string `json:"postcode" validate:"required"`

	// Optional; geocoded from the address when absent and the geocoding
	// flag is on.
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	CollectionDay string `json:"collection_day" validate:"required"`
	PutBinsOutDay string `json:"put_bins_out_day"`

	RedBin    BinConfigDTO `json:"red_bin" validate:"required"`
	YellowBin BinConfigDTO `json:"yellow_bin" validate:"required"`
	GreenBin  BinConfigDTO `json:"green_bin" validate:"required"`

	AssignedStaffID *uuid.UUID `json:"assigned_staff_id"`
	SkipHolidays    bool       `json:"skip_holidays"`
}

// UpdateClientRequest uses pointers so absent fields are left alone.
type UpdateClientRequest struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	Suburb   *string `json:"suburb"`
	State    *string `json:"state"`
	Postcode *string `json:"postcode"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	TimeZone  *string  `json:"timezone"`

	CollectionDay *string `json:"collection_day"`
	PutBinsOutDay *string `json:"put_bins_out_day"`

	RedBin    *BinConfigDTO `json:"red_bin"`
	YellowBin *BinConfigDTO `json:"yellow_bin"`
	GreenBin  *BinConfigDTO `json:"green_bin"`

	AssignedStaffID *uuid.UUID `json:"assigned_staff_id"`
	SkipHolidays    *bool      `json:"skip_holidays"`
	Active          *bool      `json:"active"`
}

type ClientListResponse struct {
	Results []*models.Client `json:"results"`
	Total   int              `json:"total"`
}

func (d BinConfigDTO) Model() models.BinConfig {
	return models.BinConfig{
		Frequency: models.BinFrequency(d.Frequency),
		Flip:      d.Flip,
	}
}
