package models

import (
	"time"

	"github.com/google/uuid"
)

// BinColor identifies a kerbside bin by lid colour.
type BinColor string

const (
	BinRed    BinColor = "Red"    // general waste
	BinYellow BinColor = "Yellow" // recycling
	BinGreen  BinColor = "Green"  // garden organics
)

// AllBinColors is the fixed presentation order for summaries.
var AllBinColors = []BinColor{BinRed, BinYellow, BinGreen}

// BinFrequency is how often a bin goes out.
type BinFrequency string

const (
	FreqWeekly      BinFrequency = "Weekly"
	FreqFortnightly BinFrequency = "Fortnightly"
	FreqNever       BinFrequency = "Never"
)

// BinConfig holds one bin's schedule. Flip shifts a fortnightly bin to
// the opposite week parity.
type BinConfig struct {
	Frequency BinFrequency `json:"frequency"`
	Flip      bool         `json:"flip"`
}

// Client is a serviced property. CollectionDay and PutBinsOutDay are
// free-text weekday fields as entered by office staff ("Mon", "monday",
// "Tue, Fri") and are interpreted by the schedule package.
type Client struct {
	Versioned

	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"` // owning user profile

	Name     string `json:"name"`
	Address  string `json:"address"`
	Suburb   string `json:"suburb"`
	State    string `json:"state"`
	Postcode string `json:"postcode"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	TimeZone  string  `json:"timezone"`

	CollectionDay string `json:"collection_day"`
	PutBinsOutDay string `json:"put_bins_out_day"`

	RedBin    BinConfig `json:"red_bin"`
	YellowBin BinConfig `json:"yellow_bin"`
	GreenBin  BinConfig `json:"green_bin"`

	AssignedStaffID *uuid.UUID `json:"assigned_staff_id,omitempty"`
	SkipHolidays    bool       `json:"skip_holidays"`
	Active          bool       `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) GetID() string {
	return c.ID.String()
}

// Bin returns the config for a colour.
func (c *Client) Bin(color BinColor) BinConfig {
	switch color {
	case BinRed:
		return c.RedBin
	case BinYellow:
		return c.YellowBin
	case BinGreen:
		return c.GreenBin
	}
	return BinConfig{Frequency: FreqNever}
}
