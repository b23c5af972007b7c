package services

import (
	"context"
	"fmt"

	"github.com/bradfitz/latlong"
	"googlemaps.github.io/maps"

	"github.com/binbird1-hash/binbird-backend/internal/utils"
)

// DefaultTimeZone covers properties whose coordinates cannot be mapped
// to an IANA zone. Almost the entire client base is NSW/VIC.
const DefaultTimeZone = "Australia/Sydney"

// GeocodeService resolves street addresses to coordinates and derives
// the property timezone. With no API key it degrades to manual entry:
// Geocode errors and TimeZoneFor still works from coordinates.
type GeocodeService struct {
	client *maps.Client
}

func NewGeocodeService(apiKey string) (*GeocodeService, error) {
	if apiKey == "" {
		return &GeocodeService{}, nil
	}
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gmaps client: %w", err)
	}
	return &GeocodeService{client: c}, nil
}

func (s *GeocodeService) Enabled() bool {
	return s.client != nil
}

func (s *GeocodeService) Geocode(ctx context.Context, address string) (float64, float64, error) {
	if s.client == nil {
		return 0, 0, fmt.Errorf("geocoding disabled")
	}

	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return 0, 0, fmt.Errorf("geocode %q: %w", address, err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("geocode %q: no results", address)
	}

	loc := results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}

// TimeZoneFor maps coordinates to an IANA zone name.
func (s *GeocodeService) TimeZoneFor(lat, lng float64) string {
	if zone := latlong.LookupZoneName(lat, lng); zone != "" {
		return zone
	}
	utils.Logger.Warnf("No timezone found for (%.4f, %.4f), using %s", lat, lng, DefaultTimeZone)
	return DefaultTimeZone
}
