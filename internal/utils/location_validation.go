package utils

import (
	"math"
	"time"

	"github.com/umahmood/haversine"
)

const (
	// MaxGPSAccuracyMeters rejects fixes worse than this.
	MaxGPSAccuracyMeters = 30.0
	// MaxTimestampSkew bounds how stale a reported fix may be.
	MaxTimestampSkew = 30 * time.Second
	// CompletionRadiusMeters is how close a staff member must be to the
	// property to complete a job there.
	CompletionRadiusMeters = 200.0
)

// ValidateLocationData checks lat/lng range, accuracy, timestamp
// proximity, and is_mock=false. Returns empty strings if valid,
// otherwise an error code and message for RespondErrorWithCode.
func ValidateLocationData(lat, lng, accuracy float64, timestamp int64, isMock bool) (string, string) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ErrCodeInvalidPayload, "lat/lng out of range"
	}
	if accuracy > MaxGPSAccuracyMeters {
		return ErrCodeLocationInaccurate, "GPS accuracy is too low. Please move to an area with a clearer view of the sky."
	}
	nowMS := time.Now().UnixMilli()
	if math.Abs(float64(nowMS-timestamp)) > float64(MaxTimestampSkew.Milliseconds()) {
		return ErrCodeInvalidPayload, "location timestamp not within ±30s of server time"
	}
	if isMock {
		return ErrCodeInvalidPayload, "is_mock must be false"
	}
	return "", ""
}

// DistanceMeters returns the great-circle distance between two points.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: lat1, Lon: lng1},
		haversine.Coord{Lat: lat2, Lon: lng2},
	)
	return km * 1000
}

// WithinCompletionRadius reports whether the staff fix is close enough
// to the property to count as on-site.
func WithinCompletionRadius(staffLat, staffLng, propLat, propLng float64) bool {
	return DistanceMeters(staffLat, staffLng, propLat, propLng) <= CompletionRadiusMeters
}
