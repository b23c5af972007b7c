package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func freshTimestamp() int64 {
	return time.Now().UnixMilli()
}

func TestValidateLocationDataAccepts(t *testing.T) {
	code, msg := ValidateLocationData(-33.8845, 151.2116, 10, freshTimestamp(), false)
	require.Empty(t, code)
	require.Empty(t, msg)
}

func TestValidateLocationDataRange(t *testing.T) {
	code, _ := ValidateLocationData(-91, 0, 5, freshTimestamp(), false)
	require.Equal(t, ErrCodeInvalidPayload, code)

	code, _ = ValidateLocationData(0, 181, 5, freshTimestamp(), false)
	require.Equal(t, ErrCodeInvalidPayload, code)
}

func TestValidateLocationDataAccuracy(t *testing.T) {
	code, _ := ValidateLocationData(-33.88, 151.21, MaxGPSAccuracyMeters+1, freshTimestamp(), false)
	require.Equal(t, ErrCodeLocationInaccurate, code)
}

func TestValidateLocationDataStaleTimestamp(t *testing.T) {
	stale := time.Now().Add(-2 * MaxTimestampSkew).UnixMilli()
	code, _ := ValidateLocationData(-33.88, 151.21, 5, stale, false)
	require.Equal(t, ErrCodeInvalidPayload, code)
}

func TestValidateLocationDataMock(t *testing.T) {
	code, _ := ValidateLocationData(-33.88, 151.21, 5, freshTimestamp(), true)
	require.Equal(t, ErrCodeInvalidPayload, code)
}

func TestWithinCompletionRadius(t *testing.T) {
	// Two points in Surry Hills roughly 120m apart.
	require.True(t, WithinCompletionRadius(-33.8845, 151.2116, -33.8856, 151.2117))

	// Surry Hills to Bondi is kilometres away.
	require.False(t, WithinCompletionRadius(-33.8845, 151.2116, -33.8908, 151.2743))
}

func TestDistanceMetersZero(t *testing.T) {
	require.InDelta(t, 0, DistanceMeters(-33.88, 151.21, -33.88, 151.21), 0.01)
}
