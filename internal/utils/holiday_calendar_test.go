package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIsAUPublicHoliday(t *testing.T) {
	require.True(t, IsAUPublicHoliday(time.Date(2026, time.December, 25, 0, 0, 0, 0, time.UTC)))
	require.True(t, IsAUPublicHoliday(time.Date(2026, time.January, 26, 0, 0, 0, 0, time.UTC)))
	require.True(t, IsAUPublicHoliday(time.Date(2026, time.April, 25, 0, 0, 0, 0, time.UTC)))

	// An unremarkable Wednesday.
	require.False(t, IsAUPublicHoliday(time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC)))
}
