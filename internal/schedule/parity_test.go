package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/binbird1-hash/binbird-backend/internal/models"
)

// Week 0 starts at the reference Monday (2024-01-01); week 1 on Jan 8.
var (
	weekEven = time.Date(2024, time.January, 3, 12, 0, 0, 0, time.UTC)  // weeks=0
	weekOdd  = time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC) // weeks=1
)

func TestWeeksSinceReference(t *testing.T) {
	require.Equal(t, 0, WeeksSinceReference(ReferenceMonday))
	require.Equal(t, 0, WeeksSinceReference(weekEven))
	require.Equal(t, 1, WeeksSinceReference(weekOdd))
	require.Equal(t, 0, WeeksSinceReference(ReferenceMonday.AddDate(0, 0, -3)))
	require.Equal(t, 52, WeeksSinceReference(ReferenceMonday.AddDate(0, 0, 365)))
}

func TestWeeklyAlwaysDue(t *testing.T) {
	cfg := models.BinConfig{Frequency: models.FreqWeekly}
	require.True(t, BinDue(cfg, weekEven))
	require.True(t, BinDue(cfg, weekOdd))
}

func TestFortnightlyParity(t *testing.T) {
	plain := models.BinConfig{Frequency: models.FreqFortnightly}
	flipped := models.BinConfig{Frequency: models.FreqFortnightly, Flip: true}

	// Non-flipped fortnightly bins go out on odd weeks.
	require.False(t, BinDue(plain, weekEven))
	require.True(t, BinDue(plain, weekOdd))

	// Flip selects the opposite fortnight.
	require.True(t, BinDue(flipped, weekEven))
	require.False(t, BinDue(flipped, weekOdd))
}

func TestFortnightlyAlternatesWeekToWeek(t *testing.T) {
	cfg := models.BinConfig{Frequency: models.FreqFortnightly}
	prev := BinDue(cfg, weekEven)
	for i := 1; i <= 8; i++ {
		cur := BinDue(cfg, weekEven.AddDate(0, 0, 7*i))
		require.NotEqual(t, prev, cur, "week %d should alternate", i)
		prev = cur
	}
}

func TestFrequencyCaseInsensitive(t *testing.T) {
	require.True(t, BinDue(models.BinConfig{Frequency: "weekly"}, weekEven))
	require.True(t, BinDue(models.BinConfig{Frequency: " Fortnightly "}, weekOdd))
	require.False(t, BinDue(models.BinConfig{Frequency: ""}, weekOdd))
	require.False(t, BinDue(models.BinConfig{Frequency: "unknown"}, weekOdd))
}

func TestBinsSummary(t *testing.T) {
	c := &models.Client{
		RedBin:    models.BinConfig{Frequency: models.FreqWeekly},
		YellowBin: models.BinConfig{Frequency: models.FreqFortnightly},
		GreenBin:  models.BinConfig{Frequency: models.FreqFortnightly, Flip: true},
	}

	require.Equal(t, "Red, Green", BinsSummary(c, weekEven))
	require.Equal(t, "Red, Yellow", BinsSummary(c, weekOdd))

	none := &models.Client{
		RedBin:    models.BinConfig{Frequency: models.FreqNever},
		YellowBin: models.BinConfig{Frequency: models.FreqFortnightly},
	}
	require.Equal(t, "", BinsSummary(none, weekEven))
}
