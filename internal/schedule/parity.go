package schedule

import (
	"strings"
	"time"

	"github.com/binbird1-hash/binbird-backend/internal/models"
)

// ReferenceMonday anchors the fortnightly cycle. Every parity
// calculation counts whole weeks elapsed since this instant, so the
// value must never change once clients have flip flags set against it.
var ReferenceMonday = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// WeeksSinceReference returns the number of whole weeks between the
// reference Monday and t. Dates before the reference count as week 0.
func WeeksSinceReference(t time.Time) int {
	d := t.Sub(ReferenceMonday)
	if d < 0 {
		return 0
	}
	return int(d.Hours() / (24 * 7))
}

// BinDue reports whether a bin with the given config goes out in the
// week containing t. Weekly bins always go out; fortnightly bins follow
// week parity, with Flip selecting the opposite fortnight.
func BinDue(cfg models.BinConfig, t time.Time) bool {
	switch normalizeFrequency(cfg.Frequency) {
	case models.FreqWeekly:
		return true
	case models.FreqFortnightly:
		odd := WeeksSinceReference(t)%2 == 1
		if cfg.Flip {
			return !odd
		}
		return odd
	default:
		return false
	}
}

// BinsSummary renders the bins due in the week of t as a display
// string, e.g. "Red, Yellow". Empty when nothing goes out.
func BinsSummary(c *models.Client, t time.Time) string {
	var due []string
	for _, color := range models.AllBinColors {
		if BinDue(c.Bin(color), t) {
			due = append(due, string(color))
		}
	}
	return strings.Join(due, ", ")
}

// normalizeFrequency tolerates the casing found in imported data.
func normalizeFrequency(f models.BinFrequency) models.BinFrequency {
	switch strings.ToLower(strings.TrimSpace(string(f))) {
	case "weekly":
		return models.FreqWeekly
	case "fortnightly":
		return models.FreqFortnightly
	default:
		return models.FreqNever
	}
}
