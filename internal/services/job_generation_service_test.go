package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/binbird1-hash/binbird-backend/internal/models"
)

func weeklyRedClient() *models.Client {
	return &models.Client{
		CollectionDay: "Tuesday",
		RedBin:        models.BinConfig{Frequency: models.FreqWeekly},
		YellowBin:     models.BinConfig{Frequency: models.FreqNever},
		GreenBin:      models.BinConfig{Frequency: models.FreqNever},
		Active:        true,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestJobsDueOnPutOutFallsBackToDayBeforeCollection(t *testing.T) {
	c := weeklyRedClient() // no put-bins-out day recorded

	// Monday before a Tuesday collection.
	due := JobsDueOn(c, date(2026, time.March, 9))
	require.Equal(t, []models.JobType{models.JobPutOut}, due)
}

func TestJobsDueOnBringInOnCollectionDay(t *testing.T) {
	c := weeklyRedClient()

	due := JobsDueOn(c, date(2026, time.March, 10)) // Tuesday
	require.Equal(t, []models.JobType{models.JobBringIn}, due)
}

func TestJobsDueOnExplicitPutOutDay(t *testing.T) {
	c := weeklyRedClient()
	c.PutBinsOutDay = "Sun"

	due := JobsDueOn(c, date(2026, time.March, 8)) // Sunday
	require.Equal(t, []models.JobType{models.JobPutOut}, due)

	// The fallback day no longer applies once an explicit day is set.
	due = JobsDueOn(c, date(2026, time.March, 9)) // Monday
	require.Empty(t, due)
}

func TestJobsDueOnSameDayPutOutAndBringIn(t *testing.T) {
	c := weeklyRedClient()
	c.PutBinsOutDay = "Tuesday"

	due := JobsDueOn(c, date(2026, time.March, 10))
	require.Equal(t, []models.JobType{models.JobPutOut, models.JobBringIn}, due)
}

func TestJobsDueOnNothingWhenNoBinsDue(t *testing.T) {
	c := weeklyRedClient()
	c.RedBin = models.BinConfig{Frequency: models.FreqNever}

	require.Empty(t, JobsDueOn(c, date(2026, time.March, 10)))
}

func TestJobsDueOnFortnightlyParity(t *testing.T) {
	c := weeklyRedClient()
	c.RedBin = models.BinConfig{Frequency: models.FreqNever}
	c.YellowBin = models.BinConfig{Frequency: models.FreqFortnightly}

	// An off week for the non-flipped fortnight: nothing goes out at all.
	require.Empty(t, JobsDueOn(c, date(2026, time.March, 10)))

	// The following Tuesday is an on week.
	require.Equal(t, []models.JobType{models.JobBringIn}, JobsDueOn(c, date(2026, time.March, 17)))

	// A flipped bin runs on the opposite fortnight.
	c.YellowBin.Flip = true
	require.Equal(t, []models.JobType{models.JobBringIn}, JobsDueOn(c, date(2026, time.March, 10)))
	require.Empty(t, JobsDueOn(c, date(2026, time.March, 17)))
}

func TestJobsDueOnPutOutParityAcrossWeekBoundary(t *testing.T) {
	// Monday collection: the fallback put-out day is Sunday, which sits
	// in the previous parity week. Due-ness must follow the Monday.
	c := weeklyRedClient()
	c.CollectionDay = "Monday"
	c.RedBin = models.BinConfig{Frequency: models.FreqNever}
	c.YellowBin = models.BinConfig{Frequency: models.FreqFortnightly}

	// 2026-03-16 is an on-week Monday for the non-flipped fortnight.
	require.Equal(t, []models.JobType{models.JobPutOut}, JobsDueOn(c, date(2026, time.March, 15)))
	require.Equal(t, []models.JobType{models.JobBringIn}, JobsDueOn(c, date(2026, time.March, 16)))

	// The Sunday ahead of an off-week Monday emits nothing, even though
	// that Sunday itself falls in an on week.
	require.Empty(t, JobsDueOn(c, date(2026, time.March, 22)))
	require.Empty(t, JobsDueOn(c, date(2026, time.March, 23)))
}

func TestJobsDueOnSkipsPublicHolidays(t *testing.T) {
	c := weeklyRedClient()
	c.CollectionDay = "Friday"
	c.SkipHolidays = true

	christmas := date(2026, time.December, 25) // a Friday
	require.Empty(t, JobsDueOn(c, christmas))

	c.SkipHolidays = false
	require.Equal(t, []models.JobType{models.JobBringIn}, JobsDueOn(c, christmas))
}

func TestJobsDueOnJunkCollectionDay(t *testing.T) {
	c := weeklyRedClient()
	c.CollectionDay = "ask the neighbour"

	require.Empty(t, JobsDueOn(c, date(2026, time.March, 10)))
}
