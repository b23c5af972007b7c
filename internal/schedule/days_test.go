package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMatchesDayAliases(t *testing.T) {
	for _, field := range []string{"tue", "Tues", "TUESDAY", "tuesday"} {
		require.True(t, MatchesDay(field, time.Tuesday), "field %q should match Tuesday", field)
	}
	require.False(t, MatchesDay("tuesday", time.Wednesday))
}

func TestMatchesDayCommaSeparated(t *testing.T) {
	field := "Mon, Thurs"
	require.True(t, MatchesDay(field, time.Monday))
	require.True(t, MatchesDay(field, time.Thursday))
	require.False(t, MatchesDay(field, time.Friday))
}

func TestMatchesDayIgnoresJunkTokens(t *testing.T) {
	require.True(t, MatchesDay("bins out wed (every week)", time.Wednesday))
	require.False(t, MatchesDay("", time.Monday))
	require.False(t, MatchesDay("???", time.Monday))
	require.False(t, MatchesDay("someday", time.Sunday))
}

func TestParseDaysOrderAndDedup(t *testing.T) {
	days := ParseDays("Fri/Mon/fri")
	require.Equal(t, []time.Weekday{time.Friday, time.Monday}, days)
}

func TestFirstDay(t *testing.T) {
	wd, ok := FirstDay("Weds + Sat")
	require.True(t, ok)
	require.Equal(t, time.Wednesday, wd)

	_, ok = FirstDay("n/a")
	require.False(t, ok)
}

func TestNextOccurrence(t *testing.T) {
	sunday := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	next, ok := NextOccurrence("Monday", sunday)
	require.True(t, ok)
	require.Equal(t, time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC), next)

	// A matching weekday counts from the start date itself.
	same, ok := NextOccurrence("sun", sunday)
	require.True(t, ok)
	require.Equal(t, sunday, same)

	// Multi-day fields resolve to the soonest listed day.
	next, ok = NextOccurrence("Tue, Fri", sunday)
	require.True(t, ok)
	require.Equal(t, time.Tuesday, next.Weekday())

	_, ok = NextOccurrence("???", sunday)
	require.False(t, ok)
}

func TestDayBefore(t *testing.T) {
	require.Equal(t, time.Sunday, DayBefore(time.Monday))
	require.Equal(t, time.Saturday, DayBefore(time.Sunday))
	require.Equal(t, time.Thursday, DayBefore(time.Friday))
}
