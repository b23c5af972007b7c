// Package schedule holds the pure calendar logic behind job generation
// and the client portal's "this week's bins" view.
package schedule

import (
	"strings"
	"time"
	"unicode"
)

// dayAliases maps every accepted spelling to a weekday. The collection
// day fields are free text entered by office staff, so abbreviations
// and mixed case are the norm.
var dayAliases = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tues": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "weds": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// tokenizeDays splits a free-text day field on every non-letter rune.
func tokenizeDays(field string) []string {
	return strings.FieldsFunc(field, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

// ParseDays returns every weekday mentioned in the field, in first-seen
// order. Unrecognized tokens are ignored.
func ParseDays(field string) []time.Weekday {
	var out []time.Weekday
	seen := make(map[time.Weekday]bool)
	for _, tok := range tokenizeDays(field) {
		if wd, ok := dayAliases[strings.ToLower(tok)]; ok && !seen[wd] {
			seen[wd] = true
			out = append(out, wd)
		}
	}
	return out
}

// MatchesDay reports whether the free-text day field names the target
// weekday. "Tue, Fri" matches both Tuesday and Friday.
func MatchesDay(field string, target time.Weekday) bool {
	for _, tok := range tokenizeDays(field) {
		if wd, ok := dayAliases[strings.ToLower(tok)]; ok && wd == target {
			return true
		}
	}
	return false
}

// FirstDay returns the first weekday named in the field, or ok=false if
// the field names none.
func FirstDay(field string) (time.Weekday, bool) {
	days := ParseDays(field)
	if len(days) == 0 {
		return time.Sunday, false
	}
	return days[0], true
}

// DayBefore returns the weekday immediately preceding d. Used to derive
// a put-out day when a client only has a collection day on file.
func DayBefore(d time.Weekday) time.Weekday {
	return (d + 6) % 7
}

// NextOccurrence returns the first date on or after from whose weekday
// is named in the free-text field. ok is false when the field names no
// weekday at all.
func NextOccurrence(field string, from time.Time) (time.Time, bool) {
	days := ParseDays(field)
	if len(days) == 0 {
		return from, false
	}
	for i := 0; i < 7; i++ {
		d := from.AddDate(0, 0, i)
		for _, wd := range days {
			if d.Weekday() == wd {
				return d, true
			}
		}
	}
	return from, false
}
