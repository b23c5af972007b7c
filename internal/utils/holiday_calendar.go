package utils

import (
	"time"

	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/au"
)

// Councils pause kerbside collection on national public holidays, so
// generation can skip those dates for opted-in clients.
var auNational = cal.NewBusinessCalendar()

func init() {
	auNational.AddHoliday(
		au.NewYear,
		au.AustraliaDay,
		au.GoodFriday,
		au.EasterMonday,
		au.AnzacDay,
		au.ChristmasDay,
		au.BoxingDay,
	)
}

// IsAUPublicHoliday reports whether t falls on a nationally observed
// Australian public holiday.
func IsAUPublicHoliday(t time.Time) bool {
	ok, _, _ := auNational.IsHoliday(t)
	return ok
}
