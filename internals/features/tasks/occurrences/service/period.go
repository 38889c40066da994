// file: internals/features/tasks/occurrences/service/period.go
package service

import (
	"time"

	"storeops_backend/internals/helpers/dbtime"
)

/* =========================
   Period math (store timezone)
========================= */

func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func startOfDayInLoc(t time.Time, loc *time.Location) time.Time {
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}

// WeekStartIn returns the Monday 00:00 of the week containing t,
// resolved in loc.
func WeekStartIn(t time.Time, loc *time.Location) time.Time {
	d := startOfDayInLoc(t, loc)
	return d.AddDate(0, 0, -(isoWeekday(d) - 1))
}

// MonthStartIn returns the first day 00:00 of the month containing t,
// resolved in loc.
func MonthStartIn(t time.Time, loc *time.Location) time.Time {
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), 1, 0, 0, 0, 0, loc)
}

// dateUTC normalizes a local calendar day to the UTC-midnight DATE value
// stored on occurrence and score rows. Comparing dates this way keeps
// range queries zone-independent.
func dateUTC(local time.Time) time.Time {
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// combineLocalDateAndTOD glues an occurrence's period date and a
// template's due time-of-day into an absolute instant in loc.
func combineLocalDateAndTOD(dLocal time.Time, tod dbtime.Tod, loc *time.Location) time.Time {
	return time.Date(dLocal.Year(), dLocal.Month(), dLocal.Day(), tod.Hour(), tod.Minute(), tod.Second(), 0, loc)
}
