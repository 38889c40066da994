// file: internals/features/tasks/occurrences/service/period_test.go
package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeops_backend/internals/helpers/dbtime"
)

func TestWeekStartIn_MidWeek(t *testing.T) {
	// Wednesday 2026-08-26 → Monday 2026-08-24.
	now := time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC)
	got := WeekStartIn(now, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.Monday, got.Weekday())
}

func TestWeekStartIn_SundayBelongsToPrecedingMonday(t *testing.T) {
	// Sunday 2026-08-30 closes the week that started Monday 2026-08-24.
	sun := time.Date(2026, 8, 30, 23, 59, 59, 0, time.UTC)
	got := WeekStartIn(sun, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), got)
}

func TestWeekStartIn_MondayIsItsOwnStart(t *testing.T) {
	mon := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, mon, WeekStartIn(mon, time.UTC))
}

func TestWeekStartIn_ZoneDecidesTheWeek(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// 17:00 UTC on Sunday is already Monday 00:00 in UTC+7, so the same
	// instant lands in two different weeks depending on the store zone.
	instant := time.Date(2026, 8, 23, 17, 0, 0, 0, time.UTC)

	inJakarta := WeekStartIn(instant, jakarta)
	assert.Equal(t, 2026, inJakarta.Year())
	assert.Equal(t, time.August, inJakarta.Month())
	assert.Equal(t, 24, inJakarta.Day())

	inUTC := WeekStartIn(instant, time.UTC)
	assert.Equal(t, 17, inUTC.Day())
}

func TestMonthStartIn(t *testing.T) {
	now := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), MonthStartIn(now, time.UTC))

	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// 20:00 UTC on Aug 31 is already Sep 1 in UTC+7.
	edge := MonthStartIn(time.Date(2026, 8, 31, 20, 0, 0, 0, time.UTC), jakarta)
	assert.Equal(t, time.September, edge.Month())
	assert.Equal(t, 1, edge.Day())
}

func TestDateUTC_NormalizesAcrossZones(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	local := time.Date(2026, 8, 24, 9, 45, 0, 0, jakarta)
	got := dateUTC(local)

	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestCombineLocalDateAndTOD(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	tod, err := dbtime.Parse("17:00")
	require.NoError(t, err)

	day := time.Date(2026, 8, 24, 0, 0, 0, 0, jakarta)
	due := combineLocalDateAndTOD(day, tod, jakarta)

	assert.Equal(t, 17, due.Hour())
	assert.Equal(t, jakarta, due.Location())
	// 17:00 in UTC+7 is 10:00 UTC.
	assert.Equal(t, 10, due.UTC().Hour())
}

func TestIsoWeekday_SundayIsSeven(t *testing.T) {
	assert.Equal(t, 7, isoWeekday(time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, isoWeekday(time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 3, isoWeekday(time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)))
}
