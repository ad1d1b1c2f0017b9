package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("Not/AZone").String())
	assert.Equal(t, "UTC", Location("UTC").String())
	assert.False(t, IsValid(""))
}

func TestStartOfDayUsesClinicZone(t *testing.T) {
	SetClinic("Europe/London")
	defer SetClinic(DefaultTimezone)

	// 23:30 UTC on 30 June is already 1 July in London (BST).
	utc := time.Date(2030, time.June, 30, 23, 30, 0, 0, time.UTC)
	start := StartOfDay(utc)

	assert.Equal(t, 1, start.Day())
	assert.Equal(t, time.July, start.Month())
	assert.Equal(t, 0, start.Hour())
}

func TestAddDaysAcrossDST(t *testing.T) {
	SetClinic("Europe/London")
	defer SetClinic(DefaultTimezone)

	day := StartOfDay(time.Date(2030, time.March, 31, 12, 0, 0, 0, time.UTC))
	next := AddDays(day, 1)

	assert.Equal(t, 0, next.Hour())
	assert.Equal(t, 23*time.Hour, next.Sub(day))
}

func TestParseLocal(t *testing.T) {
	SetClinic("Europe/London")
	defer SetClinic(DefaultTimezone)

	got, err := ParseLocal("2006-01-02T15:04", "2030-01-01T09:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, time.January, 1, 9, 30, 0, 0, time.UTC), got.UTC())
}
