package timezone

import (
	"sync/atomic"
	"time"

	// Embedded zone database so containers without tzdata resolve Europe/London.
	_ "time/tzdata"
)

const DefaultTimezone = "Europe/London"

var clinic atomic.Pointer[time.Location]

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

// SetClinic sets the zone used for calendar days and form date-times.
// Invalid names fall back to DefaultTimezone.
func SetClinic(tz string) {
	clinic.Store(Location(tz))
}

func Clinic() *time.Location {
	if loc := clinic.Load(); loc != nil {
		return loc
	}
	return Location(DefaultTimezone)
}

func Now() time.Time {
	return time.Now().In(Clinic())
}

// StartOfDay returns midnight of t's calendar day in the clinic zone.
func StartOfDay(t time.Time) time.Time {
	t = t.In(Clinic())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Clinic())
}

// AddDays moves a day boundary by n calendar days, staying on midnight across DST changes.
func AddDays(day time.Time, n int) time.Time {
	return day.AddDate(0, 0, n)
}

func ParseLocal(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, Clinic())
}
