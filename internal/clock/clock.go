// Package clock provides the single source of local wall-clock time for the
// attendance core. Everything that fires on a time-of-day boundary or stamps
// a session goes through a Clock so tests can pin the moment.
package clock

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the calendar-day key used throughout the store.
	DateLayout = "2006-01-02"
	// TimeLayout is the second-precision time-of-day format for session rows.
	TimeLayout = "15:04:05"
)

// Clock yields the current moment in the deployment's local timezone.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock in a fixed location.
type SystemClock struct {
	loc *time.Location
}

// NewSystemClock resolves the given IANA timezone name.
func NewSystemClock(timezone string) (*SystemClock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}
	return &SystemClock{loc: loc}, nil
}

// Now returns the current time in the configured location.
func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Location exposes the clock's timezone for parsing helpers.
func (c *SystemClock) Location() *time.Location {
	return c.loc
}

// ParseLocal combines a "YYYY-MM-DD" date and "HH:MM:SS" time-of-day into a
// moment in loc. The zero location means time.Local.
func ParseLocal(date, timeOfDay string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+timeOfDay, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid local timestamp %s %s: %w", date, timeOfDay, err)
	}
	return t, nil
}

// DateString formats t as a calendar-day key.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// TimeString formats t as a second-precision time-of-day.
func TimeString(t time.Time) string {
	return t.Format(TimeLayout)
}
