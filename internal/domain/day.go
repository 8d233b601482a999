package domain

import (
	"fmt"
	"time"
)

// dayFormat is the wire and cache-key date layout.
const dayFormat = "2006-01-02"

// epoch is the reference date for day indexes. The FatSecret bulk operations
// address days as integer offsets from it rather than as date strings.
var epoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// ParseDay parses a strict YYYY-MM-DD date in UTC.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dayFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDay renders a date as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.UTC().Format(dayFormat)
}

// DayIndex returns the exact number of calendar days between the epoch and t.
// Both ends are truncated to UTC midnight, so the result never drifts across
// timezones or DST boundaries.
func DayIndex(t time.Time) int {
	u := t.UTC()
	midnight := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return int(midnight.Sub(epoch) / (24 * time.Hour))
}

// DayFromIndex is the inverse of DayIndex.
func DayFromIndex(idx int) time.Time {
	return epoch.AddDate(0, 0, idx)
}
