package utils

import (
	"fmt"
	"time"
)

// DayLayout is the calendar-day format used for every persisted date.
// It is fixed width and zero padded, so comparing two formatted days as
// strings orders them the same way as comparing the dates.
const DayLayout = "2006-01-02"

// FormatDay returns the calendar day of t in its own location.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDay parses a persisted date as a UTC calendar day.
func ParseDay(s string) (time.Time, error) {
	return ParseDayIn(s, time.UTC)
}

// ParseDayIn parses a persisted date and returns midnight of that calendar
// day in loc. Plain calendar days are expected, but full timestamps are
// accepted and truncated to the day they name.
func ParseDayIn(s string, loc *time.Location) (time.Time, error) {
	formats := []string{
		DayLayout,
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
		}
	}

	return time.Time{}, fmt.Errorf("failed to parse day %q with any supported format", s)
}

// DaysBefore returns the start of the day n days before today.
func DaysBefore(today time.Time, n int) time.Time {
	return StartOfDay(today).AddDate(0, 0, -n)
}
