// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// DateKey formats a time as its local YYYY-MM-DD calendar date. Job and
// period dates are handled exclusively through these keys so that the
// host timezone can never shift a date across midnight.
func DateKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// ParseDateKey parses a YYYY-MM-DD calendar date. The returned time
// carries only calendar components and is safe for weekday arithmetic.
func ParseDateKey(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

// ValidDateKey reports whether s is a well-formed YYYY-MM-DD date.
func ValidDateKey(s string) bool {
	_, err := ParseDateKey(s)
	return err == nil
}

// StartOfWeek returns the Monday of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	t = BeginningOfDay(t)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
