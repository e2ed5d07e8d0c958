package utils

import "time"

// StartOfDay returns midnight at the beginning of t's day, in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of t's day, in t's location.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Nanosecond)
}

// DaysSince returns the number of whole days between then and now.
func DaysSince(then, now time.Time) int {
	return int(now.Sub(then).Hours() / 24)
}

// DaysUntil returns the number of days from now until then, rounded up.
func DaysUntil(then, now time.Time) int {
	return int(then.Sub(now).Hours()/24 + 0.9999)
}
