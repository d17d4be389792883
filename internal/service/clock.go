package service

import "time"

// Clock supplies "today" to the classification and reporting paths so that
// date logic stays deterministic under test. Core functions never read the
// wall clock themselves; they take the caller's date as a parameter.
type Clock interface {
	Today() time.Time
}

type systemClock struct{}

func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Today() time.Time {
	return DateOnly(time.Now())
}

// DateOnly truncates t to midnight UTC. All assessment date comparisons are
// calendar-date comparisons; no time-of-day granularity.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
