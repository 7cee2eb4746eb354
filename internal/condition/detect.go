package condition

import (
	"strings"
	"time"
)

// Detector provides runtime environment detection.
type Detector interface {
	Detect() Context
}

// ClockDetector derives the context from the wall clock.
type ClockDetector struct {
	// Now returns the current time. If nil, uses time.Now.
	Now func() time.Time
}

// Detect returns the current context. Profile is left for the caller.
func (d *ClockDetector) Detect() Context {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return Context{
		Weekday: WeekdayName(now().Weekday()),
	}
}

// WeekdayName returns the three-letter lowercase name used in configs.
func WeekdayName(d time.Weekday) string {
	return strings.ToLower(d.String()[:3])
}

// NormalizeWeekday accepts "Monday", "mon", "MON" and returns "mon".
func NormalizeWeekday(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) > 3 {
		s = s[:3]
	}
	return s
}
