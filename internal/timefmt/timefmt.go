// Package timefmt holds the display helpers shared by the clock and task panes.
package timefmt

import (
	"fmt"
	"time"
)

// ClockLayout is the 24-hour wall-clock layout.
const ClockLayout = "15:04:05"

// DateLayout is the calendar-date layout used for due dates.
const DateLayout = "2006-01-02"

// Elapsed renders d as MM:SS.CC. Each field is truncated, not rounded, and
// minutes grow past two digits instead of wrapping.
func Elapsed(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	centis := (ms % 1000) / 10
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, centis)
}

// Clock renders t as HH:MM:SS in 24-hour time.
func Clock(t time.Time) string {
	return t.Format(ClockLayout)
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDate parses a YYYY-MM-DD calendar date at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}
