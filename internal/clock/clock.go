// Package clock samples wall-clock time for display.
package clock

import (
	"time"

	"github.com/jask/tasktimer/internal/timefmt"
)

// Interval is how often the displayed clock is resampled.
const Interval = time.Second

// Reading is the display form of one sample.
type Reading struct {
	At   time.Time
	Time string
	Date string
	Zone string
}

// Clock converts samples into readings for a zone and locale.
type Clock struct {
	zone   timefmt.Zone
	locale timefmt.Locale
	now    func() time.Time
}

// New builds a Clock. A nil now defaults to time.Now.
func New(zone timefmt.Zone, locale timefmt.Locale, now func() time.Time) *Clock {
	if zone.Location == nil {
		zone.Location = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Clock{zone: zone, locale: locale, now: now}
}

// Now returns the current instant in the clock's zone.
func (c *Clock) Now() time.Time {
	return c.now().In(c.zone.Location)
}

// Sample reads the clock now.
func (c *Clock) Sample() Reading {
	return c.Read(c.now())
}

// Read converts t into a Reading.
func (c *Clock) Read(t time.Time) Reading {
	t = t.In(c.zone.Location)
	return Reading{
		At:   t,
		Time: timefmt.Clock(t),
		Date: c.locale.LongDate(t),
		Zone: c.zone.Name,
	}
}

// Location is the zone used for display and calendar-day arithmetic.
func (c *Clock) Location() *time.Location { return c.zone.Location }

// Locale is the locale used for dates.
func (c *Clock) Locale() timefmt.Locale { return c.locale }
