package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/tasktimer/internal/timefmt"
)

func TestReadFormatsInZone(t *testing.T) {
	t.Parallel()

	zone, err := timefmt.ResolveZone("America/New_York")
	require.NoError(t, err)
	fixed := time.Date(2026, 10, 19, 23, 4, 5, 0, time.UTC)
	c := New(zone, timefmt.DefaultLocale, func() time.Time { return fixed })

	r := c.Sample()
	require.Equal(t, "19:04:05", r.Time)
	require.Equal(t, "Monday, October 19, 2026", r.Date)
	require.Equal(t, "America/New_York", r.Zone)
	require.Equal(t, zone.Location, r.At.Location())
	require.Equal(t, zone.Location, c.Now().Location())
}

func TestDateFollowsZoneAcrossMidnight(t *testing.T) {
	t.Parallel()

	zone, err := timefmt.ResolveZone("Australia/Melbourne")
	require.NoError(t, err)
	c := New(zone, timefmt.DefaultLocale, nil)

	r := c.Read(time.Date(2026, 10, 19, 14, 0, 0, 0, time.UTC))
	require.Equal(t, "01:00:00", r.Time)
	require.Equal(t, "Tuesday, October 20, 2026", r.Date)
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	c := New(timefmt.Zone{Name: "Local"}, timefmt.DefaultLocale, nil)
	require.Equal(t, time.Local, c.Location())
	require.Equal(t, "en-US", c.Locale().Tag)
	require.WithinDuration(t, time.Now(), c.Now(), time.Minute)
}
