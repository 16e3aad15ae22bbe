package timefmt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Zone is a resolved timezone with the IANA name shown to the user.
type Zone struct {
	Name     string
	Location *time.Location
}

// localtimePath is swapped in tests.
var localtimePath = "/etc/localtime"

// ResolveZone returns the configured zone when set, otherwise the host zone.
// time.Local reports "Local", so the host name is recovered from $TZ or the
// /etc/localtime symlink.
func ResolveZone(configured string) (Zone, error) {
	if name := strings.TrimSpace(configured); name != "" {
		loc, err := time.LoadLocation(name)
		if err != nil {
			return Zone{}, fmt.Errorf("load timezone %q: %w", name, err)
		}
		return Zone{Name: loc.String(), Location: loc}, nil
	}
	return Zone{Name: hostZoneName(), Location: time.Local}, nil
}

func hostZoneName() string {
	if tz := strings.TrimPrefix(os.Getenv("TZ"), ":"); tz != "" {
		return tz
	}
	if target, err := filepath.EvalSymlinks(localtimePath); err == nil {
		if _, name, ok := strings.Cut(target, "zoneinfo/"); ok && name != "" {
			return name
		}
	}
	if name := time.Local.String(); name != "" && name != "Local" {
		return name
	}
	abbr, _ := time.Now().Zone()
	return abbr
}
