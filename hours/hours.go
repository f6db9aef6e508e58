package hours

import (
	"fmt"
	"time"
)

const (
	dateLayout      = "2006-01-02"
	localIsoLayout  = "2006-01-02T15:04:05"
	QuartersPerHour = 4
	// Next-day prices are published around this hour (UTC).
	PublishHourUTC = 12
)

func LoadLocation(timezone string) (*time.Location, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %s: %w", timezone, err)
	}
	return loc, nil
}

// SameDate reports whether a and b fall on the same calendar date in loc.
func SameDate(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

func DateString(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateLayout)
}

// PublishBoundary returns 12:00:00 UTC on the UTC date of t.
func PublishBoundary(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, PublishHourUTC, 0, 0, 0, time.UTC)
}

// PublishHour is the hour of today's publish boundary in loc,
// 13 in winter and 14 in summer for Europe/Vienna.
func PublishHour(now time.Time, loc *time.Location) int {
	return PublishBoundary(now).In(loc).Hour()
}

func Tomorrow(now time.Time, loc *time.Location) time.Time {
	return now.In(loc).AddDate(0, 0, 1)
}

// FromIso parses an ISO-8601 timestamp. Timestamps without an offset
// are interpreted in loc.
func FromIso(str string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, str); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(localIsoLayout, str, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", str, err)
	}
	return t, nil
}
