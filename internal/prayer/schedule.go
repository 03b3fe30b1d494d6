package prayer

import (
	"fmt"
	"strings"
	"time"

	"github.com/dastanaron/tilawah/internal/models"
)

// Entry is one named prayer time of the day
type Entry struct {
	Name  string
	Clock string // "HH:MM" as returned by the provider
}

// Entries lists the timings in the order of the day
func Entries(t models.PrayerTimes) []Entry {
	return []Entry{
		{"Fajr", t.Fajr},
		{"Sunrise", t.Sunrise},
		{"Dhuhr", t.Dhuhr},
		{"Asr", t.Asr},
		{"Maghrib", t.Maghrib},
		{"Isha", t.Isha},
	}
}

// At resolves clock on the day of now, in now's location.
// The provider may append a zone suffix such as "05:12 (BST)"; it is ignored.
func At(clock string, now time.Time) (time.Time, error) {
	clock = strings.TrimSpace(clock)
	if i := strings.IndexByte(clock, ' '); i >= 0 {
		clock = clock[:i]
	}
	var hour, minute int
	if _, err := fmt.Sscanf(clock, "%d:%d", &hour, &minute); err != nil {
		return time.Time{}, fmt.Errorf("invalid prayer time %q: %w", clock, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid prayer time %q", clock)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location()), nil
}

// IsPast reports whether clock has already passed today
func IsPast(clock string, now time.Time) bool {
	at, err := At(clock, now)
	if err != nil {
		return false
	}
	return now.After(at)
}

// Next returns the first prayer after now. When every prayer has passed it
// returns tomorrow's Fajr, approximated by today's time plus one day.
func Next(t models.PrayerTimes, now time.Time) (Entry, time.Time, error) {
	entries := Entries(t)
	for _, e := range entries {
		if e.Name == "Sunrise" {
			continue
		}
		at, err := At(e.Clock, now)
		if err != nil {
			return Entry{}, time.Time{}, err
		}
		if at.After(now) {
			return e, at, nil
		}
	}
	fajr, err := At(t.Fajr, now)
	if err != nil {
		return Entry{}, time.Time{}, err
	}
	return entries[0], fajr.AddDate(0, 0, 1), nil
}
