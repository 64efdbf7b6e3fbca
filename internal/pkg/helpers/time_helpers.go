package helpers

import (
	"fmt"
	"math"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseDate parses a YYYY-MM-DD date
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// ParseClock parses an HH:MM time of day
func ParseClock(value string) (time.Time, error) {
	t, err := time.Parse(ClockLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM", value)
	}
	return t, nil
}

// HoursBetween returns the hours from checkIn to checkOut rounded to two
// decimals. A check-out before check-in is an error.
func HoursBetween(checkIn, checkOut string) (float64, error) {
	in, err := ParseClock(checkIn)
	if err != nil {
		return 0, err
	}
	out, err := ParseClock(checkOut)
	if err != nil {
		return 0, err
	}
	if out.Before(in) {
		return 0, fmt.Errorf("check-out %s is before check-in %s", checkOut, checkIn)
	}
	hours := out.Sub(in).Hours()
	return math.Round(hours*100) / 100, nil
}

// DaysAgo formats the date n days before now
func DaysAgo(now time.Time, n int) string {
	return now.AddDate(0, 0, -n).Format(DateLayout)
}
