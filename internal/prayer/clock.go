package prayer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DateFormat is the day key used by completion records (YYYY-MM-DD).
	DateFormat = "2006-01-02"
	// TimeFormat is the scheduled time of a slot (HH:MM).
	TimeFormat = "15:04"
)

// ParseTime parses "HH:MM" (one or two hour digits, two minute digits) and
// returns the hour and minute.
func ParseTime(s string) (hour, minute int, err error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(h) < 1 || len(h) > 2 || len(m) != 2 {
		return 0, 0, fmt.Errorf("invalid time format: %q", s)
	}
	hour, err = strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}

// ValidTime reports whether s is a usable scheduled time.
func ValidTime(s string) bool {
	_, _, err := ParseTime(s)
	return err == nil
}

// Occurrence returns the instant scheduledTime falls on for the calendar day
// of day, in day's location, with seconds zeroed.
func Occurrence(scheduledTime string, day time.Time) (time.Time, error) {
	h, m, err := ParseTime(scheduledTime)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location()), nil
}

// Today returns the day key for t.
func Today(t time.Time) string {
	return t.Format(DateFormat)
}

// MinuteOfDay returns the minutes since midnight of scheduledTime, or 0 when
// it cannot be parsed.
func MinuteOfDay(scheduledTime string) int {
	h, m, err := ParseTime(scheduledTime)
	if err != nil {
		return 0
	}
	return h*60 + m
}
