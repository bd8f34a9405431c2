// Package dateutil provides trip date parsing and helpers.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDateFormat reports an unparseable date input.
var ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseDate parses a date string in YYYY-MM-DD format.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// TripDay returns the calendar date of a 0-based trip day.
func TripDay(start time.Time, day int) time.Time {
	return start.AddDate(0, 0, day)
}

// DayLabel formats a trip day date for listings.
func DayLabel(t time.Time) string {
	return t.Format("Monday, January 2")
}

// ParseStartDate parses a trip start date that can be:
//   - Absolute: "2026-09-12" (YYYY-MM-DD)
//   - Keywords: "today", "tomorrow", "next-week"
//   - Weekday names: "monday" through "sunday" (next occurrence)
//   - Next prefixed: "next-monday" through "next-sunday"
//
// All inputs are case-insensitive. Relative forms resolve against
// relativeTo truncated to midnight.
func ParseStartDate(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "next-week":
		return today.AddDate(0, 0, 7), nil
	}

	if rest, ok := strings.CutPrefix(input, "next-"); ok {
		if target, ok := weekdayMap[rest]; ok {
			return nextWeekday(today, target), nil
		}
		return time.Time{}, ErrInvalidDateFormat
	}

	if target, ok := weekdayMap[input]; ok {
		return nextWeekday(today, target), nil
	}

	return ParseDate(input)
}

// nextWeekday returns the next occurrence of the given weekday after today.
// If today is the target weekday, returns one week out.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	daysUntil := int(target) - int(today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}
