// Package dateutil provides date parsing and calendar-range utilities.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDateFormat is returned for dates not in YYYY-MM-DD format.
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
// If the string is empty, returns today's date.
// Dates are parsed in the local timezone (midnight local, not UTC) so
// they compare cleanly with dates derived from time.Now().
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay returns true if a and b fall on the same calendar date. The
// comparison is by date fields, not instants, so midnights carried in
// different locations still match.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// AddDays shifts a date by delta calendar days. Delta may be negative.
func AddDays(t time.Time, delta int) time.Time {
	return TruncateToDay(t).AddDate(0, 0, delta)
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (monday, sunday time.Time) {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday becomes day 7 in ISO week
	}
	monday = t.AddDate(0, 0, -(weekday - 1))
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// MonthRange returns the first and last day of the month containing t.
func MonthRange(t time.Time) (first, last time.Time) {
	first = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last = first.AddDate(0, 1, -1)
	return first, last
}

// ParseRelativeDate parses a date string that can be:
//   - Empty string or "today": returns relativeTo date
//   - Absolute date: "2025-01-15" (YYYY-MM-DD)
//   - Keywords: "tomorrow", "yesterday"
//   - Weekday names: "monday" through "sunday" (next occurrence)
//   - Next prefixed: "next-monday" through "next-sunday", "next-week"
//
// All inputs are case-insensitive.
// Returns ErrInvalidDateFormat for unrecognized input.
func ParseRelativeDate(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	if input == "" || input == "today" {
		return today, nil
	}
	if input == "tomorrow" {
		return today.AddDate(0, 0, 1), nil
	}
	if input == "yesterday" {
		return today.AddDate(0, 0, -1), nil
	}

	// "next-week" - same weekday, +7 days
	if input == "next-week" {
		return today.AddDate(0, 0, 7), nil
	}

	// "next-monday", "next-tuesday", etc.
	if strings.HasPrefix(input, "next-") {
		weekdayName := strings.TrimPrefix(input, "next-")
		if targetDay, ok := weekdayMap[weekdayName]; ok {
			return nextWeekday(today, targetDay), nil
		}
		return time.Time{}, ErrInvalidDateFormat
	}

	// Weekday names: "monday", "tuesday", etc.
	if targetDay, ok := weekdayMap[input]; ok {
		return nextWeekday(today, targetDay), nil
	}

	return ParseDate(input)
}

// nextWeekday returns the next occurrence of the given weekday after today.
// If today is the target weekday, returns one week from today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	current := today.Weekday()
	daysUntil := int(target) - int(current)
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}
