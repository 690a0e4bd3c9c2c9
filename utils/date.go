package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02" // yyyy-MM-dd
	MonthLayout = "2006-01"    // yyyy-MM
)

// ParseDate accepts yyyy-MM-dd and, for clients that send full timestamps, RFC3339.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}
	if t, err := time.ParseInLocation(DateLayout, s, time.UTC); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %v", s)
}

// NormalizeDate returns s re-formatted as yyyy-MM-dd.
func NormalizeDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return FormatDate(t), nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today is the calendar date of now in loc.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return FormatDate(now.In(loc))
}

// MonthBounds returns the first and last day of a yyyy-MM month.
func MonthBounds(s string) (string, string, error) {
	t, err := time.ParseInLocation(MonthLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse month: %v", s)
	}
	last := t.AddDate(0, 1, -1)
	return FormatDate(t), FormatDate(last), nil
}
