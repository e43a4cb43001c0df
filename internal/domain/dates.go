package domain

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the format of Task.Date.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysCeil returns the number of days from start to end rounded up.
// Negative spans round toward zero.
func DaysCeil(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

// DateParts returns the year and 2-digit month of a YYYY-MM-DD string, or
// empty strings when the date is shorter than that.
func DateParts(date string) (year, month string) {
	if len(date) < 7 {
		return "", ""
	}
	return date[:4], date[5:7]
}
