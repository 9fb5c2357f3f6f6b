package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date part suffixes used by day/month/year form inputs.
const (
	SuffixDay   = "_day"
	SuffixMonth = "_month"
	SuffixYear  = "_year"
)

// DatePartKeys returns the day, month and year keys of a date field.
func DatePartKeys(field string) [3]string {
	return [3]string{field + SuffixDay, field + SuffixMonth, field + SuffixYear}
}

// ComposeDate builds a UTC date from numeric day, month and year parts.
// Parts that do not name a real calendar date are rejected.
func ComposeDate(day, month, year string) (time.Time, error) {
	d, errD := strconv.Atoi(strings.TrimSpace(day))
	m, errM := strconv.Atoi(strings.TrimSpace(month))
	y, errY := strconv.Atoi(strings.TrimSpace(year))
	if errD != nil || errM != nil || errY != nil {
		return time.Time{}, fmt.Errorf("date parts %q/%q/%q are not numeric", day, month, year)
	}
	if y < 1 || y > 9999 {
		return time.Time{}, fmt.Errorf("year %d out of range", y)
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || int(t.Month()) != m || t.Year() != y {
		return time.Time{}, fmt.Errorf("%02d-%02d-%04d is not a calendar date", d, m, y)
	}
	return t, nil
}

// Today truncates t to midnight UTC of the same calendar day.
func Today(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
