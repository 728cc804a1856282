package models

import (
	"fmt"
	"time"
)

// DateLayout is the only date format used in keys and persisted records.
const DateLayout = "2006-01-02"

// ParseDate checks that s is a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// ExamDates lists every date from start to end inclusive, optionally
// skipping Sundays.
func ExamDates(start, end string, excludeSundays bool) ([]string, error) {
	from, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := ParseDate(end)
	if err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, fmt.Errorf("start date %s is after end date %s", start, end)
	}

	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if excludeSundays && d.Weekday() == time.Sunday {
			continue
		}
		dates = append(dates, d.Format(DateLayout))
	}
	return dates, nil
}
