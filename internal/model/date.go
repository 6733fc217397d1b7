package model

import (
	"strings"
	"time"
)

// DateLayout is the date-only layout used for due dates.
const DateLayout = "2006-01-02"

// Date is a calendar date kept as the string the user entered. It is not
// validated on edit; Time reports whether it parses.
type Date string

func NewDate(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// DatePtr converts editor input to a due date; blank input clears it.
func DatePtr(raw string) *Date {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d := Date(raw)
	return &d
}

func (d Date) String() string {
	return string(d)
}

// Time parses the leading YYYY-MM-DD part, tolerating full timestamps.
func (d Date) Time(loc *time.Location) (time.Time, error) {
	raw := string(d)
	if len(raw) > len(DateLayout) {
		raw = raw[:len(DateLayout)]
	}
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, raw, loc)
}

// Display renders the date for list rows, falling back to the raw value.
func (d Date) Display() string {
	t, err := d.Time(time.Local)
	if err != nil {
		return string(d)
	}
	return t.Format("Jan 2, 2006")
}
