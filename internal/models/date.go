package models

import (
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the wire format of every calendar date.
const DateLayout = "2006-01-02"

// Midnight truncates t to the start of its calendar day in UTC.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Day converts t to a date column value.
func Day(t time.Time) datatypes.Date {
	return datatypes.Date(Midnight(t))
}

// DayPtr is Day for optional columns.
func DayPtr(t time.Time) *datatypes.Date {
	d := Day(t)
	return &d
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

func FormatDay(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

// FormatDayPtr returns "" for a missing date.
func FormatDayPtr(d *datatypes.Date) string {
	if d == nil {
		return ""
	}
	return FormatDay(*d)
}
