package core

import (
	"fmt"
	"time"
)

// Calendar arithmetic works exclusively on local calendar fields. Round-
// tripping a date through a UTC timestamp shifts it by a day for anyone
// west of UTC, so nothing in this file may parse or format via RFC3339.

// DateLayout is the wire format for transaction dates.
const DateLayout = "2006-01-02"

// MonthKeyLayout is the wire format for month keys.
const MonthKeyLayout = "2006-01"

// ParseDate parses a YYYY-MM-DD string as a local calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// FormatDate renders t as a YYYY-MM-DD string using its own calendar
// fields.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DayOf extracts the day-of-month from a YYYY-MM-DD string, or 0 when the
// string does not parse.
func DayOf(date string) int {
	t, err := ParseDate(date)
	if err != nil {
		return 0
	}
	return t.Day()
}

// LastDay returns the last valid day of the given month (28-31).
func LastDay(year, month int) int {
	// Day zero of the next month normalizes to the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// SalaryDate is the single source of truth for the date a salary
// transaction should carry in a given month. Days past the end of the
// month clamp to the last valid day (31 in February becomes the 28th or
// 29th).
func SalaryDate(day, year, month int) string {
	if day < 1 {
		day = 1
	}
	if last := LastDay(year, month); day > last {
		day = last
	}
	return FormatDate(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local))
}

// MonthKey builds a YYYY-MM key from calendar fields.
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// CurrentMonthKey returns the month key for now, using local fields.
func CurrentMonthKey(now time.Time) string {
	return MonthKey(now.Year(), int(now.Month()))
}

// ParseMonthKey splits a YYYY-MM key into calendar fields.
func ParseMonthKey(key string) (year, month int, err error) {
	t, err := time.ParseInLocation(MonthKeyLayout, key, time.Local)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	return t.Year(), int(t.Month()), nil
}

// DaysInMonth returns the number of calendar days in the keyed month, or 0
// when the key does not parse.
func DaysInMonth(key string) int {
	year, month, err := ParseMonthKey(key)
	if err != nil {
		return 0
	}
	return LastDay(year, month)
}

// LastNMonthKeys lists the n calendar months ending at now's month, oldest
// first.
func LastNMonthKeys(now time.Time, n int) []string {
	keys := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		t := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.Local)
		keys = append(keys, CurrentMonthKey(t))
	}
	return keys
}
