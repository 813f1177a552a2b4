package core

import (
	"testing"
	"time"
)

func TestSalaryDate_Clamping(t *testing.T) {
	tests := []struct {
		name  string
		day   int
		year  int
		month int
		want  string
	}{
		{name: "regular day", day: 15, year: 2025, month: 3, want: "2025-03-15"},
		{name: "day 31 in february non-leap", day: 31, year: 2025, month: 2, want: "2025-02-28"},
		{name: "day 31 in february leap year", day: 31, year: 2024, month: 2, want: "2024-02-29"},
		{name: "day 31 in april", day: 31, year: 2025, month: 4, want: "2025-04-30"},
		{name: "day 31 in january", day: 31, year: 2025, month: 1, want: "2025-01-31"},
		{name: "day below range", day: 0, year: 2025, month: 6, want: "2025-06-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SalaryDate(tt.day, tt.year, tt.month)
			if got != tt.want {
				t.Errorf("SalaryDate(%d, %d, %d) = %q, want %q", tt.day, tt.year, tt.month, got, tt.want)
			}
		})
	}
}

func TestSalaryDate_RoundTrip(t *testing.T) {
	// Any day 1-28 must survive a build-then-extract round trip in every
	// month of the year.
	for month := 1; month <= 12; month++ {
		for day := 1; day <= 28; day++ {
			date := SalaryDate(day, 2025, month)
			if got := DayOf(date); got != day {
				t.Fatalf("DayOf(SalaryDate(%d, 2025, %d)) = %d, want %d", day, month, got, day)
			}
		}
	}
}

func TestSalaryDate_ClampedValueIsStable(t *testing.T) {
	// Once clamped, re-deriving the date for the same month must not move
	// it again.
	first := SalaryDate(31, 2025, 2)
	clampedDay := DayOf(first)
	if clampedDay != 28 {
		t.Fatalf("clamped day = %d, want 28", clampedDay)
	}
	second := SalaryDate(clampedDay, 2025, 2)
	if second != first {
		t.Errorf("SalaryDate(%d, 2025, 2) = %q, want %q", clampedDay, second, first)
	}
}

func TestLastDay(t *testing.T) {
	tests := []struct {
		year  int
		month int
		want  int
	}{
		{2025, 1, 31},
		{2025, 2, 28},
		{2024, 2, 29},
		{2025, 4, 30},
		{2025, 12, 31},
	}
	for _, tt := range tests {
		if got := LastDay(tt.year, tt.month); got != tt.want {
			t.Errorf("LastDay(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestCurrentMonthKey(t *testing.T) {
	now := time.Date(2025, 3, 31, 23, 30, 0, 0, time.Local)
	if got := CurrentMonthKey(now); got != "2025-03" {
		t.Errorf("CurrentMonthKey() = %q, want %q", got, "2025-03")
	}
}

func TestLastNMonthKeys(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.Local)
	got := LastNMonthKeys(now, 12)

	if len(got) != 12 {
		t.Fatalf("len = %d, want 12", len(got))
	}
	if got[0] != "2024-04" {
		t.Errorf("oldest = %q, want %q", got[0], "2024-04")
	}
	if got[11] != "2025-03" {
		t.Errorf("newest = %q, want %q", got[11], "2025-03")
	}

	// January boundary: subtracting months must roll the year.
	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.Local)
	gotJan := LastNMonthKeys(jan, 3)
	want := []string{"2024-11", "2024-12", "2025-01"}
	for i := range want {
		if gotJan[i] != want[i] {
			t.Errorf("LastNMonthKeys(jan, 3)[%d] = %q, want %q", i, gotJan[i], want[i])
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	if got := DaysInMonth("2025-02"); got != 28 {
		t.Errorf("DaysInMonth(2025-02) = %d, want 28", got)
	}
	if got := DaysInMonth("garbage"); got != 0 {
		t.Errorf("DaysInMonth(garbage) = %d, want 0", got)
	}
}

func TestDayOf_Malformed(t *testing.T) {
	if got := DayOf("not-a-date"); got != 0 {
		t.Errorf("DayOf(not-a-date) = %d, want 0", got)
	}
}
