package timeacct_test

import (
	"testing"
	"time"

	"github.com/Berghsen/timeline/internal/timeacct"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2024-03-10", false},
		{"2024-12-31", false},
		{"2024-3-10", true}, // not zero-padded
		{"2024-03-32", true},
		{"10-03-2024", true},
		{"2024-03-10T00:00:00", true},
		{"", true},
	}
	for _, tt := range tests {
		_, err := timeacct.ParseDate(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestDateWeekday(t *testing.T) {
	if wd := timeacct.Date("2024-03-10").Weekday(); wd != time.Sunday {
		t.Errorf("2024-03-10 weekday = %v, want Sunday", wd)
	}
	if !timeacct.Date("2024-03-10").IsSunday() {
		t.Error("2024-03-10 should be a Sunday")
	}
	if timeacct.Date("2024-03-09").IsSunday() {
		t.Error("2024-03-09 should not be a Sunday")
	}
}

func TestWeekOf(t *testing.T) {
	tests := []struct {
		in   timeacct.Date
		want timeacct.Date
	}{
		{"2024-03-11", "2024-03-11"}, // Monday anchors itself
		{"2024-03-13", "2024-03-11"},
		{"2024-03-16", "2024-03-11"}, // Saturday
		{"2024-03-17", "2024-03-11"}, // Sunday is day 7, not the next week
		{"2024-01-01", "2024-01-01"},
	}
	for _, tt := range tests {
		if got := timeacct.WeekOf(tt.in).Start; got != tt.want {
			t.Errorf("WeekOf(%s).Start = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestWeekDatesAndNumber(t *testing.T) {
	w := timeacct.WeekOf("2024-03-13")
	dates := w.Dates()
	if len(dates) != 7 {
		t.Fatalf("week has %d dates, want 7", len(dates))
	}
	if dates[0] != "2024-03-11" || dates[6] != "2024-03-17" {
		t.Errorf("week spans %s..%s, want 2024-03-11..2024-03-17", dates[0], dates[6])
	}
	if got := w.Number(); got != 11 {
		t.Errorf("week number = %d, want 11", got)
	}
	if got := w.Next().Start; got != "2024-03-18" {
		t.Errorf("next week starts %s, want 2024-03-18", got)
	}
	if got := w.Prev().Start; got != "2024-03-04" {
		t.Errorf("previous week starts %s, want 2024-03-04", got)
	}
}

func TestMonthWindow(t *testing.T) {
	m := timeacct.Month{Year: 2024, Month: time.February}
	if m.First() != "2024-02-01" || m.Last() != "2024-02-29" {
		t.Errorf("february 2024 spans %s..%s", m.First(), m.Last())
	}
	if got := len(m.Dates()); got != 29 {
		t.Errorf("february 2024 has %d dates, want 29", got)
	}
}

func TestMonthNavigationWrapsYears(t *testing.T) {
	dec := timeacct.Month{Year: 2024, Month: time.December}
	if next := dec.Next(); next.Year != 2025 || next.Month != time.January {
		t.Errorf("December.Next() = %v", next)
	}
	jan := timeacct.Month{Year: 2024, Month: time.January}
	if prev := jan.Prev(); prev.Year != 2023 || prev.Month != time.December {
		t.Errorf("January.Prev() = %v", prev)
	}
}
