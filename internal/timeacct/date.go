package timeacct

import (
	"fmt"
	"time"
)

// Date is a calendar date carried as a zero-padded "YYYY-MM-DD" string.
// Comparison and bucketing are lexicographic on that string. A Date is only
// ever converted to a time.Time anchored at local midnight, for weekday
// queries; constructing a time from a bare date string shifts by the local
// UTC offset and can misfile an entry into a neighboring day.
type Date string

const dateLayout = "2006-01-02"

// ParseDate validates s as a "YYYY-MM-DD" date.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	if t.Format(dateLayout) != s {
		return "", fmt.Errorf("invalid date %q: not zero-padded", s)
	}
	return Date(s), nil
}

// NewDate builds a Date from calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.Local).Format(dateLayout))
}

// Today returns the current date in the local timezone.
func Today() Date {
	return Date(time.Now().Format(dateLayout))
}

func (d Date) String() string { return string(d) }

// Time anchors the date at local midnight.
func (d Date) Time() time.Time {
	t, _ := time.ParseInLocation(dateLayout, string(d), time.Local)
	return t
}

func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

func (d Date) IsSunday() bool { return d.Weekday() == time.Sunday }

func (d Date) AddDays(n int) Date {
	return Date(d.Time().AddDate(0, 0, n).Format(dateLayout))
}

func (d Date) Year() int { return d.Time().Year() }

func (d Date) Month() time.Month { return d.Time().Month() }

func (d Date) Day() int { return d.Time().Day() }
