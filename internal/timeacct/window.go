package timeacct

import (
	"fmt"
	"time"
)

// Week is a Monday-anchored run of 7 contiguous dates.
type Week struct {
	Start Date
}

// WeekOf returns the week containing d, shifting back to the most recent
// Monday. Sunday counts as day 7 of the preceding week (ISO semantics).
func WeekOf(d Date) Week {
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7
	}
	return Week{Start: d.AddDays(-(wd - 1))}
}

func (w Week) End() Date { return w.Start.AddDays(6) }

// Dates lists the seven dates of the week in order.
func (w Week) Dates() []Date {
	dates := make([]Date, 7)
	for i := range dates {
		dates[i] = w.Start.AddDays(i)
	}
	return dates
}

func (w Week) Next() Week { return Week{Start: w.Start.AddDays(7)} }

func (w Week) Prev() Week { return Week{Start: w.Start.AddDays(-7)} }

// Number returns the ISO-8601 week number of the week's Monday. Used for
// display labels only, never for aggregation boundaries.
func (w Week) Number() int {
	_, week := w.Start.Time().ISOWeek()
	return week
}

// Title renders the overview heading, e.g. "Week 11 • 2024-03-11 - 2024-03-17".
func (w Week) Title() string {
	return fmt.Sprintf("Week %d • %s - %s", w.Number(), w.Start, w.End())
}

// Month is a first-to-last calendar day window.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing d.
func MonthOf(d Date) Month {
	return Month{Year: d.Year(), Month: d.Month()}
}

func (m Month) First() Date { return NewDate(m.Year, m.Month, 1) }

// Last is the final calendar day of the month; day zero of the next month.
func (m Month) Last() Date {
	return Date(time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.Local).Format(dateLayout))
}

// Dates lists every date of the month in order.
func (m Month) Dates() []Date {
	var dates []Date
	for d := m.First(); d <= m.Last(); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}

// Next wraps December into January of the following year.
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

// Prev wraps January into December of the preceding year.
func (m Month) Prev() Month {
	if m.Month == time.January {
		return Month{Year: m.Year - 1, Month: time.December}
	}
	return Month{Year: m.Year, Month: m.Month - 1}
}

func (m Month) Title() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}
