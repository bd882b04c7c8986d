// Package timeacct is the time-accounting engine: pure functions that turn
// raw start/end/status entries into durations, night and Sunday hour buckets
// and calendar aggregations. It performs no I/O, never mutates its input and
// is fully deterministic, so callers are free to memoize results by
// (entries, window).
package timeacct

// Entry is one work or absence record for one employee on one date, as
// supplied by the record store. Clock times are optional "HH:MM[:SS]"
// strings; a set status flag marks the entry as non-work regardless of any
// stale times stored next to it.
type Entry struct {
	Date         Date
	StartTime    string
	EndTime      string
	NietGewerkt  bool
	Verlof       bool
	Ziek         bool
	Recup        bool
	Rechtstreeks bool
	Bonnummer    string
	Comment      string
}

// Duration is the entry's wraparound-adjusted minute count, zero for absence
// entries and entries missing a clock time.
func (e Entry) Duration() int {
	if StatusOf(e).IsAbsence() {
		return 0
	}
	return DurationMinutes(e.StartTime, e.EndTime)
}

// Night-shift premium window, 01:00 to 06:00.
const (
	nightStart = 1 * 60
	nightEnd   = 6 * 60
	nightWidth = nightEnd - nightStart
)

func overlap(start, end, windowStart, windowEnd int) int {
	lo := max(start, windowStart)
	hi := min(end, windowEnd)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// NightMinutes returns the entry's minutes inside the 01:00-06:00 window.
// The interval is wraparound-adjusted first; whatever spills past a second
// midnight is counted from the start of the window, capped at the full
// window width. Absence entries contribute nothing.
func NightMinutes(e Entry) int {
	if StatusOf(e).IsAbsence() || e.StartTime == "" || e.EndTime == "" {
		return 0
	}
	start := minuteOfDay(e.StartTime)
	end := minuteOfDay(e.EndTime)
	if end <= start {
		end += 24 * 60
	}
	n := overlap(start, end, nightStart, nightEnd)
	if end > 24*60 {
		n += min(end-24*60, nightWidth)
	}
	return min(n, nightWidth)
}

// SundayMinutes returns the entry's full wraparound-adjusted duration when
// its date falls on a Sunday, and zero otherwise. The whole shift is
// attributed to the entry's date even when it runs into Monday.
func SundayMinutes(e Entry) int {
	if !e.Date.IsSunday() {
		return 0
	}
	return e.Duration()
}

// TotalNightMinutes sums NightMinutes across entries.
func TotalNightMinutes(entries []Entry) int {
	total := 0
	for _, e := range entries {
		total += NightMinutes(e)
	}
	return total
}

// TotalSundayMinutes sums SundayMinutes across entries.
func TotalSundayMinutes(entries []Entry) int {
	total := 0
	for _, e := range entries {
		total += SundayMinutes(e)
	}
	return total
}

// EntriesForDate filters by exact date-string equality, preserving order.
func EntriesForDate(entries []Entry, d Date) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Date == d {
			out = append(out, e)
		}
	}
	return out
}

func totalBetween(entries []Entry, first, last Date) int {
	total := 0
	for _, e := range entries {
		if e.Date >= first && e.Date <= last {
			total += e.Duration()
		}
	}
	return total
}

// TotalForDate sums durations of the entries on one date.
func TotalForDate(entries []Entry, d Date) int {
	return totalBetween(entries, d, d)
}

// TotalForWeek sums durations over the week window using string range
// comparison on the date field.
func TotalForWeek(entries []Entry, w Week) int {
	return totalBetween(entries, w.Start, w.End())
}

// TotalForMonth sums durations over the month window.
func TotalForMonth(entries []Entry, m Month) int {
	return totalBetween(entries, m.First(), m.Last())
}

// WorkedDaysInMonth counts the distinct dates in the month that carry at
// least one flag-free entry. A date whose entries are all absences does not
// count, no matter how many rows it has.
func WorkedDaysInMonth(entries []Entry, m Month) int {
	first, last := m.First(), m.Last()
	seen := make(map[Date]struct{})
	for _, e := range entries {
		if e.Date < first || e.Date > last {
			continue
		}
		if StatusOf(e).IsAbsence() {
			continue
		}
		seen[e.Date] = struct{}{}
	}
	return len(seen)
}
