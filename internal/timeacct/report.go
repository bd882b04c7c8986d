package timeacct

import "fmt"

// Config carries the per-employee settings the engine may consult. Travel
// time is stored and reported but never subtracted from totals; the summary
// carries it so the export can display the setting next to the gross hours.
type Config struct {
	TravelTimeMinutes int
}

// Row is one export line. Windows are rendered in full: dates without
// entries still get a placeholder row so the exported table always covers
// every calendar day of the window.
type Row struct {
	Date         Date
	DateLabel    string
	StatusLabel  string
	DurationText string
	Comment      string
	Bonnummer    string
	Rechtstreeks string
}

// Summary is the aggregate block under the export table.
type Summary struct {
	TotalMinutes      int
	WorkedDays        int
	NightMinutes      int
	SundayMinutes     int
	TravelTimeMinutes int
}

// Report is the engine's complete output for one window.
type Report struct {
	Title   string
	Rows    []Row
	Summary Summary
}

var dayAbbrev = map[int]string{0: "zo", 1: "ma", 2: "di", 3: "wo", 4: "do", 5: "vr", 6: "za"}

func buildRows(entries []Entry, dates []Date) []Row {
	rows := make([]Row, 0, len(dates))
	for _, d := range dates {
		row := Row{
			Date:         d,
			DateLabel:    fmt.Sprintf("%s %s", dayAbbrev[int(d.Weekday())], d),
			StatusLabel:  "-",
			Rechtstreeks: "Nee",
		}
		dayEntries := EntriesForDate(entries, d)
		if len(dayEntries) > 0 {
			// The first entry of the date is the day's representative for
			// the label; every entry still contributes to the totals.
			first := dayEntries[0]
			row.StatusLabel = Label(first)
			row.Comment = first.Comment
			row.Bonnummer = first.Bonnummer
			if !StatusOf(first).IsAbsence() {
				row.DurationText = FormatMinutes(TotalForDate(entries, d))
			}
			for _, e := range dayEntries {
				if e.Rechtstreeks {
					row.Rechtstreeks = "Ja"
					break
				}
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func summarize(entries []Entry, first, last Date, workedDays int, cfg Config) Summary {
	var windowed []Entry
	for _, e := range entries {
		if e.Date >= first && e.Date <= last {
			windowed = append(windowed, e)
		}
	}
	return Summary{
		TotalMinutes:      totalBetween(windowed, first, last),
		WorkedDays:        workedDays,
		NightMinutes:      TotalNightMinutes(windowed),
		SundayMinutes:     TotalSundayMinutes(windowed),
		TravelTimeMinutes: cfg.TravelTimeMinutes,
	}
}

func workedDaysBetween(entries []Entry, first, last Date) int {
	seen := make(map[Date]struct{})
	for _, e := range entries {
		if e.Date < first || e.Date > last || StatusOf(e).IsAbsence() {
			continue
		}
		seen[e.Date] = struct{}{}
	}
	return len(seen)
}

// BuildWeekReport renders the full 7-day window.
func BuildWeekReport(entries []Entry, w Week, cfg Config) Report {
	return Report{
		Title:   w.Title(),
		Rows:    buildRows(entries, w.Dates()),
		Summary: summarize(entries, w.Start, w.End(), workedDaysBetween(entries, w.Start, w.End()), cfg),
	}
}

// BuildMonthReport renders the first-to-last calendar day window.
func BuildMonthReport(entries []Entry, m Month, cfg Config) Report {
	return Report{
		Title:   m.Title(),
		Rows:    buildRows(entries, m.Dates()),
		Summary: summarize(entries, m.First(), m.Last(), WorkedDaysInMonth(entries, m), cfg),
	}
}
