package timeacct

// DayStatus is the single canonical state of an entry, derived from the four
// legacy status booleans. Stored rows can carry conflicting flags, so the
// derivation order below is fixed: recup wins over verlof, verlof over ziek,
// ziek over niet gewerkt. Everything that is not Worked is excluded from all
// hour math.
type DayStatus int

const (
	StatusWorked DayStatus = iota
	StatusNotWorked
	StatusLeave
	StatusSick
	StatusCompLeave
)

// StatusOf derives the canonical status from an entry's legacy flags.
func StatusOf(e Entry) DayStatus {
	switch {
	case e.Recup:
		return StatusCompLeave
	case e.Verlof:
		return StatusLeave
	case e.Ziek:
		return StatusSick
	case e.NietGewerkt:
		return StatusNotWorked
	default:
		return StatusWorked
	}
}

// IsAbsence reports whether the status excludes the entry from duration,
// night and Sunday totals. Legacy rows may still carry stale clock times next
// to a status flag; the flag overrides them.
func (s DayStatus) IsAbsence() bool { return s != StatusWorked }

// Label returns the display text for an entry: the absence label by
// precedence, else the clock range, else the bare worked placeholder.
func Label(e Entry) string {
	switch StatusOf(e) {
	case StatusCompLeave:
		return "Recup"
	case StatusLeave:
		return "Verlof"
	case StatusSick:
		return "Ziek"
	case StatusNotWorked:
		return "Niet gewerkt"
	}
	if e.StartTime != "" && e.EndTime != "" {
		return FormatClockRange(e.StartTime, e.EndTime)
	}
	return "Gewerkt"
}
