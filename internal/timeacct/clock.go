package timeacct

import (
	"fmt"
	"strconv"
	"strings"
)

// minuteOfDay converts a "HH:MM" or "HH:MM:SS" clock string to minutes since
// midnight. Seconds are ignored. The entry form is the only producer of these
// strings, so no validation pass is done here; malformed input degrades to 0.
func minuteOfDay(clock string) int {
	parts := strings.Split(clock, ":")
	if len(parts) < 2 {
		return 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m
}

// DurationMinutes returns the worked minutes between two clock strings.
// Either side missing means the entry contributes nothing. An end at or
// before the start is read as a shift crossing midnight and gains a day;
// equal times therefore mean a full 24-hour shift. That policy is kept
// on purpose, it is how stored rows have always been interpreted.
func DurationMinutes(start, end string) int {
	if start == "" || end == "" {
		return 0
	}
	d := minuteOfDay(end) - minuteOfDay(start)
	if d <= 0 {
		d += 24 * 60
	}
	return d
}

// FormatMinutes renders minutes in the "7u 30m" form used across the UI and
// the PDF export.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%du %dm", minutes/60, minutes%60)
}

// FormatClockRange renders "HH:MM - HH:MM", trimming any seconds.
func FormatClockRange(start, end string) string {
	return trimClock(start) + " - " + trimClock(end)
}

func trimClock(clock string) string {
	if len(clock) > 5 {
		return clock[:5]
	}
	return clock
}
