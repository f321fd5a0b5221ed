package attendance

import (
	"strings"
	"time"
)

// =============================================================================
// DATETIME PRIMITIVE - The export's timestamp formats
// =============================================================================

// The export writes timestamps as "2025-12-01 08:10:00", occasionally
// without seconds and occasionally with a T separator.
var dateTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDateTime parses an export timestamp. It returns ok=false on
// failure instead of an error: callers decide whether a bad timestamp
// is fatal (working-day, debit) or skippable (meals, overtime).
func ParseDateTime(value string) (time.Time, bool) {
	text := strings.TrimSpace(value)
	if text == "" {
		return time.Time{}, false
	}
	for _, layout := range dateTimeLayouts {
		if ts, err := time.Parse(layout, text); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// FormatDateTime renders a timestamp the way the export spells them.
func FormatDateTime(ts time.Time) string {
	return ts.Format("2006-01-02 15:04:05")
}

// DateKey renders the calendar date portion, used as a grouping key.
func DateKey(ts time.Time) string {
	return ts.Format("2006-01-02")
}

// SameDate reports whether two timestamps fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// DaysInMonth returns the number of calendar days in the month of ts.
func DaysInMonth(ts time.Time) int {
	first := time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

// =============================================================================
// TIME OF DAY + EXPECTED WINDOW
// =============================================================================

// TimeOfDay is a wall-clock moment with minute granularity, used for the
// expected window boundaries and meal cutoffs.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// At anchors the time of day onto the calendar date of ts.
func (t TimeOfDay) At(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), t.Hour, t.Minute, 0, 0, ts.Location())
}

// ParseTimeOfDay parses "HH:MM". Used by the config layer.
func ParseTimeOfDay(value string) (TimeOfDay, bool) {
	ts, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return TimeOfDay{}, false
	}
	return TimeOfDay{Hour: ts.Hour(), Minute: ts.Minute()}, true
}

// Window is the expected attendance window of a working day.
type Window struct {
	Start TimeOfDay // expected check-in, default 08:00
	End   TimeOfDay // expected check-out, default 17:00
}

// DefaultWindow returns the standard 08:00-17:00 working window.
func DefaultWindow() Window {
	return Window{Start: TimeOfDay{Hour: 8}, End: TimeOfDay{Hour: 17}}
}

// DeltaStartHours returns ts minus the window start on ts's date, in
// hours. Positive = late check-in.
func (w Window) DeltaStartHours(ts time.Time) float64 {
	return ts.Sub(w.Start.At(ts)).Hours()
}

// DeltaEndHours returns ts minus the window end on ts's date, in hours.
// Negative = early check-out.
func (w Window) DeltaEndHours(ts time.Time) float64 {
	return ts.Sub(w.End.At(ts)).Hours()
}
