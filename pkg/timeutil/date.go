package timeutil

import "time"

// LayoutISO is the calendar-day key format used by the day map.
const LayoutISO = "2006-01-02"

// ParseISO parses a YYYY-MM-DD key as local midnight. It rejects anything
// that does not format back to the same string, so "2024-13-40" and
// "2024-1-2" are both invalid.
func ParseISO(s string) (time.Time, bool) {
	return ParseISOIn(s, time.Local)
}

// ParseISOIn is ParseISO for an explicit location.
func ParseISOIn(s string, loc *time.Location) (time.Time, bool) {
	if len(s) != len(LayoutISO) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(LayoutISO, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	if t.Format(LayoutISO) != s {
		return time.Time{}, false
	}
	return t, true
}

// IsISO reports whether s is a valid day key.
func IsISO(s string) bool {
	_, ok := ParseISO(s)
	return ok
}

// FormatISO renders the local calendar day of t.
func FormatISO(t time.Time) string {
	return t.Local().Format(LayoutISO)
}

// StartOfDay returns midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable millisecond of t's day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// NextMidnight returns the start of the day after t.
func NextMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, t.Location())
}

// AddDays shifts an ISO key by n calendar days.
func AddDays(iso string, n int) (string, bool) {
	t, ok := ParseISO(iso)
	if !ok {
		return "", false
	}
	return t.AddDate(0, 0, n).Format(LayoutISO), true
}
