package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// Day is the length of a calendar day used by retention windows.
	Day = 24 * time.Hour

	// DefaultRetention is the window applied when no retention is configured.
	DefaultRetention = "365d"
)

var (
	windowPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitMap       = map[string]time.Duration{
		"h":     time.Hour,
		"hr":    time.Hour,
		"hrs":   time.Hour,
		"hour":  time.Hour,
		"hours": time.Hour,
		"d":     Day,
		"day":   Day,
		"days":  Day,
		"w":     7 * Day,
		"wk":    7 * Day,
		"wks":   7 * Day,
		"week":  7 * Day,
		"weeks": 7 * Day,
		"y":     365 * Day,
		"yr":    365 * Day,
		"yrs":   365 * Day,
		"year":  365 * Day,
		"years": 365 * Day,
	}
)

// ParseWindow parses a human-friendly window such as "365d", "52w" or "1y2w"
// and returns the duration with a canonical label. An empty input falls back
// to DefaultRetention. A literal "0" or "0d" is a valid zero window.
func ParseWindow(input string) (time.Duration, string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		trimmed = DefaultRetention
	}
	if trimmed == "0" {
		return 0, FormatWindow(0), nil
	}

	remaining := strings.ToLower(trimmed)
	total := time.Duration(0)
	for len(remaining) > 0 {
		matches := windowPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, "", fmt.Errorf("invalid window segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid window value %q: %w", matches[1], err)
		}
		base, ok := unitMap[matches[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported window unit %q", matches[2])
		}
		total += time.Duration(value) * base
		remaining = remaining[len(matches[0]):]
	}

	if total < 0 {
		return 0, "", fmt.Errorf("window must not be negative")
	}
	return total, FormatWindow(total), nil
}

// WindowDays converts a window to whole days, rounding partial days down.
func WindowDays(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / Day)
}

// FormatWindow renders a duration using year/week/day/hour tokens.
func FormatWindow(d time.Duration) string {
	if d <= 0 {
		return "0d"
	}

	type unit struct {
		label string
		value time.Duration
	}
	units := []unit{
		{"y", 365 * Day},
		{"w", 7 * Day},
		{"d", Day},
		{"h", time.Hour},
	}

	var parts []string
	remaining := d
	for _, u := range units {
		if remaining < u.value {
			continue
		}
		count := remaining / u.value
		remaining -= count * u.value
		parts = append(parts, fmt.Sprintf("%d%s", count, u.label))
	}
	if len(parts) == 0 {
		return "0d"
	}
	return strings.Join(parts, "")
}
