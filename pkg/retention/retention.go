// Package retention drops day shards that fall outside the history horizon.
package retention

import (
	"sort"
	"time"

	"tableflip.dev/planner/pkg/day"
	"tableflip.dev/planner/pkg/timeutil"
)

// DefaultMaxAgeDays is the history kept when nothing else is configured.
const DefaultMaxAgeDays = 365

// Prune removes every day whose key is strictly older than local midnight
// of now minus maxAgeDays. Keys that are not valid dates are kept. When
// every dated key already lies between the cutoff and the end of now's day,
// or maxAgeDays is negative, days is returned as is. The input map is never
// modified; pruned lists the removed keys in order.
func Prune(days map[string]*day.Record, maxAgeDays int, now time.Time) (map[string]*day.Record, []string) {
	if maxAgeDays < 0 || len(days) == 0 {
		return days, nil
	}
	cutoff := timeutil.StartOfDay(now.AddDate(0, 0, -maxAgeDays))
	ceiling := timeutil.EndOfDay(now)

	var stale []string
	inWindow := true
	for iso := range days {
		t, ok := timeutil.ParseISOIn(iso, now.Location())
		if !ok {
			continue
		}
		if t.Before(cutoff) {
			stale = append(stale, iso)
			inWindow = false
		} else if t.After(ceiling) {
			inWindow = false
		}
	}
	if inWindow || len(stale) == 0 {
		return days, nil
	}

	out := make(map[string]*day.Record, len(days)-len(stale))
	for iso, d := range days {
		out[iso] = d
	}
	for _, iso := range stale {
		delete(out, iso)
	}
	sort.Strings(stale)
	return out, stale
}
