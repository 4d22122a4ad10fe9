// Package tips holds the static financial tip dataset and selection logic.
//
// The dataset order is part of the daily-pick contract: PickForDate hashes
// the calendar day onto an index, so reordering or removing entries changes
// which tip a given date resolves to.
package tips

import (
	"math/rand"
	"time"

	"budgetapp/internal/core"
)

// ByID looks a tip up by its id. The second return is false for unknown
// ids; callers decide whether that is fatal.
func ByID(id string) (core.Tip, bool) {
	for _, t := range registry {
		if t.ID == id {
			return t, true
		}
	}
	return core.Tip{}, false
}

// All returns a copy of the full tip set in registry order.
func All() []core.Tip {
	out := make([]core.Tip, len(registry))
	copy(out, registry)
	return out
}

// Count returns the number of registered tips.
func Count() int {
	return len(registry)
}

// PickForDate deterministically selects the tip of the day. It hashes the
// UTC calendar-day string (YYYY-MM-DD) with a polynomial rolling hash and
// 32-bit unsigned wraparound, so the same date always maps to the same tip
// across processes.
func PickForDate(t time.Time) core.Tip {
	key := DayKey(t)
	var h uint32
	for i := 0; i < len(key); i++ {
		h = h*31 + uint32(key[i])
	}
	return registry[int(h%uint32(len(registry)))]
}

// DayKey formats a time as its UTC calendar-day string.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// RandomExcluding picks a uniformly random tip whose id is not in
// excludeIDs. If the exclusion covers the whole set it falls back to a
// uniform pick over all tips, so it never fails.
func RandomExcluding(excludeIDs []string) core.Tip {
	excluded := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	var pool []core.Tip
	for _, t := range registry {
		if !excluded[t.ID] {
			pool = append(pool, t)
		}
	}
	if len(pool) == 0 {
		pool = registry
	}
	return pool[rand.Intn(len(pool))]
}
