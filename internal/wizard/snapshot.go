package wizard

import (
	"encoding/json"
	"sort"
)

// Snapshot serializes a draft deterministically: same draft, same string.
// Struct field order is fixed and the upsell set is sorted, so the output is
// safe to compare for the auto-save dedup.
func Snapshot(d Draft) string {
	if len(d.UpsellIDs) > 0 {
		ids := make([]string, len(d.UpsellIDs))
		copy(ids, d.UpsellIDs)
		sort.Strings(ids)
		d.UpsellIDs = ids
	}
	b, err := json.Marshal(d)
	if err != nil {
		// Draft only holds strings and ints; Marshal cannot fail on it.
		return ""
	}
	return string(b)
}

// Dirty reports whether the draft differs from the last persisted snapshot.
// An unchanged draft means the pending save can be skipped entirely.
func Dirty(lastSnapshot string, d Draft) bool {
	return Snapshot(d) != lastSnapshot
}
