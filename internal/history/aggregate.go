package history

import (
	"math"

	api "github.com/upmon/upmon/lib-upmon"
)

// RetentionDays is how many day entries a service's history keeps.
// Older entries fall off the front, newest stay.
const RetentionDays = 30

// Aggregate folds one check result into a service's day history.
//
// It searches history for an entry dated today and merges the incoming
// result into it, or appends a fresh entry if today has none yet. The
// input slice is not modified. It returns the updated history, trimmed to
// RetentionDays, together with the entry that was written.
//
// Merging escalates the day status (down > partial > operational, and an
// unknown check never overrides a known status), so within one day the
// status is monotonic and order-independent: once a day went down, no
// later check demotes it.
func Aggregate(history []api.HistoryEntry, today string, incoming api.CheckResult) ([]api.HistoryEntry, api.HistoryEntry) {
	updated := make([]api.HistoryEntry, len(history))
	copy(updated, history)

	pos := -1
	for i, e := range updated {
		if e.Date == today {
			pos = i
			break
		}
	}

	var entry api.HistoryEntry
	if pos < 0 {
		entry = api.HistoryEntry{
			Date:         today,
			Status:       incoming.Status.DayStatus(),
			ResponseTime: incoming.ResponseTime,
			Checks:       1,
		}
		updated = append(updated, entry)
	} else {
		existing := updated[pos]
		entry = api.HistoryEntry{
			Date:         today,
			Status:       escalate(existing.Status, incoming.Status),
			ResponseTime: foldResponseTime(existing.ResponseTime, incoming.ResponseTime),
			Checks:       existing.Checks + 1,
		}
		updated[pos] = entry
	}

	if len(updated) > RetentionDays {
		updated = updated[len(updated)-RetentionDays:]
	}

	return updated, entry
}

func escalate(existing api.DayStatus, incoming api.Status) api.DayStatus {
	if existing == api.DayDown || incoming == api.StatusDown {
		return api.DayDown
	}
	if existing == api.DayPartial || incoming == api.StatusDegraded {
		return api.DayPartial
	}
	return api.DayOperational
}

// foldResponseTime folds a new reading into the stored one: the mean of
// the two when both are present, otherwise whichever is present.
//
// Known quirk: with more than two checks a day this is not a true running
// mean, because each reading averages only against the last stored value,
// not against all prior readings. Kept as-is on purpose; the intent of
// the original behavior is ambiguous.
func foldResponseTime(existing, incoming *int64) *int64 {
	switch {
	case existing == nil:
		return incoming
	case incoming == nil:
		return existing
	default:
		mean := int64(math.Round(float64(*existing+*incoming) / 2))
		return &mean
	}
}
