package history_test

import (
	"fmt"
	"testing"

	"github.com/upmon/upmon/internal/history"
	api "github.com/upmon/upmon/lib-upmon"
)

// FuzzAggregate feeds an arbitrary sequence of checks into the
// aggregator and verifies the invariants that hold for every sequence:
// the history stays capped, dates stay unique and ordered, the checks
// counter grows, and a day that went down stays down.
func FuzzAggregate(f *testing.F) {
	f.Add([]byte{0, 1, 2, 3})
	f.Add([]byte{3, 3, 3, 0, 0, 0})
	f.Add([]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1})

	f.Fuzz(func(t *testing.T, seq []byte) {
		var h []api.HistoryEntry
		day := 0

		downDays := make(map[string]bool)

		for _, b := range seq {
			// low bits pick the status, the top bit advances the day
			status := api.Status(b & 0x03)
			if b&0x80 != 0 {
				day++
			}
			date := fmt.Sprintf("day-%06d", day)

			var entry api.HistoryEntry
			h, entry = history.Aggregate(h, date, api.CheckResult{Status: status})

			if len(h) > history.RetentionDays {
				t.Fatalf("history grew past the cap: %d", len(h))
			}

			if status == api.StatusDown {
				downDays[date] = true
			}
			if downDays[date] && entry.Status != api.DayDown {
				t.Fatalf("day %s was down but got demoted to %s", date, entry.Status)
			}
			if entry.Checks < 1 {
				t.Fatalf("day %s has checks=%d", date, entry.Checks)
			}

			seen := make(map[string]bool)
			for i, e := range h {
				if seen[e.Date] {
					t.Fatalf("duplicate date: %s", e.Date)
				}
				seen[e.Date] = true

				if i > 0 && h[i-1].Date >= e.Date {
					t.Fatalf("dates out of order: %s then %s", h[i-1].Date, e.Date)
				}
			}
		}
	})
}
