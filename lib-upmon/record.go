package upmon

import (
	"time"
)

// DateLayout is the format of the calendar date in a HistoryEntry.
// Dates are always UTC.
const DateLayout = "2006-01-02"

// CheckResult is the outcome of one probe of one service.
//
// It is produced fresh on every check cycle and never persisted verbatim,
// except inside the latest snapshot.
type CheckResult struct {
	Status Status `json:"status"`

	// ResponseTime is how long the target took to answer, in
	// milliseconds. It is nil when the probe could not measure it.
	ResponseTime *int64 `json:"responseTime,omitempty"`
}

// HistoryEntry is the persisted aggregate for one service on one calendar
// date.
type HistoryEntry struct {
	// Date is the UTC calendar date, formatted as DateLayout.
	Date string `json:"date"`

	Status DayStatus `json:"status"`

	// ResponseTime is the folded response time of the day's checks, in
	// milliseconds, or null when no check measured one.
	ResponseTime *int64 `json:"responseTime"`

	// Checks counts how many checks landed on this date. Always >= 1.
	Checks int `json:"checks"`
}

// DateOf converts an epoch-milliseconds timestamp to the UTC calendar
// date it falls on.
func DateOf(epochMillis int64) string {
	return time.UnixMilli(epochMillis).UTC().Format(DateLayout)
}
