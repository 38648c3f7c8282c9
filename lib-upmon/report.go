package upmon

// Report is the full status document served to the dashboard: per-service
// day history plus the latest snapshot.
type Report struct {
	// History maps every monitored service to its day history, oldest
	// first. A service that was never written has an empty history, not
	// a missing key.
	History map[ServiceID][]HistoryEntry `json:"history"`

	Latest Snapshot `json:"latest"`
}

// Batch is one check cycle's worth of results, delivered by the checker.
type Batch struct {
	// Checks holds the result per service. A service may be omitted when
	// its probe could not be attempted; the server records it as unknown.
	Checks map[ServiceID]CheckResult `json:"checks"`

	// Timestamp is the epoch milliseconds shared by the whole batch.
	Timestamp int64 `json:"timestamp"`
}

// Date returns the UTC calendar date the batch's timestamp falls on.
func (b Batch) Date() string {
	return DateOf(b.Timestamp)
}

// Snapshot builds the latest snapshot this batch should overwrite the
// stored one with.
func (b Batch) Snapshot() Snapshot {
	checks := make(map[ServiceID]CheckResult, len(b.Checks))
	for service, check := range b.Checks {
		checks[service] = check
	}
	return Snapshot{Checks: checks, Timestamp: b.Timestamp}
}

// Ack is the acknowledgement of a recorded batch.
type Ack struct {
	Success   bool  `json:"success"`
	Timestamp int64 `json:"timestamp"`
}
