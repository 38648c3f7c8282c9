package upmon

import (
	"encoding/json"
)

// Snapshot is the most recent check outcome of every service plus the
// shared timestamp of the check batch.
//
// It is stored as a single record and fully overwritten on each write;
// no history is retained for the snapshot itself.
type Snapshot struct {
	Checks map[ServiceID]CheckResult

	// Timestamp is the epoch milliseconds of the check batch.
	Timestamp int64
}

// MarshalJSON implements the json.Marshaler interface.
//
// The wire format is flat: the per-service results sit next to the
// timestamp key, like {"frontend": {...}, "timestamp": 1700000000000}.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(s.Checks)+1)
	for service, check := range s.Checks {
		m[string(service)] = check
	}
	if s.Timestamp != 0 {
		m["timestamp"] = s.Timestamp
	}
	return json.Marshal(m)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
//
// Keys that are neither "timestamp" nor a monitored service are ignored.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	snapshot := Snapshot{Checks: make(map[ServiceID]CheckResult)}

	for key, raw := range m {
		if key == "timestamp" {
			if err := json.Unmarshal(raw, &snapshot.Timestamp); err != nil {
				return err
			}
			continue
		}

		service, err := ParseServiceID(key)
		if err != nil {
			continue
		}

		var check CheckResult
		if err := json.Unmarshal(raw, &check); err != nil {
			return err
		}
		snapshot.Checks[service] = check
	}

	*s = snapshot
	return nil
}
