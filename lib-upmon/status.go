package upmon

const (
	// StatusUnknown means the check could not tell the target status,
	// for example because the probe was never attempted or the name did
	// not resolve.
	StatusUnknown Status = iota

	// StatusOperational means the check succeeded and the target answered
	// in time.
	StatusOperational

	// StatusDegraded means the target answered, but slower than the
	// degraded-latency threshold or with partial failures.
	StatusDegraded

	// StatusDown means the target did not answer, or answered with an
	// error.
	StatusDown
)

// Status is the outcome of a single check of one service.
type Status int8

// ParseStatus is parse status string.
//
// If passed unsupported status, it will returns StatusUnknown.
func ParseStatus(raw string) Status {
	switch raw {
	case "operational":
		return StatusOperational
	case "degraded":
		return StatusDegraded
	case "down":
		return StatusDown
	default:
		return StatusUnknown
	}
}

// UnmarshalText is unmarshal text as status.
//
// This function always returns nil.
// This parses as StatusUnknown instead of returns error if unsupported
// status passed.
func (s *Status) UnmarshalText(text []byte) error {
	*s = ParseStatus(string(text))
	return nil
}

// String is make Status a string.
func (s Status) String() string {
	switch s {
	case StatusOperational:
		return "operational"
	case StatusDegraded:
		return "degraded"
	case StatusDown:
		return "down"
	default:
		return "unknown"
	}
}

// MarshalText is marshal Status as text.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// DayStatus folds the check status into the coarser day-aggregate
// vocabulary: degraded observations become DayPartial, and unknown is
// treated optimistically as DayOperational.
//
// The optimistic default means an unknown check on an otherwise untouched
// day records the day as operational. That is a deliberate choice carried
// over from the original behavior, worth revisiting if it ever misleads.
func (s Status) DayStatus() DayStatus {
	switch s {
	case StatusDown:
		return DayDown
	case StatusDegraded:
		return DayPartial
	default:
		return DayOperational
	}
}

const (
	// DayOperational means every check that day was operational (or
	// unknown).
	DayOperational DayStatus = iota

	// DayPartial means at least one check that day was degraded, but none
	// was down.
	DayPartial

	// DayDown means at least one check that day found the target down.
	DayDown
)

// DayStatus is the aggregate status of one service over one calendar day.
//
// It is a distinct, coarser vocabulary than Status. Escalation is
// monotonic within a day: once DayDown, later checks never demote it.
type DayStatus int8

// ParseDayStatus is parse day status string.
//
// If passed unsupported status, it will returns DayOperational.
func ParseDayStatus(raw string) DayStatus {
	switch raw {
	case "partial":
		return DayPartial
	case "down":
		return DayDown
	default:
		return DayOperational
	}
}

// UnmarshalText is unmarshal text as day status.
//
// This function always returns nil.
func (s *DayStatus) UnmarshalText(text []byte) error {
	*s = ParseDayStatus(string(text))
	return nil
}

// String is make DayStatus a string.
func (s DayStatus) String() string {
	switch s {
	case DayPartial:
		return "partial"
	case DayDown:
		return "down"
	default:
		return "operational"
	}
}

// MarshalText is marshal DayStatus as text.
func (s DayStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
