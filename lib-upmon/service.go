package upmon

import (
	"fmt"
)

// ServiceID is the identifier of one monitored dependency.
//
// The set of services is fixed at build time. It is not extensible at
// runtime, so every API that takes a ServiceID validates it against
// Services().
type ServiceID string

const (
	ServiceFrontend ServiceID = "frontend"
	ServiceBackend  ServiceID = "backend"
	ServiceDatabase ServiceID = "database"
)

// Services returns every monitored service, in stable order.
func Services() []ServiceID {
	return []ServiceID{ServiceFrontend, ServiceBackend, ServiceDatabase}
}

// ParseServiceID parses a string as a ServiceID.
//
// It returns ErrUnknownService if the string is not one of the monitored
// services.
func ParseServiceID(raw string) (ServiceID, error) {
	for _, s := range Services() {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownService, raw)
}

// String is make ServiceID a string.
func (s ServiceID) String() string {
	return string(s)
}
