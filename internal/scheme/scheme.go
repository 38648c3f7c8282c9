package scheme

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	api "github.com/upmon/upmon/lib-upmon"
)

var (
	// HTTPUserAgent is the User-Agent header the http prober sends.
	HTTPUserAgent = "upmon health check"

	// DegradedLatency is the threshold above which an otherwise healthy
	// check is reported as degraded.
	DegradedLatency = 1 * time.Second
)

// probeTimeout bounds a single probe. Without it a stuck target would
// hold its check slot until the client default gave up.
const probeTimeout = 10 * time.Second

var (
	ErrUnsupportedScheme = errors.New("unsupported scheme")
	ErrMissingHost       = errors.New("missing target host")
	ErrMissingPort       = errors.New("missing target port number")
)

// Prober checks one target and interprets the outcome as a CheckResult.
type Prober interface {
	// Target returns the normalized target URL.
	Target() *url.URL

	// Probe checks the target once. It never returns an error; failures
	// are encoded in the result's status.
	Probe(ctx context.Context) api.CheckResult
}

// NewProber makes a new Prober for the target URL.
// The probe type is selected by the URL scheme.
func NewProber(u *url.URL) (Prober, error) {
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		p, err := NewHTTPProbe(u)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "tcp":
		p, err := NewTCPProbe(u)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "ping":
		p, err := NewPingProbe(u)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, ErrUnsupportedScheme
	}
}

// byLatency grades a successful check: operational when the target
// answered within DegradedLatency, degraded when slower.
func byLatency(d time.Duration) api.Status {
	if d > DegradedLatency {
		return api.StatusDegraded
	}
	return api.StatusOperational
}

func millis(d time.Duration) *int64 {
	ms := d.Milliseconds()
	return &ms
}
