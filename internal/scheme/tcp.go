package scheme

import (
	"context"
	"errors"
	"net"
	"net/url"
	"time"

	api "github.com/upmon/upmon/lib-upmon"
)

// TCPProbe checks a target by opening a TCP connection.
// A successful dial is operational (degraded when slower than
// DegradedLatency), a refused or timed out dial is down, and an address
// that does not resolve is unknown.
type TCPProbe struct {
	target *url.URL
}

// NewTCPProbe makes a new TCPProbe.
func NewTCPProbe(u *url.URL) (TCPProbe, error) {
	p := TCPProbe{&url.URL{Scheme: "tcp", Host: u.Host}}
	if u.Host == "" {
		p.target.Host = u.Opaque
	}

	if p.target.Hostname() == "" {
		return TCPProbe{}, ErrMissingHost
	}
	if p.target.Port() == "" {
		return TCPProbe{}, ErrMissingPort
	}

	return p, nil
}

// Target implements the Prober interface.
func (p TCPProbe) Target() *url.URL {
	return p.target
}

// Probe implements the Prober interface.
func (p TCPProbe) Probe(ctx context.Context) api.CheckResult {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	var dialer net.Dialer

	st := time.Now()
	conn, err := dialer.DialContext(ctx, "tcp", p.target.Host)
	d := time.Since(st)

	if err != nil {
		dnsErr := &net.DNSError{}
		addrErr := &net.AddrError{}
		if errors.As(err, &dnsErr) || errors.As(err, &addrErr) {
			return api.CheckResult{Status: api.StatusUnknown}
		}
		return api.CheckResult{Status: api.StatusDown}
	}
	conn.Close()

	return api.CheckResult{Status: byLatency(d), ResponseTime: millis(d)}
}
