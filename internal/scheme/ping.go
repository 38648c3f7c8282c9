package scheme

import (
	"context"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/macrat/go-parallel-pinger"
	api "github.com/upmon/upmon/lib-upmon"
)

const (
	pingPackets  = 3
	pingInterval = 500 * time.Millisecond
)

var (
	pingerOnce sync.Once
	pingerErr  error
	pingerV4   *pinger.Pinger
	pingerV6   *pinger.Pinger
)

// startPingers starts the shared v4/v6 pingers on first use.
// Ping sockets usually need extra privileges, so the error is kept and
// reported by every probe instead of crashing the process.
func startPingers() error {
	pingerOnce.Do(func() {
		v4 := pinger.NewIPv4()
		v6 := pinger.NewIPv6()

		ctx := context.Background()
		if err := v4.Start(ctx); err != nil {
			pingerErr = err
			return
		}
		if err := v6.Start(ctx); err != nil {
			pingerErr = err
			return
		}

		pingerV4 = v4
		pingerV6 = v6
	})
	return pingerErr
}

func pingerFor(target net.IP) *pinger.Pinger {
	if target.To4() != nil {
		return pingerV4
	}
	return pingerV6
}

// PingProbe checks a target with ICMP echo.
// No packet loss is operational, partial loss is degraded, total loss is
// down, and a name that does not resolve is unknown. The response time is
// the average round trip.
type PingProbe struct {
	target *url.URL
}

// NewPingProbe makes a new PingProbe.
func NewPingProbe(u *url.URL) (PingProbe, error) {
	host := u.Opaque
	if host == "" {
		host = u.Hostname()
	}
	if host == "" {
		return PingProbe{}, ErrMissingHost
	}

	return PingProbe{&url.URL{Scheme: "ping", Opaque: host}}, nil
}

// Target implements the Prober interface.
func (p PingProbe) Target() *url.URL {
	return p.target
}

// Probe implements the Prober interface.
func (p PingProbe) Probe(ctx context.Context) api.CheckResult {
	if err := startPingers(); err != nil {
		return api.CheckResult{Status: api.StatusUnknown}
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	addr, err := net.DefaultResolver.LookupIPAddr(ctx, p.target.Opaque)
	if err != nil || len(addr) == 0 {
		return api.CheckResult{Status: api.StatusUnknown}
	}

	target := &net.IPAddr{IP: addr[0].IP, Zone: addr[0].Zone}

	result, err := pingerFor(target.IP).Ping(ctx, target, pingPackets, pingInterval)
	if err != nil {
		return api.CheckResult{Status: api.StatusDown}
	}

	switch {
	case result.Recv == 0:
		return api.CheckResult{Status: api.StatusDown}
	case result.Loss > 0:
		return api.CheckResult{Status: api.StatusDegraded, ResponseTime: millis(result.AvgRTT)}
	default:
		return api.CheckResult{Status: byLatency(result.AvgRTT), ResponseTime: millis(result.AvgRTT)}
	}
}
