package scheme

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	api "github.com/upmon/upmon/lib-upmon"
)

const httpRedirectMax = 10

var (
	ErrRedirectLoopDetected = errors.New("redirect loop detected")

	httpClient = &http.Client{
		Transport: &http.Transport{
			DisableKeepAlives:     true,
			ResponseHeaderTimeout: probeTimeout,
		},
		CheckRedirect: checkHTTPRedirect,
	}
)

func checkHTTPRedirect(req *http.Request, via []*http.Request) error {
	if len(via) > httpRedirectMax {
		return ErrRedirectLoopDetected
	}
	return nil
}

// HTTPProbe checks a http/https target with a GET request.
// A 2xx answer is operational (degraded when slower than
// DegradedLatency), any other answer is down, and a name that does not
// resolve is unknown.
type HTTPProbe struct {
	target *url.URL
}

// NewHTTPProbe makes a new HTTPProbe.
func NewHTTPProbe(u *url.URL) (HTTPProbe, error) {
	ucopy := *u
	ucopy.Host = strings.ToLower(u.Host)
	if ucopy.Hostname() == "" {
		return HTTPProbe{}, ErrMissingHost
	}
	if ucopy.Path == "" {
		ucopy.Path = "/"
	}

	return HTTPProbe{target: &ucopy}, nil
}

// Target implements the Prober interface.
func (p HTTPProbe) Target() *url.URL {
	return p.target
}

// Probe implements the Prober interface.
func (p HTTPProbe) Probe(ctx context.Context) api.CheckResult {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.target.String(), nil)
	if err != nil {
		return api.CheckResult{Status: api.StatusUnknown}
	}
	req.Header.Set("User-Agent", HTTPUserAgent)

	st := time.Now()
	resp, err := httpClient.Do(req)
	d := time.Since(st)

	if err != nil {
		dnsErr := &net.DNSError{}
		if errors.As(err, &dnsErr) {
			return api.CheckResult{Status: api.StatusUnknown}
		}
		return api.CheckResult{Status: api.StatusDown}
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return api.CheckResult{Status: api.StatusDown, ResponseTime: millis(d)}
	}

	return api.CheckResult{Status: byLatency(d), ResponseTime: millis(d)}
}
