package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/upmon/upmon/internal/checker"
	"github.com/upmon/upmon/internal/scheme"
	"github.com/upmon/upmon/internal/umerr"
	api "github.com/upmon/upmon/lib-upmon"
)

// ParseTargets parses positional service=target pairs into checker
// targets, for example:
//
//	frontend=https://example.com backend=https://api.example.com database=tcp://db.internal:5432
//
// Services without a pair are not probed; the server records them as
// unknown each cycle.
func ParseTargets(args []string) ([]checker.Target, error) {
	var targets []checker.Target
	var errs []error

	seen := make(map[api.ServiceID]bool)

	for _, arg := range args {
		name, rawURL, ok := strings.Cut(arg, "=")
		if !ok {
			errs = append(errs, fmt.Errorf("%q: expected service=target-url", arg))
			continue
		}

		service, err := api.ParseServiceID(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[service] {
			errs = append(errs, fmt.Errorf("%s: duplicate service", service))
			continue
		}

		u, err := url.Parse(rawURL)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %s", service, err))
			continue
		}

		p, err := scheme.NewProber(u)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %s: %s", service, err, rawURL))
			continue
		}

		seen[service] = true
		targets = append(targets, checker.Target{Service: service, Prober: p})
	}

	if len(errs) > 0 {
		return nil, umerr.List{What: api.ErrInvalidArgument, Children: errs}
	}

	return targets, nil
}
