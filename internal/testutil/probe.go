package testutil

import (
	"net/url"
	"testing"

	"github.com/upmon/upmon/internal/scheme"
)

// NewProber makes a Prober for the target, failing the test on error.
func NewProber(t testing.TB, target string) scheme.Prober {
	t.Helper()

	u, err := url.Parse(target)
	if err != nil {
		t.Fatalf("failed to parse target: %s", err)
	}

	p, err := scheme.NewProber(u)
	if err != nil {
		t.Fatalf("failed to create probe: %s", err)
	}

	return p
}
