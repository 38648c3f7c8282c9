package main

import (
	"errors"
	"strings"
	"testing"

	api "github.com/upmon/upmon/lib-upmon"
)

func TestParseTargets(t *testing.T) {
	targets, err := ParseTargets([]string{
		"frontend=https://Example.COM",
		"backend=http://api.internal/health",
		"database=tcp://db.internal:5432",
	})
	if err != nil {
		t.Fatalf("failed to parse: %s", err)
	}

	if len(targets) != 3 {
		t.Fatalf("unexpected target count: %d", len(targets))
	}

	tests := []struct {
		service api.ServiceID
		target  string
	}{
		{api.ServiceFrontend, "https://example.com/"},
		{api.ServiceBackend, "http://api.internal/health"},
		{api.ServiceDatabase, "tcp://db.internal:5432"},
	}

	for i, tt := range tests {
		if targets[i].Service != tt.service {
			t.Errorf("%d: unexpected service: %s", i, targets[i].Service)
		}
		if got := targets[i].Prober.Target().String(); got != tt.target {
			t.Errorf("%d: unexpected target: %s", i, got)
		}
	}
}

func TestParseTargets_errors(t *testing.T) {
	_, err := ParseTargets([]string{
		"frontend",
		"mainframe=https://example.com",
		"backend=gopher://example.com",
		"database=tcp://db.internal:5432",
		"database=tcp://other.internal:5432",
	})
	if err == nil {
		t.Fatalf("expected an error")
	}

	if !errors.Is(err, api.ErrInvalidArgument) {
		t.Errorf("unexpected error kind: %s", err)
	}

	msg := err.Error()
	for _, fragment := range []string{
		`"frontend": expected service=target-url`,
		"mainframe",
		"unsupported scheme",
		"duplicate service",
	} {
		if !strings.Contains(msg, fragment) {
			t.Errorf("the message should mention %q:\n%s", fragment, msg)
		}
	}
}
