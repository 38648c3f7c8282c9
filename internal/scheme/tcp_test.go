package scheme_test

import (
	"context"
	"net"
	"testing"

	"github.com/upmon/upmon/internal/testutil"
	api "github.com/upmon/upmon/lib-upmon"
)

func TestTCPProbe(t *testing.T) {
	ln, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		t.Fatalf("failed to listen: %s", err)
	}
	defer ln.Close()

	p := testutil.NewProber(t, "tcp://"+ln.Addr().String())

	result := p.Probe(context.Background())
	if result.Status != api.StatusOperational {
		t.Errorf("unexpected status: %s", result.Status)
	}
	if result.ResponseTime == nil {
		t.Errorf("response time is missing")
	}
}

func TestTCPProbe_refused(t *testing.T) {
	ln, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		t.Fatalf("failed to listen: %s", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	p := testutil.NewProber(t, "tcp://"+addr)

	result := p.Probe(context.Background())
	if result.Status != api.StatusDown {
		t.Errorf("unexpected status: %s", result.Status)
	}
}
