package history_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/upmon/upmon/internal/history"
	"github.com/upmon/upmon/internal/store"
	api "github.com/upmon/upmon/lib-upmon"
)

func TestRecordBatch(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.NewMemoryKV())
	defer s.Close()

	batch := api.Batch{
		Checks: map[api.ServiceID]api.CheckResult{
			api.ServiceFrontend: {Status: api.StatusOperational, ResponseTime: ms(120)},
			api.ServiceBackend:  {Status: api.StatusDown},
		},
		Timestamp: 1787961600000, // 2026-08-29T00:00:00Z
	}

	if err := history.RecordBatch(ctx, s, batch); err != nil {
		t.Fatalf("failed to record batch: %s", err)
	}

	latest, err := s.Latest(ctx)
	if err != nil {
		t.Fatalf("failed to read latest: %s", err)
	}
	if latest.Timestamp != batch.Timestamp {
		t.Errorf("unexpected latest timestamp: %d", latest.Timestamp)
	}
	if len(latest.Checks) != 2 {
		t.Errorf("unexpected latest checks: %v", latest.Checks)
	}

	tests := []struct {
		service api.ServiceID
		status  api.DayStatus
	}{
		{api.ServiceFrontend, api.DayOperational},
		{api.ServiceBackend, api.DayDown},
		{api.ServiceDatabase, api.DayOperational}, // synthetic unknown
	}

	for _, tt := range tests {
		h, err := s.History(ctx, tt.service)
		if err != nil {
			t.Fatalf("failed to read history of %s: %s", tt.service, err)
		}
		if len(h) != 1 {
			t.Fatalf("%s: unexpected history length: %d", tt.service, len(h))
		}
		if h[0].Date != "2026-08-29" {
			t.Errorf("%s: unexpected date: %s", tt.service, h[0].Date)
		}
		if h[0].Status != tt.status {
			t.Errorf("%s: unexpected status: %s", tt.service, h[0].Status)
		}
		if h[0].Checks != 1 {
			t.Errorf("%s: unexpected checks: %d", tt.service, h[0].Checks)
		}
	}

	// a second batch on the same day replaces latest wholesale
	second := api.Batch{
		Checks: map[api.ServiceID]api.CheckResult{
			api.ServiceBackend: {Status: api.StatusOperational, ResponseTime: ms(90)},
		},
		Timestamp: 1787965200000,
	}
	if err := history.RecordBatch(ctx, s, second); err != nil {
		t.Fatalf("failed to record second batch: %s", err)
	}

	latest, err = s.Latest(ctx)
	if err != nil {
		t.Fatalf("failed to read latest: %s", err)
	}
	if _, ok := latest.Checks[api.ServiceFrontend]; ok {
		t.Errorf("latest snapshot was merged, not replaced: %v", latest.Checks)
	}

	h, err := s.History(ctx, api.ServiceBackend)
	if err != nil {
		t.Fatalf("failed to read history: %s", err)
	}
	if len(h) != 1 || h[0].Checks != 2 || h[0].Status != api.DayDown {
		t.Errorf("unexpected merged backend entry: %+v", h[0])
	}
}

// faultyKV fails every operation that touches keys with a given prefix.
type faultyKV struct {
	store.KV
	prefix string
}

func (kv faultyKV) Get(ctx context.Context, key string) ([]byte, error) {
	if strings.HasPrefix(key, kv.prefix) {
		return nil, errors.New("store unavailable")
	}
	return kv.KV.Get(ctx, key)
}

func (kv faultyKV) Put(ctx context.Context, key string, value []byte) error {
	if strings.HasPrefix(key, kv.prefix) {
		return errors.New("store unavailable")
	}
	return kv.KV.Put(ctx, key, value)
}

func TestRecordBatch_serviceFailureIsIsolated(t *testing.T) {
	ctx := context.Background()
	s := store.New(faultyKV{KV: store.NewMemoryKV(), prefix: "uptime:frontend"})
	defer s.Close()

	batch := api.Batch{
		Checks: map[api.ServiceID]api.CheckResult{
			api.ServiceFrontend: {Status: api.StatusOperational},
			api.ServiceBackend:  {Status: api.StatusOperational},
		},
		Timestamp: 1787961600000,
	}

	if err := history.RecordBatch(ctx, s, batch); err != nil {
		t.Fatalf("a single service failure should not fail the batch: %s", err)
	}

	// the other services still got written
	for _, service := range []api.ServiceID{api.ServiceBackend, api.ServiceDatabase} {
		h, err := s.History(ctx, service)
		if err != nil {
			t.Fatalf("failed to read history of %s: %s", service, err)
		}
		if len(h) != 1 {
			t.Errorf("%s: unexpected history length: %d", service, len(h))
		}
	}

	if healthy, messages := s.Errors(); healthy {
		t.Errorf("store should report the failed service, got healthy")
	} else if len(messages) != 1 || !strings.Contains(messages[0], "frontend") {
		t.Errorf("unexpected error surface: %v", messages)
	}
}

func TestRecordBatch_latestFailureFailsTheBatch(t *testing.T) {
	ctx := context.Background()
	s := store.New(faultyKV{KV: store.NewMemoryKV(), prefix: "latest"})
	defer s.Close()

	err := history.RecordBatch(ctx, s, api.Batch{Timestamp: 1787961600000})
	if err == nil {
		t.Fatalf("expected an error when the snapshot write fails")
	}
}
