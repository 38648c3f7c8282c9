package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upmon/upmon/internal/store"
	api "github.com/upmon/upmon/lib-upmon"
)

func ms(n int64) *int64 {
	return &n
}

func TestStore_history(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.NewMemoryKV())
	defer s.Close()

	h, err := s.History(ctx, api.ServiceFrontend)
	require.NoError(t, err)
	assert.Empty(t, h, "a never-written service reads as empty history")

	want := []api.HistoryEntry{
		{Date: "2026-08-28", Status: api.DayPartial, ResponseTime: ms(150), Checks: 3},
		{Date: "2026-08-29", Status: api.DayOperational, ResponseTime: nil, Checks: 1},
	}
	require.NoError(t, s.PutHistory(ctx, api.ServiceFrontend, want))

	got, err := s.History(ctx, api.ServiceFrontend)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// each service has its own key
	h, err = s.History(ctx, api.ServiceBackend)
	require.NoError(t, err)
	assert.Empty(t, h)
}

func TestStore_latest(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.NewMemoryKV())
	defer s.Close()

	latest, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Zero(t, latest.Timestamp)
	assert.Empty(t, latest.Checks)

	want := api.Snapshot{
		Checks: map[api.ServiceID]api.CheckResult{
			api.ServiceBackend: {Status: api.StatusDegraded, ResponseTime: ms(1500)},
		},
		Timestamp: 1787961600000,
	}
	require.NoError(t, s.PutLatest(ctx, want))

	got, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// a put replaces the snapshot wholesale
	next := api.Snapshot{
		Checks: map[api.ServiceID]api.CheckResult{
			api.ServiceFrontend: {Status: api.StatusOperational, ResponseTime: ms(90)},
		},
		Timestamp: 1787965200000,
	}
	require.NoError(t, s.PutLatest(ctx, next))

	got, err = s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, next, got)
	assert.NotContains(t, got.Checks, api.ServiceBackend)
}

func TestStore_errorSurface(t *testing.T) {
	s := store.New(store.NewMemoryKV())
	defer s.Close()

	healthy, messages := s.Errors()
	assert.True(t, healthy)
	assert.Empty(t, messages)

	s.ReportInternalError("history:backend", "store unavailable")
	s.ReportInternalError("checker", "dial timeout")

	healthy, messages = s.Errors()
	assert.False(t, healthy)
	assert.Equal(t, []string{"checker: dial timeout", "history:backend: store unavailable"}, messages)

	s.ReportHealthy("history:backend")
	s.ReportHealthy("checker")

	healthy, messages = s.Errors()
	assert.True(t, healthy)
	assert.Empty(t, messages)
}
