package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upmon/upmon/internal/store"
)

func TestSqliteKV(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "upmon.db")

	kv, err := store.OpenSqliteKV(path)
	require.NoError(t, err)

	got, err := kv.Get(ctx, "uptime:frontend")
	require.NoError(t, err)
	assert.Nil(t, got, "an absent key reads as nil, not an error")

	require.NoError(t, kv.Put(ctx, "uptime:frontend", []byte(`[{"date":"2026-08-29"}]`)))
	require.NoError(t, kv.Put(ctx, "latest", []byte(`{"timestamp":1}`)))

	got, err = kv.Get(ctx, "uptime:frontend")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"date":"2026-08-29"}]`, string(got))

	// overwrite
	require.NoError(t, kv.Put(ctx, "latest", []byte(`{"timestamp":2}`)))
	got, err = kv.Get(ctx, "latest")
	require.NoError(t, err)
	assert.JSONEq(t, `{"timestamp":2}`, string(got))

	require.NoError(t, kv.Close())

	// values survive a reopen
	kv, err = store.OpenSqliteKV(path)
	require.NoError(t, err)
	defer kv.Close()

	got, err = kv.Get(ctx, "latest")
	require.NoError(t, err)
	assert.JSONEq(t, `{"timestamp":2}`, string(got))
}

func TestOpen(t *testing.T) {
	s, err := store.Open("-")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = store.Open(filepath.Join(t.TempDir(), "upmon.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())
}
