package testutil

import (
	"testing"

	"github.com/upmon/upmon/internal/store"
)

// NewStore makes an in-memory Store that is closed when the test ends.
func NewStore(t testing.TB) *store.Store {
	t.Helper()

	s := store.New(store.NewMemoryKV())
	t.Cleanup(func() {
		s.Close()
	})

	return s
}
