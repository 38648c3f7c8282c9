package testutil

import (
	"net/http/httptest"
	"testing"

	"github.com/upmon/upmon/internal/endpoint"
	"github.com/upmon/upmon/internal/store"
)

// StartTestServer starts an upmon HTTP server on an in-memory store.
// Pass an empty token to run the record endpoint in open mode.
func StartTestServer(t testing.TB, token string) (*httptest.Server, *store.Store) {
	t.Helper()

	s := NewStore(t)

	srv := httptest.NewServer(endpoint.New(s, token))
	t.Cleanup(srv.Close)

	return srv, s
}
