package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/goccy/go-json"
	api "github.com/upmon/upmon/lib-upmon"
)

const (
	historyKeyPrefix = "uptime:"
	latestKey        = "latest"
)

// KV is the opaque key-value backend the store persists into.
//
// There is no transaction and no atomic read-modify-write guarantee; the
// store performs plain get/put round trips and accepts the resulting
// lost-update window between rare concurrent writers.
type KV interface {
	// Get returns the value for key, or (nil, nil) when the key is
	// absent.
	Get(ctx context.Context, key string) ([]byte, error)

	Put(ctx context.Context, key string, value []byte) error

	Close() error
}

// Store persists per-service day histories and the latest snapshot into a
// KV backend, and keeps the internal-error surface for /healthz.
type Store struct {
	kv KV

	mu   sync.Mutex
	errs map[string]string
}

// New creates a Store on top of a KV backend.
func New(kv KV) *Store {
	return &Store{
		kv:   kv,
		errs: make(map[string]string),
	}
}

// Open opens a Store backed by a sqlite database at path.
//
// Pass "-" (or an empty path) to keep everything in memory; that mode is
// for local runs and tests, nothing survives a restart.
func Open(path string) (*Store, error) {
	if path == "" || path == "-" {
		return New(NewMemoryKV()), nil
	}

	kv, err := OpenSqliteKV(path)
	if err != nil {
		return nil, err
	}
	return New(kv), nil
}

// Close closes the underlying KV backend.
func (s *Store) Close() error {
	return s.kv.Close()
}

func historyKey(service api.ServiceID) string {
	return historyKeyPrefix + service.String()
}

// History fetches the day history of one service, oldest first.
//
// A service that was never written reads as an empty history, never an
// error.
func (s *Store) History(ctx context.Context, service api.ServiceID) ([]api.HistoryEntry, error) {
	raw, err := s.kv.Get(ctx, historyKey(service))
	if err != nil {
		return nil, fmt.Errorf("failed to read history of %s: %w", service, err)
	}
	if raw == nil {
		return nil, nil
	}

	var history []api.HistoryEntry
	if err := json.Unmarshal(raw, &history); err != nil {
		return nil, fmt.Errorf("failed to parse history of %s: %w", service, err)
	}
	return history, nil
}

// PutHistory overwrites the day history of one service.
func (s *Store) PutHistory(ctx context.Context, service api.ServiceID, history []api.HistoryEntry) error {
	raw, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode history of %s: %w", service, err)
	}
	if err := s.kv.Put(ctx, historyKey(service), raw); err != nil {
		return fmt.Errorf("failed to write history of %s: %w", service, err)
	}
	return nil
}

// Latest fetches the latest snapshot. An absent snapshot reads as an
// empty one.
func (s *Store) Latest(ctx context.Context) (api.Snapshot, error) {
	raw, err := s.kv.Get(ctx, latestKey)
	if err != nil {
		return api.Snapshot{}, fmt.Errorf("failed to read latest snapshot: %w", err)
	}
	if raw == nil {
		return api.Snapshot{}, nil
	}

	var snapshot api.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return api.Snapshot{}, fmt.Errorf("failed to parse latest snapshot: %w", err)
	}
	return snapshot, nil
}

// PutLatest overwrites the latest snapshot wholesale.
func (s *Store) PutLatest(ctx context.Context, snapshot api.Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode latest snapshot: %w", err)
	}
	if err := s.kv.Put(ctx, latestKey, raw); err != nil {
		return fmt.Errorf("failed to write latest snapshot: %w", err)
	}
	return nil
}

// ReportInternalError reports a failure of an internal unit of work.
// The latest message per scope shows up on /healthz until the scope
// reports healthy again.
func (s *Store) ReportInternalError(scope, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errs[scope] = message
}

// ReportHealthy clears the internal-error surface of one scope.
func (s *Store) ReportHealthy(scope string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.errs, scope)
}

// Errors returns if the store is healthy or not, and the error messages
// of the unhealthy scopes.
func (s *Store) Errors() (healthy bool, messages []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for scope, msg := range s.errs {
		messages = append(messages, scope+": "+msg)
	}
	sort.Strings(messages)

	return len(messages) == 0, messages
}
