package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// KV is a durable string-keyed record store with local-storage semantics.
// Reads never fail: a missing or unreadable key is reported as absent.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool)

	// Set stores value under key. Failures are *StorageError.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Failures are *StorageError.
	Remove(ctx context.Context, key string) error

	// Keys lists stored keys that start with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// StorageError reports a failed write. Callers treat it as non-fatal: the
// in-memory mutation stands, it just won't survive a restart.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorageError reports whether err wraps a *StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// ErrQuotaExceeded is returned by Memory when its write quota is used up.
var ErrQuotaExceeded = errors.New("quota exceeded")

// Memory is an in-process KV. It backs tests and ephemeral runs.
type Memory struct {
	mu     sync.Mutex
	data   map[string]string
	quota  int // max number of keys; 0 = unlimited
	failOn map[string]bool
}

var _ KV = (*Memory)(nil)

// NewMemory returns an empty in-memory KV.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// WithQuota limits the number of distinct keys the store accepts.
func (m *Memory) WithQuota(n int) *Memory {
	m.quota = n
	return m
}

// FailWrites makes every write to key fail with ErrQuotaExceeded.
func (m *Memory) FailWrites(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn == nil {
		m.failOn = make(map[string]bool)
	}
	m.failOn[key] = true
}

func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn[key] {
		return &StorageError{Op: "set", Key: key, Err: ErrQuotaExceeded}
	}
	if _, exists := m.data[key]; !exists && m.quota > 0 && len(m.data) >= m.quota {
		return &StorageError{Op: "set", Key: key, Err: ErrQuotaExceeded}
	}
	m.data[key] = value
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn[key] {
		return &StorageError{Op: "remove", Key: key, Err: ErrQuotaExceeded}
	}
	delete(m.data, key)
	return nil
}

func (m *Memory) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
