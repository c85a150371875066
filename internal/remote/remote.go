// Package remote synchronises progress and journals with a per-user remote
// copy. The core only merges what the remote supplies; conflicts between two
// versions of the same journal are not resolved.
package remote

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/abhisek/hagios/internal/journal"
)

// ErrNoUser is returned when a sync is attempted without a user ID.
var ErrNoUser = errors.New("remote: user id is required")

// Snapshot is everything the remote holds for one user.
type Snapshot struct {
	Completed []string
	Journals  map[string]journal.Record
}

// Remote is a per-user remote copy of the completed set and journals.
type Remote interface {
	Fetch(ctx context.Context, userID string) (Snapshot, error)
	PushProgress(ctx context.Context, userID string, completed []string) error
	PushJournal(ctx context.Context, userID, moduleID string, rec journal.Record) error
}

// Memory is an in-process Remote.
type Memory struct {
	mu    sync.Mutex
	users map[string]*Snapshot
	// FailPush, when set, is returned by every push.
	FailPush error
}

var _ Remote = (*Memory)(nil)

// NewMemory returns an empty in-memory remote.
func NewMemory() *Memory {
	return &Memory{users: map[string]*Snapshot{}}
}

// Seed replaces the stored snapshot for userID.
func (m *Memory) Seed(userID string, snap Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := Snapshot{
		Completed: slices.Clone(snap.Completed),
		Journals:  maps.Clone(snap.Journals),
	}
	if cp.Journals == nil {
		cp.Journals = map[string]journal.Record{}
	}
	m.users[userID] = &cp
}

func (m *Memory) Fetch(_ context.Context, userID string) (Snapshot, error) {
	if userID == "" {
		return Snapshot{}, ErrNoUser
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.users[userID]
	if !ok {
		return Snapshot{Journals: map[string]journal.Record{}}, nil
	}
	return Snapshot{
		Completed: slices.Clone(snap.Completed),
		Journals:  maps.Clone(snap.Journals),
	}, nil
}

func (m *Memory) PushProgress(_ context.Context, userID string, completed []string) error {
	if userID == "" {
		return ErrNoUser
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailPush != nil {
		return m.FailPush
	}
	snap := m.user(userID)
	for _, id := range completed {
		if !slices.Contains(snap.Completed, id) {
			snap.Completed = append(snap.Completed, id)
		}
	}
	return nil
}

func (m *Memory) PushJournal(_ context.Context, userID, moduleID string, rec journal.Record) error {
	if userID == "" {
		return ErrNoUser
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailPush != nil {
		return m.FailPush
	}
	m.user(userID).Journals[moduleID] = rec
	return nil
}

func (m *Memory) user(userID string) *Snapshot {
	snap, ok := m.users[userID]
	if !ok {
		snap = &Snapshot{Journals: map[string]journal.Record{}}
		m.users[userID] = snap
	}
	return snap
}
