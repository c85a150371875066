package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/abhisek/hagios/internal/catalog"
	"github.com/abhisek/hagios/internal/notify"
	"github.com/abhisek/hagios/internal/store"
)

// Key is the storage key holding the completed set as a JSON array.
const Key = "modulosConcluidos"

// ErrModuleLocked is returned when completing a module whose predecessor is
// not completed.
var ErrModuleLocked = errors.New("module is locked")

// Changed is published when the completed set grows.
type Changed struct {
	notify.Meta
	ModuleID  string   // set by MarkCompleted, empty after a merge
	Added     []string // IDs that were not in the set before
	Completed []string // the full set after the change
}

// Tracker owns the completed set. MarkCompleted and MergeRemote are its only
// writers besides Reset.
type Tracker struct {
	mu        sync.RWMutex
	kv        store.KV
	logger    *slog.Logger
	completed []string // insertion order, deduplicated
	set       map[string]bool
	changed   notify.Hub[Changed]
}

// NewTracker loads the completed set from kv. A missing or malformed value
// yields an empty set; malformed values are logged.
func NewTracker(ctx context.Context, kv store.KV, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	t := &Tracker{kv: kv, logger: logger, set: map[string]bool{}}

	raw, ok := kv.Get(ctx, Key)
	if !ok || raw == "" {
		return t
	}
	ids, err := catalog.DecodeIDs([]byte(raw))
	if err != nil {
		logger.WarnContext(ctx, "discarding malformed completed set", "error", err)
		return t
	}
	for _, id := range ids {
		t.add(id)
	}
	return t
}

// OnProgressChanged registers fn to run after the completed set grows.
func (t *Tracker) OnProgressChanged(fn func(Changed)) (unsubscribe func()) {
	return t.changed.Subscribe(fn)
}

// StatusOf returns the derived status of id.
func (t *Tracker) StatusOf(c catalog.Catalog, id string) (Status, error) {
	i, err := c.IndexOf(id)
	if err != nil {
		return StatusLocked, err
	}
	return t.Statuses(c)[i], nil
}

// Statuses returns the status of every module in catalog order.
func (t *Tracker) Statuses(c catalog.Catalog) []Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Derive(c.IDs(), t.set)
}

// MarkCompleted adds id to the completed set and persists it. Completing an
// already completed module is a no-op. The completion gate is the caller's
// responsibility.
//
// A storage failure keeps the in-memory change, is logged and is returned
// so the caller can warn that progress will not survive a restart.
func (t *Tracker) MarkCompleted(ctx context.Context, c catalog.Catalog, id string) error {
	status, err := t.StatusOf(c, id)
	if err != nil {
		return err
	}
	switch status {
	case StatusLocked:
		return fmt.Errorf("%w: %q", ErrModuleLocked, id)
	case StatusCompleted:
		return nil
	}

	t.mu.Lock()
	t.add(id)
	snapshot := slices.Clone(t.completed)
	t.mu.Unlock()

	err = t.persist(ctx, snapshot)
	t.logger.InfoContext(ctx, "module completed", "module", id, "completed", len(snapshot))
	t.changed.Publish(Changed{
		Meta:      notify.NewMeta(),
		ModuleID:  id,
		Added:     []string{id},
		Completed: snapshot,
	})
	return err
}

// MergeRemote unions ids into the completed set and writes it back. New IDs
// are appended in sorted order, so merges commute. Nothing is written or
// published when the set does not grow.
func (t *Tracker) MergeRemote(ctx context.Context, ids []string) error {
	incoming := slices.Clone(ids)
	slices.Sort(incoming)

	t.mu.Lock()
	var added []string
	for _, id := range incoming {
		if id != "" && t.add(id) {
			added = append(added, id)
		}
	}
	snapshot := slices.Clone(t.completed)
	t.mu.Unlock()

	if len(added) == 0 {
		return nil
	}

	err := t.persist(ctx, snapshot)
	t.logger.InfoContext(ctx, "merged remote progress", "added", len(added), "completed", len(snapshot))
	t.changed.Publish(Changed{Meta: notify.NewMeta(), Added: added, Completed: snapshot})
	return err
}

// PercentComplete returns the share of catalog modules that are completed,
// in [0, 100]. IDs not in the catalog are not counted.
func (t *Tracker) PercentComplete(c catalog.Catalog) float64 {
	if c.Len() == 0 {
		return 0
	}
	return float64(t.CompletedCount(c)) / float64(c.Len()) * 100
}

// CompletedCount returns how many catalog modules are in the completed set.
// It is the numerator of PercentComplete.
func (t *Tracker) CompletedCount(c catalog.Catalog) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	done := 0
	for _, id := range c.IDs() {
		if t.set[id] {
			done++
		}
	}
	return done
}

// Completed returns the completed IDs in the order they were added.
func (t *Tracker) Completed() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.completed)
}

// IsCompleted reports whether id is in the completed set.
func (t *Tracker) IsCompleted(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.set[id]
}

// Reset empties the completed set and removes it from storage.
func (t *Tracker) Reset(ctx context.Context) error {
	t.mu.Lock()
	t.completed = nil
	t.set = map[string]bool{}
	t.mu.Unlock()

	if err := t.kv.Remove(ctx, Key); err != nil {
		t.logger.WarnContext(ctx, "progress reset not persisted", "error", err)
		return err
	}
	return nil
}

// add reports whether id was new. Callers hold mu.
func (t *Tracker) add(id string) bool {
	if t.set[id] {
		return false
	}
	t.set[id] = true
	t.completed = append(t.completed, id)
	return true
}

func (t *Tracker) persist(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode completed set: %w", err)
	}
	if err := t.kv.Set(ctx, Key, string(b)); err != nil {
		t.logger.WarnContext(ctx, "progress not persisted", "error", err)
		return err
	}
	return nil
}
