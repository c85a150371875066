// Package journal persists per-module reflection journals.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/abhisek/hagios/internal/notify"
	"github.com/abhisek/hagios/internal/store"
)

// KeyPrefix prefixes every persisted journal key.
const KeyPrefix = "diario_modulo_"

// Key returns the storage key for a module's journal.
func Key(moduleID string) string {
	return KeyPrefix + moduleID
}

// Saved is published after every successful or storage-failed save.
type Saved struct {
	notify.Meta
	ModuleID string
	Record   Record
}

// Store loads and saves journal records. Records for different modules are
// independent.
//
// Records saved or cleared during the process lifetime are kept in memory
// and take precedence over storage, so a failed write still holds for the
// rest of the session.
type Store struct {
	kv     store.KV
	logger *slog.Logger
	saved  notify.Hub[Saved]

	mu    sync.RWMutex
	local map[string]entry
}

// entry is the in-memory state of one module's journal. A cleared entry
// hides whatever storage still holds.
type entry struct {
	rec     Record
	cleared bool
}

// NewStore returns a journal store over kv. A nil logger discards output.
func NewStore(kv store.KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{kv: kv, logger: logger, local: map[string]entry{}}
}

func (s *Store) cached(moduleID string) (entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.local[moduleID]
	return e, ok
}

func (s *Store) keep(moduleID string, e entry) {
	s.mu.Lock()
	s.local[moduleID] = e
	s.mu.Unlock()
}

// OnJournalSaved registers fn to run after each Save.
func (s *Store) OnJournalSaved(fn func(Saved)) (unsubscribe func()) {
	return s.saved.Subscribe(fn)
}

// Load returns the stored record, or the zero record when none exists or
// the stored value cannot be decoded.
func (s *Store) Load(ctx context.Context, moduleID string) Record {
	if e, ok := s.cached(moduleID); ok {
		if e.cleared {
			return Record{}
		}
		return e.rec
	}
	raw, ok := s.kv.Get(ctx, Key(moduleID))
	if !ok || raw == "" {
		return Record{}
	}
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		s.logger.WarnContext(ctx, "discarding malformed journal",
			"module", moduleID, "error", err)
		return Record{}
	}
	return rec
}

// Has reports whether a journal is stored for moduleID.
func (s *Store) Has(ctx context.Context, moduleID string) bool {
	if e, ok := s.cached(moduleID); ok {
		return !e.cleared
	}
	_, ok := s.kv.Get(ctx, Key(moduleID))
	return ok
}

// Save overwrites the module's journal and notifies subscribers. A storage
// failure is logged and returned; the record is still kept in memory and
// subscribers are still notified so a sync collaborator can keep a copy.
func (s *Store) Save(ctx context.Context, moduleID string, rec Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode journal %s: %w", moduleID, err)
	}

	s.keep(moduleID, entry{rec: rec})
	err = s.kv.Set(ctx, Key(moduleID), string(b))
	if err != nil {
		s.logger.WarnContext(ctx, "journal not persisted", "module", moduleID, "error", err)
	}

	s.saved.Publish(Saved{Meta: notify.NewMeta(), ModuleID: moduleID, Record: rec})
	return err
}

// Clear removes the module's journal. Later loads return the zero record
// even when the removal could not be persisted.
func (s *Store) Clear(ctx context.Context, moduleID string) error {
	s.keep(moduleID, entry{cleared: true})
	if err := s.kv.Remove(ctx, Key(moduleID)); err != nil {
		s.logger.WarnContext(ctx, "journal not cleared", "module", moduleID, "error", err)
		return err
	}
	return nil
}

// Import stores each remote record whose module has no local journal yet.
// Local copies are never overwritten. It returns the imported module IDs in
// sorted order.
func (s *Store) Import(ctx context.Context, remote map[string]Record) ([]string, error) {
	ids := make([]string, 0, len(remote))
	for id := range remote {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var imported []string
	for _, id := range ids {
		if s.Has(ctx, id) {
			continue
		}
		b, err := json.Marshal(remote[id])
		if err != nil {
			return imported, fmt.Errorf("encode journal %s: %w", id, err)
		}
		if err := s.kv.Set(ctx, Key(id), string(b)); err != nil {
			return imported, fmt.Errorf("import journal %s: %w", id, err)
		}
		s.keep(id, entry{rec: remote[id]})
		imported = append(imported, id)
	}
	return imported, nil
}

// IDs lists the modules that have a journal, in sorted order.
func (s *Store) IDs(ctx context.Context) ([]string, error) {
	keys, err := s.kv.Keys(ctx, KeyPrefix)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	for _, k := range keys {
		seen[strings.TrimPrefix(k, KeyPrefix)] = true
	}
	s.mu.RLock()
	for id, e := range s.local {
		seen[id] = !e.cleared
	}
	s.mu.RUnlock()

	ids := make([]string, 0, len(seen))
	for id, ok := range seen {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// All returns every stored journal keyed by module ID.
func (s *Store) All(ctx context.Context) (map[string]Record, error) {
	ids, err := s.IDs(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Record, len(ids))
	for _, id := range ids {
		out[id] = s.Load(ctx, id)
	}
	return out, nil
}
