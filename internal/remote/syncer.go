package remote

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/abhisek/hagios/internal/journal"
	"github.com/abhisek/hagios/internal/progress"
)

// SignInResult summarises what a sign-in merge changed locally.
type SignInResult struct {
	RemoteCompleted  int
	ImportedJournals []string
	Completed        []string
}

// Syncer merges a remote copy into local state on sign-in and then pushes
// every local change back. Push failures are logged and never retried.
type Syncer struct {
	remote   Remote
	tracker  *progress.Tracker
	journals *journal.Store
	logger   *slog.Logger

	mu     sync.Mutex
	userID string
	unsubs []func()
}

// NewSyncer returns a syncer that is idle until SignIn.
func NewSyncer(r Remote, tracker *progress.Tracker, journals *journal.Store, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Syncer{remote: r, tracker: tracker, journals: journals, logger: logger}
}

// SignIn fetches the user's remote snapshot, merges its completed set,
// imports journals with no local copy, pushes the merged set back and starts
// forwarding local changes. A local storage failure during the merge is
// logged; the merge still applies in memory.
func (s *Syncer) SignIn(ctx context.Context, userID string) (SignInResult, error) {
	if userID == "" {
		return SignInResult{}, ErrNoUser
	}
	s.SignOut()

	snap, err := s.remote.Fetch(ctx, userID)
	if err != nil {
		return SignInResult{}, fmt.Errorf("fetch remote state: %w", err)
	}

	if err := s.tracker.MergeRemote(ctx, snap.Completed); err != nil {
		s.logger.WarnContext(ctx, "merged progress not persisted", "user", userID, "error", err)
	}
	imported, err := s.journals.Import(ctx, snap.Journals)
	if err != nil {
		s.logger.WarnContext(ctx, "journal import incomplete", "user", userID, "error", err)
	}

	completed := s.tracker.Completed()
	if err := s.remote.PushProgress(ctx, userID, completed); err != nil {
		s.logger.WarnContext(ctx, "push merged progress failed", "user", userID, "error", err)
	}

	s.mu.Lock()
	s.userID = userID
	s.unsubs = []func(){
		s.tracker.OnProgressChanged(s.progressChanged),
		s.journals.OnJournalSaved(s.journalSaved),
	}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "signed in",
		"user", userID,
		"remote_completed", len(snap.Completed),
		"imported_journals", len(imported))

	return SignInResult{
		RemoteCompleted:  len(snap.Completed),
		ImportedJournals: imported,
		Completed:        completed,
	}, nil
}

// SignOut stops forwarding local changes.
func (s *Syncer) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.unsubs {
		u()
	}
	s.unsubs = nil
	s.userID = ""
}

// UserID returns the signed-in user, or "".
func (s *Syncer) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

func (s *Syncer) progressChanged(ev progress.Changed) {
	userID := s.UserID()
	if userID == "" {
		return
	}
	ctx := context.Background()
	if err := s.remote.PushProgress(ctx, userID, ev.Completed); err != nil {
		s.logger.WarnContext(ctx, "push progress failed",
			"user", userID, "event", ev.EventID, "error", err)
	}
}

func (s *Syncer) journalSaved(ev journal.Saved) {
	userID := s.UserID()
	if userID == "" {
		return
	}
	ctx := context.Background()
	if err := s.remote.PushJournal(ctx, userID, ev.ModuleID, ev.Record); err != nil {
		s.logger.WarnContext(ctx, "push journal failed",
			"user", userID, "module", ev.ModuleID, "event", ev.EventID, "error", err)
	}
}
