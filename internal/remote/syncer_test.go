package remote

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/hagios/internal/catalog"
	"github.com/abhisek/hagios/internal/journal"
	"github.com/abhisek/hagios/internal/progress"
	"github.com/abhisek/hagios/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	kv       *store.Memory
	tracker  *progress.Tracker
	journals *journal.Store
	remote   *Memory
	syncer   *Syncer
	catalog  catalog.Catalog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	kv := store.NewMemory()
	c, err := catalog.New([]catalog.Descriptor{{ID: "1"}, {ID: "2"}, {ID: "3"}})
	require.NoError(t, err)

	f := &fixture{
		kv:       kv,
		tracker:  progress.NewTracker(ctx, kv, nil),
		journals: journal.NewStore(kv, nil),
		remote:   NewMemory(),
		catalog:  c,
	}
	f.syncer = NewSyncer(f.remote, f.tracker, f.journals, nil)
	return f
}

func TestSignInMergesRemoteState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	local := journal.Record{Answers: [4]string{"local answer"}}
	require.NoError(t, f.journals.Save(ctx, "1", local))
	require.NoError(t, f.tracker.MarkCompleted(ctx, f.catalog, "1"))

	remoteOne := journal.Record{Answers: [4]string{"remote answer"}}
	remoteTwo := journal.Record{ChallengeCompleted: true, QuizScorePercent: journal.Score(80)}
	f.remote.Seed("ana", Snapshot{
		Completed: []string{"2"},
		Journals:  map[string]journal.Record{"1": remoteOne, "2": remoteTwo},
	})

	res, err := f.syncer.SignIn(ctx, "ana")
	require.NoError(t, err)

	assert.Equal(t, 1, res.RemoteCompleted)
	assert.Equal(t, []string{"2"}, res.ImportedJournals)
	assert.ElementsMatch(t, []string{"1", "2"}, res.Completed)

	// Local journal is never overwritten by the remote copy.
	assert.Equal(t, local, f.journals.Load(ctx, "1"))
	assert.Equal(t, remoteTwo, f.journals.Load(ctx, "2"))

	// Merged set was pushed back.
	snap, err := f.remote.Fetch(ctx, "ana")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "2"}, snap.Completed)
}

func TestSignInTwiceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.remote.Seed("ana", Snapshot{Completed: []string{"1", "2"}})

	_, err := f.syncer.SignIn(ctx, "ana")
	require.NoError(t, err)
	first := f.tracker.Completed()

	res, err := f.syncer.SignIn(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, first, f.tracker.Completed())
	assert.Empty(t, res.ImportedJournals)
}

func TestSignedInChangesArePushed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.syncer.SignIn(ctx, "ana")
	require.NoError(t, err)

	require.NoError(t, f.tracker.MarkCompleted(ctx, f.catalog, "1"))
	rec := journal.Record{ChallengeReflection: "aprendi"}
	require.NoError(t, f.journals.Save(ctx, "1", rec))

	snap, err := f.remote.Fetch(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, snap.Completed)
	assert.Equal(t, rec, snap.Journals["1"])
}

func TestSignOutStopsPushing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.syncer.SignIn(ctx, "ana")
	require.NoError(t, err)
	f.syncer.SignOut()
	assert.Empty(t, f.syncer.UserID())

	require.NoError(t, f.tracker.MarkCompleted(ctx, f.catalog, "1"))
	snap, err := f.remote.Fetch(ctx, "ana")
	require.NoError(t, err)
	assert.Empty(t, snap.Completed)
}

func TestPushFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.remote.FailPush = errors.New("offline")

	_, err := f.syncer.SignIn(ctx, "ana")
	require.NoError(t, err)

	assert.NoError(t, f.tracker.MarkCompleted(ctx, f.catalog, "1"))
	assert.NoError(t, f.journals.Save(ctx, "1", journal.Record{}))
}

func TestSignInRequiresUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.syncer.SignIn(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoUser)
}

type failingRemote struct{ Memory }

func (*failingRemote) Fetch(context.Context, string) (Snapshot, error) {
	return Snapshot{}, errors.New("unreachable")
}

func TestSignInFetchFailure(t *testing.T) {
	f := newFixture(t)
	s := NewSyncer(&failingRemote{}, f.tracker, f.journals, nil)

	_, err := s.SignIn(context.Background(), "ana")
	assert.Error(t, err)
	assert.Empty(t, s.UserID())
}
