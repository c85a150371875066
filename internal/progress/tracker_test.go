package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/abhisek/hagios/internal/catalog"
	"github.com/abhisek/hagios/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T, ids ...string) catalog.Catalog {
	t.Helper()
	mods := make([]catalog.Descriptor, len(ids))
	for i, id := range ids {
		mods[i] = catalog.Descriptor{ID: id, Title: "Module " + id}
	}
	c, err := catalog.New(mods)
	require.NoError(t, err)
	return c
}

func newTracker(t *testing.T, kv store.KV) *Tracker {
	t.Helper()
	return NewTracker(context.Background(), kv, nil)
}

func TestFreshTracker(t *testing.T) {
	c := testCatalog(t, "A", "B", "C")
	tr := newTracker(t, store.NewMemory())

	assert.Equal(t, []Status{StatusUnlocked, StatusLocked, StatusLocked}, tr.Statuses(c))
	assert.Equal(t, 0.0, tr.PercentComplete(c))
	assert.Empty(t, tr.Completed())
}

func TestCompletingFirstModule(t *testing.T) {
	ctx := context.Background()
	c := testCatalog(t, "A", "B", "C")
	kv := store.NewMemory()
	tr := newTracker(t, kv)

	require.NoError(t, tr.MarkCompleted(ctx, c, "A"))

	assert.Equal(t, []Status{StatusCompleted, StatusUnlocked, StatusLocked}, tr.Statuses(c))
	pct := tr.PercentComplete(c)
	assert.InDelta(t, 100.0/3.0, pct, 1e-9)
	assert.Equal(t, 33, int(math.Floor(pct+0.5)))

	raw, ok := kv.Get(ctx, Key)
	require.True(t, ok)
	assert.JSONEq(t, `["A"]`, raw)
}

func TestMarkCompletedLocked(t *testing.T) {
	c := testCatalog(t, "A", "B")
	tr := newTracker(t, store.NewMemory())

	err := tr.MarkCompleted(context.Background(), c, "B")
	assert.ErrorIs(t, err, ErrModuleLocked)
	assert.False(t, tr.IsCompleted("B"))
}

func TestMarkCompletedUnknown(t *testing.T) {
	c := testCatalog(t, "A")
	tr := newTracker(t, store.NewMemory())

	err := tr.MarkCompleted(context.Background(), c, "Z")
	assert.ErrorIs(t, err, catalog.ErrUnknownModule)

	_, err = tr.StatusOf(c, "Z")
	assert.ErrorIs(t, err, catalog.ErrUnknownModule)
}

func TestMarkCompletedIdempotent(t *testing.T) {
	ctx := context.Background()
	c := testCatalog(t, "A", "B")
	tr := newTracker(t, store.NewMemory())

	var events []Changed
	tr.OnProgressChanged(func(ev Changed) { events = append(events, ev) })

	require.NoError(t, tr.MarkCompleted(ctx, c, "A"))
	require.NoError(t, tr.MarkCompleted(ctx, c, "A"))

	assert.Equal(t, []string{"A"}, tr.Completed())
	require.Len(t, events, 1)
	assert.Equal(t, "A", events[0].ModuleID)
	assert.Equal(t, []string{"A"}, events[0].Added)
	assert.NotEmpty(t, events[0].EventID)
}

func TestNoSubscribersIsFine(t *testing.T) {
	c := testCatalog(t, "A")
	tr := newTracker(t, store.NewMemory())
	assert.NoError(t, tr.MarkCompleted(context.Background(), c, "A"))
}

func TestUnsubscribe(t *testing.T) {
	ctx := context.Background()
	c := testCatalog(t, "A", "B")
	tr := newTracker(t, store.NewMemory())

	calls := 0
	unsub := tr.OnProgressChanged(func(Changed) { calls++ })
	require.NoError(t, tr.MarkCompleted(ctx, c, "A"))
	unsub()
	require.NoError(t, tr.MarkCompleted(ctx, c, "B"))
	assert.Equal(t, 1, calls)
}

func TestTrackerReloadsFromStorage(t *testing.T) {
	ctx := context.Background()
	c := testCatalog(t, "A", "B", "C")
	kv := store.NewMemory()

	first := newTracker(t, kv)
	require.NoError(t, first.MarkCompleted(ctx, c, "A"))
	require.NoError(t, first.MarkCompleted(ctx, c, "B"))

	second := newTracker(t, kv)
	assert.Equal(t, []string{"A", "B"}, second.Completed())
	assert.Equal(t, []Status{StatusCompleted, StatusCompleted, StatusUnlocked}, second.Statuses(c))
}

func TestTrackerLoadsNumericIDs(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Set(ctx, Key, `[1, 2]`))

	tr := newTracker(t, kv)
	c := testCatalog(t, "1", "2", "3")
	assert.Equal(t, []Status{StatusCompleted, StatusCompleted, StatusUnlocked}, tr.Statuses(c))
}

func TestTrackerMalformedStorage(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Set(ctx, Key, `{not json`))

	tr := newTracker(t, kv)
	assert.Empty(t, tr.Completed())
}

func TestStorageFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	c := testCatalog(t, "A", "B")
	kv := store.NewMemory()
	kv.FailWrites(Key)
	tr := newTracker(t, kv)

	notified := false
	tr.OnProgressChanged(func(Changed) { notified = true })

	err := tr.MarkCompleted(ctx, c, "A")
	require.Error(t, err)
	assert.True(t, store.IsStorageError(err))
	assert.True(t, tr.IsCompleted("A"))
	assert.True(t, notified)
	assert.Equal(t, StatusUnlocked, tr.Statuses(c)[1])

	_, ok := kv.Get(ctx, Key)
	assert.False(t, ok)
}

func TestStrayCompletedIDStaysLocked(t *testing.T) {
	ctx := context.Background()
	c := testCatalog(t, "A", "B", "C")
	tr := newTracker(t, store.NewMemory())

	require.NoError(t, tr.MergeRemote(ctx, []string{"B", "C"}))

	got := tr.Statuses(c)
	assert.Equal(t, []Status{StatusUnlocked, StatusLocked, StatusLocked}, got)
	// Percent counts the stored set regardless of lock state.
	assert.InDelta(t, 200.0/3.0, tr.PercentComplete(c), 1e-9)
	assert.Equal(t, 2, tr.CompletedCount(c))
}

func TestPercentIgnoresIDsOutsideCatalog(t *testing.T) {
	ctx := context.Background()
	c := testCatalog(t, "A", "B")
	tr := newTracker(t, store.NewMemory())

	require.NoError(t, tr.MergeRemote(ctx, []string{"A", "retired"}))
	assert.Equal(t, 50.0, tr.PercentComplete(c))
	assert.Equal(t, 1, tr.CompletedCount(c))
}

func TestPercentEmptyCatalog(t *testing.T) {
	c := testCatalog(t)
	tr := newTracker(t, store.NewMemory())
	require.NoError(t, tr.MergeRemote(context.Background(), []string{"A"}))
	assert.Equal(t, 0.0, tr.PercentComplete(c))
}

func TestMergeRemote(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	tr := newTracker(t, kv)

	var events []Changed
	tr.OnProgressChanged(func(ev Changed) { events = append(events, ev) })

	require.NoError(t, tr.MergeRemote(ctx, []string{"C", "A", "", "A"}))
	assert.Equal(t, []string{"A", "C"}, tr.Completed())
	require.Len(t, events, 1)
	assert.Empty(t, events[0].ModuleID)
	assert.Equal(t, []string{"A", "C"}, events[0].Added)

	// Same set again: no growth, no event.
	require.NoError(t, tr.MergeRemote(ctx, []string{"A", "C"}))
	assert.Len(t, events, 1)

	raw, _ := kv.Get(ctx, Key)
	var stored []string
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, []string{"A", "C"}, stored)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	c := testCatalog(t, "A", "B")
	kv := store.NewMemory()
	tr := newTracker(t, kv)
	require.NoError(t, tr.MarkCompleted(ctx, c, "A"))

	require.NoError(t, tr.Reset(ctx))
	assert.Empty(t, tr.Completed())
	_, ok := kv.Get(ctx, Key)
	assert.False(t, ok)
}

func TestDeriveChain(t *testing.T) {
	tests := []struct {
		done []string
		want []Status
	}{
		{nil, []Status{StatusUnlocked, StatusLocked, StatusLocked, StatusLocked}},
		{[]string{"1"}, []Status{StatusCompleted, StatusUnlocked, StatusLocked, StatusLocked}},
		{[]string{"1", "2", "3"}, []Status{StatusCompleted, StatusCompleted, StatusCompleted, StatusUnlocked}},
		{[]string{"1", "3"}, []Status{StatusCompleted, StatusUnlocked, StatusLocked, StatusLocked}},
		{[]string{"1", "2", "3", "4"}, []Status{StatusCompleted, StatusCompleted, StatusCompleted, StatusCompleted}},
	}
	ids := []string{"1", "2", "3", "4"}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.done), func(t *testing.T) {
			set := map[string]bool{}
			for _, id := range tt.done {
				set[id] = true
			}
			assert.Equal(t, tt.want, Derive(ids, set))
		})
	}
}

func TestStatusDisplay(t *testing.T) {
	assert.Equal(t, "Locked", StatusLocked.Label())
	assert.Equal(t, "Completed", StatusCompleted.String())
	assert.Equal(t, "🔒", StatusLocked.Icon())
	assert.Equal(t, "?", Status(99).Icon())
}
