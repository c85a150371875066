package session

import (
	"context"
	"encoding/json"
	"testing"
	"testing/fstest"

	"github.com/abhisek/hagios/internal/catalog"
	"github.com/abhisek/hagios/internal/progress"
	"github.com/abhisek/hagios/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Descriptor{
		{ID: "1", Title: "Um"},
		{ID: "2", Title: "Dois"},
		{ID: "3", Title: "Três"},
	})
	require.NoError(t, err)
	return c
}

func threeSections() catalog.Content {
	return catalog.Content{
		Sections: []catalog.Section{
			{Title: "a", Body: "<p>A</p>"},
			{Title: "b", Body: "<p>B</p>"},
			{Title: "c", Body: "<p>C</p>"},
		},
	}
}

func TestSelectionRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	_, ok := LoadSelection(ctx, kv)
	assert.False(t, ok)

	d, err := testCatalog(t).Get("2")
	require.NoError(t, err)
	require.NoError(t, SaveSelection(ctx, kv, d))
	id, ok := LoadSelection(ctx, kv)
	assert.True(t, ok)
	assert.Equal(t, "2", id)

	raw, _ := kv.Get(ctx, SelectionKey)
	var stored map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, "2", stored["id"])
	assert.Equal(t, d.Title, stored["titulo"])
}

func TestLoadSelectionFormats(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		stored string
		want   string
		ok     bool
	}{
		{"numeric id", `{"id":2,"titulo":"Dois"}`, "2", true},
		{"string id", `{"id":"3","titulo":"Tres","duracao":"20 min"}`, "3", true},
		{"bare id", "4", "4", true},
		{"no id", `{"titulo":"x"}`, "", false},
		{"malformed", `{"id":`, "", false},
		{"blank", "  ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := store.NewMemory()
			require.NoError(t, kv.Set(ctx, SelectionKey, tt.stored))

			id, ok := LoadSelection(ctx, kv)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestNewUnknownModule(t *testing.T) {
	_, err := New(testCatalog(t), catalog.Content{}, "9")
	assert.ErrorIs(t, err, catalog.ErrUnknownModule)
}

func TestSectionNavigation(t *testing.T) {
	s, err := New(testCatalog(t), threeSections(), "1")
	require.NoError(t, err)

	assert.True(t, s.IsFirstSection())
	assert.Equal(t, "1/3", s.SectionLabel())
	assert.False(t, s.PrevSection())

	assert.True(t, s.NextSection())
	assert.True(t, s.NextSection())
	assert.True(t, s.IsLastSection())
	assert.False(t, s.NextSection())
	assert.Equal(t, "3/3", s.SectionLabel())

	sec, ok := s.CurrentSection()
	require.True(t, ok)
	assert.Equal(t, "c", sec.Title)

	assert.True(t, s.PrevSection())
	assert.Equal(t, 1, s.Section)

	require.NoError(t, s.GoTo(0))
	assert.Error(t, s.GoTo(3))
	assert.Error(t, s.GoTo(-1))
	assert.Equal(t, 0, s.Section)
}

func TestNoSections(t *testing.T) {
	s, err := New(testCatalog(t), catalog.Content{}, "1")
	require.NoError(t, err)

	_, ok := s.CurrentSection()
	assert.False(t, ok)
	assert.Equal(t, "0/0", s.SectionLabel())
	assert.False(t, s.NextSection())
	assert.True(t, s.IsLastSection())
}

func TestPreviousModule(t *testing.T) {
	c := testCatalog(t)

	first, err := New(c, catalog.Content{}, "1")
	require.NoError(t, err)
	_, ok := first.PreviousModule()
	assert.False(t, ok)

	third, err := New(c, catalog.Content{}, "3")
	require.NoError(t, err)
	prev, ok := third.PreviousModule()
	require.True(t, ok)
	assert.Equal(t, "2", prev.ID)

	linked, err := New(c, catalog.Content{PreviousModuleID: "1"}, "3")
	require.NoError(t, err)
	prev, ok = linked.PreviousModule()
	require.True(t, ok)
	assert.Equal(t, "1", prev.ID)
}

func TestNextModuleLockedUntilCompleted(t *testing.T) {
	ctx := context.Background()
	c := testCatalog(t)
	tr := progress.NewTracker(ctx, store.NewMemory(), nil)

	s, err := New(c, catalog.Content{}, "1")
	require.NoError(t, err)

	link, ok := s.NextModule(tr)
	require.True(t, ok)
	assert.Equal(t, "2", link.Module.ID)
	assert.True(t, link.Locked)

	require.NoError(t, tr.MarkCompleted(ctx, c, "1"))
	link, ok = s.NextModule(tr)
	require.True(t, ok)
	assert.False(t, link.Locked)

	last, err := New(c, catalog.Content{}, "3")
	require.NoError(t, err)
	_, ok = last.NextModule(tr)
	assert.False(t, ok)
}

func TestOpen(t *testing.T) {
	src := catalog.DirSource{FS: fstest.MapFS{
		"modulo2.json": {Data: []byte(`{"secoes": [{"titulo": "x", "conteudo": "y"}], "proximoModulo": 3}`)},
	}}
	c := testCatalog(t)

	s, err := Open(context.Background(), src, c, "2")
	require.NoError(t, err)
	assert.Equal(t, "Dois", s.Module.Title)
	assert.Equal(t, 1, s.SectionCount())

	_, err = Open(context.Background(), src, c, "3")
	assert.ErrorIs(t, err, catalog.ErrDataUnavailable)

	_, err = Open(context.Background(), src, c, "7")
	assert.ErrorIs(t, err, catalog.ErrUnknownModule)
}
