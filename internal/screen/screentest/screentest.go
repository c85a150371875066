// Package screentest builds in-memory screen environments for tests.
package screentest

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"testing/fstest"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hagios/internal/catalog"
	"github.com/abhisek/hagios/internal/journal"
	"github.com/abhisek/hagios/internal/progress"
	"github.com/abhisek/hagios/internal/screen"
	"github.com/abhisek/hagios/internal/store"
)

// Catalog lists three modules, 1 to 3.
const Catalog = `[
  {"id": 1, "titulo": "Creation", "duracao": "20 min"},
  {"id": 2, "titulo": "The Fall", "duracao": "15 min"},
  {"id": 3, "titulo": "Covenant"}
]`

// ModuleOne has two sections and a two-question quiz with a 50% pass mark.
const ModuleOne = `{
  "id": 1,
  "secoes": [
    {"titulo": "Beginning", "conteudo": "<p>In the beginning God created.</p>"},
    {"titulo": "Days", "conteudo": "<ul><li>Light</li><li>Land</li></ul>"}
  ],
  "quiz": {
    "titulo": "Review",
    "minimoAprovacao": 50,
    "perguntas": [
      {"id": 1, "pergunta": "First day?", "opcoes": [{"id": "a", "texto": "Light"}, {"id": "b", "texto": "Sea"}], "correta": "a"},
      {"id": 2, "pergunta": "Sixth day?", "opcoes": [{"id": "a", "texto": "Fish"}, {"id": "b", "texto": "Man"}], "correta": "b"}
    ]
  },
  "proximoModulo": 2
}`

// ModuleTwo has one section and no quiz.
const ModuleTwo = `{"id": 2, "secoes": [{"titulo": "Garden", "conteudo": "<p>The serpent.</p>"}], "moduloAnterior": 1}`

// Env returns an environment over ModuleOne and ModuleTwo with in-memory
// storage. Module 3 has no content document.
func Env(t *testing.T) (*screen.Env, *store.Memory) {
	t.Helper()
	return EnvWith(t, map[string]string{
		catalog.CatalogDocument:      Catalog,
		catalog.ContentDocument("1"): ModuleOne,
		catalog.ContentDocument("2"): ModuleTwo,
	})
}

// EnvWith returns an environment serving files.
func EnvWith(t *testing.T, files map[string]string) (*screen.Env, *store.Memory) {
	t.Helper()
	ctx := context.Background()

	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	src := catalog.DirSource{FS: fsys}

	c, err := catalog.Load(ctx, src)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	kv := store.NewMemory()
	return &screen.Env{
		Ctx:      ctx,
		Catalog:  c,
		Source:   src,
		Tracker:  progress.NewTracker(ctx, kv, logger),
		Journals: journal.NewStore(kv, logger),
		KV:       kv,
		Logger:   logger,
	}, kv
}

// Press builds a key press for a named key such as tea.KeyEnter.
func Press(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Rune builds a key press that types r.
func Rune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Ctrl builds a ctrl+r key press.
func Ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

// Updater is satisfied by every screen.
type Updater interface {
	Update(tea.Msg) (screen.Screen, tea.Cmd)
}

// Type sends each rune of text to s.
func Type(s Updater, text string) {
	for _, r := range text {
		s.Update(Rune(r))
	}
}

// Run executes cmd and any batched commands it produces, returning the
// messages in order. Tick commands must not be passed.
func Run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Run(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}
