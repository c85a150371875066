// Package session holds the state of one module view: which module is
// open and which section is showing. It replaces process-wide "current
// module" and "current section" globals.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/hagios/internal/catalog"
	"github.com/abhisek/hagios/internal/progress"
	"github.com/abhisek/hagios/internal/store"
)

// SelectionKey stores the descriptor of the module most recently opened.
const SelectionKey = "moduloSelecionado"

// SaveSelection remembers d as the module to reopen. The value is the
// descriptor as JSON, in the catalog document's keys.
func SaveSelection(ctx context.Context, kv store.KV, d catalog.Descriptor) error {
	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode selection %s: %w", d.ID, err)
	}
	return kv.Set(ctx, SelectionKey, string(b))
}

// LoadSelection returns the ID of the remembered module, if any. It reads a
// stored descriptor with a string or numeric id, or a bare ID.
func LoadSelection(ctx context.Context, kv store.KV) (string, bool) {
	raw, ok := kv.Get(ctx, SelectionKey)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return "", false
	}
	if !strings.HasPrefix(raw, "{") {
		return raw, true
	}
	var d catalog.Descriptor
	if err := json.Unmarshal([]byte(raw), &d); err != nil || d.ID == "" {
		return "", false
	}
	return d.ID, true
}

// Session is constructed once per module view.
type Session struct {
	Catalog catalog.Catalog
	Module  catalog.Descriptor
	Content catalog.Content
	Section int
}

// New opens module id. The section index starts at the first section.
func New(c catalog.Catalog, content catalog.Content, id string) (*Session, error) {
	mod, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	return &Session{Catalog: c, Module: mod, Content: content}, nil
}

// Open loads the content for id from src and returns a session for it.
func Open(ctx context.Context, src catalog.Source, c catalog.Catalog, id string) (*Session, error) {
	if _, err := c.IndexOf(id); err != nil {
		return nil, err
	}
	content, err := catalog.LoadContent(ctx, src, id)
	if err != nil {
		return nil, err
	}
	return New(c, content, id)
}

// SectionCount returns the number of sections in the module.
func (s *Session) SectionCount() int {
	return len(s.Content.Sections)
}

// CurrentSection returns the section being shown, or false when the module
// has no sections.
func (s *Session) CurrentSection() (catalog.Section, bool) {
	if s.Section < 0 || s.Section >= len(s.Content.Sections) {
		return catalog.Section{}, false
	}
	return s.Content.Sections[s.Section], true
}

// NextSection advances one section. It reports false at the last section.
func (s *Session) NextSection() bool {
	if s.Section+1 >= len(s.Content.Sections) {
		return false
	}
	s.Section++
	return true
}

// PrevSection goes back one section. It reports false at the first section.
func (s *Session) PrevSection() bool {
	if s.Section == 0 {
		return false
	}
	s.Section--
	return true
}

// GoTo jumps to section i.
func (s *Session) GoTo(i int) error {
	if i < 0 || i >= len(s.Content.Sections) {
		return fmt.Errorf("section %d out of range [0, %d)", i, len(s.Content.Sections))
	}
	s.Section = i
	return nil
}

func (s *Session) IsFirstSection() bool { return s.Section == 0 }

func (s *Session) IsLastSection() bool {
	return s.Section >= len(s.Content.Sections)-1
}

// SectionLabel returns the 1-based position, e.g. "2/5".
func (s *Session) SectionLabel() string {
	if len(s.Content.Sections) == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d", s.Section+1, len(s.Content.Sections))
}

// PreviousModule returns the module before this one. The content document's
// link wins over catalog order when it names a catalog module.
func (s *Session) PreviousModule() (catalog.Descriptor, bool) {
	if id := s.Content.PreviousModuleID; id != "" {
		if d, err := s.Catalog.Get(id); err == nil {
			return d, true
		}
	}
	if s.Module.Order == 0 {
		return catalog.Descriptor{}, false
	}
	return s.Catalog.At(s.Module.Order - 1), true
}

// NextLink is the footer link to the following module.
type NextLink struct {
	Module catalog.Descriptor
	// Locked is true until the current module is completed.
	Locked bool
}

// NextModule returns the module after this one. The link stays locked until
// tr records the current module as completed.
func (s *Session) NextModule(tr *progress.Tracker) (NextLink, bool) {
	var next catalog.Descriptor
	found := false
	if id := s.Content.NextModuleID; id != "" {
		if d, err := s.Catalog.Get(id); err == nil {
			next, found = d, true
		}
	}
	if !found {
		if s.Module.Order+1 >= s.Catalog.Len() {
			return NextLink{}, false
		}
		next = s.Catalog.At(s.Module.Order + 1)
	}
	return NextLink{Module: next, Locked: !tr.IsCompleted(s.Module.ID)}, true
}
