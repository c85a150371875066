// Package catalog loads the ordered module catalog and per-module content
// documents.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
)

// CatalogDocument is the name of the catalog document within a Source.
const CatalogDocument = "modulos.json"

// Descriptor describes one module. Order is its position in the catalog and
// the module's sole prerequisite is the one immediately before it.
type Descriptor struct {
	ID             string `json:"id"`
	Order          int    `json:"-"`
	Title          string `json:"titulo"`
	Subtitle       string `json:"subtitulo,omitempty"`
	Description    string `json:"descricao,omitempty"`
	Icon           string `json:"icone,omitempty"`
	Duration       string `json:"duracao,omitempty"`
	KeyVerse       string `json:"versiculoChave,omitempty"`
	PrerequisiteID string `json:"-"`
}

// HasPrerequisite reports whether the module depends on an earlier one.
func (d Descriptor) HasPrerequisite() bool {
	return d.PrerequisiteID != ""
}

type wireDescriptor struct {
	ID          flexID `json:"id"`
	Title       string `json:"titulo"`
	Subtitle    string `json:"subtitulo"`
	Description string `json:"descricao"`
	Icon        string `json:"icone"`
	Duration    string `json:"duracao"`
	KeyVerse    string `json:"versiculoChave"`
}

// UnmarshalJSON accepts numeric or string IDs.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var w wireDescriptor
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*d = Descriptor{
		ID:          string(w.ID),
		Title:       w.Title,
		Subtitle:    w.Subtitle,
		Description: w.Description,
		Icon:        w.Icon,
		Duration:    w.Duration,
		KeyVerse:    w.KeyVerse,
	}
	return nil
}

// Catalog is the immutable, ordered list of modules.
type Catalog struct {
	modules []Descriptor
	index   map[string]int
}

// New builds a catalog from descriptors in order, filling Order and
// PrerequisiteID. IDs must be non-empty and unique.
func New(modules []Descriptor) (Catalog, error) {
	c := Catalog{
		modules: make([]Descriptor, len(modules)),
		index:   make(map[string]int, len(modules)),
	}
	for i, m := range modules {
		if m.ID == "" {
			return Catalog{}, fmt.Errorf("module at position %d has no id", i)
		}
		if _, dup := c.index[m.ID]; dup {
			return Catalog{}, fmt.Errorf("duplicate module id %q", m.ID)
		}
		m.Order = i
		m.PrerequisiteID = ""
		if i > 0 {
			m.PrerequisiteID = modules[i-1].ID
		}
		c.modules[i] = m
		c.index[m.ID] = i
	}
	return c, nil
}

// Load fetches, validates and decodes the catalog document. It fails as a
// whole with ErrDataUnavailable; no partial catalog is returned.
func Load(ctx context.Context, src Source) (Catalog, error) {
	raw, err := src.Fetch(ctx, CatalogDocument)
	if err != nil {
		return Catalog{}, unavailable(CatalogDocument, err)
	}
	return Parse(raw)
}

// Parse validates and decodes a catalog document.
func Parse(raw []byte) (Catalog, error) {
	if err := CatalogSchema.Validate(raw); err != nil {
		return Catalog{}, unavailable(CatalogDocument, err)
	}
	var modules []Descriptor
	if err := json.Unmarshal(raw, &modules); err != nil {
		return Catalog{}, unavailable(CatalogDocument, err)
	}
	c, err := New(modules)
	if err != nil {
		return Catalog{}, unavailable(CatalogDocument, err)
	}
	return c, nil
}

// Len returns the number of modules.
func (c Catalog) Len() int {
	return len(c.modules)
}

// Modules returns the descriptors in catalog order.
func (c Catalog) Modules() []Descriptor {
	return slices.Clone(c.modules)
}

// IDs returns module IDs in catalog order.
func (c Catalog) IDs() []string {
	ids := make([]string, len(c.modules))
	for i, m := range c.modules {
		ids[i] = m.ID
	}
	return ids
}

// At returns the module at position i.
func (c Catalog) At(i int) Descriptor {
	return c.modules[i]
}

// IndexOf returns the position of id, or ErrUnknownModule.
func (c Catalog) IndexOf(id string) (int, error) {
	i, ok := c.index[id]
	if !ok {
		return -1, UnknownModuleError(id)
	}
	return i, nil
}

// Contains reports whether id is in the catalog.
func (c Catalog) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Get returns the descriptor for id, or ErrUnknownModule.
func (c Catalog) Get(id string) (Descriptor, error) {
	i, err := c.IndexOf(id)
	if err != nil {
		return Descriptor{}, err
	}
	return c.modules[i], nil
}
