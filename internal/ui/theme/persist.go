package theme

import (
	"context"

	"github.com/abhisek/hagios/internal/store"
)

// Key stores the chosen palette name.
const Key = "theme"

// Load applies the stored palette, or Light when none is stored.
func Load(ctx context.Context, kv store.KV) Palette {
	name, _ := kv.Get(ctx, Key)
	Apply(name)
	return current
}

// Set applies and persists the named palette. The palette is applied even
// when persisting fails.
func Set(ctx context.Context, kv store.KV, name string) (Palette, error) {
	Apply(name)
	return current, kv.Set(ctx, Key, current.Name)
}

// Toggle switches between light and dark and persists the choice.
func Toggle(ctx context.Context, kv store.KV) (Palette, error) {
	next := Dark.Name
	if current.Name == Dark.Name {
		next = Light.Name
	}
	return Set(ctx, kv, next)
}
