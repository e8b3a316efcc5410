// Package catalog loads the seeded catalog snapshot served to the matcher.
package catalog

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/makrhub/facetdex/internal/domain/catalog"
)

// Repo serves an immutable catalog snapshot loaded from a YAML seed file.
// Reload swaps the snapshot wholesale so readers never see a partial load.
type Repo struct {
	path string

	mu   sync.RWMutex
	snap catalog.Snapshot
}

// Load reads the seed file at path and returns a ready repository.
func Load(path string) (*Repo, error) {
	r := &Repo{path: path}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Snapshot returns the current catalog view.
func (r *Repo) Snapshot(_ context.Context) (catalog.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap, nil
}

// Reload re-reads the seed file and replaces the snapshot.
func (r *Repo) Reload() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("read catalog seed: %w", err)
	}

	var snap catalog.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parse catalog seed: %w", err)
	}
	if err := validate(snap); err != nil {
		return err
	}

	r.mu.Lock()
	r.snap = snap
	r.mu.Unlock()
	return nil
}

func validate(snap catalog.Snapshot) error {
	seen := make(map[string]struct{}, len(snap.Products))
	for i, p := range snap.Products {
		if p.ID == "" || p.Title == "" {
			return fmt.Errorf("catalog seed: product %d missing id or title", i)
		}
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("catalog seed: duplicate product id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	cats := make(map[string]struct{}, len(snap.Categories))
	for i, c := range snap.Categories {
		if c.ID == "" || c.Name == "" {
			return fmt.Errorf("catalog seed: category %d missing id or name", i)
		}
		if _, ok := cats[c.ID]; ok {
			return fmt.Errorf("catalog seed: duplicate category id %q", c.ID)
		}
		cats[c.ID] = struct{}{}
	}
	return nil
}
