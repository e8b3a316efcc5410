// Package filterset defines named, category-scoped filter snapshots.
package filterset

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/makrhub/facetdex/internal/domain"
	"github.com/makrhub/facetdex/internal/domain/facet/selection"
)

// Set is a saved snapshot of a selection under a name. Names are not
// unique: saving twice under the same name yields two independent sets.
type Set struct {
	id       string
	name     string
	category string
	filters  selection.Selection
}

// New snapshots the selection under a fresh id. The selection is cloned so
// later mutations of the live state do not leak into the saved set.
func New(name, category string, filters selection.Selection) (Set, error) {
	if name == "" {
		return Set{}, fmt.Errorf("%w: name is required", domain.ErrInvalidFilterSet)
	}
	if category == "" {
		return Set{}, fmt.Errorf("%w: category is required", domain.ErrInvalidFilterSet)
	}
	return Set{
		id:       uuid.NewString(),
		name:     name,
		category: category,
		filters:  filters.Clone(),
	}, nil
}

// Reconstruct rebuilds a set from stored parts.
func Reconstruct(id, name, category string, filters selection.Selection) Set {
	return Set{id: id, name: name, category: category, filters: filters}
}

// ID returns the set identifier.
func (s Set) ID() string { return s.id }

// Name returns the user-chosen name.
func (s Set) Name() string { return s.name }

// Category returns the category the set is scoped to.
func (s Set) Category() string { return s.category }

// Filters returns the captured selection snapshot.
func (s Set) Filters() selection.Selection { return s.filters }
