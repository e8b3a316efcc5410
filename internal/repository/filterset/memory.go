// Package filterset provides storage adapters for saved filter sets:
// in-memory, flock-guarded file, and Redis.
package filterset

import (
	"context"
	"sync"

	"github.com/makrhub/facetdex/internal/domain"
	domset "github.com/makrhub/facetdex/internal/domain/filterset"
)

// MemoryRepo keeps saved filter sets in process memory. Suitable for tests
// and single-instance local runs.
type MemoryRepo struct {
	mu   sync.RWMutex
	sets map[string]setDTO
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *MemoryRepo {
	return &MemoryRepo{sets: make(map[string]setDTO)}
}

// Save stores the set, overwriting any previous set with the same id.
func (r *MemoryRepo) Save(_ context.Context, set domset.Set) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets[set.ID()] = toDTO(set)
	return nil
}

// Get returns a set by id.
func (r *MemoryRepo) Get(_ context.Context, id string) (domset.Set, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dto, ok := r.sets[id]
	if !ok {
		return domset.Set{}, domain.ErrFilterSetNotFound
	}
	return dto.toDomain(), nil
}

// List returns all sets for a category in unspecified order.
func (r *MemoryRepo) List(_ context.Context, category string) ([]domset.Set, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domset.Set
	for _, dto := range r.sets {
		if dto.Category == category {
			out = append(out, dto.toDomain())
		}
	}
	return out, nil
}

// Delete removes a set by id. Absent ids are a no-op.
func (r *MemoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sets, id)
	return nil
}
