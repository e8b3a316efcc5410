package filterset

import (
	"context"

	domset "github.com/makrhub/facetdex/internal/domain/filterset"
)

// Repository is the persistence port for saved filter sets. Implementations
// exist for memory, file, and redis backends; the engine is storage-agnostic.
type Repository interface {
	Save(ctx context.Context, set domset.Set) error
	Get(ctx context.Context, id string) (domset.Set, error)
	List(ctx context.Context, category string) ([]domset.Set, error)
	// Delete removes by id. Deleting an absent id is a no-op, not an error.
	Delete(ctx context.Context, id string) error
}
