package search

import (
	"context"

	"github.com/makrhub/facetdex/internal/domain/catalog"
)

// CatalogReader provides the entity collections the matcher scans.
type CatalogReader interface {
	Snapshot(ctx context.Context) (catalog.Snapshot, error)
}
