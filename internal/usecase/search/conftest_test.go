package search

import (
	"context"

	"github.com/makrhub/facetdex/internal/domain/catalog"
	"github.com/makrhub/facetdex/internal/domain/search/query"
)

// mockCatalog implements CatalogReader for tests.
type mockCatalog struct {
	snap catalog.Snapshot
	err  error
}

func (m *mockCatalog) Snapshot(_ context.Context) (catalog.Snapshot, error) {
	return m.snap, m.err
}

func testSnapshot() catalog.Snapshot {
	return catalog.Snapshot{
		Products: []catalog.Product{
			{
				ID: "prod-1", Title: "PLA Filament 1kg", Description: "Standard PLA spool",
				Brand: "Prusament", Tags: []string{"filament", "pla"}, SKU: "FIL-PLA-001", Price: 24.99,
				Thumbnail: "img/pla.png",
			},
			{
				ID: "prod-2", Title: "Featherprint Spool", Description: "Low-density spool for RC wings",
				Brand: "eSun", Tags: []string{"lightweight pla", "filament"}, SKU: "FIL-LW-002", Price: 39.99,
			},
			{
				ID: "prod-3", Title: "Resin Tank FEP", Description: "Replacement FEP film",
				Brand: "Anycubic", Tags: []string{"resin", "sla"}, SKU: "RES-FEP-003", Price: 12.50,
			},
			{
				ID: "prod-4", Title: "Aluminum Stock Plate", Description: "6061 aluminum for cnc milling",
				Brand: "Makr Metals", Tags: []string{"aluminum", "stock"}, SKU: "CNC-ALU-004", Price: 18.00,
			},
		},
		Categories: []catalog.Category{
			{ID: "cat-1", Name: "3D Printing", Description: "Printers, filament and resin", Slug: "3d-printing", ProductCount: 120},
			{ID: "cat-2", Name: "CNC Machining", Description: "Mills, stock and tooling", Slug: "cnc-machining", ProductCount: 45},
		},
	}
}

func testSynonyms() query.Synonyms {
	return query.NewSynonyms(map[string][]string{
		"pla-lw": {"lightweight pla", "lw-pla"},
	})
}

func newTestService(snap catalog.Snapshot) *Service {
	return New(&mockCatalog{snap: snap}, testSynonyms()).
		WithSuggestions([]string{
			"pla filament",
			"fep film maintenance",
			"resin tank fep",
			"cnc feeds and speeds",
		})
}
