// Package filterset saves, loads, and deletes named filter snapshots.
package filterset

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/makrhub/facetdex/internal/domain/facet/selection"
	domset "github.com/makrhub/facetdex/internal/domain/filterset"
)

// Service manages named, category-scoped filter snapshots behind the
// Repository port.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// New creates a filter set service.
func New(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Save snapshots the selection under a new id. Saving the same name twice
// produces two independent sets; names are not unique.
func (s *Service) Save(
	ctx context.Context, name, category string, sel selection.Selection,
) (domset.Set, error) {
	set, err := domset.New(name, category, sel)
	if err != nil {
		return domset.Set{}, fmt.Errorf("new filter set: %w", err)
	}
	if err := s.repo.Save(ctx, set); err != nil {
		return domset.Set{}, fmt.Errorf("save filter set: %w", err)
	}
	return set, nil
}

// Load returns the captured snapshot verbatim. The caller replaces its
// current selection wholesale; no merge happens here.
func (s *Service) Load(ctx context.Context, id string) (selection.Selection, error) {
	set, err := s.repo.Get(ctx, id)
	if err != nil {
		return selection.Selection{}, fmt.Errorf("load filter set %s: %w", id, err)
	}
	return set.Filters(), nil
}

// List returns the saved sets for a category. Storage failures degrade to
// an empty list rather than an error: a broken store must not take the
// browsing session down with it.
func (s *Service) List(ctx context.Context, category string) []domset.Set {
	sets, err := s.repo.List(ctx, category)
	if err != nil {
		s.logger.Warn("filter set listing failed",
			zap.String("category", category),
			zap.Error(err),
		)
		return nil
	}
	return sets
}

// Delete removes a saved set. An absent id is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete filter set %s: %w", id, err)
	}
	return nil
}
