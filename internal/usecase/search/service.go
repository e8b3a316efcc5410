// Package search implements the query pipeline: normalize, expand, match
// per collection, cap, and compose into one ordered result set.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/makrhub/facetdex/internal/domain/catalog"
	"github.com/makrhub/facetdex/internal/domain/search/candidate"
	"github.com/makrhub/facetdex/internal/domain/search/query"
	"github.com/makrhub/facetdex/internal/domain/search/resultset"
	"github.com/makrhub/facetdex/internal/metrics"
)

// Caps bound per-collection match counts, enforced before merging.
type Caps struct {
	Products    int
	Categories  int
	Brands      int
	Suggestions int
}

// DefaultCaps returns the standard per-collection caps.
func DefaultCaps() Caps {
	return Caps{Products: 6, Categories: 3, Brands: 2, Suggestions: 2}
}

// suggestionThreshold is the composed-result count below which curated
// suggestions are appended.
const suggestionThreshold = 3

// Service runs the search pipeline over the catalog collections.
type Service struct {
	catalog     CatalogReader
	syns        query.Synonyms
	suggestions []string
	caps        Caps
}

// New creates a search service with default caps.
func New(catalog CatalogReader, syns query.Synonyms) *Service {
	return &Service{catalog: catalog, syns: syns, caps: DefaultCaps()}
}

// WithCaps overrides the per-collection caps. Non-positive values keep the default.
func (s *Service) WithCaps(caps Caps) *Service {
	if caps.Products > 0 {
		s.caps.Products = caps.Products
	}
	if caps.Categories > 0 {
		s.caps.Categories = caps.Categories
	}
	if caps.Brands > 0 {
		s.caps.Brands = caps.Brands
	}
	if caps.Suggestions > 0 {
		s.caps.Suggestions = caps.Suggestions
	}
	return s
}

// WithSuggestions sets the curated suggestion list used as fallback.
func (s *Service) WithSuggestions(entries []string) *Service {
	s.suggestions = entries
	return s
}

// Search runs the full pipeline for one raw input and tags the produced
// set with queryID. Deterministic for a fixed catalog snapshot.
func (s *Service) Search(ctx context.Context, queryID uint64, raw string) (resultset.ResultSet, error) {
	start := time.Now()
	defer func() { metrics.PipelineDuration.Observe(time.Since(start).Seconds()) }()

	q := query.New(raw, s.syns)
	if q.IsEmpty() {
		return resultset.Empty(queryID), nil
	}

	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return resultset.ResultSet{}, fmt.Errorf("catalog snapshot: %w", err)
	}

	tokens := q.Expanded()
	composed := make([]candidate.Candidate, 0, s.caps.Products+s.caps.Categories+s.caps.Brands)

	// Fixed merge order: products, categories, brands, suggestions.
	composed = append(composed, s.matchProducts(snap.Products, tokens)...)
	composed = append(composed, s.matchCategories(snap.Categories, tokens)...)
	composed = append(composed, s.matchBrands(snap.Brands(), tokens)...)

	if len(composed) < suggestionThreshold {
		composed = append(composed, s.suggest(q.Raw(), composed)...)
	}

	return resultset.New(queryID, tokens, composed), nil
}

func (s *Service) matchProducts(products []catalog.Product, tokens []string) []candidate.Candidate {
	out := make([]candidate.Candidate, 0, s.caps.Products)
	for _, p := range products {
		if len(out) == s.caps.Products {
			break
		}
		fields := append([]string{p.Title, p.Description, p.Brand, p.SKU}, p.Tags...)
		if !anyTokenMatches(tokens, fields) {
			continue
		}
		c := candidate.New(candidate.Product, p.ID, p.Title, p.Brand).WithPrice(p.Price)
		if p.Thumbnail != "" {
			c = c.WithThumbnail(p.Thumbnail)
		}
		out = append(out, c)
	}
	return out
}

func (s *Service) matchCategories(categories []catalog.Category, tokens []string) []candidate.Candidate {
	out := make([]candidate.Candidate, 0, s.caps.Categories)
	for _, c := range categories {
		if len(out) == s.caps.Categories {
			break
		}
		if !anyTokenMatches(tokens, []string{c.Name, c.Description, c.Slug}) {
			continue
		}
		out = append(out, candidate.New(candidate.Category, c.ID, c.Name, c.Description))
	}
	return out
}

func (s *Service) matchBrands(brands []string, tokens []string) []candidate.Candidate {
	out := make([]candidate.Candidate, 0, s.caps.Brands)
	for _, b := range brands {
		if len(out) == s.caps.Brands {
			break
		}
		if !anyTokenMatches(tokens, []string{b}) {
			continue
		}
		out = append(out, candidate.New(candidate.Brand, b, b, "Brand"))
	}
	return out
}

// suggest filters the curated list to entries containing the raw query as a
// substring and not already represented among the composed titles.
func (s *Service) suggest(raw string, composed []candidate.Candidate) []candidate.Candidate {
	needle := strings.ToLower(strings.TrimSpace(raw))
	if needle == "" {
		return nil
	}

	titles := make(map[string]struct{}, len(composed))
	for _, c := range composed {
		titles[strings.ToLower(c.Title())] = struct{}{}
	}

	out := make([]candidate.Candidate, 0, s.caps.Suggestions)
	for _, entry := range s.suggestions {
		if len(out) == s.caps.Suggestions {
			break
		}
		if !strings.Contains(strings.ToLower(entry), needle) {
			continue
		}
		if _, dup := titles[strings.ToLower(entry)]; dup {
			continue
		}
		out = append(out, candidate.New(candidate.Suggestion, entry, entry, "Suggested search"))
	}
	return out
}

// anyTokenMatches reports whether any token is a case-insensitive substring
// of any non-empty field.
func anyTokenMatches(tokens []string, fields []string) bool {
	for _, f := range fields {
		if f == "" {
			continue
		}
		lf := strings.ToLower(f)
		for _, tok := range tokens {
			if strings.Contains(lf, tok) {
				return true
			}
		}
	}
	return false
}
