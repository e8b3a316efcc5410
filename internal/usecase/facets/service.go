package facets

import (
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/makrhub/facetdex/internal/domain/facet/selection"
)

// Service owns one active filter selection and applies facet mutations to
// it. Range edits are validated before they reach the selection: a
// violating edit is rejected silently and prior state is retained, so
// invalid state is never stored.
type Service struct {
	logger *zap.Logger

	mu  sync.Mutex
	sel selection.Selection
}

// NewService creates a service with an empty selection.
func NewService(logger *zap.Logger) *Service {
	return &Service{logger: logger, sel: selection.New()}
}

// ToggleValue flips a checkbox/select value.
func (s *Service) ToggleValue(facetID, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Toggle(facetID, value)
}

// SetRange stores one bound of a range facet. An empty value clears the
// bound. A non-numeric value, or one that would invert the stored range
// (min > max), is rejected and the prior state kept.
func (s *Service) SetRange(facetID string, bound selection.Bound, value string) {
	if !bound.IsValid() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if value == "" {
		s.sel.SetRangeBound(facetID, bound, "")
		return
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		s.logger.Debug("range edit rejected: not numeric",
			zap.String("facet", facetID),
			zap.String("value", value),
		)
		return
	}

	other := selection.Max
	if bound == selection.Max {
		other = selection.Min
	}
	if stored := s.sel.RangeBound(facetID, other); stored != "" {
		o, err := strconv.ParseFloat(stored, 64)
		if err == nil {
			min, max := v, o
			if bound == selection.Max {
				min, max = o, v
			}
			if min > max {
				s.logger.Debug("range edit rejected: min above max",
					zap.String("facet", facetID),
					zap.Float64("min", min),
					zap.Float64("max", max),
				)
				return
			}
		}
	}

	s.sel.SetRangeBound(facetID, bound, value)
}

// SetToggle stores a toggle facet state.
func (s *Service) SetToggle(facetID string, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.SetToggle(facetID, on)
}

// ClearToggle removes a toggle facet state.
func (s *Service) ClearToggle(facetID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.ClearToggle(facetID)
}

// ClearAll resets the selection.
func (s *Service) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.ClearAll()
}

// Replace swaps the whole selection, used when loading a saved filter set.
// No merge: the snapshot fully replaces current state.
func (s *Service) Replace(sel selection.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = sel.Clone()
}

// ActiveCount returns the active-filter count.
func (s *Service) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.Count()
}

// State returns a snapshot of the current selection.
func (s *Service) State() selection.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.Clone()
}
