package filterset

import (
	"errors"
	"testing"

	"github.com/makrhub/facetdex/internal/domain"
	"github.com/makrhub/facetdex/internal/domain/facet/selection"
)

func TestNewValidation(t *testing.T) {
	sel := selection.New()

	if _, err := New("", "cnc-machining", sel); !errors.Is(err, domain.ErrInvalidFilterSet) {
		t.Errorf("empty name: expected ErrInvalidFilterSet, got %v", err)
	}
	if _, err := New("Alu", "", sel); !errors.Is(err, domain.ErrInvalidFilterSet) {
		t.Errorf("empty category: expected ErrInvalidFilterSet, got %v", err)
	}
}

func TestNewSnapshotsSelection(t *testing.T) {
	sel := selection.New()
	sel.Toggle("material", "aluminum")

	set, err := New("Alu", "cnc-machining", sel)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if set.ID() == "" {
		t.Error("no id assigned")
	}

	// Mutating the live selection must not leak into the snapshot.
	sel.Toggle("material", "steel")
	if set.Filters().Has("material", "steel") {
		t.Error("snapshot shares state with the live selection")
	}
	if !set.Filters().Has("material", "aluminum") {
		t.Error("snapshot lost the captured value")
	}
}

func TestDuplicateNamesGetDistinctIDs(t *testing.T) {
	sel := selection.New()

	first, err := New("Alu", "cnc-machining", sel)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	second, err := New("Alu", "cnc-machining", sel)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if first.ID() == second.ID() {
		t.Error("duplicate names must still produce independent sets")
	}
}
