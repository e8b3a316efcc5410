package facets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/makrhub/facetdex/internal/domain/facet"
)

const registryYAML = `
categories:
  cnc-machining:
    - id: material
      name: Material
      kind: checkbox
      options:
        - {value: aluminum, label: Aluminum, count: 14}
        - {value: steel, label: Steel, count: 9}
    - id: tolerance
      name: Tolerance
      kind: select
      options:
        - {value: standard, label: Standard}
        - {value: precision, label: Precision}
      help: Tighter tolerances cost more
    - id: price
      name: Price
      kind: range
      min: 0
      max: 500
      unit: USD
    - id: rush
      name: Rush Order
      kind: toggle
`

func writeRegistry(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "facets.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}

func TestLoadRegistry_OrderedDefinitions(t *testing.T) {
	reg, err := LoadRegistry(writeRegistry(t, registryYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	defs := reg.Resolve("cnc-machining")
	if len(defs) != 4 {
		t.Fatalf("expected 4 facets, got %d", len(defs))
	}

	wantKinds := []facet.Kind{facet.Checkbox, facet.Select, facet.Range, facet.Toggle}
	for i, k := range wantKinds {
		if defs[i].Kind() != k {
			t.Errorf("facet %d kind = %s, want %s", i, defs[i].Kind(), k)
		}
	}
	if defs[0].ID() != "material" {
		t.Errorf("order not preserved: first facet %s", defs[0].ID())
	}
	min, max := defs[2].Bounds()
	if min != 0 || max != 500 {
		t.Errorf("range bounds = %g..%g, want 0..500", min, max)
	}
	if defs[1].Help() == "" {
		t.Error("help text lost")
	}
}

func TestResolve_UnknownCategoryYieldsEmptyList(t *testing.T) {
	reg, err := LoadRegistry(writeRegistry(t, registryYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	defs := reg.Resolve("injection-molding")
	if defs == nil || len(defs) != 0 {
		t.Errorf("unknown category: want empty non-error list, got %v", defs)
	}
}

func TestLoadRegistry_RejectsUnknownKind(t *testing.T) {
	bad := `
categories:
  cnc-machining:
    - id: material
      name: Material
      kind: slider
`
	if _, err := LoadRegistry(writeRegistry(t, bad)); err == nil {
		t.Fatal("expected error for unknown facet kind")
	}
}

func TestLoadRegistry_RejectsInvalidRange(t *testing.T) {
	bad := `
categories:
  cnc-machining:
    - id: price
      name: Price
      kind: range
      min: 100
      max: 10
`
	if _, err := LoadRegistry(writeRegistry(t, bad)); err == nil {
		t.Fatal("expected error for inverted range bounds")
	}
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	if _, err := LoadRegistry(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing seed file")
	}
}
