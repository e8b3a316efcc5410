package filterset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/makrhub/facetdex/internal/domain"
	"github.com/makrhub/facetdex/internal/domain/facet/selection"
)

func TestMemoryRepoRoundTrip(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()
	set := mustSet(t, "Quick Aluminum", "cnc-machining")

	if err := repo.Save(ctx, set); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Get(ctx, set.ID())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name() != "Quick Aluminum" || got.Category() != "cnc-machining" {
		t.Errorf("got %q/%q, want Quick Aluminum/cnc-machining", got.Name(), got.Category())
	}
	if !got.Filters().Equal(set.Filters()) {
		t.Error("filters did not survive the round trip")
	}
}

func TestMemoryRepoGetMissing(t *testing.T) {
	repo := NewMemory()

	_, err := repo.Get(context.Background(), "nope")
	if !errors.Is(err, domain.ErrFilterSetNotFound) {
		t.Errorf("got %v, want ErrFilterSetNotFound", err)
	}
}

func TestMemoryRepoListFiltersByCategory(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()

	cnc := mustSet(t, "Alu", "cnc-machining")
	printing := mustSet(t, "PLA Only", "3d-printing")
	if err := repo.Save(ctx, cnc); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Save(ctx, printing); err != nil {
		t.Fatalf("Save: %v", err)
	}

	sets, err := repo.List(ctx, "cnc-machining")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sets) != 1 || sets[0].ID() != cnc.ID() {
		t.Errorf("got %d sets, want only the cnc one", len(sets))
	}
}

func TestMemoryRepoDeleteAbsentIsNoop(t *testing.T) {
	repo := NewMemory()
	if err := repo.Delete(context.Background(), "nope"); err != nil {
		t.Errorf("Delete absent: %v", err)
	}
}

func TestFileRepoPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filtersets.json")
	ctx := context.Background()
	set := mustSet(t, "Saved For Later", "cnc-machining")

	if err := NewFile(path).Save(ctx, set); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A fresh instance sees the saved set.
	got, err := NewFile(path).Get(ctx, set.ID())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name() != "Saved For Later" {
		t.Errorf("got name %q, want Saved For Later", got.Name())
	}
	if !got.Filters().Equal(set.Filters()) {
		t.Error("filters did not survive the round trip")
	}
}

func TestFileRepoMissingFileIsEmpty(t *testing.T) {
	repo := NewFile(filepath.Join(t.TempDir(), "filtersets.json"))

	sets, err := repo.List(context.Background(), "cnc-machining")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sets) != 0 {
		t.Errorf("got %d sets from a missing file, want 0", len(sets))
	}
}

func TestFileRepoCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filtersets.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	if _, err := NewFile(path).List(context.Background(), "cnc-machining"); err == nil {
		t.Error("expected an error for a corrupt file")
	}
}

func TestFileRepoDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filtersets.json")
	repo := NewFile(path)
	ctx := context.Background()
	set := mustSet(t, "Gone Soon", "cnc-machining")

	if err := repo.Save(ctx, set); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Delete(ctx, set.ID()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, set.ID()); !errors.Is(err, domain.ErrFilterSetNotFound) {
		t.Errorf("got %v, want ErrFilterSetNotFound", err)
	}

	// Deleting again is a no-op.
	if err := repo.Delete(ctx, set.ID()); err != nil {
		t.Errorf("Delete absent: %v", err)
	}
}

func TestRedisRepoKeyShape(t *testing.T) {
	kv := newMockKV()
	repo := NewRedis(kv, "facetdex:")
	ctx := context.Background()
	set := mustSet(t, "Alu", "cnc-machining")

	if err := repo.Save(ctx, set); err != nil {
		t.Fatalf("Save: %v", err)
	}

	want := "facetdex:filtersets:cnc-machining:" + set.ID()
	if _, ok := kv.data[want]; !ok {
		t.Fatalf("key %q not written, have %v", want, keysOf(kv.data))
	}
}

func TestRedisRepoRoundTrip(t *testing.T) {
	repo := NewRedis(newMockKV(), "facetdex:")
	ctx := context.Background()
	set := mustSet(t, "Alu Rush", "cnc-machining")

	if err := repo.Save(ctx, set); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Get(ctx, set.ID())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID() != set.ID() || got.Name() != "Alu Rush" {
		t.Errorf("got %q/%q, want %q/Alu Rush", got.ID(), got.Name(), set.ID())
	}
	if !got.Filters().Equal(set.Filters()) {
		t.Error("filters did not survive the round trip")
	}
}

func TestRedisRepoGetMissing(t *testing.T) {
	repo := NewRedis(newMockKV(), "facetdex:")

	_, err := repo.Get(context.Background(), "nope")
	if !errors.Is(err, domain.ErrFilterSetNotFound) {
		t.Errorf("got %v, want ErrFilterSetNotFound", err)
	}
}

func TestRedisRepoListByCategory(t *testing.T) {
	repo := NewRedis(newMockKV(), "facetdex:")
	ctx := context.Background()

	first := mustSet(t, "One", "cnc-machining")
	second := mustSet(t, "Two", "cnc-machining")
	other := mustSet(t, "Other", "3d-printing")
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Save(ctx, other); err != nil {
		t.Fatalf("Save: %v", err)
	}

	sets, err := repo.List(ctx, "cnc-machining")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sets) != 2 {
		t.Fatalf("got %d sets, want 2", len(sets))
	}
	for _, set := range sets {
		if set.Category() != "cnc-machining" {
			t.Errorf("set %q leaked from category %q", set.Name(), set.Category())
		}
	}
}

func TestRedisRepoDelete(t *testing.T) {
	kv := newMockKV()
	repo := NewRedis(kv, "facetdex:")
	ctx := context.Background()
	set := mustSet(t, "Alu", "cnc-machining")

	if err := repo.Save(ctx, set); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Delete(ctx, set.ID()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(kv.data) != 0 {
		t.Errorf("keys remain after delete: %v", keysOf(kv.data))
	}
	if err := repo.Delete(ctx, set.ID()); err != nil {
		t.Errorf("Delete absent: %v", err)
	}
}

func TestRedisRepoScanError(t *testing.T) {
	kv := newMockKV()
	kv.scanErr = errors.New("connection refused")
	repo := NewRedis(kv, "facetdex:")

	if _, err := repo.Get(context.Background(), "id"); err == nil {
		t.Error("expected a scan error")
	}
	if _, err := repo.List(context.Background(), "cnc-machining"); err == nil {
		t.Error("expected a scan error")
	}
}

func TestRedisRepoSelectionShapeSurvivesJSON(t *testing.T) {
	repo := NewRedis(newMockKV(), "facetdex:")
	ctx := context.Background()

	sel := selection.New()
	sel.Toggle("material", "aluminum")
	sel.Toggle("material", "steel")
	sel.SetRangeBound("price", selection.Min, "10")
	sel.SetToggle("rush", true)
	set := mustSetWith(t, "Full Shape", "cnc-machining", sel)

	if err := repo.Save(ctx, set); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.Get(ctx, set.ID())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	filters := got.Filters()
	if !filters.Has("material", "steel") {
		t.Error("checkbox value lost")
	}
	if filters.RangeBound("price", selection.Min) != "10" {
		t.Error("range bound lost")
	}
	if !filters.Has("rush", "true") {
		t.Error("toggle lost")
	}
}

func keysOf(data map[string][]byte) []string {
	out := make([]string, 0, len(data))
	for key := range data {
		out = append(out, key)
	}
	return out
}
