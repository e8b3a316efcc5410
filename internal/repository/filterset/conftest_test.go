package filterset

import (
	"context"
	"strings"
	"testing"

	"github.com/makrhub/facetdex/internal/db"
	"github.com/makrhub/facetdex/internal/domain/facet/selection"
	domset "github.com/makrhub/facetdex/internal/domain/filterset"
)

// mockKV implements the consumer kv interface over a plain map.
type mockKV struct {
	data    map[string][]byte
	scanErr error
	getErr  error
}

func newMockKV() *mockKV {
	return &mockKV{data: make(map[string][]byte)}
}

func (m *mockKV) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	data, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return data, nil
}

func (m *mockKV) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func (m *mockKV) Del(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mockKV) Scan(_ context.Context, pattern string) ([]string, error) {
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	var keys []string
	for key := range m.data {
		if matchPattern(pattern, key) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// matchPattern supports the single-star glob forms the repo uses.
func matchPattern(pattern, key string) bool {
	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return pattern == key
	}
	if !strings.HasPrefix(key, parts[0]) {
		return false
	}
	rest := key[len(parts[0]):]
	for _, part := range parts[1:] {
		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(part):]
	}
	return strings.HasSuffix(key, parts[len(parts)-1])
}

func mustSet(t *testing.T, name, category string) domset.Set {
	t.Helper()
	sel := selection.New()
	sel.Toggle("material", "aluminum")
	sel.SetRangeBound("price", selection.Max, "100")
	return mustSetWith(t, name, category, sel)
}

func mustSetWith(t *testing.T, name, category string, sel selection.Selection) domset.Set {
	t.Helper()
	set, err := domset.New(name, category, sel)
	if err != nil {
		t.Fatalf("domset.New: %v", err)
	}
	return set
}
