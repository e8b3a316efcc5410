package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/makrhub/facetdex/internal/domain/catalog"
	"github.com/makrhub/facetdex/internal/domain/facet"
	"github.com/makrhub/facetdex/internal/domain/search/query"
	filtersetrepo "github.com/makrhub/facetdex/internal/repository/filterset"
	"github.com/makrhub/facetdex/internal/usecase/browse"
	"github.com/makrhub/facetdex/internal/usecase/facets"
	filtersetuc "github.com/makrhub/facetdex/internal/usecase/filterset"
	searchuc "github.com/makrhub/facetdex/internal/usecase/search"
)

const testDebounce = 20 * time.Millisecond

type stubCatalog struct {
	snap catalog.Snapshot
}

func (c *stubCatalog) Snapshot(context.Context) (catalog.Snapshot, error) {
	return c.snap, nil
}

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping(context.Context) error { return p.err }

func testRegistry(t *testing.T) *facets.Registry {
	t.Helper()
	material, err := facet.NewCheckbox("material", "Material", []facet.Option{
		{Value: "aluminum", Label: "Aluminum"},
		{Value: "steel", Label: "Steel"},
	})
	if err != nil {
		t.Fatalf("NewCheckbox: %v", err)
	}
	price, err := facet.NewRange("price", "Price", 0, 500, "USD")
	if err != nil {
		t.Fatalf("NewRange: %v", err)
	}
	return facets.NewRegistry(map[string][]facet.Definition{
		"cnc-machining": {material, price},
	})
}

type testEnv struct {
	server  *Server
	router  *chi.Mux
	manager *browse.Manager
	pinger  *stubPinger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()

	cat := &stubCatalog{snap: catalog.Snapshot{
		Products: []catalog.Product{
			{ID: "prod-1", Title: "PLA Filament 1kg", Brand: "Prusament", Price: 24.99},
			{ID: "prod-2", Title: "Aluminum Stock Plate", Brand: "Makr Metals"},
		},
		Categories: []catalog.Category{
			{ID: "cat-1", Name: "CNC Machining", Slug: "cnc-machining"},
		},
	}}
	searchSvc := searchuc.New(cat, query.NewSynonyms(nil))

	manager := browse.NewManager(searchSvc, logger, testDebounce, time.Second, time.Minute)
	t.Cleanup(manager.Close)

	setsSvc := filtersetuc.New(filtersetrepo.NewMemory(), logger)
	pinger := &stubPinger{}

	server := NewServer(manager, searchSvc, testRegistry(t), setsSvc, pinger, logger)
	router := chi.NewRouter()
	server.Routes(router)

	return &testEnv{server: server, router: router, manager: manager, pinger: pinger}
}

// do runs one request through the router and decodes the JSON body into out
// when out is non-nil.
func (e *testEnv) do(t *testing.T, method, path string, body, out any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec
}

func (e *testEnv) createSession(t *testing.T) string {
	t.Helper()
	var resp sessionResponse
	rec := e.do(t, http.MethodPost, "/v1/sessions", nil, &resp)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: status %d", rec.Code)
	}
	if resp.SessionID == "" {
		t.Fatal("create session: empty id")
	}
	return resp.SessionID
}

// waitForCandidates polls the results endpoint until the debounced run
// publishes.
func (e *testEnv) waitForCandidates(t *testing.T, session string, want int) resultsResponse {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	var resp resultsResponse
	for time.Now().Before(deadline) {
		e.do(t, http.MethodGet, "/v1/sessions/"+session+"/results", nil, &resp)
		if len(resp.Candidates) == want {
			return resp
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d candidates, have %d", want, len(resp.Candidates))
	return resp
}
