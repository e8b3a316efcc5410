// Package chi exposes the browsing engine over a JSON REST API.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/makrhub/facetdex/internal/domain"
	"github.com/makrhub/facetdex/internal/domain/facet/selection"
	logpkg "github.com/makrhub/facetdex/internal/logger"
	"github.com/makrhub/facetdex/internal/usecase/browse"
	"github.com/makrhub/facetdex/internal/usecase/facets"
	filtersetuc "github.com/makrhub/facetdex/internal/usecase/filterset"
	searchuc "github.com/makrhub/facetdex/internal/usecase/search"
)

// Pinger reports storage liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers for the browsing API.
type Server struct {
	sessions      *browse.Manager
	search        *searchuc.Service
	registry      *facets.Registry
	sets          *filtersetuc.Service
	pinger        Pinger
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. pinger may be nil when the storage
// driver has no external backend.
func NewServer(
	sessions *browse.Manager,
	search *searchuc.Service,
	registry *facets.Registry,
	sets *filtersetuc.Service,
	pinger Pinger,
	logger *zap.Logger,
) *Server {
	s := &Server{
		sessions: sessions,
		search:   search,
		registry: registry,
		sets:     sets,
		pinger:   pinger,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrSessionNotFound, http.StatusNotFound, codeSessionNotFound),
		sentinelHandler(domain.ErrFilterSetNotFound, http.StatusNotFound, codeFilterSetNotFound),
		sentinelHandler(domain.ErrInvalidFilterSet, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidFacet, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidRange, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrSearchUnavailable, http.StatusServiceUnavailable, codeSearchUnavailable),
	}
	return s
}

// Routes mounts every endpoint on the router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Post("/sessions", s.createSession)
		r.Route("/sessions/{session}", func(r chi.Router) {
			r.Delete("/", s.deleteSession)
			r.Post("/input", s.input)
			r.Get("/results", s.results)
			r.Post("/keys", s.keys)
			r.Get("/filters", s.filters)
			r.Delete("/filters", s.clearFilters)
			r.Post("/filters/toggle", s.toggleFilter)
			r.Post("/filters/range", s.rangeFilter)
			r.Post("/filters/flag", s.flagFilter)
		})
		r.Get("/search", s.searchNow)
		r.Get("/categories/{category}/facets", s.categoryFacets)
		r.Post("/filter-sets", s.saveFilterSet)
		r.Get("/filter-sets", s.listFilterSets)
		r.Post("/filter-sets/{id}/apply", s.applyFilterSet)
		r.Delete("/filter-sets/{id}", s.deleteFilterSet)
	})
	r.Get("/healthz", s.healthz)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// createSession handles POST /v1/sessions.
func (s *Server) createSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.sessions.Create()
	writeJSON(w, http.StatusCreated, sessionResponse{SessionID: sess.ID()})
}

// deleteSession handles DELETE /v1/sessions/{session}.
func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	s.sessions.Delete(chi.URLParam(r, "session"))
	w.WriteHeader(http.StatusNoContent)
}

// input handles POST /v1/sessions/{session}/input.
func (s *Server) input(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req inputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sess.Input(req.Text)
	writeJSON(w, http.StatusAccepted, inputResponse{
		QueryID: sess.LatestID(),
		State:   string(sess.State()),
	})
}

// results handles GET /v1/sessions/{session}/results.
func (s *Server) results(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	rs, cursor, open := sess.Results()
	writeJSON(w, http.StatusOK, resultSetToDTO(rs, cursor, open, sess.State()))
}

// keys handles POST /v1/sessions/{session}/keys.
func (s *Server) keys(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req keyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	switch req.Key {
	case "down":
		sess.Down()
	case "up":
		sess.Up()
	case "escape":
		sess.Escape()
	case "enter":
		writeJSON(w, http.StatusOK, commitToDTO(sess.Enter()))
		return
	default:
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			"key must be one of down, up, enter, escape")
		return
	}

	_, cursor, open := sess.Results()
	writeJSON(w, http.StatusOK, map[string]any{
		"cursor":        cursor,
		"dropdown_open": open,
	})
}

// searchNow handles GET /v1/search: a synchronous one-shot pipeline run
// outside any session, no debounce.
func (s *Server) searchNow(w http.ResponseWriter, r *http.Request) {
	rs, err := s.search.Search(r.Context(), 0, r.URL.Query().Get("q"))
	if err != nil {
		s.handleDomainError(w, r, fmt.Errorf("%w: %w", domain.ErrSearchUnavailable, err))
		return
	}
	writeJSON(w, http.StatusOK, resultSetToDTO(rs, -1, false, ""))
}

// categoryFacets handles GET /v1/categories/{category}/facets.
func (s *Server) categoryFacets(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	defs := s.registry.Resolve(category)

	items := make([]facetDTO, len(defs))
	for i, d := range defs {
		items[i] = facetToDTO(d)
	}
	writeJSON(w, http.StatusOK, facetsResponse{Category: category, Facets: items})
}

// filters handles GET /v1/sessions/{session}/filters.
func (s *Server) filters(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.writeFilters(w, sess)
}

// clearFilters handles DELETE /v1/sessions/{session}/filters.
func (s *Server) clearFilters(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Filters().ClearAll()
	s.writeFilters(w, sess)
}

// toggleFilter handles POST /v1/sessions/{session}/filters/toggle.
func (s *Server) toggleFilter(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.FacetID == "" || req.Value == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "facet_id and value are required")
		return
	}

	sess.Filters().ToggleValue(req.FacetID, req.Value)
	s.writeFilters(w, sess)
}

// rangeFilter handles POST /v1/sessions/{session}/filters/range. A
// violating edit is not an HTTP error: it is silently rejected and the
// retained state returned.
func (s *Server) rangeFilter(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req rangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var bound selection.Bound
	switch req.Bound {
	case "min":
		bound = selection.Min
	case "max":
		bound = selection.Max
	default:
		writeError(w, http.StatusBadRequest, codeValidationFailed, "bound must be min or max")
		return
	}

	sess.Filters().SetRange(req.FacetID, bound, req.Value)
	s.writeFilters(w, sess)
}

// flagFilter handles POST /v1/sessions/{session}/filters/flag.
func (s *Server) flagFilter(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req flagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.FacetID == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "facet_id is required")
		return
	}

	if req.On == nil {
		sess.Filters().ClearToggle(req.FacetID)
	} else {
		sess.Filters().SetToggle(req.FacetID, *req.On)
	}
	s.writeFilters(w, sess)
}

// saveFilterSet handles POST /v1/filter-sets: snapshots the session's
// current selection under a name.
func (s *Server) saveFilterSet(w http.ResponseWriter, r *http.Request) {
	var req saveSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Name == "" || req.Category == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "name and category are required")
		return
	}

	sess, err := s.sessions.Get(req.SessionID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	set, err := s.sets.Save(r.Context(), req.Name, req.Category, sess.Filters().State())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, filterSetToDTO(set))
}

// listFilterSets handles GET /v1/filter-sets?category=.
func (s *Server) listFilterSets(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "category query parameter is required")
		return
	}

	sets := s.sets.List(r.Context(), category)
	items := make([]filterSetDTO, len(sets))
	for i, set := range sets {
		items[i] = filterSetToDTO(set)
	}
	writeJSON(w, http.StatusOK, filterSetListResponse{Items: items})
}

// applyFilterSet handles POST /v1/filter-sets/{id}/apply: replaces the
// session's selection with the saved snapshot wholesale.
func (s *Server) applyFilterSet(w http.ResponseWriter, r *http.Request) {
	var req applySetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	sess, err := s.sessions.Get(req.SessionID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	sel, err := s.sets.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	sess.Filters().Replace(sel)
	s.writeFilters(w, sess)
}

// deleteFilterSet handles DELETE /v1/filter-sets/{id}.
func (s *Server) deleteFilterSet(w http.ResponseWriter, r *http.Request) {
	if err := s.sets.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// healthz handles GET /healthz.
func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "healthy", Checks: map[string]string{}}
	status := http.StatusOK

	if s.pinger != nil {
		if err := s.pinger.Ping(r.Context()); err != nil {
			resp.Status = "unhealthy"
			resp.Checks["storage"] = "down"
			status = http.StatusServiceUnavailable
		} else {
			resp.Checks["storage"] = "up"
		}
	}

	writeJSON(w, status, resp)
}

// session resolves the {session} URL parameter, writing the error response
// itself when the session is unknown.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*browse.Session, bool) {
	sess, err := s.sessions.Get(chi.URLParam(r, "session"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) writeFilters(w http.ResponseWriter, sess *browse.Session) {
	writeJSON(w, http.StatusOK, filtersResponse{
		Filters:     sess.Filters().State(),
		ActiveCount: sess.Filters().ActiveCount(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrSessionNotFound,
		domain.ErrFilterSetNotFound,
		domain.ErrInvalidFilterSet,
		domain.ErrInvalidFacet,
		domain.ErrInvalidRange,
		domain.ErrSearchUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.requestLogger(r)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

// requestLogger prefers the request-scoped logger installed by the
// middleware, so error logs carry the request id.
func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	if l, ok := logpkg.FromContext(r.Context()); ok {
		return l
	}
	return s.logger
}
