// Package browse ties one catalog browsing session together: debounced
// query orchestration, keyboard navigation over the published results, and
// the session's active filter selection.
package browse

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/makrhub/facetdex/internal/domain/search/resultset"
	"github.com/makrhub/facetdex/internal/usecase/facets"
	"github.com/makrhub/facetdex/internal/usecase/navigation"
	"github.com/makrhub/facetdex/internal/usecase/orchestrator"
)

// Session is one user's browsing state. All methods are safe for
// concurrent use.
type Session struct {
	id     string
	orch   *orchestrator.Orchestrator
	filter *facets.Service

	mu       sync.Mutex
	nav      *navigation.Controller
	results  resultset.ResultSet
	rawInput string
	lastSeen time.Time
}

// NewSession wires a session around the shared search pipeline. Each
// session owns its orchestrator, navigation cursor, and filter selection.
func NewSession(id string, pipeline orchestrator.Pipeline, logger *zap.Logger, debounce, timeout time.Duration) *Session {
	s := &Session{
		id:       id,
		filter:   facets.NewService(logger),
		nav:      navigation.New(),
		results:  resultset.Empty(0),
		lastSeen: time.Now(),
	}
	s.orch = orchestrator.New(pipeline, s.onPublish, logger).
		WithDebounce(debounce).
		WithTimeout(timeout)
	return s
}

// onPublish replaces the session's result view wholesale and resets the
// cursor so it can never point into the previous list.
func (s *Session) onPublish(rs resultset.ResultSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = rs
	s.nav.SetLength(rs.Len())
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Input registers a query input change.
func (s *Session) Input(text string) {
	s.mu.Lock()
	s.rawInput = text
	s.lastSeen = time.Now()
	s.mu.Unlock()

	// Called outside s.mu: the orchestrator publishes while holding its own
	// lock and onPublish takes s.mu.
	s.orch.Input(text)
}

// Results returns the current published result set with the cursor state.
func (s *Session) Results() (resultset.ResultSet, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return s.results, s.nav.Cursor(), s.nav.DropdownOpen()
}

// State returns the orchestrator lifecycle phase.
func (s *Session) State() orchestrator.State {
	return s.orch.State()
}

// LatestID returns the most recently issued query id.
func (s *Session) LatestID() uint64 {
	return s.orch.LatestID()
}

// Down moves the cursor down and opens the dropdown.
func (s *Session) Down() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	s.nav.Down()
}

// Up moves the cursor up.
func (s *Session) Up() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	s.nav.Up()
}

// Enter commits the highlighted candidate or a full-text search for the
// current input. A commit clears the typed query: pressing Enter again
// without new input commits nothing.
func (s *Session) Enter() navigation.Commit {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	commit := s.nav.Enter(s.rawInput)
	if commit.Kind != navigation.None {
		s.rawInput = ""
	}
	return commit
}

// Escape closes the dropdown and resets the cursor.
func (s *Session) Escape() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	s.nav.Escape()
}

// Filters returns the session's filter selection service.
func (s *Session) Filters() *facets.Service { return s.filter }

// Close stops the session's orchestrator.
func (s *Session) Close() {
	s.orch.Close()
}

func (s *Session) expired(ttl time.Duration, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen) > ttl
}
