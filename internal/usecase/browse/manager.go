package browse

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/makrhub/facetdex/internal/domain"
	"github.com/makrhub/facetdex/internal/usecase/orchestrator"
)

// Manager creates and tracks browsing sessions and expires idle ones.
type Manager struct {
	pipeline orchestrator.Pipeline
	logger   *zap.Logger
	debounce time.Duration
	timeout  time.Duration
	ttl      time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager over the shared search pipeline.
func NewManager(pipeline orchestrator.Pipeline, logger *zap.Logger, debounce, timeout, ttl time.Duration) *Manager {
	return &Manager{
		pipeline: pipeline,
		logger:   logger,
		debounce: debounce,
		timeout:  timeout,
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session and returns it.
func (m *Manager) Create() *Session {
	s := NewSession(uuid.NewString(), m.pipeline, m.logger, m.debounce, m.timeout)

	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	m.logger.Debug("session created", zap.String("session_id", s.ID()))
	return s
}

// Get returns a session by id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

// Delete closes and removes a session. Absent ids are a no-op.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.Close()
	}
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep expires idle sessions until the context is done. Intended to run
// as a background goroutine.
func (m *Manager) Sweep(ctx context.Context) {
	interval := m.ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.expire(now)
		}
	}
}

func (m *Manager) expire(now time.Time) {
	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.expired(m.ttl, now) {
			delete(m.sessions, id)
			expired = append(expired, s)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.Close()
		m.logger.Debug("session expired", zap.String("session_id", s.ID()))
	}
}

// Close closes every live session.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for id, s := range m.sessions {
		sessions = append(sessions, s)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
