// Package orchestrator schedules debounced search pipeline runs and
// guarantees that published result sets follow query issuance order,
// never completion order.
package orchestrator

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/makrhub/facetdex/internal/domain/search/resultset"
	"github.com/makrhub/facetdex/internal/metrics"
)

// State is the orchestrator lifecycle phase.
type State string

// Orchestrator states.
const (
	Idle     State = "idle"
	Pending  State = "pending"
	InFlight State = "in_flight"
	Settled  State = "settled"
)

// Pipeline runs the search pipeline for one issued query.
type Pipeline interface {
	Search(ctx context.Context, queryID uint64, raw string) (resultset.ResultSet, error)
}

// PublishFunc receives each committed result set. Calls are serialized and
// strictly follow query issuance order.
type PublishFunc func(resultset.ResultSet)

const (
	// DefaultDebounce is the delay between the last input change and
	// pipeline execution.
	DefaultDebounce = 200 * time.Millisecond
	// DefaultTimeout bounds a single pipeline run. A timed-out run settles
	// as an unavailable empty set rather than hanging the session.
	DefaultTimeout = 3 * time.Second
)

// Orchestrator debounces input changes into pipeline runs. Every run gets
// a monotonically increasing query id; a result is published only while
// its id is still the latest issued, so stale completions are discarded.
type Orchestrator struct {
	pipeline Pipeline
	publish  PublishFunc
	logger   *zap.Logger
	debounce time.Duration
	timeout  time.Duration

	mu      sync.Mutex
	state   State
	nextID  uint64
	latest  uint64
	timer   *time.Timer
	pending string
	closed  bool
}

// New creates an orchestrator in the Idle state.
func New(pipeline Pipeline, publish PublishFunc, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		pipeline: pipeline,
		publish:  publish,
		logger:   logger,
		debounce: DefaultDebounce,
		timeout:  DefaultTimeout,
		state:    Idle,
	}
}

// WithDebounce overrides the debounce delay.
func (o *Orchestrator) WithDebounce(d time.Duration) *Orchestrator {
	if d > 0 {
		o.debounce = d
	}
	return o
}

// WithTimeout overrides the per-run pipeline timeout.
func (o *Orchestrator) WithTimeout(d time.Duration) *Orchestrator {
	if d > 0 {
		o.timeout = d
	}
	return o
}

// Input registers an input change. Any pending timer is cancelled and any
// in-flight query is superseded. Empty input publishes an empty result set
// immediately and returns to Idle without scheduling anything.
func (o *Orchestrator) Input(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}

	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
		metrics.DebounceCancelledTotal.Inc()
	}

	// Bump the gate: anything in flight is now stale.
	o.nextID++
	o.latest = o.nextID

	if isEmptyInput(text) {
		o.state = Idle
		o.pending = ""
		o.publish(resultset.Empty(o.latest))
		return
	}

	o.pending = text
	o.state = Pending
	id := o.latest
	o.timer = time.AfterFunc(o.debounce, func() { o.fire(id) })
}

// fire transitions Pending -> InFlight and runs the pipeline.
func (o *Orchestrator) fire(id uint64) {
	o.mu.Lock()
	if o.closed || id != o.latest {
		o.mu.Unlock()
		return
	}
	o.state = InFlight
	o.timer = nil
	raw := o.pending
	o.mu.Unlock()

	metrics.QueriesIssuedTotal.Inc()

	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()

	rs, err := o.pipeline.Search(ctx, id, raw)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			o.logger.Warn("search pipeline failed",
				zap.Uint64("query_id", id),
				zap.Error(err),
			)
		}
		metrics.PipelineUnavailableTotal.Inc()
		rs = resultset.Unavailable(id)
	}

	o.commit(id, rs)
}

// commit publishes the result set if its query id is still the latest
// issued; otherwise the result is dropped as stale.
func (o *Orchestrator) commit(id uint64, rs resultset.ResultSet) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	if id != o.latest {
		metrics.StaleDroppedTotal.Inc()
		o.logger.Debug("stale result dropped",
			zap.Uint64("query_id", id),
			zap.Uint64("latest", o.latest),
		)
		return
	}
	o.state = Settled
	o.publish(rs)
}

// State returns the current lifecycle phase.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// LatestID returns the most recently issued query id.
func (o *Orchestrator) LatestID() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.latest
}

// Close stops any pending timer and suppresses further publications.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
}

func isEmptyInput(text string) bool {
	for _, r := range text {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
