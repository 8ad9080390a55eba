// Package timer owns the single active work timer: its state machine, the
// 1-second tick that drives local elapsed accounting, and the start/stop
// exchange with the backend.
package timer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/olejniktut/dc-landscaping/internal/domain"
	"github.com/olejniktut/dc-landscaping/internal/dto"
	"github.com/olejniktut/dc-landscaping/internal/gateway"
	"github.com/olejniktut/dc-landscaping/internal/storage"
	"github.com/olejniktut/dc-landscaping/pkg/logger"
)

const noActiveTimerMessage = "No active timer"

// TimerGateway is the slice of the backend the engine needs
type TimerGateway interface {
	StartTimer(ctx context.Context, req dto.TimerStartRequest) (*domain.TimeRecord, error)
	StopTimer(ctx context.Context, req dto.TimerStopRequest) (*domain.TimeRecord, error)
}

// Refresher re-reads the day's records after a successful stop
type Refresher interface {
	RefreshToday(ctx context.Context) error
}

// AuthSink receives forced-invalidation signals when an authenticated call
// reports the credential invalid
type AuthSink interface {
	Invalidate()
}

// Engine is the active-timer state machine. All transitions are guarded by
// the current state; a start or stop already in flight counts as active, so
// duplicate network requests are impossible by construction.
type Engine struct {
	mu           sync.Mutex
	state        domain.TimerState
	active       *domain.ActiveTimer
	elapsedWork  int64
	elapsedBreak int64
	pending      bool
	resets       uint64
	tickStop     chan struct{}
	tickInterval time.Duration

	gw        TimerGateway
	refresher Refresher
	store     storage.Store
	auth      AuthSink
	log       *logger.Logger
}

// Option configures the engine
type Option func(*Engine)

// WithTickInterval overrides the 1-second tick, for tests
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) { e.tickInterval = d }
}

// WithAuthSink wires the forced-logout path for expired credentials
func WithAuthSink(a AuthSink) Option {
	return func(e *Engine) { e.auth = a }
}

// New creates an idle engine
func New(gw TimerGateway, store storage.Store, refresher Refresher, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		state:        domain.TimerIdle,
		tickInterval: time.Second,
		gw:           gw,
		refresher:    refresher,
		store:        store,
		log:          log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start begins a new timer for the property and worker set. Valid only from
// idle; the worker set must be non-empty. On success the engine is running
// with both accumulators at zero and the worker set is remembered for the
// next start.
func (e *Engine) Start(ctx context.Context, propertyID int64, workerIDs []int64) domain.Result {
	ids := dedupe(workerIDs)
	if len(ids) == 0 {
		return domain.Fail(domain.ErrNoWorkers.Error())
	}

	e.mu.Lock()
	if e.state.Active() || e.pending {
		e.mu.Unlock()
		return domain.Fail(fmt.Sprintf("%v: timer already active", domain.ErrInvalidTransition))
	}
	e.pending = true
	gen := e.resets
	e.mu.Unlock()

	record, err := e.gw.StartTimer(ctx, dto.TimerStartRequest{PropertyID: propertyID, WorkerIDs: ids})

	e.mu.Lock()
	e.pending = false
	if err != nil {
		e.mu.Unlock()
		if errors.Is(err, domain.ErrSessionExpired) {
			e.invalidate()
		}
		return domain.Fail(gateway.ErrorDetail(err, ""))
	}
	if e.resets != gen {
		// The session was torn down while the call was in flight; the reset
		// wins and the engine stays idle.
		e.mu.Unlock()
		e.log.Warn("start confirmed after forced reset, discarding", zap.Int64("record_id", record.ID))
		return domain.Fail(domain.ErrSessionExpired.Error())
	}

	// Durable write before the in-memory commit so a reload sees the same
	// remembered worker set. Failure to remember is not failure to start.
	if err := e.store.SaveLastWorkers(ids); err != nil {
		e.log.Warn("remember workers", zap.Error(err))
	}

	e.active = &domain.ActiveTimer{
		ID:         record.ID,
		PropertyID: propertyID,
		WorkerIDs:  ids,
		StartedAt:  time.Now(),
	}
	e.elapsedWork = 0
	e.elapsedBreak = 0
	e.state = domain.TimerRunning
	e.startTickerLocked()
	e.mu.Unlock()

	e.log.Info("timer started",
		zap.Int64("record_id", record.ID),
		zap.Int64("property_id", propertyID),
		zap.Int64s("worker_ids", ids))
	return domain.OK()
}

// TogglePause flips between running and paused. No network call, no reset of
// the accumulators.
func (e *Engine) TogglePause() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.state {
	case domain.TimerRunning:
		e.state = domain.TimerPaused
	case domain.TimerPaused:
		e.state = domain.TimerRunning
	default:
		return fmt.Errorf("%w: no active timer", domain.ErrInvalidTransition)
	}
	return nil
}

// Stop finalizes the active timer. Break minutes are the floor of the break
// accumulator at the moment of the call; any partial minute is discarded.
// On failure the engine stays active so stop can be retried.
func (e *Engine) Stop(ctx context.Context, workerIDsOverride []int64) domain.Result {
	e.mu.Lock()
	if !e.state.Active() {
		e.mu.Unlock()
		return domain.Fail(noActiveTimerMessage)
	}
	if e.pending {
		e.mu.Unlock()
		return domain.Fail(fmt.Sprintf("%v: stop already in progress", domain.ErrInvalidTransition))
	}
	workers := dedupe(workerIDsOverride)
	if len(workers) == 0 {
		workers = e.active.WorkerIDs
	}
	req := dto.TimerStopRequest{
		TimeRecordID: e.active.ID,
		BreakMinutes: int(e.elapsedBreak / 60),
		WorkerIDs:    workers,
	}
	e.pending = true
	gen := e.resets
	e.mu.Unlock()

	// The tick keeps running while the call is in flight; it stops the
	// instant the success transition lands below.
	record, err := e.gw.StopTimer(ctx, req)

	e.mu.Lock()
	e.pending = false
	if err != nil {
		e.mu.Unlock()
		if errors.Is(err, domain.ErrSessionExpired) {
			e.invalidate()
		}
		return domain.Fail(gateway.ErrorDetail(err, ""))
	}
	if e.resets != gen {
		e.mu.Unlock()
		return domain.OK()
	}
	e.stopTickerLocked()
	e.state = domain.TimerIdle
	e.active = nil
	e.elapsedWork = 0
	e.elapsedBreak = 0
	e.mu.Unlock()

	e.log.Info("timer stopped",
		zap.Int64("record_id", record.ID),
		zap.Int("break_minutes", req.BreakMinutes))

	// Read-through refresh of the day's records; best effort, exactly once.
	if err := e.refresher.RefreshToday(ctx); err != nil {
		e.log.Warn("refresh today records", zap.Error(err))
	}
	return domain.OK()
}

// ForceStop tears the timer down without a network call: ticker cancelled,
// state reset to idle. Wired to session logout so an expired session always
// leaves the engine in a safe stopped state.
func (e *Engine) ForceStop() {
	e.mu.Lock()
	wasActive := e.state.Active()
	e.resets++
	e.stopTickerLocked()
	e.state = domain.TimerIdle
	e.active = nil
	e.elapsedWork = 0
	e.elapsedBreak = 0
	e.mu.Unlock()

	if wasActive {
		e.log.Info("timer force-stopped")
	}
}

// State returns the current timer state
func (e *Engine) State() domain.TimerState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Elapsed returns the work and break accumulators in seconds
func (e *Engine) Elapsed() (work, brk int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.elapsedWork, e.elapsedBreak
}

// Active returns a copy of the active timer, or nil when idle
func (e *Engine) Active() *domain.ActiveTimer {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return nil
	}
	cp := *e.active
	cp.WorkerIDs = append([]int64(nil), e.active.WorkerIDs...)
	return &cp
}

// tick advances the accumulator matching the current state. A straggler
// tick racing the teardown sees idle and does nothing.
func (e *Engine) tick() {
	e.mu.Lock()
	switch e.state {
	case domain.TimerRunning:
		e.elapsedWork++
	case domain.TimerPaused:
		e.elapsedBreak++
	}
	e.mu.Unlock()
}

// startTickerLocked launches the tick goroutine. At most one exists; it is
// owned by the engine and torn down on every transition out of an active
// state.
func (e *Engine) startTickerLocked() {
	if e.tickStop != nil {
		return
	}
	stop := make(chan struct{})
	e.tickStop = stop
	interval := e.tickInterval
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				e.tick()
			}
		}
	}()
}

func (e *Engine) stopTickerLocked() {
	if e.tickStop != nil {
		close(e.tickStop)
		e.tickStop = nil
	}
}

// invalidate forwards an expired credential to the session layer. Must be
// called without the engine lock held: the session's logout listeners call
// back into ForceStop.
func (e *Engine) invalidate() {
	if e.auth != nil {
		e.auth.Invalidate()
	}
}

// dedupe returns the ids with duplicates removed, order preserved
func dedupe(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
