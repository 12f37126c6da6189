// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package preview

import (
	"sync"
	"time"
)

// Status is the lifecycle state of a preview attempt.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusFailed  Status = "failed"
)

const (
	// DefaultLoadTimeout is how long a viewer gets to report success before
	// the orchestrator treats the attempt as failed and falls back.
	DefaultLoadTimeout = 20 * time.Second

	// DefaultMaxAutoSwitches caps automatic fallbacks. Two switches walk the
	// full default strategy cycle once.
	DefaultMaxAutoSwitches = 2
)

// Timer is the cancellable handle returned by Clock.AfterFunc.
type Timer interface {
	Stop() bool
}

// Clock schedules deferred callbacks. Injected so the timeout path is
// testable without real sleeps.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Config tunes an Orchestrator. Zero values fall back to the defaults above.
type Config struct {
	// Strategies is the cyclic fallback order. Defaults to DefaultStrategies.
	Strategies []Strategy

	// MaxAutoSwitches caps automatic strategy switches before the
	// orchestrator gives up. Manual switches are never capped.
	MaxAutoSwitches int

	// LoadTimeout bounds each viewer attempt.
	LoadTimeout time.Duration

	// Clock supplies timers. Defaults to the system clock.
	Clock Clock

	// OnChange, when set, is invoked with a snapshot after every state
	// transition. Called outside the orchestrator's lock, so it may call
	// back into the orchestrator.
	OnChange func(Snapshot)
}

// Snapshot is a point-in-time view of the orchestrator state.
type Snapshot struct {
	Status   Status
	Strategy Strategy

	// AttemptCount is the number of automatic fallbacks spent in the current
	// failure cycle. Manual switches do not move it.
	AttemptCount int

	// ViewerURL is the current strategy's embed URL for RawURL.
	ViewerURL string

	// RawURL is the unwrapped content URL, always exposed so the consumer
	// can offer a direct download regardless of viewer health.
	RawURL string
}

// Orchestrator drives the viewer fallback state machine for one document.
// All state transitions are serialized; callers may use one instance from
// multiple goroutines.
type Orchestrator struct {
	mu sync.Mutex

	cfg    Config
	rawURL string

	status      Status
	strategyIdx int

	// attempts counts automatic advances only; manual switches are exempt
	// from the MaxAutoSwitches ceiling.
	attempts int

	closed bool

	// timerGen invalidates callbacks from timers that were superseded by a
	// later transition. A stale timer firing after Loaded must be a no-op.
	timer    Timer
	timerGen uint64
}

// NewOrchestrator builds an idle orchestrator for the given raw content URL.
func NewOrchestrator(rawURL string, cfg Config) *Orchestrator {
	if len(cfg.Strategies) == 0 {
		cfg.Strategies = DefaultStrategies
	}

	if cfg.MaxAutoSwitches <= 0 {
		cfg.MaxAutoSwitches = DefaultMaxAutoSwitches
	}

	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = DefaultLoadTimeout
	}

	if cfg.Clock == nil {
		cfg.Clock = systemClock{}
	}

	return &Orchestrator{
		cfg:    cfg,
		rawURL: rawURL,
		status: StatusIdle,
	}
}

// Start begins loading with the first strategy. No-op once closed.
func (o *Orchestrator) Start() {
	o.mu.Lock()

	if o.closed {
		o.mu.Unlock()
		return
	}

	o.strategyIdx = 0
	o.attempts = 0
	o.enterLoadingLocked()

	o.finish()
}

// NotifyLoaded records that the current viewer rendered successfully. Only
// meaningful while loading; late or duplicate notifications are ignored.
func (o *Orchestrator) NotifyLoaded() {
	o.mu.Lock()

	if o.closed || o.status != StatusLoading {
		o.mu.Unlock()
		return
	}

	o.cancelTimerLocked()
	o.status = StatusLoaded

	// A successful render closes the failure cycle; a later failure starts
	// over with the full automatic budget.
	o.attempts = 0

	o.finish()
}

// NotifyLoadError records that the current viewer failed to render, which
// triggers an automatic fallback or, once the ceiling is hit, failure.
func (o *Orchestrator) NotifyLoadError() {
	o.mu.Lock()

	if o.closed || o.status != StatusLoading {
		o.mu.Unlock()
		return
	}

	o.autoAdvanceLocked()

	o.finish()
}

// SwitchViewer advances to the next strategy on user request. Works from any
// non-closed state, including Loaded, and is never capped: the ceiling only
// bounds automatic fallbacks, so a manual switch leaves the automatic budget
// untouched.
func (o *Orchestrator) SwitchViewer() {
	o.mu.Lock()

	if o.closed {
		o.mu.Unlock()
		return
	}

	o.strategyIdx = (o.strategyIdx + 1) % len(o.cfg.Strategies)
	o.enterLoadingLocked()

	o.finish()
}

// Retry restarts the whole cycle from the first strategy with a fresh
// attempt budget.
func (o *Orchestrator) Retry() {
	o.mu.Lock()

	if o.closed {
		o.mu.Unlock()
		return
	}

	o.strategyIdx = 0
	o.attempts = 0
	o.enterLoadingLocked()

	o.finish()
}

// Close stops the orchestrator and cancels any pending timer. Further calls
// on the instance are no-ops.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.closed = true
	o.cancelTimerLocked()
}

// Snapshot returns the current state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.snapshotLocked()
}

func (o *Orchestrator) snapshotLocked() Snapshot {
	strategy := o.cfg.Strategies[o.strategyIdx]

	return Snapshot{
		Status:       o.status,
		Strategy:     strategy,
		AttemptCount: o.attempts,
		ViewerURL:    BuildViewerURL(o.rawURL, strategy),
		RawURL:       o.rawURL,
	}
}

// enterLoadingLocked moves to Loading under the current strategy and arms a
// fresh timeout, invalidating any previously armed timer.
func (o *Orchestrator) enterLoadingLocked() {
	o.cancelTimerLocked()
	o.status = StatusLoading

	o.timerGen++
	gen := o.timerGen

	o.timer = o.cfg.Clock.AfterFunc(o.cfg.LoadTimeout, func() {
		o.timerExpired(gen)
	})
}

func (o *Orchestrator) timerExpired(gen uint64) {
	o.mu.Lock()

	// A stale generation means the attempt this timer guarded already
	// resolved some other way.
	if o.closed || gen != o.timerGen || o.status != StatusLoading {
		o.mu.Unlock()
		return
	}

	o.autoAdvanceLocked()

	o.finish()
}

func (o *Orchestrator) autoAdvanceLocked() {
	if o.attempts >= o.cfg.MaxAutoSwitches {
		o.cancelTimerLocked()
		o.status = StatusFailed

		return
	}

	o.strategyIdx = (o.strategyIdx + 1) % len(o.cfg.Strategies)
	o.attempts++
	o.enterLoadingLocked()
}

func (o *Orchestrator) cancelTimerLocked() {
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
}

// finish releases the lock and fires the change callback with the state the
// caller just produced. Must be called with the lock held.
func (o *Orchestrator) finish() {
	var snap Snapshot
	if o.cfg.OnChange != nil {
		snap = o.snapshotLocked()
	}

	onChange := o.cfg.OnChange
	o.mu.Unlock()

	if onChange != nil {
		onChange(snap)
	}
}
