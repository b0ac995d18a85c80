// Package engine schedules and applies renders of the constrained display
// region. A single Engine aggregate owns every piece of mutable state: the
// message queue, the sticky text, the debounce timestamps and the pending
// timer slots. All entry points serialize behind one mutex, so handlers run
// to completion exactly as if the host delivered signals cooperatively.
package engine

import (
	"sync"
	"time"

	"github.com/echoline/echoline/internal/logging/events"
	"github.com/echoline/echoline/internal/msgqueue"
)

const (
	// applyDelay batches rapid-fire redraw requests into one apply.
	applyDelay = 100 * time.Millisecond
	// idleInterval is the safety-net cadence guaranteeing eventual
	// consistency when event triggers are missed.
	idleInterval = 5 * time.Second
	// stickyHold keeps the last rendered message visible after its source
	// messages are consumed.
	stickyHold = 5 * time.Second
	// shrinkCooldown is the resize hysteresis: grow immediately, shrink at
	// most once per cooldown.
	shrinkCooldown = 2 * time.Second

	defaultUpdateInterval = 100 * time.Millisecond
)

// Options carries the user-tunable knobs.
type Options struct {
	// UpdateInterval is the minimum gap between interval-gated applies.
	UpdateInterval time.Duration
	// RightPadding reserves trailing columns in the fit test.
	RightPadding int
	// Truncate selects hard truncation over wrapping when the line
	// overflows.
	Truncate bool
}

// renderRequest is the content captured at schedule time.
type renderRequest struct {
	left     string
	right    string
	snapshot []string
	keep     bool
}

// Engine multiplexes message producers into the display region.
type Engine struct {
	mu sync.Mutex

	host  Host
	clock Clock
	opts  Options
	queue *msgqueue.Queue

	enabled   bool
	inCommand bool

	lastApply  time.Time
	lastResize time.Time

	pending    Timer
	pendingReq *renderRequest
	pendingSeq uint64
	idle       Timer
}

// New builds an Engine for the given host. The clock is injectable for
// tests; pass SystemClock() otherwise.
func New(host Host, clock Clock, opts Options) *Engine {
	if opts.UpdateInterval <= 0 {
		opts.UpdateInterval = defaultUpdateInterval
	}
	return &Engine{
		host:  host,
		clock: clock,
		opts:  opts,
		queue: msgqueue.New(stickyHold),
	}
}

// Enable activates the engine and takes over the display region. Calling it
// on an enabled engine is a no-op.
func (e *Engine) Enable() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.enabled {
		return
	}
	e.enabled = true
	e.inCommand = false
	e.lastApply = time.Time{}
	e.lastResize = time.Time{}
	events.Engine.Enable()
	e.resetIdleLocked()
	e.scheduleLocked(true, false)
}

// Disable cancels all timers, clears the queue and restores the display
// region. Idempotent: a second call finds nothing left to undo.
func (e *Engine) Disable() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelPendingLocked()
	if e.idle != nil {
		e.idle.Stop()
		e.idle = nil
	}
	if !e.enabled {
		return
	}
	e.enabled = false
	e.inCommand = false
	e.queue.Clear()
	e.host.SetEchoSuppressed(false)
	region := e.host.DisplayRegion()
	if delta := region.MinHeight - region.Height; delta != 0 {
		e.host.ResizeDisplayRegion(delta)
	}
	e.host.ReplaceDisplayRegionText("")
	events.Engine.Disable()
}

// EmitMessage intercepts the host's message primitive: the text is enqueued
// and a forced redraw is scheduled with keep semantics so the fresh message
// survives its own render. The original text is always returned so wrapped
// callers compose unchanged.
func (e *Engine) EmitMessage(text string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.enabled {
		return text
	}
	events.Engine.Message(text)
	e.queue.Enqueue(text)
	e.scheduleLocked(true, true)
	return text
}

// HandleInterrupt implements the interrupt-to-clear contract. When the
// message surface holds anything, everything pending and sticky is dropped
// and a forced redraw scheduled; the return value tells the host whether
// the interrupt was absorbed (true) or its normal cancel behavior should
// proceed (false).
func (e *Engine) HandleInterrupt() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.enabled || e.queue.Empty() {
		return false
	}
	events.Engine.InterruptCleared(e.queue.Len())
	e.queue.Clear()
	e.scheduleLocked(true, false)
	return true
}

// CommandStart marks a command in flight. Keystroke echo is suppressed and
// unforced redraws are held off until the command ends.
func (e *Engine) CommandStart() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.enabled {
		return
	}
	e.inCommand = true
	e.host.SetEchoSuppressed(true)
}

// CommandEnd restores echo and attempts an interval-gated redraw.
func (e *Engine) CommandEnd() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.enabled {
		return
	}
	e.inCommand = false
	e.host.SetEchoSuppressed(false)
	e.scheduleLocked(false, false)
}

// StatusChanged forces a recompute-and-redraw after arbitrary host state
// changes.
func (e *Engine) StatusChanged() { e.signal("status-changed") }

// FocusLost redraws so the region reflects state before attention moves
// elsewhere.
func (e *Engine) FocusLost() { e.signal("focus-lost") }

// RegionEnter redraws when the host enters the display region.
func (e *Engine) RegionEnter() { e.signal("region-enter") }

// RegionExit redraws when the host leaves the display region.
func (e *Engine) RegionExit() { e.signal("region-exit") }

// SurfaceCleared redraws after the host wiped the shared surface.
func (e *Engine) SurfaceCleared() { e.signal("surface-cleared") }

// Sticky reports whether the display is only holding the last rendered
// message, with no unconsumed messages pending.
func (e *Engine) Sticky() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled && e.queue.Len() == 0 && !e.queue.Empty()
}

// RequestRedraw schedules a redraw; forced requests bypass the
// command-in-flight and minimum-interval gates.
func (e *Engine) RequestRedraw(force bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scheduleLocked(force, false)
}

func (e *Engine) signal(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	events.Host.Signal(name)
	e.scheduleLocked(true, false)
}

// scheduleLocked is the single entry point that leads to a layout
// computation. The request content is captured here; the apply itself runs
// after applyDelay so bursts coalesce, and scheduling anew cancels a
// not-yet-fired predecessor.
func (e *Engine) scheduleLocked(force, keep bool) {
	if !e.enabled {
		return
	}
	if e.host.InputActive() || e.host.InputPending() {
		// Deliberate skip-while-busy: never queued for later.
		events.Engine.Drop("input-busy")
		return
	}
	if e.inCommand && !force {
		events.Engine.Drop("command-in-flight")
		return
	}
	now := e.clock.Now()
	if !force && !e.lastApply.IsZero() && now.Sub(e.lastApply) < e.opts.UpdateInterval {
		events.Engine.Drop("interval")
		return
	}
	e.resetIdleLocked()
	if e.pendingReq != nil && e.pendingReq.keep {
		// A superseded keep-request keeps protecting its messages.
		keep = true
	}
	events.Engine.Schedule(force, keep)

	snapshot := e.queue.Snapshot()
	e.pendingReq = &renderRequest{
		left:     e.queue.SnapshotLeft(now),
		right:    e.host.StatusText(),
		snapshot: snapshot,
		keep:     keep,
	}
	e.cancelTimerLocked()
	e.pendingSeq++
	seq := e.pendingSeq
	e.pending = e.clock.AfterFunc(applyDelay, func() { e.firePending(seq) })
}

func (e *Engine) firePending(seq uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if seq != e.pendingSeq {
		// Fired before Stop could land, then lost the lock race to a
		// superseding request. That request owns its own full delay.
		return
	}
	req := e.pendingReq
	e.pending = nil
	e.pendingReq = nil
	if !e.enabled || req == nil {
		return
	}
	e.applyLocked(req)
}

func (e *Engine) cancelTimerLocked() {
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
}

func (e *Engine) cancelPendingLocked() {
	e.cancelTimerLocked()
	e.pendingReq = nil
}

// resetIdleLocked restarts the inactivity safety net. It fires a forced
// redraw after idleInterval without any other scheduling activity.
func (e *Engine) resetIdleLocked() {
	if e.idle != nil {
		e.idle.Stop()
	}
	e.idle = e.clock.AfterFunc(idleInterval, e.idleTick)
}

func (e *Engine) idleTick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.enabled {
		return
	}
	// Re-arm before attempting the redraw: the request may be dropped
	// (input surface busy) and a dropped tick must not disarm the net.
	e.resetIdleLocked()
	e.scheduleLocked(true, false)
}
