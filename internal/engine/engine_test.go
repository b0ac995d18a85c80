package engine_test

import (
	"strings"
	"testing"
	"time"

	"github.com/echoline/echoline/internal/engine"
	"github.com/echoline/echoline/internal/testutil"
)

type fakeHost struct {
	width  int
	region engine.Region

	text     string
	replaces int
	resizes  []int

	status       string
	inputActive  bool
	inputPending bool
	echoOff      bool
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		width:  40,
		region: engine.Region{Height: 1, MinHeight: 1, MaxHeight: 8},
		status: "[utf-8] L1:C1",
	}
}

func (h *fakeHost) DisplayWidth() int            { return h.width }
func (h *fakeHost) DisplayRegion() engine.Region { return h.region }
func (h *fakeHost) StatusText() string           { return h.status }
func (h *fakeHost) InputActive() bool            { return h.inputActive }
func (h *fakeHost) InputPending() bool           { return h.inputPending }
func (h *fakeHost) SetEchoSuppressed(s bool)     { h.echoOff = s }

func (h *fakeHost) ResizeDisplayRegion(delta int) {
	h.resizes = append(h.resizes, delta)
	h.region.Height += delta
}

func (h *fakeHost) ReplaceDisplayRegionText(text string) {
	h.text = text
	h.replaces++
}

func newEngine(h *fakeHost) (*engine.Engine, *testutil.Clock) {
	clock := testutil.NewClock(time.Unix(1000, 0))
	e := engine.New(h, clock, engine.Options{UpdateInterval: 100 * time.Millisecond})
	return e, clock
}

func TestEnableAppliesInitialRender(t *testing.T) {
	h := newFakeHost()
	e, clock := newEngine(h)
	e.Enable()
	if h.replaces != 0 {
		t.Fatalf("apply must be deferred, got %d replaces before advance", h.replaces)
	}
	clock.Advance(150 * time.Millisecond)
	if h.replaces != 1 {
		t.Fatalf("expected exactly one apply, got %d", h.replaces)
	}
	if !strings.HasSuffix(h.text, h.status) {
		t.Fatalf("expected status summary at right edge, got %q", h.text)
	}
}

func TestEmitMessageReturnsOriginalText(t *testing.T) {
	h := newFakeHost()
	e, _ := newEngine(h)
	e.Enable()
	if got := e.EmitMessage("hello"); got != "hello" {
		t.Fatalf("EmitMessage must return its input, got %q", got)
	}
}

func TestRapidRequestsCoalesceIntoOneApply(t *testing.T) {
	h := newFakeHost()
	e, clock := newEngine(h)
	e.Enable()
	clock.Advance(150 * time.Millisecond)
	before := h.replaces

	e.EmitMessage("first")
	clock.Advance(10 * time.Millisecond)
	e.EmitMessage("second")
	clock.Advance(200 * time.Millisecond)

	if h.replaces != before+1 {
		t.Fatalf("expected a single coalesced apply, got %d", h.replaces-before)
	}
	if !strings.Contains(h.text, "second") {
		t.Fatalf("apply must use the later request's content, got %q", h.text)
	}
}

func TestRedrawDroppedWhileInputSurfaceActive(t *testing.T) {
	h := newFakeHost()
	e, clock := newEngine(h)
	e.Enable()
	clock.Advance(150 * time.Millisecond)
	before := h.replaces

	h.inputActive = true
	e.EmitMessage("ignored for now")
	e.StatusChanged()
	clock.Advance(time.Second)

	if h.replaces != before {
		t.Fatalf("redraws must be dropped while input surface is active, got %d applies", h.replaces-before)
	}
}

func TestRedrawDroppedWhileInputPending(t *testing.T) {
	h := newFakeHost()
	e, clock := newEngine(h)
	e.Enable()
	clock.Advance(150 * time.Millisecond)
	before := h.replaces

	h.inputPending = true
	e.StatusChanged()
	clock.Advance(time.Second)

	if h.replaces != before {
		t.Fatalf("redraws must be dropped while input is pending, got %d applies", h.replaces-before)
	}
}

func TestCommandEndIsIntervalGated(t *testing.T) {
	h := newFakeHost()
	e, clock := newEngine(h)
	e.Enable()
	clock.Advance(150 * time.Millisecond)
	before := h.replaces

	e.CommandStart()
	if !h.echoOff {
		t.Fatalf("command start must suppress keystroke echo")
	}
	clock.Advance(10 * time.Millisecond)
	e.CommandEnd()
	if h.echoOff {
		t.Fatalf("command end must restore keystroke echo")
	}
	clock.Advance(150 * time.Millisecond)
	if h.replaces != before {
		t.Fatalf("command-end redraw inside the interval must be dropped, got %d applies", h.replaces-before)
	}

	// Past the interval the same signal is honored.
	e.CommandStart()
	e.CommandEnd()
	clock.Advance(150 * time.Millisecond)
	if h.replaces != before+1 {
		t.Fatalf("expected one apply after the interval elapsed, got %d", h.replaces-before)
	}
}

func TestUnforcedRedrawSuppressedMidCommand(t *testing.T) {
	h := newFakeHost()
	e, clock := newEngine(h)
	e.Enable()
	clock.Advance(150 * time.Millisecond)
	clock.Advance(time.Second) // move past the update interval
	before := h.replaces

	e.CommandStart()
	e.RequestRedraw(false)
	clock.Advance(200 * time.Millisecond)
	if h.replaces != before {
		t.Fatalf("unforced redraw mid-command must be dropped, got %d applies", h.replaces-before)
	}

	e.RequestRedraw(true)
	clock.Advance(200 * time.Millisecond)
	if h.replaces != before+1 {
		t.Fatalf("forced redraw mid-command must apply, got %d", h.replaces-before)
	}
}

func TestGrowImmediatelyShrinkWithHysteresis(t *testing.T) {
	h := newFakeHost()
	e, clock := newEngine(h)
	e.Enable()
	clock.Advance(150 * time.Millisecond)

	e.EmitMessage("one")
	e.EmitMessage("two")
	e.EmitMessage("three")
	clock.Advance(150 * time.Millisecond)
	if h.region.Height != 3 {
		t.Fatalf("expected immediate grow to 3 rows, got %d", h.region.Height)
	}

	// Clear everything and force a redraw: the shrink falls inside the
	// cooldown and must be deferred.
	if !e.HandleInterrupt() {
		t.Fatalf("interrupt with queued messages must be absorbed")
	}
	clock.Advance(150 * time.Millisecond)
	if h.region.Height != 3 {
		t.Fatalf("shrink inside cooldown must be deferred, got height %d", h.region.Height)
	}

	// After the cooldown the idle safety net catches up and shrinks.
	clock.Advance(6 * time.Second)
	if h.region.Height != 1 {
		t.Fatalf("expected shrink back to 1 row, got %d", h.region.Height)
	}
}

func TestIdleSafetyNetForcesRedraw(t *testing.T) {
	h := newFakeHost()
	e, clock := newEngine(h)
	e.Enable()
	clock.Advance(150 * time.Millisecond)
	before := h.replaces

	clock.Advance(6 * time.Second)
	if h.replaces <= before {
		t.Fatalf("idle timer must force a redraw, got %d applies", h.replaces-before)
	}
}

func TestIdleSafetyNetSurvivesBusyTick(t *testing.T) {
	h := newFakeHost()
	e, clock := newEngine(h)
	e.Enable()
	clock.Advance(150 * time.Millisecond)

	h.inputActive = true
	clock.Advance(6 * time.Second) // tick fires into the input-busy drop
	before := h.replaces

	h.inputActive = false
	clock.Advance(6 * time.Second)
	if h.replaces <= before {
		t.Fatalf("idle safety net must re-arm after a dropped tick, got %d applies", h.replaces-before)
	}
}

func TestSupersededRequestRestartsBatchingWindow(t *testing.T) {
	h := newFakeHost()
	e, clock := newEngine(h)
	e.Enable()
	clock.Advance(150 * time.Millisecond)
	before := h.replaces

	e.EmitMessage("first")
	clock.Advance(90 * time.Millisecond)
	e.EmitMessage("second")
	clock.Advance(90 * time.Millisecond)
	if h.replaces != before {
		t.Fatalf("superseding request must restart the batching window, got %d applies", h.replaces-before)
	}

	clock.Advance(20 * time.Millisecond)
	if h.replaces != before+1 {
		t.Fatalf("expected one apply after the restarted window, got %d", h.replaces-before)
	}
	if !strings.Contains(h.text, "second") {
		t.Fatalf("apply must carry the superseding content, got %q", h.text)
	}
}

func TestInterruptWithEmptySurfaceFallsThrough(t *testing.T) {
	h := newFakeHost()
	e, clock := newEngine(h)
	e.Enable()
	clock.Advance(150 * time.Millisecond)
	clock.Advance(6 * time.Second) // drain sticky hold via idle redraws

	if e.HandleInterrupt() {
		t.Fatalf("interrupt with nothing displayed must defer to the host")
	}
}

func TestDisableRestoresRegionAndIsIdempotent(t *testing.T) {
	h := newFakeHost()
	e, clock := newEngine(h)
	e.Enable()
	clock.Advance(150 * time.Millisecond)
	e.EmitMessage("one")
	e.EmitMessage("two")
	clock.Advance(150 * time.Millisecond)

	e.Disable()
	if h.text != "" {
		t.Fatalf("disable must clear the display region, got %q", h.text)
	}
	if h.region.Height != h.region.MinHeight {
		t.Fatalf("disable must restore min height, got %d", h.region.Height)
	}
	if h.echoOff {
		t.Fatalf("disable must restore keystroke echo")
	}

	replaces, resizes := h.replaces, len(h.resizes)
	e.Disable()
	clock.Advance(10 * time.Second)
	if h.replaces != replaces || len(h.resizes) != resizes {
		t.Fatalf("second disable must have no further side effects")
	}
}

func TestDisabledEngineIgnoresSignals(t *testing.T) {
	h := newFakeHost()
	e, clock := newEngine(h)
	e.EmitMessage("dropped")
	e.StatusChanged()
	clock.Advance(time.Second)
	if h.replaces != 0 {
		t.Fatalf("disabled engine must not touch the region, got %d applies", h.replaces)
	}
}
