package ui

import (
	"sync"

	"github.com/echoline/echoline/internal/engine"
)

// Bridge implements engine.Host over the state shared with the Bubble Tea
// model. The engine mutates it from timer goroutines, the model reads it on
// the program loop, so every access goes through the mutex. The engine is
// the only writer of the region text and height; the model is the only
// writer of everything else.
type Bridge struct {
	mu sync.Mutex

	width  int
	region engine.Region
	text   string

	status       string
	inputActive  bool
	inputPending bool
	echoOff      bool

	notify func()
}

// NewBridge returns a bridge with a collapsed one-row region.
func NewBridge() *Bridge {
	return &Bridge{
		width:  80,
		region: engine.Region{Height: 1, MinHeight: 1, MaxHeight: 4},
	}
}

// SetNotify registers a callback fired after the engine touches the region,
// so the program loop repaints without polling.
func (b *Bridge) SetNotify(fn func()) {
	b.mu.Lock()
	b.notify = fn
	b.mu.Unlock()
}

func (b *Bridge) DisplayWidth() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width
}

func (b *Bridge) DisplayRegion() engine.Region {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.region
}

func (b *Bridge) ResizeDisplayRegion(delta int) {
	b.mu.Lock()
	h := b.region.Height + delta
	if h < b.region.MinHeight {
		h = b.region.MinHeight
	}
	if h > b.region.MaxHeight {
		h = b.region.MaxHeight
	}
	b.region.Height = h
	fn := b.notify
	b.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (b *Bridge) ReplaceDisplayRegionText(text string) {
	b.mu.Lock()
	b.text = text
	fn := b.notify
	b.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (b *Bridge) StatusText() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

func (b *Bridge) InputActive() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inputActive
}

func (b *Bridge) InputPending() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inputPending
}

func (b *Bridge) SetEchoSuppressed(suppressed bool) {
	b.mu.Lock()
	b.echoOff = suppressed
	b.mu.Unlock()
}

// RegionText returns the committed region content for the view.
func (b *Bridge) RegionText() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

// RegionHeight returns the current region height for the view.
func (b *Bridge) RegionHeight() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.region.Height
}

// EchoSuppressed reports whether keystroke echo is currently off.
func (b *Bridge) EchoSuppressed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.echoOff
}

// SetWidth records the usable display width.
func (b *Bridge) SetWidth(width int) {
	b.mu.Lock()
	if width > 0 {
		b.width = width
	}
	b.mu.Unlock()
}

// SetRegionBounds adjusts the grow/shrink bounds, clamping the current
// height into the new range.
func (b *Bridge) SetRegionBounds(minHeight, maxHeight int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if minHeight < 1 {
		minHeight = 1
	}
	if maxHeight < minHeight {
		maxHeight = minHeight
	}
	b.region.MinHeight = minHeight
	b.region.MaxHeight = maxHeight
	if b.region.Height < minHeight {
		b.region.Height = minHeight
	}
	if b.region.Height > maxHeight {
		b.region.Height = maxHeight
	}
}

// SetStatus publishes the freshly formatted status summary.
func (b *Bridge) SetStatus(status string) {
	b.mu.Lock()
	b.status = status
	b.mu.Unlock()
}

// SetInputActive flags the prompt as the live input surface.
func (b *Bridge) SetInputActive(active bool) {
	b.mu.Lock()
	b.inputActive = active
	b.mu.Unlock()
}

// SetInputPending flags undispatched input waiting on the host loop.
func (b *Bridge) SetInputPending(pending bool) {
	b.mu.Lock()
	b.inputPending = pending
	b.mu.Unlock()
}
