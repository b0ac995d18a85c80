package engine

import (
	"fmt"

	"github.com/echoline/echoline/internal/layout"
	"github.com/echoline/echoline/internal/logging"
	"github.com/echoline/echoline/internal/logging/events"
)

// applyLocked commits one captured render request to the display region:
// compute the layout, replace the region text atomically, resize with
// hysteresis, consume the rendered messages, and stamp the apply time. The
// whole cycle sits behind a catch-all boundary; if anything escapes, the
// region keeps its last-good content and the next trigger retries from
// scratch.
func (e *Engine) applyLocked(req *renderRequest) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error(fmt.Errorf("render cycle abandoned: %v", r))
		}
	}()

	width := e.host.DisplayWidth()
	region := e.host.DisplayRegion()
	maxLines := region.MaxHeight - region.MinHeight - 1
	text, lines := layout.RenderLines(req.left, req.right, width, e.opts.RightPadding, e.opts.Truncate, maxLines)

	target := lines
	if target < region.MinHeight {
		target = region.MinHeight
	}
	if region.MaxHeight > 0 && target > region.MaxHeight {
		target = region.MaxHeight
	}
	delta := target - region.Height

	now := e.clock.Now()
	e.host.ReplaceDisplayRegionText(text)
	switch {
	case delta > 0:
		e.host.ResizeDisplayRegion(delta)
		e.lastResize = now
	case delta < 0:
		if e.lastResize.IsZero() || now.Sub(e.lastResize) >= shrinkCooldown {
			e.host.ResizeDisplayRegion(delta)
			e.lastResize = now
		} else {
			// Hysteresis: leave the height alone, a later cycle catches up.
			events.Engine.ShrinkDeferred(delta)
		}
	}

	e.queue.Consume(req.snapshot, req.keep)
	e.lastApply = now
	events.Engine.Apply(lines, delta)
}
