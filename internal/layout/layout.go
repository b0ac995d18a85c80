// Package layout computes the rendered content of the constrained display
// region: transient message text on the left, the status summary on the
// right, squeezed into a fixed frame width. All functions are pure.
package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

// Width measures a string in display cells, ignoring ANSI escapes.
func Width(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

// Render lays out a single left line against the right-zone text.
//
// When both zones fit, right lands flush against the right edge of the
// frame; rightPadding only reserves a guard band in the fit test, forcing
// the wrap/truncate path earlier. extra reports how many physical lines the
// result occupies beyond the first.
func Render(left, right string, frameWidth, rightPadding int, hardTruncate bool) (text string, extra int) {
	if frameWidth <= 0 {
		return left, 0
	}
	if Width(right) > frameWidth {
		right = TrimStatusSegments(right, frameWidth)
	}

	lw := Width(left)
	rw := Width(right)
	available := frameWidth - lw - rightPadding
	if available < 0 {
		available = 0
	}

	if available >= rw {
		gap := frameWidth - lw - rw
		if gap < 0 {
			gap = 0
		}
		return left + strings.Repeat(" ", gap) + right, 0
	}

	if hardTruncate {
		combined := left
		if right != "" {
			if combined != "" {
				combined += " "
			}
			combined += right
		}
		if Width(combined) > frameWidth {
			combined = truncate.StringWithTail(combined, uint(frameWidth), "…")
		}
		return combined, 0
	}

	// Wrap: left keeps the first physical line(s), right moves to its own
	// line, justified one column short of the frame edge. Right itself must
	// honor that same bound.
	if rw > frameWidth-1 {
		right = truncate.StringWithTail(right, uint(frameWidth-1), "…")
		rw = Width(right)
	}
	pad := frameWidth - 1 - rw
	if pad < 0 {
		pad = 0
	}
	extra = (lw + frameWidth - 1) / frameWidth
	return left + "\n" + strings.Repeat(" ", pad) + right, extra
}

// RenderLines lays out a possibly multi-line left text. The most recent left
// line (the last one) is rendered first and paired with right; older lines
// follow with an empty right zone and are dropped first once the running
// physical line count would exceed maxLines. Returns the joined text and the
// total physical line count.
func RenderLines(left, right string, frameWidth, rightPadding int, hardTruncate bool, maxLines int) (string, int) {
	if maxLines < 1 {
		maxLines = 1
	}
	parts := strings.Split(left, "\n")

	rendered := make([]string, 0, len(parts))
	total := 0
	for i := len(parts) - 1; i >= 0; i-- {
		r := right
		if len(rendered) > 0 {
			r = ""
		}
		text, extra := Render(parts[i], r, frameWidth, rightPadding, hardTruncate)
		if total+extra+1 > maxLines {
			break
		}
		rendered = append(rendered, text)
		total += extra + 1
	}
	if len(rendered) == 0 {
		// The newest line alone would blow the cap. Show it hard-truncated
		// rather than dropping it unseen.
		text, _ := Render(parts[len(parts)-1], right, frameWidth, rightPadding, true)
		return text, 1
	}
	return strings.Join(rendered, "\n"), total
}
