package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// View renders the editor body above and the display region below. The
// region content itself is never recomputed here; the view only shows
// whatever the engine last committed through the bridge.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	regionRows := m.bridge.RegionHeight()
	if m.promptOpen {
		// The prompt owns the shared surface while it is open.
		regionRows = 1
	}
	ruleRows := 0
	if m.thinLine {
		ruleRows = 1
	}
	bodyRows := m.height - regionRows - ruleRows
	if bodyRows < 1 {
		bodyRows = 1
	}

	rows := make([]string, 0, m.height)
	rows = append(rows, m.bodyLines(bodyRows)...)
	if m.thinLine {
		rows = append(rows, styles.Rule.Render(strings.Repeat("─", m.width)))
	}
	rows = append(rows, m.regionLines(regionRows)...)
	return strings.Join(rows, "\n")
}

func (m *Model) bodyLines(count int) []string {
	top := m.top
	if m.line-1 < top {
		top = m.line - 1
	}
	if m.line > top+count {
		top = m.line - count
	}
	m.top = top

	lines := make([]string, 0, count)
	for i := top; i < top+count; i++ {
		if i >= len(m.body) {
			lines = append(lines, "")
			continue
		}
		num := styles.LineNumber.Render(fmt.Sprintf("%3d ", i+1))
		text := m.body[i]
		if w := lipgloss.Width(text); w > m.width-4 && m.width > 5 {
			text = truncate.StringWithTail(text, uint(m.width-5), "…")
		}
		lines = append(lines, num+styles.Body.Render(text))
	}
	return lines
}

func (m *Model) regionLines(count int) []string {
	if m.promptOpen {
		return []string{m.prompt.View()}
	}
	content := strings.Split(m.bridge.RegionText(), "\n")
	style := styles.Message
	if m.enhanceVisual && m.engine.Sticky() {
		style = styles.StickyHeld
	}
	lines := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if i >= len(content) {
			lines = append(lines, "")
			continue
		}
		line := content[i]
		if w := lipgloss.Width(line); w > m.width && m.width > 1 {
			line = truncate.StringWithTail(line, uint(m.width-1), "…")
		}
		if style != nil {
			line = style.Render(line)
		}
		lines = append(lines, line)
	}
	return lines
}
