// Package ui is the terminal host: a small demo editor surface on top, the
// engine-owned display region at the bottom. It adapts Bubble Tea messages
// into the engine's lifecycle signals and owns the interception of the
// message and interrupt primitives.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/echoline/echoline/internal/engine"
	"github.com/echoline/echoline/internal/format/table"
	"github.com/echoline/echoline/internal/segments"
	"github.com/echoline/echoline/internal/theme"
)

var styles = theme.Default()

// regionUpdatedMsg repaints after the engine committed a render.
type regionUpdatedMsg struct{}

// RegionUpdated is the message the bridge notify hook feeds back into the
// program so committed renders become visible.
func RegionUpdated() tea.Msg {
	return regionUpdatedMsg{}
}

// clockTickMsg refreshes time-based status segments.
type clockTickMsg time.Time

var keyHelp = [][]string{
	{"j/k, arrows", "move the cursor"},
	{"s", "save (emits a message)"},
	{":", "open the command prompt"},
	{"ctrl+l", "refresh the status line"},
	{"ctrl+g", "interrupt / clear stuck messages"},
	{"ctrl+z", "suspend"},
	{"q", "quit"},
}

func sampleBody() []string {
	body := []string{
		"Transient status output belongs in one place.",
		"",
		"Messages arrive on the left, newest first, and",
		"linger briefly once their source is consumed.",
		"The status summary keeps to the right edge.",
		"",
		"Keys:",
	}
	for _, row := range table.Format(keyHelp, []table.Alignment{table.AlignLeft, table.AlignLeft}) {
		body = append(body, "  "+row)
	}
	return body
}

// Model implements the Bubble Tea host model.
type Model struct {
	engine *engine.Engine
	bridge *Bridge
	seg    *segments.Renderer

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	name string
	mode string
	body []string
	top  int
	line int
	col  int

	promptOpen bool
	prompt     textinput.Model

	enhanceVisual bool
	thinLine      bool
}

// NewModel wires the host model to an engine and its bridge.
func NewModel(eng *engine.Engine, bridge *Bridge, seg *segments.Renderer, width, height int, enhanceVisual, thinLine bool) *Model {
	prompt := textinput.New()
	prompt.Prompt = ":"
	if styles.Prompt != nil {
		prompt.PromptStyle = *styles.Prompt
	}
	if styles.PromptText != nil {
		prompt.TextStyle = *styles.PromptText
	}
	m := &Model{
		engine: eng,
		bridge: bridge,
		seg:    seg,
		name:   "scratch",
		mode:   "normal",
		body:   sampleBody(),
		line:   1,
		col:    1,
		prompt: prompt,

		enhanceVisual: enhanceVisual,
		thinLine:      thinLine,
	}
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}
	m.publishStatus()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return clockTick()
}

func clockTick() tea.Cmd {
	return tea.Tick(30*time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil
	case tea.FocusMsg:
		m.engine.RegionEnter()
		return m, nil
	case tea.BlurMsg:
		m.engine.FocusLost()
		return m, nil
	case tea.ResumeMsg:
		// Back from suspend; whatever is on screen is stale.
		m.engine.RegionEnter()
		return m, nil
	case clockTickMsg:
		m.publishStatus()
		m.engine.StatusChanged()
		return m, clockTick()
	case regionUpdatedMsg:
		// State already lives in the bridge; repaint happens on return.
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	if m.promptOpen {
		return m.handlePromptKey(msg)
	}

	// Every top-level keystroke is a host command: suppression of unforced
	// redraws spans its whole handler.
	m.engine.CommandStart()
	defer m.engine.CommandEnd()

	switch msg.String() {
	case "q":
		return tea.Quit
	case "ctrl+z":
		m.engine.FocusLost()
		return tea.Suspend
	case "ctrl+g":
		if !m.engine.HandleInterrupt() {
			// Nothing on the message surface: the host's normal cancel
			// behavior, which for the demo is a no-op.
			m.engine.SurfaceCleared()
		}
	case "ctrl+l":
		m.publishStatus()
		m.engine.StatusChanged()
	case ":":
		m.openPrompt()
	case "s":
		m.engine.EmitMessage("Wrote " + m.name)
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "left", "h":
		if m.col > 1 {
			m.col--
			m.publishStatus()
		}
	case "right", "l":
		m.col++
		m.publishStatus()
	}
	return nil
}

func (m *Model) moveCursor(delta int) {
	m.line += delta
	if m.line < 1 {
		m.line = 1
	}
	if m.line > len(m.body) {
		m.line = len(m.body)
	}
	m.col = 1
	m.publishStatus()
}

func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	if !m.fixedWidth {
		m.width = msg.Width
	}
	if !m.fixedHeight {
		m.height = msg.Height
	}
	m.bridge.SetWidth(m.width)
	maxRegion := m.height / 3
	if maxRegion < 2 {
		maxRegion = 2
	}
	if maxRegion > 8 {
		maxRegion = 8
	}
	m.bridge.SetRegionBounds(1, maxRegion)
	m.publishStatus()
	m.engine.StatusChanged()
}

// publishStatus reformats the right-zone summary into the bridge.
func (m *Model) publishStatus() {
	percent := 100
	if len(m.body) > 1 {
		percent = (m.line - 1) * 100 / (len(m.body) - 1)
	}
	m.bridge.SetStatus(m.seg.Render(segments.Context{
		Name:     m.name,
		Mode:     m.mode,
		Line:     m.line,
		Col:      m.col,
		Percent:  percent,
		Encoding: "utf-8",
		EOL:      "unix",
		Now:      time.Now(),
	}))
}
