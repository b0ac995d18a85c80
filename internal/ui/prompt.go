package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// openPrompt activates the command prompt. While it is open the bridge
// reports the input surface as active, so the engine drops redraw requests
// outright instead of racing the user for the shared surface.
func (m *Model) openPrompt() {
	m.promptOpen = true
	m.prompt.SetValue("")
	m.prompt.Focus()
	m.bridge.SetInputActive(true)
}

func (m *Model) closePrompt() {
	m.promptOpen = false
	m.prompt.Blur()
	m.bridge.SetInputActive(false)
	// The prompt vacated the shared surface; redraw what it covered.
	m.engine.RegionExit()
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEscape, tea.KeyCtrlG:
		m.closePrompt()
		return nil
	case tea.KeyEnter:
		input := strings.TrimSpace(m.prompt.Value())
		m.closePrompt()
		return m.runCommand(input)
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return cmd
}

// runCommand executes a prompt command. Every branch that produces output
// goes through the interception path, so dedup, keep semantics and the
// forced redraw all apply.
func (m *Model) runCommand(input string) tea.Cmd {
	if input == "" {
		return nil
	}
	m.engine.CommandStart()
	defer m.engine.CommandEnd()

	name, rest, _ := strings.Cut(input, " ")
	switch name {
	case "q", "quit":
		return tea.Quit
	case "w", "write":
		m.engine.EmitMessage("Wrote " + m.name)
	case "echo":
		m.engine.EmitMessage(rest)
	case "mode":
		if rest != "" {
			m.mode = rest
			m.publishStatus()
			m.engine.StatusChanged()
		}
	default:
		m.engine.EmitMessage("Unknown command: " + name)
	}
	return nil
}
