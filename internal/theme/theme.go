package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the host view.
type Styles struct {
	Body       *lipgloss.Style
	LineNumber *lipgloss.Style
	Message    *lipgloss.Style
	StickyHeld *lipgloss.Style
	Status     *lipgloss.Style
	Rule       *lipgloss.Style
	Prompt     *lipgloss.Style
	PromptText *lipgloss.Style
}

var defaultStyles = Styles{
	Body: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	),
	LineNumber: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	Message: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	),
	StickyHeld: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Rule: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	Prompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	PromptText: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
