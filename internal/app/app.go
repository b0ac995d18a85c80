package app

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/echoline/echoline/internal/engine"
	"github.com/echoline/echoline/internal/logging/events"
	"github.com/echoline/echoline/internal/segments"
	"github.com/echoline/echoline/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	Width          int
	Height         int
	RightFormat    string
	RightPadding   int
	Truncate       bool
	UpdateInterval time.Duration
	EnhanceVisual  bool
	ThinLine       bool
}

// Run bootstraps and executes the Bubble Tea program. The engine is enabled
// for the program's lifetime and torn down fully on exit.
func Run(cfg Config) error {
	bridge := ui.NewBridge()
	if cfg.Width > 0 {
		bridge.SetWidth(cfg.Width)
	}
	eng := engine.New(bridge, engine.SystemClock(), engine.Options{
		UpdateInterval: cfg.UpdateInterval,
		RightPadding:   cfg.RightPadding,
		Truncate:       cfg.Truncate,
	})
	model := ui.NewModel(eng, bridge, segments.New(cfg.RightFormat), cfg.Width, cfg.Height, cfg.EnhanceVisual, cfg.ThinLine)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())
	bridge.SetNotify(func() {
		program.Send(ui.RegionUpdated())
	})

	eng.Enable()
	defer func() {
		eng.Disable()
		events.App.Stop()
	}()

	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
