// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type owns the alternate screen and mouse reporting. All page
// state lives in the engine; the model only renders it and turns keys,
// mouse drags and voice results into engine calls.
package display

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/healthmate/internal/engine"
	"github.com/hammamikhairi/healthmate/internal/logger"
)

// UI runs the Bubble Tea program.
type UI struct {
	model Model
}

// NewUI creates the display. Call Run to start.
func NewUI(ctx context.Context, eng *engine.Engine, log *logger.Logger, opts ...Option) *UI {
	return &UI{model: NewModel(ctx, eng, log, opts...)}
}

// Run starts the event loop and blocks until the user quits or ctx ends.
func (u *UI) Run(ctx context.Context) error {
	p := tea.NewProgram(u.model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
