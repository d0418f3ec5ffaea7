package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/tui"
)

// TuiCmd opens the full-screen dashboard.
type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tracker()
	if err != nil {
		return err
	}

	// Back up before the dashboard takes over the terminal
	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(store), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start TUI: %w", err)
	}
	return nil
}
