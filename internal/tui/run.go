package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the UI until the user quits or ctx is canceled.
func Run(ctx context.Context, l Ledger, opts ...Option) error {
	m := New(ctx, l, opts...)

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if m.config.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	if _, err := tea.NewProgram(m, progOpts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}
