package system

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/labcita/internal/cli"
	"github.com/julianstephens/labcita/internal/instance"
	"github.com/julianstephens/labcita/internal/logger"
	"github.com/julianstephens/labcita/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAccess(); err != nil {
		return fmt.Errorf("%w: run 'labcita login' first", err)
	}
	store, err := ctx.Appointments()
	if err != nil {
		return err
	}
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	mgr, err := ctx.Session()
	if err != nil {
		return err
	}

	if dbPath := ctx.DatabasePath(); dbPath != "" {
		lock, err := instance.Acquire(instance.LockPath(dbPath))
		if err != nil {
			if errors.Is(err, instance.ErrAlreadyRunning) {
				return fmt.Errorf("%w: close the other TUI first", err)
			}
			return err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn("Failed to release lock", "error", err)
			}
		}()
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(store, settings, mgr.Auth()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI exited with error: %w", err)
	}
	return nil
}
