package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/labcita/internal/cli"
	"github.com/julianstephens/labcita/internal/logger"
	"github.com/julianstephens/labcita/internal/models"
	"github.com/julianstephens/labcita/internal/storage"
)

type DebugCmd struct {
	DBPath          *DebugDBPathCmd          `cmd:"" help:"Show database and log paths."`
	DumpAppointment *DebugDumpAppointmentCmd `cmd:"" help:"Dump appointment data as JSON."`
	DumpSettings    *DebugDumpSettingsCmd    `cmd:"" help:"Dump settings data as JSON."`
	DumpSession     *DebugDumpSessionCmd     `cmd:"" help:"Dump registration and login state as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return cli.PrintJSON(map[string]string{
		"path": ctx.Store.GetConfigPath(),
		"log":  logger.Path(),
	})
}

type DebugDumpAppointmentCmd struct {
	ID string `arg:"" help:"Appointment id."`
}

func (cmd *DebugDumpAppointmentCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAccess(); err != nil {
		return err
	}
	appt, err := ctx.Store.GetAppointment(cmd.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no appointment found with id: %s", cmd.ID)
		}
		return fmt.Errorf("failed to get appointment: %w", err)
	}
	return cli.PrintJSON(appt)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return cli.PrintJSON(settings)
}

type DebugDumpSessionCmd struct{}

type sessionDump struct {
	Registration *models.Registration `json:"registration"`
	Auth         models.AuthState     `json:"auth"`
	Active       bool                 `json:"active"`
}

func (cmd *DebugDumpSessionCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.Session()
	if err != nil {
		return err
	}
	dump := sessionDump{Auth: mgr.Auth(), Active: mgr.IsActive()}
	if reg, ok := mgr.Registration(); ok {
		dump.Registration = &reg
	}
	return cli.PrintJSON(dump)
}
