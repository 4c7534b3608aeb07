package settings

import (
	"fmt"

	"github.com/julianstephens/labcita/internal/cli"
	"github.com/julianstephens/labcita/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone     *string `help:"IANA timezone used to decide today's date (e.g. America/Lima, or Local)."`
	DefaultLab   *string `help:"Lab id or name preselected in new appointments."`
	ShowTerminal *bool   `help:"Show cancelled and completed appointments in lists."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:              %s\n", settings.Timezone)
		fmt.Printf("  Default Lab:           %s\n", settings.DefaultLabID)
		fmt.Printf("  Show Terminal:         %v\n", settings.ShowTerminal)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone: %s", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.DefaultLab != nil {
		store, err := ctx.Appointments()
		if err != nil {
			return err
		}
		lab, ok := store.Catalog().ResolveLab(*c.DefaultLab)
		if !ok {
			return fmt.Errorf("unknown lab: %s", *c.DefaultLab)
		}
		settings.DefaultLabID = lab.ID
		updated = true
	}
	if c.ShowTerminal != nil {
		settings.ShowTerminal = *c.ShowTerminal
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
