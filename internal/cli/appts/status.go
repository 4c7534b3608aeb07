package appts

import (
	"bufio"
	"fmt"
	"os"

	"github.com/julianstephens/labcita/internal/appointments"
	"github.com/julianstephens/labcita/internal/cli"
	"github.com/julianstephens/labcita/internal/utils"
)

type ConfirmCmd struct {
	ID string `arg:"" help:"Appointment id or unique id prefix."`
}

func (c *ConfirmCmd) Run(ctx *cli.Context) error {
	return applyAction(ctx, c.ID, appointments.ActionConfirm)
}

type CompleteCmd struct {
	ID string `arg:"" help:"Appointment id or unique id prefix."`
}

func (c *CompleteCmd) Run(ctx *cli.Context) error {
	return applyAction(ctx, c.ID, appointments.ActionComplete)
}

type CancelCmd struct {
	ID  string `arg:"" help:"Appointment id or unique id prefix."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *CancelCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		store, err := ctx.Appointments()
		if err != nil {
			return err
		}
		id, err := resolveID(store, c.ID)
		if err != nil {
			return err
		}
		appt, err := store.Get(id)
		if err != nil {
			return err
		}

		fmt.Printf("Cancelar la cita de %s el %s a las %s? [y/N]: ", appt.PatientName, utils.FormatDisplayDate(appt.Date), appt.Time)
		response, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return err
		}
		if !cli.Confirm(response) {
			fmt.Println("Cancelación descartada.")
			return nil
		}
	}
	return applyAction(ctx, c.ID, appointments.ActionCancel)
}

func applyAction(ctx *cli.Context, ref string, action appointments.Action) error {
	if err := ctx.RequireAccess(); err != nil {
		return err
	}
	store, err := ctx.Appointments()
	if err != nil {
		return err
	}
	id, err := resolveID(store, ref)
	if err != nil {
		return err
	}

	_, err = store.Apply(id, action)
	notice := appointments.ActionNotice(action, err)
	if err != nil {
		return rejected(&notice, err)
	}
	fmt.Printf("✓ %s\n", notice)
	return nil
}
