package appts

import (
	"fmt"

	"github.com/julianstephens/labcita/internal/appointments"
	"github.com/julianstephens/labcita/internal/cli"
	"github.com/julianstephens/labcita/internal/models"
	"github.com/julianstephens/labcita/internal/utils"
)

type ListCmd struct {
	Search string `help:"Filter by patient name, patient id or lab." short:"s"`
	Status string `help:"Only show this status (Pendiente, Confirmada, Cancelada, Completada or the English names)."`
	All    bool   `help:"Include cancelled and completed appointments even when show_terminal is off."`
	ByDate bool   `help:"Sort by date and time instead of booking order." name:"by-date"`
	JSON   bool   `help:"Output as JSON." name:"json"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAccess(); err != nil {
		return err
	}
	store, err := ctx.Appointments()
	if err != nil {
		return err
	}
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	filter := appointments.Filter{
		Search:       c.Search,
		HideTerminal: !settings.ShowTerminal && !c.All,
	}
	if c.Status != "" {
		status, err := models.ParseStatus(c.Status)
		if err != nil {
			return err
		}
		filter.Status = status
	}

	all := store.List()
	list := filter.Apply(all)
	if c.ByDate {
		appointments.SortBySchedule(list)
	}

	if c.JSON {
		return cli.PrintJSON(list)
	}

	if len(list) == 0 {
		fmt.Println("No hay citas que coincidan.")
	} else {
		fmt.Printf("%-8s  %-10s  %-5s  %-22s  %-8s  %-22s  %s\n", "ID", "FECHA", "HORA", "PACIENTE", "DNI", "LABORATORIO", "ESTADO")
		for _, a := range list {
			fmt.Printf("%-8s  %-10s  %-5s  %-22s  %-8s  %-22s  %s\n",
				shortID(a.ID), utils.FormatDisplayDate(a.Date), a.Time, a.PatientName, a.PatientID, a.Lab, a.Status)
		}
	}

	counts := appointments.CountByStatus(all)
	fmt.Printf("\n%d de %d citas  |  Pendiente %d  Confirmada %d  Cancelada %d  Completada %d\n",
		len(list), len(all),
		counts[models.StatusPending], counts[models.StatusConfirmed],
		counts[models.StatusCancelled], counts[models.StatusCompleted])
	return nil
}

type ShowCmd struct {
	ID   string `arg:"" help:"Appointment id or unique id prefix."`
	JSON bool   `help:"Output as JSON." name:"json"`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireAccess(); err != nil {
		return err
	}
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

	if c.JSON {
		return cli.PrintJSON(appt)
	}
	printAppointment(appt)
	return nil
}
