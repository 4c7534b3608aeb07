package appts

import (
	"fmt"

	"github.com/julianstephens/labcita/internal/appointments"
	"github.com/julianstephens/labcita/internal/cli"
)

type AddCmd struct {
	PatientName string   `help:"Patient full name." required:""`
	PatientID   string   `help:"Patient identifier (e.g. PAC001)." name:"patient-id" required:""`
	Lab         string   `help:"Lab id or name. Defaults to the default_lab setting."`
	Exam        []string `help:"Exam to perform (repeatable)." required:""`
	Date        string   `help:"Appointment date (YYYY-MM-DD or 'today')." required:""`
	Time        string   `help:"Time slot (HH:MM). See 'labcita slots'." required:""`
	Notes       string   `help:"Optional notes."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
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

	form := appointments.NewForm(store, settings.DefaultLabID)
	if c.Lab != "" {
		form.SelectLab(resolveLab(store, c.Lab))
	}
	form.Draft.PatientName = c.PatientName
	form.Draft.PatientID = c.PatientID
	form.Draft.Exams = c.Exam
	form.Draft.Date = resolveDate(store, c.Date)
	form.Draft.Time = c.Time
	form.Draft.Notes = c.Notes

	appt, err := form.Submit()
	if err != nil {
		return rejected(form.Notice, err)
	}

	fmt.Printf("✓ %s\n", form.Notice)
	fmt.Printf("  ID: %s\n", appt.ID)
	return nil
}
