package appts

import (
	"fmt"

	"github.com/julianstephens/labcita/internal/appointments"
	"github.com/julianstephens/labcita/internal/cli"
)

// EditCmd reschedules an appointment. Only the flags given are changed;
// switching the lab requires --exam since exams belong to a lab.
type EditCmd struct {
	ID string `arg:"" help:"Appointment id or unique id prefix."`

	PatientName *string  `help:"New patient name."`
	PatientID   *string  `help:"New patient identifier." name:"patient-id"`
	Lab         *string  `help:"New lab id or name."`
	Exam        []string `help:"Replace the exams (repeatable)."`
	Date        *string  `help:"New date (YYYY-MM-DD or 'today')."`
	Time        *string  `help:"New time slot (HH:MM)."`
	Notes       *string  `help:"New notes."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
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

	form := appointments.NewForm(store, "")
	if err := form.Edit(appt); err != nil {
		return rejected(&appointments.Notice{Title: "Acción no permitida", Message: "La cita ya no puede modificarse."}, err)
	}

	if c.Lab != nil {
		form.SelectLab(resolveLab(store, *c.Lab))
	}
	if len(c.Exam) > 0 {
		form.Draft.Exams = c.Exam
	}
	if c.PatientName != nil {
		form.Draft.PatientName = *c.PatientName
	}
	if c.PatientID != nil {
		form.Draft.PatientID = *c.PatientID
	}
	if c.Date != nil {
		form.Draft.Date = resolveDate(store, *c.Date)
	}
	if c.Time != nil {
		form.Draft.Time = *c.Time
	}
	if c.Notes != nil {
		form.Draft.Notes = *c.Notes
	}

	if _, err := form.Submit(); err != nil {
		return rejected(form.Notice, err)
	}
	fmt.Printf("✓ %s\n", form.Notice)
	return nil
}
