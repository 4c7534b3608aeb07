package labs

import (
	"fmt"
	"strings"

	"github.com/julianstephens/labcita/internal/cli"
	"github.com/julianstephens/labcita/internal/constants"
)

type LabListCmd struct {
	JSON bool `help:"Output as JSON." name:"json"`
}

type labOutput struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Exams []string `json:"exams"`
}

func (c *LabListCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Appointments()
	if err != nil {
		return err
	}
	cat := store.Catalog()

	out := make([]labOutput, 0, len(cat.Labs()))
	for _, lab := range cat.Labs() {
		out = append(out, labOutput{ID: lab.ID, Name: lab.Name, Exams: cat.ExamsFor(lab.ID)})
	}

	if c.JSON {
		return cli.PrintJSON(out)
	}
	for _, lab := range out {
		fmt.Printf("%s  %s\n", lab.ID, lab.Name)
		for _, exam := range lab.Exams {
			fmt.Printf("    - %s\n", exam)
		}
	}
	return nil
}

// SlotsCmd lists the bookable time slots. With --patient-id and --date the
// slots that patient already holds that day are marked.
type SlotsCmd struct {
	Date      string `help:"Day to check (YYYY-MM-DD or 'today')."`
	PatientID string `help:"Patient to check for conflicts." name:"patient-id"`
}

func (c *SlotsCmd) Run(ctx *cli.Context) error {
	if c.Date == "" || c.PatientID == "" {
		if c.Date != "" || c.PatientID != "" {
			return fmt.Errorf("--date and --patient-id must be given together")
		}
		fmt.Println(strings.Join(constants.TimeSlots, "  "))
		return nil
	}
	if err := ctx.RequireAccess(); err != nil {
		return err
	}

	store, err := ctx.Appointments()
	if err != nil {
		return err
	}
	date := c.Date
	if strings.EqualFold(date, "today") || strings.EqualFold(date, "hoy") {
		date = store.Today()
	}

	for _, slot := range constants.TimeSlots {
		if existing, taken := store.FindConflict(c.PatientID, date, slot, ""); taken {
			fmt.Printf("  %s  ocupado (%s, %s)\n", slot, existing.Lab, existing.Status)
		} else {
			fmt.Printf("  %s  libre\n", slot)
		}
	}
	return nil
}
