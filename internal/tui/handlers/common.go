package handlers

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/labcita/internal/appointments"
	"github.com/julianstephens/labcita/internal/constants"
)

// NewAppointmentForm binds a huh form to the draft of f. Exam options
// follow the selected lab, and the slot options mark slots the patient
// already holds on the chosen date.
func NewAppointmentForm(store *appointments.Store, f *appointments.Form, confirmed *bool) *huh.Form {
	labs := store.Catalog().Labs()
	labOptions := make([]huh.Option[string], 0, len(labs))
	for _, lab := range labs {
		labOptions = append(labOptions, huh.NewOption(lab.Name, lab.ID))
	}

	*confirmed = true
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nombre del paciente").
				Value(&f.Draft.PatientName),
			huh.NewInput().
				Title("ID del paciente").
				Placeholder("PAC001").
				Value(&f.Draft.PatientID),
			huh.NewSelect[string]().
				Title("Laboratorio").
				Options(labOptions...).
				Value(&f.Draft.LabID),
		).Title(f.Title()),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Exámenes").
				OptionsFunc(func() []huh.Option[string] {
					f.SyncLab()
					return huh.NewOptions(f.AvailableExams()...)
				}, &f.Draft.LabID).
				Value(&f.Draft.Exams),
			huh.NewInput().
				Title("Fecha").
				Placeholder("AAAA-MM-DD").
				Validate(f.ValidateDate).
				Value(&f.Draft.Date),
			huh.NewSelect[string]().
				Title("Hora").
				OptionsFunc(func() []huh.Option[string] {
					return slotOptions(store, f)
				}, &f.Draft.Date).
				Value(&f.Draft.Time),
			huh.NewText().
				Title("Notas").
				Value(&f.Draft.Notes),
		),
		huh.NewGroup(
			huh.NewNote().
				Title("Resumen").
				DescriptionFunc(func() string {
					if s := f.Summary(); s != "" {
						return s
					}
					return "Faltan datos obligatorios."
				}, &f.Draft),
			huh.NewConfirm().
				Title(f.Title()).
				Affirmative(f.SubmitLabel()).
				Negative("Descartar").
				Value(confirmed),
		),
	)
}

func slotOptions(store *appointments.Store, f *appointments.Form) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(constants.TimeSlots))
	for _, slot := range constants.TimeSlots {
		label := slot
		if f.Draft.PatientID != "" && f.Draft.Date != "" {
			if _, taken := store.FindConflict(f.Draft.PatientID, f.Draft.Date, slot, f.EditingID()); taken {
				label = fmt.Sprintf("%s (ocupado)", slot)
			}
		}
		opts = append(opts, huh.NewOption(label, slot))
	}
	return opts
}
