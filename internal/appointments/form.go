package appointments

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/labcita/internal/models"
	"github.com/julianstephens/labcita/internal/utils"
	"github.com/julianstephens/labcita/internal/validation"
)

// NoticeKind classifies a form notice.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

// Notice is the user-facing outcome of a form submission or row action.
type Notice struct {
	Kind    NoticeKind
	Title   string
	Message string
}

func (n Notice) String() string {
	return n.Title + ": " + n.Message
}

// Form is the presentation-independent state of the appointment form. The
// TUI binds its fields to Draft and calls SyncLab after every update.
type Form struct {
	store        *Store
	Draft        models.AppointmentDraft
	DefaultLabID string
	editingID    string
	lab          string
	Notice       *Notice
}

// NewForm returns an empty form submitting to store.
func NewForm(store *Store, defaultLabID string) *Form {
	f := &Form{store: store, DefaultLabID: defaultLabID}
	f.Reset()
	return f
}

// Reset clears the draft and leaves edit mode. The notice is kept so it can
// still be shown after a successful submit.
func (f *Form) Reset() {
	f.Draft = models.AppointmentDraft{}
	if _, ok := f.store.Catalog().Lab(f.DefaultLabID); ok {
		f.Draft.LabID = f.DefaultLabID
	}
	f.lab = f.Draft.LabID
	f.editingID = ""
}

// IsEditing reports whether the form is rescheduling an existing record.
func (f *Form) IsEditing() bool {
	return f.editingID != ""
}

// EditingID returns the id of the appointment being rescheduled.
func (f *Form) EditingID() string {
	return f.editingID
}

// Title is the form heading for the current mode.
func (f *Form) Title() string {
	if f.IsEditing() {
		return "Reprogramar Cita"
	}
	return "Programar Nueva Cita"
}

// SubmitLabel is the submit button text for the current mode.
func (f *Form) SubmitLabel() string {
	if f.IsEditing() {
		return "Actualizar Cita"
	}
	return "Programar Cita"
}

// Edit loads appt into the form and tags the form with its id.
func (f *Form) Edit(appt models.Appointment) error {
	if !ValidTransition(ActionReschedule, appt.Status) {
		return fmt.Errorf("%w: cannot reschedule a %s appointment", ErrInvalidTransition, appt.Status)
	}

	labID := ""
	if lab, ok := f.store.Catalog().LabByName(appt.Lab); ok {
		labID = lab.ID
	}
	exams := make([]string, len(appt.Exams))
	copy(exams, appt.Exams)

	f.Draft = models.AppointmentDraft{
		PatientName: appt.PatientName,
		PatientID:   appt.PatientID,
		LabID:       labID,
		Exams:       exams,
		Date:        appt.Date,
		Time:        appt.Time,
		Notes:       appt.Notes,
	}
	f.lab = labID
	f.editingID = appt.ID
	f.Notice = nil
	return nil
}

// SelectLab switches the lab. Changing to a different lab clears the exam
// selection, since exams are scoped to a lab.
func (f *Form) SelectLab(labID string) {
	f.Draft.LabID = labID
	f.SyncLab()
}

// SyncLab clears the exam selection if Draft.LabID was changed directly
// (e.g. by a bound UI field) since the last sync.
func (f *Form) SyncLab() {
	if f.Draft.LabID != f.lab {
		f.Draft.Exams = nil
		f.lab = f.Draft.LabID
	}
}

// AvailableExams lists the exams of the selected lab.
func (f *Form) AvailableExams() []string {
	return f.store.Catalog().ExamsFor(f.Draft.LabID)
}

// ToggleExam adds exam to the selection, or removes it if already selected.
// Exams the selected lab does not offer are ignored and false is returned.
func (f *Form) ToggleExam(exam string) bool {
	if !f.store.Catalog().Offers(f.Draft.LabID, exam) {
		return false
	}
	for i, e := range f.Draft.Exams {
		if e == exam {
			f.Draft.Exams = append(f.Draft.Exams[:i:i], f.Draft.Exams[i+1:]...)
			return true
		}
	}
	f.Draft.Exams = append(f.Draft.Exams, exam)
	return true
}

// ValidateDate is the date picker rule: a well-formed date that is today or
// later.
func (f *Form) ValidateDate(date string) error {
	normalized, err := utils.NormalizeDate(strings.TrimSpace(date))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	before, err := utils.IsBeforeDay(normalized, f.store.Today())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	if before {
		return fmt.Errorf("%w: %s", ErrPastDate, normalized)
	}
	return nil
}

// SetDate sets the draft date if it passes ValidateDate.
func (f *Form) SetDate(date string) error {
	if err := f.ValidateDate(date); err != nil {
		return err
	}
	f.Draft.Date, _ = utils.NormalizeDate(strings.TrimSpace(date))
	return nil
}

// IsComplete reports whether every required field has a value.
func (f *Form) IsComplete() bool {
	missing, err := validation.MissingFields(f.Draft.Normalize())
	return err == nil && len(missing) == 0
}

// Summary renders a preview of a complete draft, or "" while fields are
// still missing.
func (f *Form) Summary() string {
	if !f.IsComplete() {
		return ""
	}
	labName := f.Draft.LabID
	if lab, ok := f.store.Catalog().Lab(f.Draft.LabID); ok {
		labName = lab.Name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Paciente:     %s (%s)\n", strings.TrimSpace(f.Draft.PatientName), strings.TrimSpace(f.Draft.PatientID))
	fmt.Fprintf(&b, "Laboratorio:  %s\n", labName)
	fmt.Fprintf(&b, "Exámenes:     %s\n", strings.Join(f.Draft.Exams, ", "))
	fmt.Fprintf(&b, "Fecha:        %s\n", utils.FormatDisplayDate(f.Draft.Date))
	fmt.Fprintf(&b, "Hora:         %s", f.Draft.Time)
	if notes := strings.TrimSpace(f.Draft.Notes); notes != "" {
		fmt.Fprintf(&b, "\nNotas:        %s", notes)
	}
	return b.String()
}

// Submit hands the draft to the store. On success the form is cleared; on
// failure the draft is kept so the user can correct it. Either way Notice
// describes the outcome.
func (f *Form) Submit() (models.Appointment, error) {
	var (
		appt models.Appointment
		err  error
	)
	editing := f.IsEditing()
	if editing {
		appt, err = f.store.Update(f.editingID, f.Draft)
	} else {
		appt, err = f.store.Create(f.Draft)
	}

	if err != nil {
		f.Notice = noticeFor(err)
		return models.Appointment{}, err
	}

	if editing {
		f.Notice = &Notice{
			Kind:    NoticeSuccess,
			Title:   "Cita actualizada",
			Message: "La cita fue reprogramada correctamente.",
		}
	} else {
		f.Notice = &Notice{
			Kind:  NoticeSuccess,
			Title: "Cita programada",
			Message: fmt.Sprintf("Cita registrada para %s el %s a las %s.",
				appt.PatientName, utils.FormatDisplayDate(appt.Date), appt.Time),
		}
	}
	f.Reset()
	return appt, nil
}

func noticeFor(err error) *Notice {
	n := &Notice{Kind: NoticeError}
	switch {
	case errors.Is(err, ErrMissingFields):
		n.Title = "Faltan datos"
		n.Message = "Complete todos los campos obligatorios."
	case errors.Is(err, ErrSlotConflict):
		n.Title = "Conflicto de horario"
		n.Message = "Este paciente ya tiene una cita en esa fecha y hora."
	case errors.Is(err, ErrPastDate):
		n.Title = "Fecha no válida"
		n.Message = "La fecha de la cita no puede ser anterior a hoy."
	case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrInvalidTime):
		n.Title = "Fecha u hora no válida"
		n.Message = "Seleccione una fecha (AAAA-MM-DD) y un horario disponible."
	case errors.Is(err, ErrUnknownLab), errors.Is(err, ErrUnknownExam):
		n.Title = "Examen no disponible"
		n.Message = "Seleccione exámenes ofrecidos por el laboratorio elegido."
	case errors.Is(err, ErrInvalidTransition):
		n.Title = "Acción no permitida"
		n.Message = "La cita ya no puede modificarse."
	default:
		n.Title = "No se pudo guardar la cita"
		n.Message = err.Error()
	}
	return n
}

// ActionNotice describes the outcome of a row action for display.
func ActionNotice(action Action, err error) Notice {
	if err != nil {
		return *noticeFor(err)
	}
	return Notice{Kind: NoticeSuccess, Title: action.DoneTitle(), Message: "Estado actualizado."}
}
