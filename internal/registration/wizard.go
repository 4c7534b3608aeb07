// Package registration implements the lab onboarding wizard: lab details,
// offered exams, plan and administrator, then a mocked payment.
package registration

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/labcita/internal/models"
	"github.com/julianstephens/labcita/internal/validation"
)

var (
	ErrUnknownPlan  = errors.New("unknown plan")
	ErrInvalidLease = errors.New("invalid lease duration")
	ErrTooManyUsers = errors.New("user count outside the plan limit")
	ErrIncomplete   = errors.New("registration is incomplete")
)

// StepError is a step validation failure, worded for display.
type StepError struct {
	Step    int
	Title   string
	Message string
	Fields  []string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

func (e *StepError) Is(target error) bool {
	return target == ErrIncomplete
}

const (
	StepLab = iota
	StepExams
	StepPlan
	StepConfirm
)

// StepLabels are the wizard step titles.
var StepLabels = []string{
	"Datos del Laboratorio",
	"Servicios y Exámenes",
	"Usuarios y Plan",
	"Confirmación",
}

// ExamCategory groups the exams a lab can offer.
type ExamCategory struct {
	Name  string
	Exams []string
}

var ExamCategories = []ExamCategory{
	{Name: "Hematología", Exams: []string{"Hemograma Completo", "Velocidad de Sedimentación", "Recuento de Plaquetas", "Tiempo de Protrombina"}},
	{Name: "Bioquímica", Exams: []string{"Glucosa en Ayunas", "Perfil Lipídico", "Perfil Hepático", "Perfil Renal", "Ácido Úrico"}},
	{Name: "Endocrinología", Exams: []string{"TSH", "T3 / T4", "Hemoglobina Glicosilada", "Insulina"}},
	{Name: "Uroanálisis", Exams: []string{"Examen General de Orina", "Urocultivo", "Proteinuria"}},
	{Name: "Microbiología", Exams: []string{"Cultivo Bacteriano", "Antibiograma", "Coprocultivo"}},
}

// Wizard holds the registration being built. Forms bind directly to the
// fields of Registration.
type Wizard struct {
	Step         int
	Registration models.Registration
	now          func() time.Time
}

func NewWizard() *Wizard {
	return &Wizard{
		Registration: models.Registration{
			Plan: models.PlanSelection{
				PlanID:      DefaultPlanID,
				Users:       DefaultUsers,
				LeaseMonths: DefaultLeaseMonths,
			},
		},
		now: time.Now,
	}
}

// SetClock replaces the time source used by Pay.
func (w *Wizard) SetClock(now func() time.Time) {
	w.now = now
}

// ValidateStep checks the fields owned by step.
func (w *Wizard) ValidateStep(step int) error {
	r := &w.Registration
	switch step {
	case StepLab:
		r.Lab.Name = strings.TrimSpace(r.Lab.Name)
		r.Lab.Email = strings.TrimSpace(r.Lab.Email)
		r.Lab.Phone = strings.TrimSpace(r.Lab.Phone)
		fields, err := failingFields(r.Lab)
		if err != nil {
			return err
		}
		if len(fields) > 0 {
			return &StepError{Step: step, Title: "Campos obligatorios", Message: "Complete nombre, email y teléfono del laboratorio.", Fields: fields}
		}
	case StepExams:
		if len(r.Exams) == 0 {
			return &StepError{Step: step, Title: "Seleccione exámenes", Message: "Debe elegir al menos un examen para ofrecer.", Fields: []string{"exams"}}
		}
	case StepPlan:
		r.Plan.Admin.Name = strings.TrimSpace(r.Plan.Admin.Name)
		r.Plan.Admin.Email = strings.TrimSpace(r.Plan.Admin.Email)
		fields, err := failingFields(r.Plan.Admin)
		if err != nil {
			return err
		}
		if len(fields) > 0 {
			return &StepError{Step: step, Title: "Datos del administrador", Message: "Ingrese nombre y email del usuario administrador.", Fields: fields}
		}
		if _, err := NewQuote(r.Plan.PlanID, r.Plan.Users, r.Plan.LeaseMonths); err != nil {
			return &StepError{Step: step, Title: "Plan no válido", Message: err.Error(), Fields: []string{"plan"}}
		}
	}
	return nil
}

func failingFields(s interface{}) ([]string, error) {
	errs, err := validation.CheckStruct(s)
	if err != nil {
		return nil, err
	}
	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, fe.Field)
	}
	return fields, nil
}

// Next validates the current step and advances. It stops at the last step.
func (w *Wizard) Next() error {
	if err := w.ValidateStep(w.Step); err != nil {
		return err
	}
	if w.Step < StepConfirm {
		w.Step++
	}
	return nil
}

// Back returns to the previous step.
func (w *Wizard) Back() {
	if w.Step > StepLab {
		w.Step--
	}
}

// ToggleExam adds or removes exam from the offered list.
func (w *Wizard) ToggleExam(exam string) {
	exams := w.Registration.Exams
	for i, e := range exams {
		if e == exam {
			w.Registration.Exams = append(exams[:i:i], exams[i+1:]...)
			return
		}
	}
	w.Registration.Exams = append(exams, exam)
}

// ToggleCategory selects every exam of cat, or clears them all if they are
// already selected.
func (w *Wizard) ToggleCategory(cat ExamCategory) {
	selected := make(map[string]bool, len(w.Registration.Exams))
	for _, e := range w.Registration.Exams {
		selected[e] = true
	}

	all := true
	for _, e := range cat.Exams {
		if !selected[e] {
			all = false
			break
		}
	}

	if all {
		inCat := make(map[string]bool, len(cat.Exams))
		for _, e := range cat.Exams {
			inCat[e] = true
		}
		kept := w.Registration.Exams[:0:0]
		for _, e := range w.Registration.Exams {
			if !inCat[e] {
				kept = append(kept, e)
			}
		}
		w.Registration.Exams = kept
		return
	}

	for _, e := range cat.Exams {
		if !selected[e] {
			w.Registration.Exams = append(w.Registration.Exams, e)
		}
	}
}

// Quote prices the selected plan.
func (w *Wizard) Quote() (Quote, error) {
	p := w.Registration.Plan
	return NewQuote(p.PlanID, p.Users, p.LeaseMonths)
}

// Pay validates every step and records a completed payment. No payment
// provider is contacted.
func (w *Wizard) Pay() (models.Registration, error) {
	for step := StepLab; step < StepConfirm; step++ {
		if err := w.ValidateStep(step); err != nil {
			w.Step = step
			return models.Registration{}, err
		}
	}

	now := w.now().UTC()
	r := w.Registration
	r.PaymentCompleted = true
	r.Status = models.AccountActive
	r.RegisteredAt = now.Format(time.RFC3339)
	r.LeaseExpiresAt = now.AddDate(0, r.Plan.LeaseMonths, 0).Format(time.RFC3339)
	r.Exams = append([]string(nil), r.Exams...)

	w.Registration = r
	return r, nil
}

// CompletedMessage is the confirmation shown after registering.
func CompletedMessage(r models.Registration) (title, message string) {
	return "¡Registro completado!", fmt.Sprintf("El laboratorio %q ha sido registrado exitosamente.", r.Lab.Name)
}
