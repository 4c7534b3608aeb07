// Package appointments implements the booking workflow: the in-memory
// appointment store, its status state machine, the appointment form and the
// list filter.
package appointments

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/labcita/internal/catalog"
	"github.com/julianstephens/labcita/internal/constants"
	"github.com/julianstephens/labcita/internal/logger"
	"github.com/julianstephens/labcita/internal/models"
	"github.com/julianstephens/labcita/internal/utils"
	"github.com/julianstephens/labcita/internal/validation"
)

// Repository persists appointments behind the store. storage.Provider
// satisfies it.
type Repository interface {
	AddAppointment(models.Appointment) error
	UpdateAppointment(models.Appointment) error
	GetAllAppointments() ([]models.Appointment, error)
}

// Store owns the authoritative appointment list for a session. Every
// mutation is validated first, then written to the repository (if any),
// and only then applied in memory, so a rejected or failed operation leaves
// the list untouched.
//
// A Store is not safe for concurrent use.
type Store struct {
	catalog      *catalog.Catalog
	repo         Repository
	now          func() time.Time
	loc          *time.Location
	newID        func() string
	appointments []models.Appointment
}

// NewStore returns an empty store. repo may be nil for a purely in-memory
// session.
func NewStore(cat *catalog.Catalog, repo Repository) *Store {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Store{
		catalog: cat,
		repo:    repo,
		now:     time.Now,
		loc:     time.Local,
		newID:   func() string { return uuid.New().String() },
	}
}

// SetClock replaces the time source and the timezone used to decide which
// calendar day is today.
func (s *Store) SetClock(now func() time.Time, loc *time.Location) {
	if now != nil {
		s.now = now
	}
	if loc != nil {
		s.loc = loc
	}
}

// Load replaces the in-memory list with the repository contents.
func (s *Store) Load() error {
	if s.repo == nil {
		return nil
	}
	appts, err := s.repo.GetAllAppointments()
	if err != nil {
		return fmt.Errorf("failed to load appointments: %w", err)
	}
	s.appointments = appts
	logger.Debug("Loaded appointments", "count", len(appts))
	return nil
}

// Seed appends records as-is, without validation or write-through. It is
// meant for demo data in in-memory sessions.
func (s *Store) Seed(appts []models.Appointment) {
	s.appointments = append(s.appointments, appts...)
}

// Catalog returns the lab catalog the store validates against.
func (s *Store) Catalog() *catalog.Catalog {
	return s.catalog
}

// Today returns the current calendar day in the store's timezone.
func (s *Store) Today() string {
	return utils.DayOf(s.now(), s.loc)
}

// List returns a copy of all appointments in insertion order.
func (s *Store) List() []models.Appointment {
	out := make([]models.Appointment, len(s.appointments))
	for i, a := range s.appointments {
		out[i] = cloneAppointment(a)
	}
	return out
}

// Get returns the appointment with id.
func (s *Store) Get(id string) (models.Appointment, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Appointment{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return cloneAppointment(s.appointments[i]), nil
}

// FindConflict returns an appointment of patientID on the same calendar day
// and slot, ignoring excludeID. Every status counts, cancelled included.
func (s *Store) FindConflict(patientID, date, slot, excludeID string) (models.Appointment, bool) {
	for _, a := range s.appointments {
		if a.ID == excludeID {
			continue
		}
		if a.PatientID == patientID && sameDay(a.Date, date) && a.Time == slot {
			return cloneAppointment(a), true
		}
	}
	return models.Appointment{}, false
}

// Create validates draft and books a new Pendiente appointment.
func (s *Store) Create(draft models.AppointmentDraft) (models.Appointment, error) {
	d, lab, err := s.validate(draft, "")
	if err != nil {
		return models.Appointment{}, err
	}

	stamp := s.now().UTC().Format(time.RFC3339)
	appt := models.Appointment{
		ID:          s.newID(),
		PatientName: d.PatientName,
		PatientID:   d.PatientID,
		Lab:         lab.Name,
		Exams:       d.Exams,
		Date:        d.Date,
		Time:        d.Time,
		Status:      models.StatusPending,
		Notes:       d.Notes,
		CreatedAt:   stamp,
		UpdatedAt:   stamp,
	}
	for s.indexOf(appt.ID) >= 0 {
		appt.ID = s.newID()
	}

	if s.repo != nil {
		if err := s.repo.AddAppointment(appt); err != nil {
			return models.Appointment{}, fmt.Errorf("failed to save appointment: %w", err)
		}
	}
	s.appointments = append(s.appointments, appt)

	logger.Debug("Appointment created", "id", appt.ID, "patient", appt.PatientID, "date", appt.Date, "time", appt.Time)
	return cloneAppointment(appt), nil
}

// Update reschedules appointment id with the fields of draft. The status
// and id are preserved.
func (s *Store) Update(id string, draft models.AppointmentDraft) (models.Appointment, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Appointment{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	current := s.appointments[i]
	if !ValidTransition(ActionReschedule, current.Status) {
		return models.Appointment{}, fmt.Errorf("%w: cannot reschedule a %s appointment", ErrInvalidTransition, current.Status)
	}

	d, lab, err := s.validate(draft, id)
	if err != nil {
		return models.Appointment{}, err
	}

	updated := cloneAppointment(current)
	updated.PatientName = d.PatientName
	updated.PatientID = d.PatientID
	updated.Lab = lab.Name
	updated.Exams = d.Exams
	updated.Date = d.Date
	updated.Time = d.Time
	updated.Notes = d.Notes
	updated.UpdatedAt = s.now().UTC().Format(time.RFC3339)

	if err := s.write(i, updated); err != nil {
		return models.Appointment{}, err
	}

	if current.PatientID != updated.PatientID {
		logger.Info("Appointment reassigned to another patient", "id", id, "from", current.PatientID, "to", updated.PatientID)
	}
	logger.Debug("Appointment rescheduled", "id", id, "date", updated.Date, "time", updated.Time)
	return cloneAppointment(updated), nil
}

// Confirm moves a Pendiente appointment to Confirmada.
func (s *Store) Confirm(id string) (models.Appointment, error) {
	return s.transition(id, ActionConfirm)
}

// Cancel moves a Pendiente or Confirmada appointment to Cancelada.
func (s *Store) Cancel(id string) (models.Appointment, error) {
	return s.transition(id, ActionCancel)
}

// Complete moves a Confirmada appointment to Completada.
func (s *Store) Complete(id string) (models.Appointment, error) {
	return s.transition(id, ActionComplete)
}

// Apply runs a status action by name. Reschedule is not a status action and
// must go through Update.
func (s *Store) Apply(id string, action Action) (models.Appointment, error) {
	if _, ok := transitionTarget[action]; !ok {
		return models.Appointment{}, fmt.Errorf("%w: %s is not a status action", ErrInvalidTransition, action)
	}
	return s.transition(id, action)
}

func (s *Store) transition(id string, action Action) (models.Appointment, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Appointment{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	current := s.appointments[i]
	if !ValidTransition(action, current.Status) {
		logger.Debug("Rejected status transition", "id", id, "action", action, "status", current.Status)
		return cloneAppointment(current), fmt.Errorf("%w: cannot %s a %s appointment", ErrInvalidTransition, action, current.Status)
	}

	updated := cloneAppointment(current)
	updated.Status = transitionTarget[action]
	updated.UpdatedAt = s.now().UTC().Format(time.RFC3339)

	if err := s.write(i, updated); err != nil {
		return models.Appointment{}, err
	}

	logger.Debug("Appointment status changed", "id", id, "from", current.Status, "to", updated.Status)
	return cloneAppointment(updated), nil
}

func (s *Store) write(i int, appt models.Appointment) error {
	if s.repo != nil {
		if err := s.repo.UpdateAppointment(appt); err != nil {
			return fmt.Errorf("failed to save appointment: %w", err)
		}
	}
	s.appointments[i] = appt
	return nil
}

// validate checks draft as a whole and resolves its lab. excludeID is the
// record being edited, if any.
func (s *Store) validate(draft models.AppointmentDraft, excludeID string) (models.AppointmentDraft, models.Lab, error) {
	d := draft.Normalize()

	missing, err := validation.MissingFields(d)
	if err != nil {
		return d, models.Lab{}, err
	}
	if len(missing) > 0 {
		return d, models.Lab{}, &MissingFieldsError{Fields: missing}
	}

	date, err := utils.NormalizeDate(d.Date)
	if err != nil {
		return d, models.Lab{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	d.Date = date

	before, err := utils.IsBeforeDay(d.Date, s.Today())
	if err != nil {
		return d, models.Lab{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	if before {
		return d, models.Lab{}, fmt.Errorf("%w: %s", ErrPastDate, d.Date)
	}

	if !constants.IsTimeSlot(d.Time) {
		return d, models.Lab{}, fmt.Errorf("%w: %s", ErrInvalidTime, d.Time)
	}

	lab, ok := s.catalog.Lab(d.LabID)
	if !ok {
		return d, models.Lab{}, fmt.Errorf("%w: %s", ErrUnknownLab, d.LabID)
	}

	exams := make([]string, 0, len(d.Exams))
	seen := make(map[string]bool, len(d.Exams))
	for _, exam := range d.Exams {
		if seen[exam] {
			continue
		}
		if !s.catalog.Offers(lab.ID, exam) {
			return d, models.Lab{}, fmt.Errorf("%w: %s does not offer %q", ErrUnknownExam, lab.Name, exam)
		}
		seen[exam] = true
		exams = append(exams, exam)
	}
	d.Exams = exams

	if existing, found := s.FindConflict(d.PatientID, d.Date, d.Time, excludeID); found {
		return d, models.Lab{}, &SlotConflictError{
			PatientID:  d.PatientID,
			Date:       d.Date,
			Time:       d.Time,
			ExistingID: existing.ID,
		}
	}

	return d, lab, nil
}

func (s *Store) indexOf(id string) int {
	for i, a := range s.appointments {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func cloneAppointment(a models.Appointment) models.Appointment {
	if a.Exams != nil {
		exams := make([]string, len(a.Exams))
		copy(exams, a.Exams)
		a.Exams = exams
	}
	return a
}

// sameDay compares two dates by calendar day, tolerating non-canonical
// stored values.
func sameDay(a, b string) bool {
	if a == b {
		return true
	}
	na, errA := utils.NormalizeDate(a)
	nb, errB := utils.NormalizeDate(b)
	return errA == nil && errB == nil && na == nb
}
