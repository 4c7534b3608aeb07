package appointments

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingFields     = errors.New("missing required fields")
	ErrSlotConflict      = errors.New("patient already has an appointment at that date and time")
	ErrInvalidDate       = errors.New("invalid date")
	ErrPastDate          = errors.New("date is before today")
	ErrInvalidTime       = errors.New("time is not a bookable slot")
	ErrUnknownLab        = errors.New("unknown lab")
	ErrUnknownExam       = errors.New("exam not offered by the selected lab")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotFound          = errors.New("appointment not found")
)

// MissingFieldsError lists the required draft fields that were empty.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingFields, strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrMissingFields
}

// SlotConflictError reports the appointment already holding the slot.
type SlotConflictError struct {
	PatientID  string
	Date       string
	Time       string
	ExistingID string
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("%s (patient %s, %s %s, appointment %s)", ErrSlotConflict, e.PatientID, e.Date, e.Time, e.ExistingID)
}

func (e *SlotConflictError) Is(target error) bool {
	return target == ErrSlotConflict
}
