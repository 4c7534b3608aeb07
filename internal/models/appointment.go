package models

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of an appointment. The values are the
// user-facing labels and are stored as-is.
type Status string

const (
	StatusPending   Status = "Pendiente"
	StatusConfirmed Status = "Confirmada"
	StatusCancelled Status = "Cancelada"
	StatusCompleted Status = "Completada"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStatus accepts either the stored label or its English alias,
// case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pendiente", "pending":
		return StatusPending, nil
	case "confirmada", "confirmed":
		return StatusConfirmed, nil
	case "cancelada", "cancelled", "canceled":
		return StatusCancelled, nil
	case "completada", "completed":
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Appointment represents a booked lab visit for a patient
type Appointment struct {
	ID          string   `json:"id"`
	PatientName string   `json:"patient_name"`
	PatientID   string   `json:"patient_id"`
	Lab         string   `json:"lab"`
	Exams       []string `json:"exams"`
	Date        string   `json:"date"` // YYYY-MM-DD
	Time        string   `json:"time"` // HH:MM, one of constants.TimeSlots
	Status      Status   `json:"status"`
	Notes       string   `json:"notes,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
}

// AppointmentDraft holds the editable fields of an appointment as a single
// record so that it is validated as a whole on submit.
type AppointmentDraft struct {
	PatientName string   `json:"patient_name" validate:"required"`
	PatientID   string   `json:"patient_id" validate:"required"`
	LabID       string   `json:"lab_id" validate:"required"`
	Exams       []string `json:"exams" validate:"required,min=1"`
	Date        string   `json:"date" validate:"required"`
	Time        string   `json:"time" validate:"required"`
	Notes       string   `json:"notes"`
}

// Normalize trims surrounding whitespace from the free-text fields.
func (d AppointmentDraft) Normalize() AppointmentDraft {
	d.PatientName = strings.TrimSpace(d.PatientName)
	d.PatientID = strings.TrimSpace(d.PatientID)
	d.LabID = strings.TrimSpace(d.LabID)
	d.Date = strings.TrimSpace(d.Date)
	d.Time = strings.TrimSpace(d.Time)
	d.Notes = strings.TrimSpace(d.Notes)
	exams := make([]string, 0, len(d.Exams))
	for _, e := range d.Exams {
		if e = strings.TrimSpace(e); e != "" {
			exams = append(exams, e)
		}
	}
	d.Exams = exams
	return d
}

// HasExam reports whether the draft already selects exam.
func (d AppointmentDraft) HasExam(exam string) bool {
	for _, e := range d.Exams {
		if e == exam {
			return true
		}
	}
	return false
}

// FormatExams joins the exam list for single-line display.
func (a Appointment) FormatExams() string {
	return strings.Join(a.Exams, ", ")
}
