package validation

import (
	"strings"
	"testing"

	"github.com/julianstephens/labcita/internal/catalog"
	"github.com/julianstephens/labcita/internal/constants"
	"github.com/julianstephens/labcita/internal/models"
)

func validAppointment(id string) models.Appointment {
	return models.Appointment{
		ID:          id,
		PatientName: "María García",
		PatientID:   "PAC001",
		Lab:         "Laboratorio Central",
		Exams:       []string{"Hemograma Completo"},
		Date:        "2026-02-23",
		Time:        "08:00",
		Status:      models.StatusPending,
	}
}

func hasConflict(result ValidationResult, ct constants.ConflictType) bool {
	for _, c := range result.Conflicts {
		if c.Type == ct {
			return true
		}
	}
	return false
}

func TestValidateAppointments_Clean(t *testing.T) {
	validator := New()

	second := validAppointment("2")
	second.Time = "08:30"

	result := validator.ValidateAppointments([]models.Appointment{validAppointment("1"), second}, catalog.Default())
	if result.HasConflicts() {
		t.Errorf("expected no conflicts, got:\n%s", result.FormatReport())
	}
	if report := result.FormatReport(); report != "No conflicts detected." {
		t.Errorf("unexpected clean report: %q", report)
	}
}

func TestValidateAppointments_DuplicateSlot(t *testing.T) {
	validator := New()

	result := validator.ValidateAppointments([]models.Appointment{
		validAppointment("1"),
		validAppointment("2"),
	}, nil)

	if !hasConflict(result, constants.ConflictDuplicateSlot) {
		t.Fatal("expected duplicate slot conflict")
	}
	c := result.Conflicts[len(result.Conflicts)-1]
	if len(c.AppointmentIDs) != 2 {
		t.Errorf("expected both ids in conflict, got %v", c.AppointmentIDs)
	}
	if !strings.Contains(result.FormatReport(), "PAC001") {
		t.Errorf("report should name the patient: %s", result.FormatReport())
	}
}

func TestValidateAppointments_FieldProblems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Appointment)
		want   constants.ConflictType
	}{
		{
			name:   "bad date",
			mutate: func(a *models.Appointment) { a.Date = "23/02/2026" },
			want:   constants.ConflictInvalidDate,
		},
		{
			name:   "lunch break slot",
			mutate: func(a *models.Appointment) { a.Time = "13:00" },
			want:   constants.ConflictInvalidTime,
		},
		{
			name:   "malformed time",
			mutate: func(a *models.Appointment) { a.Time = "8h" },
			want:   constants.ConflictInvalidTime,
		},
		{
			name:   "no exams",
			mutate: func(a *models.Appointment) { a.Exams = nil },
			want:   constants.ConflictEmptyExams,
		},
		{
			name:   "unknown status",
			mutate: func(a *models.Appointment) { a.Status = "Borrada" },
			want:   constants.ConflictUnknownStatus,
		},
		{
			name:   "missing patient id",
			mutate: func(a *models.Appointment) { a.PatientID = "" },
			want:   constants.ConflictMissingPatient,
		},
		{
			name:   "unknown lab",
			mutate: func(a *models.Appointment) { a.Lab = "Laboratorio Este" },
			want:   constants.ConflictUnknownLab,
		},
		{
			name:   "exam from another lab",
			mutate: func(a *models.Appointment) { a.Exams = []string{"Urocultivo"} },
			want:   constants.ConflictExamNotOffered,
		},
	}

	validator := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAppointment("1")
			tt.mutate(&a)
			result := validator.ValidateAppointments([]models.Appointment{a}, catalog.Default())
			if !hasConflict(result, tt.want) {
				t.Errorf("expected %s conflict, got:\n%s", tt.want, result.FormatReport())
			}
		})
	}
}

func TestValidateAppointments_NilCatalogSkipsLabChecks(t *testing.T) {
	a := validAppointment("1")
	a.Lab = "Laboratorio Este"

	result := New().ValidateAppointments([]models.Appointment{a}, nil)
	if result.HasConflicts() {
		t.Errorf("lab checks should be skipped without a catalog:\n%s", result.FormatReport())
	}
}

func TestValidateAppointments_TimeDescriptions(t *testing.T) {
	tests := []struct {
		time string
		want string
	}{
		{time: "8h", want: "malformed time"},
		{time: "13:00", want: "outside the bookable slots"},
	}

	for _, tt := range tests {
		t.Run(tt.time, func(t *testing.T) {
			a := validAppointment("1")
			a.Time = tt.time
			result := New().ValidateAppointments([]models.Appointment{a}, nil)
			if len(result.Conflicts) != 1 {
				t.Fatalf("expected exactly one conflict, got:\n%s", result.FormatReport())
			}
			if !strings.Contains(result.Conflicts[0].Description, tt.want) {
				t.Errorf("description %q should mention %q", result.Conflicts[0].Description, tt.want)
			}
		})
	}
}
