package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/labcita/internal/catalog"
	"github.com/julianstephens/labcita/internal/constants"
	"github.com/julianstephens/labcita/internal/models"
	"github.com/julianstephens/labcita/internal/utils"
)

// Conflict represents a detected integrity problem in stored appointments
type Conflict struct {
	Type           constants.ConflictType
	Description    string
	Date           string   // YYYY-MM-DD format (if applicable)
	Time           string   // slot (if applicable)
	AppointmentIDs []string // appointments involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks stored appointments against the booking rules
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateAppointments checks a stored appointment set for data that the
// store would have refused: duplicate patient slots, malformed dates and
// times, and lab/exam references the catalog does not know. cat may be nil
// to skip catalog checks.
func (v *Validator) ValidateAppointments(appts []models.Appointment, cat *catalog.Catalog) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	type slotKey struct{ patient, date, time string }
	slots := make(map[slotKey][]string)

	for _, a := range appts {
		label := a.ID
		if a.PatientName != "" {
			label = fmt.Sprintf("%s (%s)", a.ID, a.PatientName)
		}

		if strings.TrimSpace(a.PatientID) == "" || strings.TrimSpace(a.PatientName) == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:           constants.ConflictMissingPatient,
				Description:    fmt.Sprintf("Appointment %s is missing patient identity", label),
				AppointmentIDs: []string{a.ID},
			})
		}

		if !utils.ValidateDateFormat(a.Date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:           constants.ConflictInvalidDate,
				Description:    fmt.Sprintf("Appointment %s has invalid date: %q", label, a.Date),
				Date:           a.Date,
				AppointmentIDs: []string{a.ID},
			})
		}

		if !utils.ValidateTimeFormat(a.Time) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:           constants.ConflictInvalidTime,
				Description:    fmt.Sprintf("Appointment %s has malformed time: %q", label, a.Time),
				Time:           a.Time,
				AppointmentIDs: []string{a.ID},
			})
		} else if !constants.IsTimeSlot(a.Time) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:           constants.ConflictInvalidTime,
				Description:    fmt.Sprintf("Appointment %s has a time outside the bookable slots: %q", label, a.Time),
				Time:           a.Time,
				AppointmentIDs: []string{a.ID},
			})
		}

		if len(a.Exams) == 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:           constants.ConflictEmptyExams,
				Description:    fmt.Sprintf("Appointment %s has no exams", label),
				AppointmentIDs: []string{a.ID},
			})
		}

		if !a.Status.Valid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:           constants.ConflictUnknownStatus,
				Description:    fmt.Sprintf("Appointment %s has unknown status %q", label, a.Status),
				AppointmentIDs: []string{a.ID},
			})
		}

		if cat != nil {
			lab, ok := cat.LabByName(a.Lab)
			if !ok {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:           constants.ConflictUnknownLab,
					Description:    fmt.Sprintf("Appointment %s references unknown lab %q", label, a.Lab),
					AppointmentIDs: []string{a.ID},
				})
			} else {
				for _, exam := range a.Exams {
					if !cat.Offers(lab.ID, exam) {
						result.Conflicts = append(result.Conflicts, Conflict{
							Type:           constants.ConflictExamNotOffered,
							Description:    fmt.Sprintf("Appointment %s lists %q, which %s does not offer", label, exam, lab.Name),
							AppointmentIDs: []string{a.ID},
						})
					}
				}
			}
		}

		if a.PatientID != "" {
			key := slotKey{patient: a.PatientID, date: a.Date, time: a.Time}
			slots[key] = append(slots[key], a.ID)
		}
	}

	// Report duplicates in a stable order
	keys := make([]slotKey, 0, len(slots))
	for k, ids := range slots {
		if len(ids) > 1 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].date != keys[j].date {
			return keys[i].date < keys[j].date
		}
		if keys[i].time != keys[j].time {
			return keys[i].time < keys[j].time
		}
		return keys[i].patient < keys[j].patient
	})
	for _, k := range keys {
		ids := slots[k]
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:           constants.ConflictDuplicateSlot,
			Description:    fmt.Sprintf("Patient %s has %d appointments on %s at %s (IDs: %v)", k.patient, len(ids), k.date, k.time, ids),
			Date:           k.date,
			Time:           k.time,
			AppointmentIDs: ids,
		})
	}

	return result
}
