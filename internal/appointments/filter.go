package appointments

import (
	"sort"
	"strings"

	"github.com/julianstephens/labcita/internal/models"
)

// Filter selects appointments for the list view. The zero value matches
// everything.
type Filter struct {
	// Search is matched case-insensitively as a substring of the patient
	// name, patient id or lab name.
	Search string
	// Status keeps only appointments in this status when set.
	Status models.Status
	// HideTerminal drops cancelled and completed appointments when no
	// explicit status is selected.
	HideTerminal bool
}

// Matches reports whether a passes the filter.
func (f Filter) Matches(a models.Appointment) bool {
	if f.Status != "" {
		if a.Status != f.Status {
			return false
		}
	} else if f.HideTerminal && a.Status.IsTerminal() {
		return false
	}

	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.PatientName), q) ||
		strings.Contains(strings.ToLower(a.PatientID), q) ||
		strings.Contains(strings.ToLower(a.Lab), q)
}

// Apply returns the appointments that pass the filter, preserving order.
func (f Filter) Apply(appts []models.Appointment) []models.Appointment {
	out := make([]models.Appointment, 0, len(appts))
	for _, a := range appts {
		if f.Matches(a) {
			out = append(out, a)
		}
	}
	return out
}

// ToggleStatus selects status, or clears the status filter if status is
// already selected.
func (f Filter) ToggleStatus(status models.Status) Filter {
	if f.Status == status {
		f.Status = ""
	} else {
		f.Status = status
	}
	return f
}

// CountByStatus tallies appointments per status. Every known status has an
// entry, zero included.
func CountByStatus(appts []models.Appointment) map[models.Status]int {
	counts := make(map[models.Status]int, len(models.Statuses))
	for _, s := range models.Statuses {
		counts[s] = 0
	}
	for _, a := range appts {
		counts[a.Status]++
	}
	return counts
}

// SortBySchedule orders appointments by date and slot, oldest first. The
// sort is stable so same-slot records keep insertion order.
func SortBySchedule(appts []models.Appointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		return appts[i].Time < appts[j].Time
	})
}
