package state

import (
	"fmt"

	"github.com/julianstephens/labcita/internal/validation"
)

// UpdateValidationStatus checks the loaded appointments for stored data the
// store would refuse (e.g. after a restore) and updates the warning message
func (m *Model) UpdateValidationStatus() {
	result := validation.New().ValidateAppointments(m.Appts.List(), m.Appts.Catalog())
	m.ValidationConflicts = result.Conflicts

	if len(result.Conflicts) > 0 {
		m.ValidationWarning = fmt.Sprintf("⚠ %d validation warning(s), run 'labcita doctor'", len(result.Conflicts))
	} else {
		m.ValidationWarning = ""
	}
}
