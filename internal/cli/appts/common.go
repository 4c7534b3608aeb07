package appts

import (
	"fmt"
	"strings"

	"github.com/julianstephens/labcita/internal/appointments"
	"github.com/julianstephens/labcita/internal/models"
	"github.com/julianstephens/labcita/internal/utils"
)

// shortIDLen is how much of an id the list view prints.
const shortIDLen = 8

// resolveID accepts a full id or a unique prefix of one.
func resolveID(store *appointments.Store, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty id", appointments.ErrNotFound)
	}
	if _, err := store.Get(ref); err == nil {
		return ref, nil
	}

	var matches []string
	for _, a := range store.List() {
		if strings.HasPrefix(a.ID, ref) {
			matches = append(matches, a.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", appointments.ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id prefix %q is ambiguous (%d appointments)", ref, len(matches))
	}
}

// resolveLab maps a lab id or name to its id. Unknown references are passed
// through so the store reports them.
func resolveLab(store *appointments.Store, ref string) string {
	if lab, ok := store.Catalog().ResolveLab(ref); ok {
		return lab.ID
	}
	return ref
}

// resolveDate expands "today"/"hoy" to the store's current day.
func resolveDate(store *appointments.Store, date string) string {
	switch strings.ToLower(strings.TrimSpace(date)) {
	case "today", "hoy":
		return store.Today()
	}
	return date
}

// rejected turns a form notice into the command error, keeping err in the
// chain for exit codes.
func rejected(n *appointments.Notice, err error) error {
	if n == nil {
		return err
	}
	return fmt.Errorf("%s: %s (%w)", n.Title, n.Message, err)
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func printAppointment(a models.Appointment) {
	fmt.Printf("ID:           %s\n", a.ID)
	fmt.Printf("Paciente:     %s (%s)\n", a.PatientName, a.PatientID)
	fmt.Printf("Laboratorio:  %s\n", a.Lab)
	fmt.Printf("Exámenes:     %s\n", a.FormatExams())
	fmt.Printf("Fecha:        %s\n", utils.FormatDisplayDate(a.Date))
	fmt.Printf("Hora:         %s\n", a.Time)
	fmt.Printf("Estado:       %s\n", a.Status)
	if a.Notes != "" {
		fmt.Printf("Notas:        %s\n", a.Notes)
	}
	if actions := appointments.Actions(a.Status); len(actions) > 0 {
		labels := make([]string, len(actions))
		for i, action := range actions {
			labels[i] = action.Label()
		}
		fmt.Printf("Acciones:     %s\n", strings.Join(labels, ", "))
	}
}
