package summary

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/labcita/internal/appointments"
	"github.com/julianstephens/labcita/internal/models"
)

var (
	badgeStyle = lipgloss.NewStyle().Padding(0, 1)

	statusColors = map[models.Status]lipgloss.Color{
		models.StatusPending:   lipgloss.Color("214"),
		models.StatusConfirmed: lipgloss.Color("39"),
		models.StatusCancelled: lipgloss.Color("196"),
		models.StatusCompleted: lipgloss.Color("42"),
	}
)

// Model is the per-status count bar. Counts are taken over every
// appointment, not only the filtered rows.
type Model struct {
	counts map[models.Status]int
	active models.Status
}

func New() Model {
	return Model{counts: appointments.CountByStatus(nil)}
}

func (m *Model) SetAppointments(appts []models.Appointment) {
	m.counts = appointments.CountByStatus(appts)
}

// SetActive highlights the status currently used as a filter, or none.
func (m *Model) SetActive(status models.Status) {
	m.active = status
}

func (m Model) Count(status models.Status) int {
	return m.counts[status]
}

func (m Model) View() string {
	badges := make([]string, 0, len(models.Statuses))
	for i, s := range models.Statuses {
		style := badgeStyle.Foreground(statusColors[s])
		if s == m.active {
			style = style.Background(lipgloss.Color("236")).Bold(true).Underline(true)
		}
		badges = append(badges, style.Render(fmt.Sprintf("[%d] %s %d", i+1, s, m.counts[s])))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, badges...)
}
