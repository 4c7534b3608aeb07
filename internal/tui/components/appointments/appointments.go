package appointments

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/labcita/internal/models"
	"github.com/julianstephens/labcita/internal/utils"
)

type Item struct {
	Appointment models.Appointment
}

func (i Item) Title() string {
	a := i.Appointment
	return fmt.Sprintf("%s %s · %s (%s)", statusMark(a.Status), a.Time, a.PatientName, a.PatientID)
}

func (i Item) Description() string {
	a := i.Appointment
	return fmt.Sprintf("%s · %s · %s · %s", utils.FormatDisplayDate(a.Date), a.Lab, a.FormatExams(), a.Status)
}

func (i Item) FilterValue() string { return i.Appointment.PatientName }

func statusMark(s models.Status) string {
	switch s {
	case models.StatusPending:
		return "○"
	case models.StatusConfirmed:
		return "●"
	case models.StatusCompleted:
		return "✓"
	case models.StatusCancelled:
		return "✗"
	}
	return "?"
}

type Model struct {
	list list.Model
}

func New(appts []models.Appointment, width, height int) Model {
	l := list.New(toItems(appts), list.NewDefaultDelegate(), width, height)
	l.Title = "Citas"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	// q and the paging letters are handled by the parent model
	l.KeyMap.Quit = key.NewBinding(key.WithDisabled())
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("pgdown"))
	l.KeyMap.PrevPage = key.NewBinding(key.WithKeys("pgup"))

	return Model{list: l}
}

func toItems(appts []models.Appointment) []list.Item {
	items := make([]list.Item, len(appts))
	for i, a := range appts {
		items[i] = Item{Appointment: a}
	}
	return items
}

// SetAppointments replaces the rows, keeping the cursor on the same
// appointment when it is still listed.
func (m *Model) SetAppointments(appts []models.Appointment) {
	selected, hadSelection := m.Selected()
	m.list.SetItems(toItems(appts))
	if !hadSelection {
		return
	}
	for i, a := range appts {
		if a.ID == selected.ID {
			m.list.Select(i)
			return
		}
	}
}

// Selected returns the appointment under the cursor.
func (m Model) Selected() (models.Appointment, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Appointment, true
	}
	return models.Appointment{}, false
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No hay citas que mostrar.\n  Presione 'a' para programar una."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
