package labs

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/labcita/internal/catalog"
	"github.com/julianstephens/labcita/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	defaultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	examStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			PaddingLeft(2)

	sectionStyle = lipgloss.NewStyle().
			MarginBottom(1)
)

// Model renders the lab catalog with today's booking count per lab.
type Model struct {
	catalog      *catalog.Catalog
	defaultLabID string
	today        map[string]int // lab name -> active appointments today
	width        int
	height       int
}

func New(cat *catalog.Catalog, defaultLabID string, width, height int) Model {
	return Model{
		catalog:      cat,
		defaultLabID: defaultLabID,
		today:        map[string]int{},
		width:        width,
		height:       height,
	}
}

// SetAppointments recounts today's active appointments per lab.
func (m *Model) SetAppointments(appts []models.Appointment, today string) {
	m.today = map[string]int{}
	for _, a := range appts {
		if a.Date == today && !a.Status.IsTerminal() {
			m.today[a.Lab]++
		}
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Laboratorios"))
	b.WriteString("\n")

	for _, lab := range m.catalog.Labs() {
		var s strings.Builder
		name := labStyle.Render(lab.Name)
		if lab.ID == m.defaultLabID {
			name += " " + defaultStyle.Render("(predeterminado)")
		}
		fmt.Fprintf(&s, "%s  %d cita(s) hoy\n", name, m.today[lab.Name])
		s.WriteString(examStyle.Render(strings.Join(m.catalog.ExamsFor(lab.ID), ", ")))
		b.WriteString(sectionStyle.Render(s.String()))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
