package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/labcita/internal/appointments"
	"github.com/julianstephens/labcita/internal/constants"
	"github.com/julianstephens/labcita/internal/utils"
)

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var content string

	switch m.State {
	case constants.StateAppointments, constants.StateSearch:
		content = m.viewAppointments()
	case constants.StateLabs:
		content = docStyle.Render(m.LabsModel.View())
	case constants.StateEditing:
		content = docStyle.Render(m.Form.View())
	case constants.StateConfirmCancel:
		content = m.viewConfirmCancel()
	}

	var banner string
	if m.ValidationWarning != "" {
		banner = bannerStyle.Render(m.ValidationWarning)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		content,
		m.viewNotice(),
		m.Help.View(m),
	)
}

func (m Model) viewTabs() string {
	tabTitles := []struct {
		title string
		state constants.SessionState
	}{
		{"Citas", constants.StateAppointments},
		{"Laboratorios", constants.StateLabs},
	}

	active := m.State
	if active != constants.StateLabs {
		active = constants.StateAppointments
	}

	var tabs []string
	for _, t := range tabTitles {
		if t.state == active {
			tabs = append(tabs, activeTabStyle.Render(t.title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(t.title))
		}
	}
	if m.Auth.IsLoggedIn {
		tabs = append(tabs, userStyle.Render(m.Auth.UserName))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewAppointments() string {
	header := m.Summary.View()
	if m.State == constants.StateSearch {
		header = lipgloss.JoinVertical(lipgloss.Left, header, m.Search.View())
	} else if m.Filter.Search != "" {
		header = lipgloss.JoinVertical(lipgloss.Left, header, warningStyle.Render(fmt.Sprintf("Búsqueda: %q (0 para limpiar)", m.Filter.Search)))
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", m.ApptList.View()))
}

func (m Model) viewNotice() string {
	if m.Notice == nil {
		return ""
	}
	if m.Notice.Kind == appointments.NoticeError {
		return dangerStyle.Render("✗ " + m.Notice.String())
	}
	return successStyle.Render("✓ " + m.Notice.String())
}

func (m Model) viewConfirmCancel() string {
	question := "¿Cancelar esta cita?"
	if appt, err := m.Appts.Get(m.CancelID); err == nil {
		question = fmt.Sprintf("¿Cancelar la cita de %s el %s a las %s?",
			appt.PatientName, utils.FormatDisplayDate(appt.Date), appt.Time)
	}
	return lipgloss.Place(m.Width, m.Height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(question),
			"El horario seguirá reservado.",
			"",
			"[y] Sí",
			"[n] No",
		),
	)
}
