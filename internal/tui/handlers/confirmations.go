package handlers

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/labcita/internal/appointments"
	"github.com/julianstephens/labcita/internal/constants"
	"github.com/julianstephens/labcita/internal/tui/state"
)

// HandleConfirmCancelState handles the cancel confirmation state
func HandleConfirmCancelState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y", "s", "S":
			if m.CancelID != "" {
				_, err := m.Appts.Apply(m.CancelID, appointments.ActionCancel)
				m.SetNotice(appointments.ActionNotice(appointments.ActionCancel, err))
				m.Refresh()
				m.CancelID = ""
			}
			m.State = constants.StateAppointments
		case "n", "N", "esc":
			m.CancelID = ""
			m.State = constants.StateAppointments
		}
	}
	return nil
}
