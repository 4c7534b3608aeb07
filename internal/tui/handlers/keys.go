package handlers

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/labcita/internal/constants"
	"github.com/julianstephens/labcita/internal/tui/state"
)

// HandleGlobalKeys handles the keys shared by the main views
func HandleGlobalKeys(m *state.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.Quitting = true
		return true, tea.Quit
	case "?":
		m.Help.ShowAll = !m.Help.ShowAll
		return true, nil
	case "tab", "shift+tab":
		// Two views, so both directions toggle
		switch m.State {
		case constants.StateAppointments:
			m.State = constants.StateLabs
		case constants.StateLabs:
			m.State = constants.StateAppointments
		}
		return true, nil
	}
	return false, nil
}
