package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/labcita/internal/constants"
	"github.com/julianstephens/labcita/internal/tui/handlers"
)

// chromeHeight is the rows taken by tabs, summary, notice and help.
const chromeHeight = 8

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.Width = msg.Width
		m.Height = msg.Height
		h, v := docStyle.GetFrameSize()
		m.ApptList.SetSize(msg.Width-h, msg.Height-v-chromeHeight)
		m.LabsModel.SetSize(msg.Width-h, msg.Height-v-chromeHeight)
		m.Help.Width = msg.Width
	}

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyCtrlC {
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.State {
	case constants.StateEditing:
		return m, handlers.HandleEditingState(&m.Model, msg)
	case constants.StateSearch:
		return m, handlers.HandleSearchState(&m.Model, msg)
	case constants.StateConfirmCancel:
		return m, handlers.HandleConfirmCancelState(&m.Model, msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if handled, cmd := handlers.HandleGlobalKeys(&m.Model, msg); handled {
			return m, cmd
		}
		if m.State == constants.StateAppointments {
			if handled, cmd := handlers.HandleAppointmentKeys(&m.Model, msg); handled {
				return m, cmd
			}
		}
	}

	var cmd tea.Cmd
	switch m.State {
	case constants.StateAppointments:
		m.ApptList, cmd = m.ApptList.Update(msg)
		m.SyncRowKeys()
	case constants.StateLabs:
		m.LabsModel, cmd = m.LabsModel.Update(msg)
	}
	return m, cmd
}
