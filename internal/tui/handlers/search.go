package handlers

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/labcita/internal/constants"
	"github.com/julianstephens/labcita/internal/tui/state"
)

// HandleSearchState filters the list as the query is typed. Enter keeps the
// query, esc clears it.
func HandleSearchState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.Search.Blur()
			m.State = constants.StateAppointments
			return nil
		case tea.KeyEsc:
			m.Search.Blur()
			m.Search.SetValue("")
			m.Filter.Search = ""
			m.Refresh()
			m.State = constants.StateAppointments
			return nil
		}
	}

	var cmd tea.Cmd
	m.Search, cmd = m.Search.Update(msg)
	if m.Search.Value() != m.Filter.Search {
		m.Filter.Search = m.Search.Value()
		m.Refresh()
	}
	return cmd
}
