package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/labcita/internal/appointments"
	"github.com/julianstephens/labcita/internal/constants"
	"github.com/julianstephens/labcita/internal/models"
	"github.com/julianstephens/labcita/internal/tui/state"
)

// Model is the bubbletea model of the appointment console.
type Model struct {
	state.Model
}

// NewModel builds the console over a loaded appointment store.
func NewModel(store *appointments.Store, settings models.Settings, auth models.AuthState) Model {
	return Model{Model: state.New(store, settings, auth)}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.Keys.Tab, m.Keys.Quit, m.Keys.Help}
	if m.State == constants.StateAppointments {
		keys = append(keys, m.Keys.Add, m.Keys.Edit, m.Keys.Confirm, m.Keys.Complete, m.Keys.Cancel, m.Keys.Search)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.Keys.Tab, m.Keys.ShiftTab, m.Keys.Quit, m.Keys.Help}
	if m.State != constants.StateAppointments {
		return [][]key.Binding{global}
	}
	navigation := []key.Binding{m.Keys.Up, m.Keys.Down}
	actions := []key.Binding{m.Keys.Add, m.Keys.Edit, m.Keys.Confirm, m.Keys.Complete, m.Keys.Cancel}
	filters := []key.Binding{m.Keys.Search, m.Keys.Status, m.Keys.ClearFilter}
	return [][]key.Binding{global, navigation, actions, filters}
}

func (m Model) Init() tea.Cmd {
	return nil
}
