package state

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/julianstephens/labcita/internal/appointments"
)

type KeyMap struct {
	Tab         key.Binding
	ShiftTab    key.Binding
	Quit        key.Binding
	Up          key.Binding
	Down        key.Binding
	Help        key.Binding
	Add         key.Binding
	Edit        key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
	Complete    key.Binding
	Search      key.Binding
	Status      key.Binding
	ClearFilter key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Quit, k.Help}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Quit, k.Help},
		{k.Up, k.Down, k.Add, k.Edit, k.Confirm, k.Complete, k.Cancel},
		{k.Search, k.Status, k.ClearFilter},
	}
}

// SetRowActions enables the row keys for actions and disables the rest, so
// key matching and help follow the selected row.
func (k *KeyMap) SetRowActions(actions []appointments.Action) {
	allowed := make(map[appointments.Action]bool, len(actions))
	for _, a := range actions {
		allowed[a] = true
	}
	k.Confirm.SetEnabled(allowed[appointments.ActionConfirm])
	k.Complete.SetEnabled(allowed[appointments.ActionComplete])
	k.Edit.SetEnabled(allowed[appointments.ActionReschedule])
	k.Cancel.SetEnabled(allowed[appointments.ActionCancel])
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "new appointment"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "reschedule"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "cancel"),
		),
		Complete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "complete"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Status: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "filter by status"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "clear filters"),
		),
	}
}
