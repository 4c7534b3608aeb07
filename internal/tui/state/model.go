package state

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/labcita/internal/appointments"
	"github.com/julianstephens/labcita/internal/constants"
	"github.com/julianstephens/labcita/internal/models"
	apptlist "github.com/julianstephens/labcita/internal/tui/components/appointments"
	"github.com/julianstephens/labcita/internal/tui/components/labs"
	"github.com/julianstephens/labcita/internal/tui/components/summary"
	"github.com/julianstephens/labcita/internal/validation"
)

// Model represents the shared state for the TUI
type Model struct {
	Appts         *appointments.Store
	Settings      models.Settings
	Auth          models.AuthState
	State         constants.SessionState
	PreviousState constants.SessionState
	Keys          KeyMap
	Help          help.Model
	ApptList      apptlist.Model
	LabsModel     labs.Model
	Summary       summary.Model
	Filter        appointments.Filter
	Search        textinput.Model
	Form          *huh.Form
	ApptForm      *appointments.Form
	FormConfirmed bool
	CancelID      string
	// Notice is the outcome of the last submit or row action
	Notice              *appointments.Notice
	ValidationWarning   string
	ValidationConflicts []validation.Conflict
	Quitting            bool
	Width               int
	Height              int
}

// New creates a new state Model
func New(store *appointments.Store, settings models.Settings, auth models.AuthState) Model {
	search := textinput.New()
	search.Placeholder = "paciente, ID o laboratorio"
	search.Prompt = "/ "
	search.CharLimit = 64

	m := Model{
		Appts:     store,
		Settings:  settings,
		Auth:      auth,
		State:     constants.StateAppointments,
		Keys:      DefaultKeyMap(),
		Help:      help.New(),
		ApptList:  apptlist.New(nil, 0, 0),
		LabsModel: labs.New(store.Catalog(), settings.DefaultLabID, 0, 0),
		Summary:   summary.New(),
		Filter:    appointments.Filter{HideTerminal: !settings.ShowTerminal},
		Search:    search,
		ApptForm:  appointments.NewForm(store, settings.DefaultLabID),
	}
	m.Refresh()
	return m
}

// Refresh rebuilds every view that derives from the appointment list.
func (m *Model) Refresh() {
	all := m.Appts.List()

	rows := m.Filter.Apply(all)
	appointments.SortBySchedule(rows)
	m.ApptList.SetAppointments(rows)

	m.Summary.SetAppointments(all)
	m.Summary.SetActive(m.Filter.Status)
	m.LabsModel.SetAppointments(all, m.Appts.Today())
	m.UpdateValidationStatus()
	m.SyncRowKeys()
}

// SyncRowKeys gates the row keys on the status of the selected appointment.
func (m *Model) SyncRowKeys() {
	var actions []appointments.Action
	if appt, ok := m.ApptList.Selected(); ok {
		actions = appointments.Actions(appt.Status)
	}
	m.Keys.SetRowActions(actions)
}

// SetNotice records the outcome of an operation for the status line.
func (m *Model) SetNotice(n appointments.Notice) {
	m.Notice = &n
}
