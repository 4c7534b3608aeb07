package handlers

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/labcita/internal/appointments"
	"github.com/julianstephens/labcita/internal/constants"
	"github.com/julianstephens/labcita/internal/logger"
	"github.com/julianstephens/labcita/internal/models"
	"github.com/julianstephens/labcita/internal/tui/state"
)

// HandleAppointmentKeys handles the row and filter keys of the appointment
// list. It reports whether the key was consumed.
func HandleAppointmentKeys(m *state.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Add):
		m.ApptForm.Reset()
		m.ApptForm.Notice = nil
		return true, openForm(m)

	case key.Matches(msg, m.Keys.Edit):
		appt, ok := m.ApptList.Selected()
		if !ok {
			return true, nil
		}
		if err := m.ApptForm.Edit(appt); err != nil {
			m.SetNotice(appointments.ActionNotice(appointments.ActionReschedule, err))
			return true, nil
		}
		return true, openForm(m)

	case key.Matches(msg, m.Keys.Confirm):
		applyAction(m, appointments.ActionConfirm)
		return true, nil

	case key.Matches(msg, m.Keys.Complete):
		applyAction(m, appointments.ActionComplete)
		return true, nil

	case key.Matches(msg, m.Keys.Cancel):
		appt, ok := m.ApptList.Selected()
		if !ok {
			return true, nil
		}
		if !appointments.ValidTransition(appointments.ActionCancel, appt.Status) {
			m.SetNotice(appointments.ActionNotice(appointments.ActionCancel, appointments.ErrInvalidTransition))
			return true, nil
		}
		m.CancelID = appt.ID
		m.PreviousState = m.State
		m.State = constants.StateConfirmCancel
		return true, nil

	case key.Matches(msg, m.Keys.Search):
		m.PreviousState = m.State
		m.State = constants.StateSearch
		m.Search.SetValue(m.Filter.Search)
		return true, m.Search.Focus()

	case key.Matches(msg, m.Keys.Status):
		idx := int(msg.Runes[0] - '1')
		if idx >= 0 && idx < len(models.Statuses) {
			m.Filter = m.Filter.ToggleStatus(models.Statuses[idx])
			m.Refresh()
		}
		return true, nil

	case key.Matches(msg, m.Keys.ClearFilter):
		m.Filter.Status = ""
		m.Filter.Search = ""
		m.Search.SetValue("")
		m.Refresh()
		return true, nil
	}
	return false, nil
}

func applyAction(m *state.Model, action appointments.Action) {
	appt, ok := m.ApptList.Selected()
	if !ok {
		return
	}
	_, err := m.Appts.Apply(appt.ID, action)
	if err != nil {
		logger.Debug("Appointment action rejected", "id", appt.ID, "action", action, "error", err)
	}
	m.SetNotice(appointments.ActionNotice(action, err))
	m.Refresh()
}

func openForm(m *state.Model) tea.Cmd {
	m.Form = NewAppointmentForm(m.Appts, m.ApptForm, &m.FormConfirmed)
	m.PreviousState = constants.StateAppointments
	m.State = constants.StateEditing
	return m.Form.Init()
}

// HandleEditingState drives the appointment form. A rejected submit keeps
// the form open with the draft and the notice.
func HandleEditingState(m *state.Model, msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.ApptForm.Reset()
		m.State = constants.StateAppointments
		return nil
	}

	var cmds []tea.Cmd
	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)
	m.ApptForm.SyncLab()

	switch m.Form.State {
	case huh.StateCompleted:
		if !m.FormConfirmed {
			m.ApptForm.Reset()
			m.State = constants.StateAppointments
			return nil
		}
		if _, err := m.ApptForm.Submit(); err != nil {
			m.Notice = m.ApptForm.Notice
			// Reopen on the same draft
			m.Form = NewAppointmentForm(m.Appts, m.ApptForm, &m.FormConfirmed)
			return m.Form.Init()
		}
		m.Notice = m.ApptForm.Notice
		m.Refresh()
		m.State = constants.StateAppointments
		return nil
	case huh.StateAborted:
		m.ApptForm.Reset()
		m.State = constants.StateAppointments
		return nil
	}
	return tea.Batch(cmds...)
}
