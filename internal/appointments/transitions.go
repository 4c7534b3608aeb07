package appointments

import "github.com/julianstephens/labcita/internal/models"

// Action is an operation a user can apply to an existing appointment.
type Action string

const (
	ActionConfirm    Action = "confirm"
	ActionComplete   Action = "complete"
	ActionReschedule Action = "reschedule"
	ActionCancel     Action = "cancel"
)

// actionOrder is the order row actions are offered in.
var actionOrder = []Action{ActionConfirm, ActionComplete, ActionReschedule, ActionCancel}

var transitionMap = map[Action][]models.Status{
	ActionConfirm:    {models.StatusPending},
	ActionComplete:   {models.StatusConfirmed},
	ActionReschedule: {models.StatusPending, models.StatusConfirmed},
	ActionCancel:     {models.StatusPending, models.StatusConfirmed},
}

// transitionTarget is the status an action moves to. Reschedule keeps the
// current status and has no entry.
var transitionTarget = map[Action]models.Status{
	ActionConfirm:  models.StatusConfirmed,
	ActionComplete: models.StatusCompleted,
	ActionCancel:   models.StatusCancelled,
}

// ValidTransition reports whether action may be applied to an appointment in
// status from.
func ValidTransition(action Action, from models.Status) bool {
	allowed, ok := transitionMap[action]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == from {
			return true
		}
	}
	return false
}

// Actions returns the actions available for an appointment in status,
// in display order. Terminal statuses have none.
func Actions(status models.Status) []Action {
	var out []Action
	for _, a := range actionOrder {
		if ValidTransition(a, status) {
			out = append(out, a)
		}
	}
	return out
}

// Label is the button text for the action.
func (a Action) Label() string {
	switch a {
	case ActionConfirm:
		return "Confirmar"
	case ActionComplete:
		return "Completar"
	case ActionReschedule:
		return "Reprogramar"
	case ActionCancel:
		return "Cancelar"
	}
	return string(a)
}

// DoneTitle is the notice title shown after the action succeeds.
func (a Action) DoneTitle() string {
	switch a {
	case ActionConfirm:
		return "Cita confirmada"
	case ActionComplete:
		return "Cita completada"
	case ActionReschedule:
		return "Cita actualizada"
	case ActionCancel:
		return "Cita cancelada"
	}
	return ""
}
