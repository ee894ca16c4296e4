package records

import (
	"fmt"

	pkgerrors "github.com/bhopalpolice/armory-backend/pkg/errors"
)

// Action is a caller-facing status mutation. Expired and Revoked are
// administrative states assigned in the dataset itself; no action leads
// into or out of them.
type Action string

const (
	// ActionSubmit marks a weapon as physically handed in.
	ActionSubmit Action = "submit"
	// ActionReturn marks a submitted weapon as returned to its holder.
	ActionReturn Action = "return"
)

func (a Action) IsValid() bool {
	return a == ActionSubmit || a == ActionReturn
}

// nextStatus resolves the target status for applying an action to a
// record in the given state. An action from a non-matching source state
// is a hard error, never a silent no-op, so the record history stays
// auditable.
func nextStatus(from Status, action Action) (Status, error) {
	switch action {
	case ActionSubmit:
		if from == StatusActive {
			return StatusSubmitted, nil
		}
	case ActionReturn:
		if from == StatusSubmitted {
			return StatusActive, nil
		}
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown action %q", action))
	}
	return "", pkgerrors.New(pkgerrors.CodeStateConflict,
		fmt.Sprintf("cannot %s a license in status %s", action, from))
}
