package game

import (
	"fmt"
	"strings"
)

// Action is something a seat did, or a status the engine recorded for it.
type Action int

const (
	ActionNone Action = iota
	ActionAnte
	ActionWaiting
	ActionBet
	ActionRaise
	ActionCall
	ActionCheck
	ActionFold
	ActionWin
	ActionLose
)

var actionNames = [...]string{"NONE", "ANTE", "WAITING", "BET", "RAISE", "CALL", "CHECK", "FOLD", "WIN", "LOSE"}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// Aggressive reports whether the action raised the standing bet.
func (a Action) Aggressive() bool {
	return a == ActionBet || a == ActionRaise
}

// MarshalText encodes the action by name.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes an action name, case-insensitively.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAction returns the action with the given name.
func ParseAction(name string) (Action, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range actionNames {
		if n == upper {
			return Action(i), nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action %q", name)
}
