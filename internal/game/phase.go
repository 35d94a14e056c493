package game

import "fmt"

// Phase is the state of the round state machine
type Phase int

const (
	// PhasePlayer waits for the player to hit or stand
	PhasePlayer Phase = iota
	// PhaseDealer runs the dealer's automatic draws
	PhaseDealer
	// PhaseEnd holds a resolved round until the next deal
	PhaseEnd
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhasePlayer:
		return "PLAYER"
	case PhaseDealer:
		return "DEALER"
	case PhaseEnd:
		return "END"
	default:
		return "UNKNOWN"
	}
}

// MarshalText implements encoding.TextMarshaler
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Phase) UnmarshalText(b []byte) error {
	switch string(b) {
	case "PLAYER":
		*p = PhasePlayer
	case "DEALER":
		*p = PhaseDealer
	case "END":
		*p = PhaseEnd
	default:
		return fmt.Errorf("unknown phase %q", b)
	}
	return nil
}

// Action is something the player can ask the round to do
type Action int

const (
	ActionDeal Action = iota
	ActionHit
	ActionStand
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case ActionDeal:
		return "deal"
	case ActionHit:
		return "hit"
	case ActionStand:
		return "stand"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Action) UnmarshalText(b []byte) error {
	parsed, err := ParseAction(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAction converts a wire or keyboard name into an Action
func ParseAction(s string) (Action, error) {
	switch s {
	case "deal", "d":
		return ActionDeal, nil
	case "hit", "h":
		return ActionHit, nil
	case "stand", "s":
		return ActionStand, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

// EnabledActions returns the actions the player may take in a phase.
// The dealer phase is fully automated.
func EnabledActions(p Phase) []Action {
	switch p {
	case PhasePlayer:
		return []Action{ActionHit, ActionStand}
	case PhaseEnd:
		return []Action{ActionDeal}
	default:
		return nil
	}
}

// Allows reports whether action a is enabled in phase p
func (p Phase) Allows(a Action) bool {
	for _, enabled := range EnabledActions(p) {
		if enabled == a {
			return true
		}
	}
	return false
}
