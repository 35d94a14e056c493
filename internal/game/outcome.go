package game

import "fmt"

// Outcome is the result of a completed round from the player's side
type Outcome int

const (
	NoOutcome Outcome = iota
	Win
	Lose
	Draw
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Lose:
		return "lose"
	case Draw:
		return "draw"
	default:
		return "none"
	}
}

// Symbol returns the one-character history marker
func (o Outcome) Symbol() string {
	switch o {
	case Win:
		return "W"
	case Lose:
		return "L"
	case Draw:
		return "D"
	default:
		return "-"
	}
}

// Message returns the end-of-round text shown to the player
func (o Outcome) Message() string {
	switch o {
	case Win:
		return "You win!"
	case Lose:
		return "Dealer wins"
	case Draw:
		return "Push"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (o *Outcome) UnmarshalText(b []byte) error {
	switch string(b) {
	case "win":
		*o = Win
	case "lose":
		*o = Lose
	case "draw":
		*o = Draw
	case "none", "":
		*o = NoOutcome
	default:
		return fmt.Errorf("unknown outcome %q", b)
	}
	return nil
}

// DetermineOutcome resolves a round from the final totals. The checks run in
// a fixed order: a busted dealer loses even to a busted player.
func DetermineOutcome(playerScore, dealerScore int) Outcome {
	switch {
	case IsBust(dealerScore):
		return Win
	case playerScore > dealerScore && !IsBust(playerScore):
		return Win
	case dealerScore > playerScore:
		return Lose
	case dealerScore == playerScore:
		return Draw
	default:
		// player busted against a lower, standing dealer
		return Lose
	}
}
