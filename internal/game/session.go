package game

import "strings"

// Tally counts outcomes over a session
type Tally struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// Total returns the number of completed rounds
func (t Tally) Total() int {
	return t.Wins + t.Losses + t.Draws
}

// Session is the running, in-memory history of completed rounds. It is not
// safe for concurrent use; Round serialises access to the session it owns.
type Session struct {
	history []Outcome
	tally   Tally
}

// NewSession returns an empty session
func NewSession() *Session {
	return &Session{}
}

// Record appends one outcome. NoOutcome is ignored.
func (s *Session) Record(o Outcome) {
	switch o {
	case Win:
		s.tally.Wins++
	case Lose:
		s.tally.Losses++
	case Draw:
		s.tally.Draws++
	default:
		return
	}
	s.history = append(s.history, o)
}

// History returns a copy of the recorded outcomes, oldest first
func (s *Session) History() []Outcome {
	out := make([]Outcome, len(s.history))
	copy(out, s.history)
	return out
}

// Tally returns the win/loss/draw counts
func (s *Session) Tally() Tally {
	return s.tally
}

// Len returns the number of recorded rounds
func (s *Session) Len() int {
	return len(s.history)
}

// Symbols renders the history as a compact string, e.g. "WLDW"
func (s *Session) Symbols() string {
	var b strings.Builder
	for _, o := range s.history {
		b.WriteString(o.Symbol())
	}
	return b.String()
}
