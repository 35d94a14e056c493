package game

import "github.com/lox/blackjack/internal/deck"

// Snapshot is a read-only view of a round for presentation. While the player
// is still acting only the dealer's first card is included and the dealer's
// score is withheld. Version increases with every state change, so a consumer
// receiving snapshots out of order can discard stale ones.
type Snapshot struct {
	Version       int         `json:"version"`
	Round         int         `json:"round"`
	Phase         Phase       `json:"phase"`
	Player        []deck.Card `json:"player"`
	PlayerScore   int         `json:"playerScore"`
	Dealer        []deck.Card `json:"dealer"`
	DealerScore   int         `json:"dealerScore"`
	DealerHidden  bool        `json:"dealerHidden"`
	Actions       []Action    `json:"actions"`
	Outcome       Outcome     `json:"outcome"`
	History       []Outcome   `json:"history"`
	Tally         Tally       `json:"tally"`
	ShoeRemaining int         `json:"shoeRemaining"`
}

// Can reports whether action a is enabled in this snapshot
func (s Snapshot) Can(a Action) bool {
	for _, enabled := range s.Actions {
		if enabled == a {
			return true
		}
	}
	return false
}

// HistorySymbols renders the session history, e.g. "WLDW"
func (s Snapshot) HistorySymbols() string {
	b := make([]byte, 0, len(s.History))
	for _, o := range s.History {
		b = append(b, o.Symbol()...)
	}
	return string(b)
}
