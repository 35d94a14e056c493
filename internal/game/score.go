package game

import "github.com/lox/blackjack/internal/deck"

const (
	// Blackjack is the best possible total; reaching or passing it ends the
	// player's turn.
	Blackjack = 21

	// DealerStandsOn is the total at which the dealer stops drawing.
	DealerStandsOn = 17
)

// Score sums the Blackjack value of cards. Faces count 10, numeric ranks
// their value and an Ace is always 11; there are no soft totals, so a hand
// can score well over 21.
func Score(cards []deck.Card) int {
	total := 0
	for _, c := range cards {
		total += CardValue(c)
	}
	return total
}

// CardValue returns the points a single card contributes to a hand
func CardValue(c deck.Card) int {
	switch {
	case c.Rank == deck.Ace:
		return 11
	case c.Rank.IsFace():
		return 10
	default:
		return int(c.Rank)
	}
}

// IsBust reports whether a total is over 21
func IsBust(score int) bool {
	return score > Blackjack
}
