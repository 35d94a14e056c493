package deck

import (
	rand "math/rand/v2"
)

const (
	// Decks is the number of standard decks merged into a shoe.
	Decks = 2

	// LowWater is the unseen-card count below which a shoe must be rebuilt
	// before the next draw.
	LowWater = 4

	deckSize = 52
)

// Shoe is the pool of cards a session draws from. Each slot carries a seen
// flag that flips exactly once; a shoe is never reset, it is replaced.
//
// Draws pick uniformly among unseen slots. The unseen slot indices are kept
// in a dense slice and the chosen one is swap-removed, so a draw is O(1).
type Shoe struct {
	cards  []Card
	seen   []bool
	unseen []int // indices into cards, order irrelevant
	rng    *rand.Rand
}

// NewShoe builds a fresh shoe of Decks identical 52-card decks, all unseen.
func NewShoe(rng *rand.Rand) *Shoe {
	cards := make([]Card, 0, Decks*deckSize)
	for range Decks {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				cards = append(cards, NewCard(rank, suit))
			}
		}
	}
	return NewShoeFromCards(cards, rng)
}

// NewShoeFromCards builds a shoe holding exactly the given cards, all unseen.
// Used to stack a shoe for deterministic play.
func NewShoeFromCards(cards []Card, rng *rand.Rand) *Shoe {
	if rng == nil {
		panic("rng is required for shoe creation")
	}

	s := &Shoe{
		cards:  append([]Card(nil), cards...),
		seen:   make([]bool, len(cards)),
		unseen: make([]int, len(cards)),
		rng:    rng,
	}
	for i := range s.unseen {
		s.unseen[i] = i
	}
	return s
}

// Draw marks a uniformly random unseen card as seen and returns it. It
// returns false once every card has been seen.
func (s *Shoe) Draw() (Card, bool) {
	n := len(s.unseen)
	if n == 0 {
		return Card{}, false
	}

	j := s.rng.IntN(n)
	idx := s.unseen[j]
	s.unseen[j] = s.unseen[n-1]
	s.unseen = s.unseen[:n-1]

	s.seen[idx] = true
	return s.cards[idx], true
}

// NearEmpty reports whether fewer than LowWater cards remain unseen.
func (s *Shoe) NearEmpty() bool {
	return len(s.unseen) < LowWater
}

// Remaining returns the number of unseen cards
func (s *Shoe) Remaining() int {
	return len(s.unseen)
}

// Len returns the total number of cards in the shoe, seen or not
func (s *Shoe) Len() int {
	return len(s.cards)
}

// SeenCount returns the number of cards drawn from this shoe
func (s *Shoe) SeenCount() int {
	return len(s.cards) - len(s.unseen)
}

// Seen reports whether the card in slot i has been drawn
func (s *Shoe) Seen(i int) bool {
	return s.seen[i]
}

// Card returns the card in slot i
func (s *Shoe) Card(i int) Card {
	return s.cards[i]
}
