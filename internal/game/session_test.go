package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession(t *testing.T) {
	s := NewSession()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Symbols())

	s.Record(Win)
	s.Record(Lose)
	s.Record(NoOutcome)
	s.Record(Draw)
	s.Record(Win)

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, "WLDW", s.Symbols())
	assert.Equal(t, Tally{Wins: 2, Losses: 1, Draws: 1}, s.Tally())
	assert.Equal(t, 4, s.Tally().Total())

	h := s.History()
	h[0] = Lose
	assert.Equal(t, Win, s.History()[0], "History must return a copy")
}
