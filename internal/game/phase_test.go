package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnabledActions(t *testing.T) {
	assert.Equal(t, []Action{ActionHit, ActionStand}, EnabledActions(PhasePlayer))
	assert.Empty(t, EnabledActions(PhaseDealer))
	assert.Equal(t, []Action{ActionDeal}, EnabledActions(PhaseEnd))

	assert.False(t, PhasePlayer.Allows(ActionDeal))
	assert.True(t, PhaseEnd.Allows(ActionDeal))
	assert.False(t, PhaseEnd.Allows(ActionHit))
	for _, a := range []Action{ActionDeal, ActionHit, ActionStand} {
		assert.False(t, PhaseDealer.Allows(a), a.String())
	}
}

func TestParseAction(t *testing.T) {
	for in, want := range map[string]Action{
		"deal": ActionDeal, "d": ActionDeal,
		"hit": ActionHit, "h": ActionHit,
		"stand": ActionStand, "s": ActionStand,
	} {
		got, err := ParseAction(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseAction("double")
	assert.Error(t, err)
}

func TestPhaseText(t *testing.T) {
	for _, p := range []Phase{PhasePlayer, PhaseDealer, PhaseEnd} {
		b, err := p.MarshalText()
		require.NoError(t, err)

		var got Phase
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, p, got)
	}
	var p Phase
	assert.Error(t, p.UnmarshalText([]byte("SPLIT")))
}
