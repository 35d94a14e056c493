package deck

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "faces and ace",
			input: "As Kh Qd Jc",
			expected: []Card{
				{Rank: Ace, Suit: Spades},
				{Rank: King, Suit: Hearts},
				{Rank: Queen, Suit: Diamonds},
				{Rank: Jack, Suit: Clubs},
			},
		},
		{
			name:  "ten both forms",
			input: "10h Td",
			expected: []Card{
				{Rank: Ten, Suit: Hearts},
				{Rank: Ten, Suit: Diamonds},
			},
		},
		{
			name:  "case insensitive",
			input: "aS kH 7C",
			expected: []Card{
				{Rank: Ace, Suit: Spades},
				{Rank: King, Suit: Hearts},
				{Rank: Seven, Suit: Clubs},
			},
		},
		{
			name:    "invalid rank",
			input:   "Xs",
			wantErr: true,
		},
		{
			name:    "invalid suit",
			input:   "Ax",
			wantErr: true,
		},
		{
			name:    "too short",
			input:   "A",
			wantErr: true,
		},
		{
			name:    "eleven is not a rank",
			input:   "11s",
			wantErr: true,
		},
		{
			name:     "empty string",
			input:    "",
			expected: []Card{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMustParseCardsPanics(t *testing.T) {
	assert.Equal(t, []Card{{Rank: Ace, Suit: Spades}}, MustParseCards("As"))
	assert.Panics(t, func() { MustParseCards("invalid") })
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "A♠", NewCard(Ace, Spades).String())
	assert.Equal(t, "10♥", NewCard(Ten, Hearts).String())
	assert.Equal(t, "K♦", NewCard(King, Diamonds).String())
	assert.Equal(t, "7c", NewCard(Seven, Clubs).Code())
}

func TestCardCodeRoundTrip(t *testing.T) {
	for _, suit := range Suits {
		for _, rank := range Ranks {
			c := NewCard(rank, suit)
			parsed, err := ParseCard(c.Code())
			require.NoError(t, err)
			assert.Equal(t, c, parsed)
		}
	}
}

func TestRankIsFace(t *testing.T) {
	for _, r := range Ranks {
		want := r == Jack || r == Queen || r == King
		assert.Equal(t, want, r.IsFace(), r.String())
	}
}

func TestIsRed(t *testing.T) {
	assert.True(t, NewCard(Two, Hearts).IsRed())
	assert.True(t, NewCard(Two, Diamonds).IsRed())
	assert.False(t, NewCard(Two, Spades).IsRed())
	assert.False(t, NewCard(Two, Clubs).IsRed())
}

func TestCardJSON(t *testing.T) {
	in := []Card{NewCard(Ten, Hearts), NewCard(Ace, Spades)}
	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `["10h","As"]`, string(b))

	var out []Card
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)

	assert.Error(t, json.Unmarshal([]byte(`["Zz"]`), &out))
}
