package poker

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "As", NewCard(Ace, Spades).String())
	assert.Equal(t, "2c", NewCard(Two, Clubs).String())
	assert.Equal(t, "Td", NewCard(Ten, Diamonds).String())
	assert.Equal(t, "10♦", NewCard(Ten, Diamonds).Symbol())
	assert.Equal(t, "K♥", NewCard(King, Hearts).Symbol())
	assert.Equal(t, "??", Card{}.String())
}

func TestParseCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Card
		wantErr bool
	}{
		{input: "As", want: NewCard(Ace, Spades)},
		{input: "2h", want: NewCard(Two, Hearts)},
		{input: "td", want: NewCard(Ten, Diamonds)},
		{input: "10c", want: NewCard(Ten, Clubs)},
		{input: "K♠", want: NewCard(King, Spades)},
		{input: " 9D ", want: NewCard(Nine, Diamonds)},
		{input: "", wantErr: true},
		{input: "1s", wantErr: true},
		{input: "Ax", wantErr: true},
		{input: "A", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseCard(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCards(t *testing.T) {
	t.Parallel()

	cards, err := ParseCards("As, Kd\tQh 10c")
	require.NoError(t, err)
	assert.Equal(t, "As Kd Qh Tc", FormatCards(cards))

	_, err = ParseCards("As Zz")
	require.Error(t, err)

	assert.Panics(t, func() { MustParseCards("nope") })
}

func TestCardKeyOrdersByRankThenSuit(t *testing.T) {
	t.Parallel()

	assert.Greater(t, NewCard(Three, Clubs).Key(), NewCard(Two, Spades).Key())
	assert.Greater(t, NewCard(Ace, Spades).Key(), NewCard(Ace, Hearts).Key())
	assert.Equal(t, 143, NewCard(Ace, Spades).Key())
}

func TestCardJSON(t *testing.T) {
	t.Parallel()

	in := []Card{NewCard(Ace, Spades), NewCard(Ten, Hearts)}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `["As","Th"]`, string(data))

	var out []Card
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)

	_, err = json.Marshal(Card{})
	require.Error(t, err)
}

func TestSuitHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, Hearts.IsRed())
	assert.True(t, Diamonds.IsRed())
	assert.False(t, Spades.IsRed())
	assert.Equal(t, "♣", Clubs.Symbol())
	assert.Less(t, Clubs, Diamonds)
	assert.Less(t, Hearts, Spades)
}
