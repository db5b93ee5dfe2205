package phh_test

import (
	"bytes"
	rand "math/rand/v2"
	"testing"
	"time"

	"github.com/lox/sevenstud/internal/game"
	"github.com/lox/sevenstud/internal/phh"
	"github.com/lox/sevenstud/internal/randutil"
	"github.com/lox/sevenstud/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// alice holds As Ad / Kh and checks down to a showdown win over bob.
const headsUpDeal = "As Ad 2c 3d Kh 7s Kc 8d Qs 9h Jd 4c 5h 6s"

func playHand(t *testing.T, fold bool) *game.State {
	t.Helper()
	stack := poker.MustParseCards(headsUpDeal)
	e := game.NewEngine(
		game.WithRNG(randutil.New(3)),
		game.WithDeckFactory(func(rng *rand.Rand) poker.Drawer {
			return poker.NewStackedDeck(stack...).Then(poker.NewDeck(rng))
		}),
		game.WithHandIDs(func() string { return "h1" }),
	)
	st := game.NewState()
	require.NoError(t, e.Start(st, []string{"alice", "bob"}, 10))

	if fold {
		require.NoError(t, e.Bet(st, "alice", 0))
		require.NoError(t, e.Fold(st, "bob"))
	}
	for i := 0; st.InProgress; i++ {
		require.Less(t, i, 100, "hand did not finish")
		require.NoError(t, e.Check(st, st.Turn))
	}
	return st
}

func TestFromStateShowdown(t *testing.T) {
	t.Parallel()

	st := playHand(t, false)
	h, err := phh.FromState(st, "main", nil)
	require.NoError(t, err)

	assert.Equal(t, phh.Variant, h.Variant)
	assert.Equal(t, "main", h.Table)
	assert.Equal(t, "h1", h.HandID)
	assert.Equal(t, []string{"alice", "bob"}, h.Players)
	assert.Equal(t, []int{10, 10}, h.Antes)
	assert.Equal(t, 10, h.SmallBet)
	assert.Equal(t, 20, h.BigBet)
	assert.Equal(t, []int{1000, 1000}, h.StartingStacks)
	assert.Equal(t, []int{20, 0}, h.Winnings)
	assert.Equal(t, []int{1010, 990}, h.FinishingStacks)

	want := []string{
		"d dh p1 AsAdKh", "d dh p2 2c3d7s", "p1 cc", "p2 cc",
		"d dh p1 Kc", "d dh p2 8d", "p1 cc", "p2 cc",
		"d dh p1 Qs", "d dh p2 9h", "p1 cc", "p2 cc",
		"d dh p1 Jd", "d dh p2 4c", "p1 cc", "p2 cc",
		"d dh p1 5h", "d dh p2 6s", "p1 cc", "p2 cc",
		"p1 sm AsAd5h", "p2 sm 2c3d6s",
	}
	assert.Equal(t, want, h.Actions)
}

func TestFromStateFold(t *testing.T) {
	t.Parallel()

	st := playHand(t, true)
	h, err := phh.FromState(st, "", func(seat string) int {
		return map[string]int{"alice": 500, "bob": 5}[seat]
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"d dh p1 AsAdKh", "d dh p2 2c3d7s", "p1 cbr 10", "p2 f"}, h.Actions)
	assert.Equal(t, []int{30, 0}, h.Winnings)
	assert.Equal(t, []int{500, 10}, h.StartingStacks, "stack covers what the seat put in")
	assert.Equal(t, []int{510, 0}, h.FinishingStacks)
}

func TestFromStateUnfinished(t *testing.T) {
	t.Parallel()

	_, err := phh.FromState(game.NewState(), "", nil)
	require.ErrorIs(t, err, phh.ErrUnfinished)

	e := game.NewEngine(game.WithRNG(randutil.New(1)))
	st := game.NewState()
	require.NoError(t, e.Start(st, []string{"alice", "bob"}, 10))
	_, err = phh.FromState(st, "", nil)
	require.ErrorIs(t, err, phh.ErrUnfinished)
}

func TestFormatAction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		seat   int
		action game.Action
		total  int
		want   string
		ok     bool
	}{
		{"fold", 0, game.ActionFold, 0, "p1 f", true},
		{"check", 1, game.ActionCheck, 0, "p2 cc", true},
		{"call", 3, game.ActionCall, 20, "p4 cc", true},
		{"bet", 1, game.ActionBet, 10, "p2 cbr 10", true},
		{"raise", 0, game.ActionRaise, 40, "p1 cbr 40", true},
		{"zero bet", 2, game.ActionBet, 0, "", false},
		{"ante", 0, game.ActionAnte, 10, "", false},
	}
	for _, tt := range tests {
		got, ok := phh.FormatAction(tt.seat, tt.action, tt.total)
		assert.Equal(t, tt.ok, ok, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	h, err := phh.FromState(playHand(t, false), "main", nil)
	require.NoError(t, err)
	h.SetTime(time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC))

	data, err := phh.EncodeToBytes(h)
	require.NoError(t, err)
	assert.Contains(t, string(data), `variant = "F7S"`)
	assert.Contains(t, string(data), `hand = "h1"`)

	got, err := phh.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, h.Actions, got.Actions)
	assert.Equal(t, h.Winnings, got.Winnings)
	assert.Equal(t, 2024, got.Year)
	assert.Equal(t, 3, got.Month)
	assert.Equal(t, 5, got.Day)
}

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()

	first, err := phh.FromState(playHand(t, false), "", nil)
	require.NoError(t, err)
	second, err := phh.FromState(playHand(t, true), "", nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, phh.WriteSession(&buf, []*phh.HandHistory{first, second}))
	assert.Contains(t, buf.String(), "[1]\n")
	assert.Contains(t, buf.String(), "[2]\n")

	hands, err := phh.DecodeSession(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, hands, 2)
	assert.Equal(t, first.Actions, hands[0].Actions)
	assert.Equal(t, second.Actions, hands[1].Actions)
}

func TestEncodeNil(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.Error(t, phh.Encode(&buf, nil))
}
