package display

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/sevenstud/internal/game"
	"github.com/lox/sevenstud/internal/room"
	"github.com/lox/sevenstud/poker"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asciiRenderer() *Renderer {
	lg := lipgloss.NewRenderer(io.Discard)
	lg.SetColorProfile(termenv.Ascii)
	return NewWithRenderer(lg)
}

func card(s string) *poker.Card {
	c := poker.MustParseCards(s)[0]
	return &c
}

func sampleView() *room.View {
	return &room.View{
		RoomID:       "r1",
		Viewer:       "bob",
		Stage:        game.FourthStreet,
		InProgress:   true,
		Turn:         "bob",
		Ante:         10,
		Pot:          40,
		CurrentBet:   10,
		BetUnit:      10,
		Raises:       1,
		LegalActions: []game.Action{game.ActionFold, game.ActionCall, game.ActionRaise},
		ToCall:       10,
		Balance:      980,
		BalanceDelta: -10,
		Players: []room.PlayerView{
			{
				ID:          "alice",
				Cards:       []room.CardView{{Hidden: true}, {Hidden: true}, {Card: card("Kh")}, {Card: card("Kc")}},
				Contributed: 20,
				LastAction:  game.ActionBet,
				LastAmount:  10,
			},
			{
				ID:          "bob",
				Cards:       []room.CardView{{Card: card("2c")}, {Card: card("3d")}, {Card: card("7s")}, {Card: card("Td")}},
				Contributed: 10,
				LastAction:  game.ActionWaiting,
			},
		},
	}
}

func TestCardsPlainUnderASCII(t *testing.T) {
	t.Parallel()

	r := asciiRenderer()
	assert.Equal(t, "A♠", r.Card(*card("As")))
	assert.Equal(t, "[10♦ K♥]", r.Cards(poker.MustParseCards("Td Kh")))
	assert.Equal(t, "[## ## K♥]", r.CardViews([]room.CardView{{Hidden: true}, {Hidden: true}, {Card: card("Kh")}}))
}

func TestTable(t *testing.T) {
	t.Parallel()

	out := asciiRenderer().Table(sampleView())
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 6)

	assert.Contains(t, lines[0], "r1  fourth  pot 40")
	assert.Contains(t, lines[1], "raises 1/3")
	assert.Contains(t, out, "  alice      [## ## K♥ K♣]  in 20  bet")
	assert.Contains(t, out, "> bob        [2♣ 3♦ 7♠ 10♦]  in 10  waiting")
	assert.Contains(t, out, "balance 980 (-10)")
	assert.Contains(t, out, "Actions: [fold] [call 10] [raise]")
	assert.NotContains(t, out, "\x1b[", "ascii profile must not emit escapes")
}

func TestTableFinished(t *testing.T) {
	t.Parallel()

	v := sampleView()
	v.InProgress = false
	v.Stage = game.Showdown
	v.Winners = []string{"alice"}
	v.Settled = 40
	v.LegalActions = nil
	v.Players[0].Winner = true
	v.Players[0].Hand = "Pair of Kings"

	out := asciiRenderer().Table(v)
	assert.Contains(t, out, "r1  finished  pot 40")
	assert.Contains(t, out, "Winner: alice (40)")
	assert.Contains(t, out, "Pair of Kings")
	assert.NotContains(t, out, "Actions:")
	assert.NotContains(t, out, "> bob")
}

func TestEvent(t *testing.T) {
	t.Parallel()

	r := asciiRenderer()
	tests := []struct {
		event game.Event
		want  string
	}{
		{game.Event{Kind: game.EventAnte, Seat: "alice", Amount: 10}, "alice antes 10"},
		{game.Event{Kind: game.EventStreet, Street: game.FifthStreet}, "*** fifth street ***"},
		{game.Event{Kind: game.EventAction, Seat: "bob", Action: game.ActionRaise, Amount: 20}, "bob raise 20"},
		{game.Event{Kind: game.EventAction, Seat: "bob", Action: game.ActionCheck}, "bob check"},
		{game.Event{Kind: game.EventUncontested, Seat: "alice", Amount: 30}, "alice wins 30"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Event(tt.event))
	}
}

func TestNewDetectsProfile(t *testing.T) {
	t.Parallel()

	// A non-terminal writer gets no color.
	r := New(io.Discard)
	assert.Equal(t, "A♠", r.Card(*card("As")))
}
