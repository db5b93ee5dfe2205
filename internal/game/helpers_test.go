package game

import (
	rand "math/rand/v2"
	"testing"

	"github.com/lox/sevenstud/internal/randutil"
	"github.com/lox/sevenstud/poker"
	"github.com/stretchr/testify/require"
)

// headsUpDeal deals alice As Ad / Kh and bob 2c 3d / 7s, then fourth to
// seventh street. Alice leads third, fourth, sixth and seventh; bob's 7-8-9
// leads fifth. Alice wins the showdown with aces and kings.
const headsUpDeal = "As Ad 2c 3d Kh 7s Kc 8d Qs 9h Jd 4c 5h 6s"

// newStackedEngine returns an engine whose every hand deals cards in order.
func newStackedEngine(t *testing.T, cards string, opts ...Option) *Engine {
	t.Helper()
	stack := poker.MustParseCards(cards)
	base := []Option{
		WithRNG(randutil.New(1)),
		WithHandIDs(func() string { return "hand-1" }),
		WithDeckFactory(func(rng *rand.Rand) poker.Drawer {
			return poker.NewStackedDeck(stack...).Then(poker.NewDeck(rng))
		}),
	}
	return NewEngine(append(base, opts...)...)
}

// checkStreet checks around until the street changes or the hand ends.
func checkStreet(t *testing.T, e *Engine, s *State) {
	t.Helper()
	stage := s.Stage
	for s.InProgress && s.Stage == stage {
		require.NoError(t, e.Check(s, s.Turn))
	}
}

func totalContributed(s *State) int {
	total := 0
	for _, seat := range s.Seats {
		total += seat.Contributed
	}
	return total
}

func totalPayouts(s *State) int {
	total := 0
	for _, p := range s.Payouts {
		total += p
	}
	return total
}

// playOut drives an all-bot hand to the end.
func playOut(t *testing.T, e *Engine, s *State) {
	t.Helper()
	for i := 0; s.InProgress; i++ {
		require.Less(t, i, 1000, "hand did not finish")
		require.Positive(t, e.AutoPlay(s), "bots stalled with turn %q", s.Turn)
	}
}

func lastActionEvent(t *testing.T, s *State) Event {
	t.Helper()
	for i := len(s.Log) - 1; i >= 0; i-- {
		if s.Log[i].Kind == EventAction {
			return s.Log[i]
		}
	}
	t.Fatal("no action events")
	return Event{}
}
