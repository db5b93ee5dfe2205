package game

import (
	"github.com/lox/sevenstud/poker"
)

// Decision is one action chosen for a bot seat.
type Decision struct {
	Action Action
	Amount int
}

// ordinal is the rank's position in a deck laid out ace first: ace 0, two 1,
// up to king 12. A-2-3-4-5 is therefore a plain run and T-J-Q-K-A is not.
func ordinal(r poker.Rank) int {
	if r == poker.Ace {
		return 0
	}
	return int(r) - 1
}

// Strength is a rough 0..1 measure of how good cards look: the highest rank,
// any pairs, trips or quads, and made flushes or straights. Bots judge their
// hand by its exposed cards only.
func Strength(cards []poker.Card) float64 {
	if len(cards) == 0 {
		return 0
	}
	var rankCounts [13]int
	var suitCounts [4]int
	highest := 0
	for _, c := range cards {
		o := ordinal(c.Rank)
		rankCounts[o]++
		suitCounts[c.Suit]++
		highest = max(highest, o)
	}

	pairs, trips, quads := 0, 0, 0
	for _, n := range rankCounts {
		switch n {
		case 2:
			pairs++
		case 3:
			trips++
		case 4:
			quads++
		}
	}

	strength := float64(highest) / 12.0 * 0.3
	strength += float64(pairs) * 0.2
	strength += float64(trips) * 0.35
	strength += float64(quads) * 0.6
	if pairs >= 2 {
		strength += 0.15
	}
	for _, n := range suitCounts {
		if n >= 5 {
			strength += 0.4
			break
		}
	}
	if longestRun(rankCounts) >= 5 {
		strength += 0.35
	}
	return min(1.0, max(0.0, strength))
}

// HasDrawPotential reports whether exposed cards show three or more of a
// suit or three or more consecutive ranks.
func HasDrawPotential(cards []poker.Card) bool {
	var rankCounts [13]int
	var suitCounts [4]int
	for _, c := range cards {
		rankCounts[ordinal(c.Rank)]++
		suitCounts[c.Suit]++
	}
	for _, n := range suitCounts {
		if n >= 3 {
			return true
		}
	}
	return longestRun(rankCounts) >= 3
}

func longestRun(rankCounts [13]int) int {
	best, run := 0, 0
	for _, n := range rankCounts {
		if n > 0 {
			run++
			best = max(best, run)
		} else {
			run = 0
		}
	}
	return best
}

// decide picks a bot's action from its exposed strength and profile.
func (e *Engine) decide(s *State, seat *Seat) Decision {
	p := seat.Profile
	if p == nil {
		p = &Balanced
	}
	exposed := seat.Exposed()
	strength := Strength(exposed)
	weight := p.StreetWeight(s.Stage)

	if s.ToCall(seat.ID) > 0 {
		threshold := 0.25 + p.CallTightness*0.5
		adjusted := strength + e.rng.Float64()*0.2 - p.CallTightness*0.2
		if adjusted < threshold && e.rng.Float64() < p.CallTightness+0.15 {
			return Decision{Action: ActionFold}
		}
		if s.RaisesThisStreet < MaxRaises && e.rng.Float64() < strength*p.RaiseAggression*weight {
			return Decision{Action: ActionRaise, Amount: s.BetUnit()}
		}
		return Decision{Action: ActionCall}
	}

	semi := 0.0
	if HasDrawPotential(exposed) {
		semi = p.SemiBluff
	}
	betProb := min(0.95, strength*p.BetAggression*weight+p.Bluff+semi)
	if e.rng.Float64() < betProb {
		return Decision{Action: ActionBet, Amount: s.BetUnit()}
	}
	return Decision{Action: ActionCheck}
}
