package game

import (
	"slices"

	"github.com/lox/sevenstud/poker"
)

// Lead categories for an exposed showing, strongest first. Flush-like and
// straight-like showings need at least three up cards.
const (
	leadStraightFlush = 8
	leadQuads         = 7
	leadFullHouse     = 6
	leadFlush         = 5
	leadStraight      = 4
	leadTrips         = 3
	leadTwoPair       = 2
	leadPair          = 1
	leadNothing       = 0
)

// LeadScore ranks a seat's exposed cards to decide who acts first.
type LeadScore struct {
	Category int
	Keys     []int
}

// Compare orders lead scores by category, then key by key.
func (l LeadScore) Compare(other LeadScore) int {
	if l.Category != other.Category {
		if l.Category > other.Category {
			return 1
		}
		return -1
	}
	for i := range min(len(l.Keys), len(other.Keys)) {
		if l.Keys[i] != other.Keys[i] {
			if l.Keys[i] > other.Keys[i] {
				return 1
			}
			return -1
		}
	}
	switch {
	case len(l.Keys) > len(other.Keys):
		return 1
	case len(l.Keys) < len(other.Keys):
		return -1
	}
	return 0
}

// leadRank is the rank value used on exposed cards: the ace counts low, as
// 2, and the king is highest at 14.
func leadRank(r poker.Rank) int {
	if r == poker.Ace {
		return 2
	}
	return int(r) + 1
}

func leadKey(c poker.Card) int {
	return leadRank(c.Rank)*10 + int(c.Suit)
}

// ScoreLead scores exposed cards. It returns ok=false for an empty showing.
func ScoreLead(exposed []poker.Card) (LeadScore, bool) {
	if len(exposed) == 0 {
		return LeadScore{}, false
	}

	rankCounts := make(map[int]int, len(exposed))
	suitCounts := make(map[poker.Suit]int, 4)
	keys := make([]int, 0, len(exposed))
	for _, c := range exposed {
		rankCounts[leadRank(c.Rank)]++
		suitCounts[c.Suit]++
		keys = append(keys, leadKey(c))
	}
	slices.SortFunc(keys, func(a, b int) int { return b - a })

	maxCount, pairs, trips := 0, 0, 0
	for _, n := range rankCounts {
		maxCount = max(maxCount, n)
		switch n {
		case 2:
			pairs++
		case 3:
			trips++
		}
	}
	enough := len(exposed) >= 3
	flush := enough && len(suitCounts) == 1
	straight := enough && hasRun(rankCounts, 3)

	category := leadNothing
	switch {
	case straight && flush:
		category = leadStraightFlush
	case maxCount >= 4:
		category = leadQuads
	case trips >= 1 && pairs >= 1:
		category = leadFullHouse
	case flush:
		category = leadFlush
	case straight:
		category = leadStraight
	case trips >= 1:
		category = leadTrips
	case pairs >= 2:
		category = leadTwoPair
	case pairs == 1:
		category = leadPair
	}
	return LeadScore{Category: category, Keys: keys}, true
}

// hasRun reports whether the distinct ranks contain n consecutive values.
func hasRun(rankCounts map[int]int, n int) bool {
	for r := range rankCounts {
		run := 1
		for rankCounts[r+run] > 0 {
			run++
		}
		if run >= n {
			return true
		}
	}
	return false
}

// findLead returns the index in s.Order of the live seat with the best
// exposed showing, or -1. The earliest seat wins an exact tie.
func findLead(s *State) int {
	best := LeadScore{}
	bestIdx := -1
	for i, id := range s.Order {
		seat := s.Seats[id]
		if seat.Folded {
			continue
		}
		score, ok := ScoreLead(seat.Exposed())
		if !ok {
			continue
		}
		if bestIdx < 0 || score.Compare(best) > 0 {
			best, bestIdx = score, i
		}
	}
	return bestIdx
}
