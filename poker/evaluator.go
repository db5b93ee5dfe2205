package poker

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidInput is returned when the evaluator is handed the wrong number
// of cards.
var ErrInvalidInput = errors.New("invalid input")

// Category is the class of a five-card poker hand, ordered weakest first.
type Category uint8

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a human-readable category name
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return fmt.Sprintf("Category(%d)", uint8(c))
	}
}

// Name returns the upper snake case identifier, e.g. "FULL_HOUSE".
func (c Category) Name() string {
	names := [...]string{
		"HIGH_CARD", "ONE_PAIR", "TWO_PAIR", "THREE_OF_A_KIND", "STRAIGHT",
		"FLUSH", "FULL_HOUSE", "FOUR_OF_A_KIND", "STRAIGHT_FLUSH",
	}
	if int(c) < len(names) {
		return names[c]
	}
	return c.String()
}

// HandScore is the comparable strength of a five-card hand. The category
// dominates; within a category the tie-breakers are compared element-wise.
// Every category produces tie-breakers of a fixed length. Pairs, trips and
// quads carry only the highest suit among their cards and straights only the
// suit of the top card, while flush and high-card kickers carry every card's
// suit. Hands can therefore tie despite different suits, e.g. 9s9c and 9s9d.
type HandScore struct {
	Category    Category `json:"category"`
	TieBreakers []int    `json:"tie_breakers"`
}

// Compare returns 1 if h beats other, -1 if other beats h and 0 otherwise.
func (h HandScore) Compare(other HandScore) int {
	if h.Category != other.Category {
		if h.Category > other.Category {
			return 1
		}
		return -1
	}
	n := min(len(h.TieBreakers), len(other.TieBreakers))
	for i := range n {
		if h.TieBreakers[i] != other.TieBreakers[i] {
			if h.TieBreakers[i] > other.TieBreakers[i] {
				return 1
			}
			return -1
		}
	}
	switch {
	case len(h.TieBreakers) > len(other.TieBreakers):
		return 1
	case len(h.TieBreakers) < len(other.TieBreakers):
		return -1
	}
	return 0
}

// Less reports whether h is strictly weaker than other.
func (h HandScore) Less(other HandScore) bool {
	return h.Compare(other) < 0
}

// Equal reports whether h and other compare equal.
func (h HandScore) Equal(other HandScore) bool {
	return h.Compare(other) == 0
}

// String returns the category name
func (h HandScore) String() string {
	return h.Category.String()
}

// Compare orders two hand scores; see HandScore.Compare.
func Compare(a, b HandScore) int {
	return a.Compare(b)
}

// Evaluate scores exactly five cards.
func Evaluate(cards []Card) (HandScore, error) {
	if len(cards) != 5 {
		return HandScore{}, fmt.Errorf("%w: need exactly 5 cards, got %d", ErrInvalidInput, len(cards))
	}

	var rankCounts [15]int
	var suitCounts [4]int
	for _, c := range cards {
		if !c.Valid() {
			return HandScore{}, fmt.Errorf("%w: invalid card %v", ErrInvalidInput, c)
		}
		rankCounts[c.Rank]++
		suitCounts[c.Suit]++
	}

	flush := slices.Contains(suitCounts[:], 5)
	high := straightHigh(rankCounts)
	straight := high > 0

	// Ranks grouped by multiplicity, each group highest rank first.
	var groups [5][]int
	for rv := int(Ace); rv >= int(Two); rv-- {
		if n := rankCounts[rv]; n > 0 {
			groups[n] = append(groups[n], rv)
		}
	}
	quads, trips, pairs := groups[4], groups[3], groups[2]

	switch {
	case flush && straight:
		return HandScore{StraightFlush, []int{high, straightSuit(cards, high)}}, nil

	case len(quads) > 0:
		quad := quads[0]
		kicker := 0
		if len(groups[1]) > 0 {
			kicker = groups[1][0]
		}
		return HandScore{FourOfAKind, []int{quad, maxSuit(cards, quad), kicker, maxSuit(cards, kicker)}}, nil

	case len(trips) > 0 && len(pairs) > 0:
		trip, pair := trips[0], pairs[0]
		return HandScore{FullHouse, []int{trip, maxSuit(cards, trip), pair, maxSuit(cards, pair)}}, nil

	case flush:
		return HandScore{Flush, kickerKeys(cards, nil, 5)}, nil

	case straight:
		return HandScore{Straight, []int{high, straightSuit(cards, high)}}, nil

	case len(trips) > 0:
		trip := trips[0]
		k := kickerKeys(cards, []int{trip}, 2)
		return HandScore{ThreeOfAKind, []int{trip, maxSuit(cards, trip), k[0], k[1]}}, nil

	case len(pairs) >= 2:
		hi, lo := pairs[0], pairs[1]
		k := kickerKeys(cards, []int{hi, lo}, 1)
		return HandScore{TwoPair, []int{hi, maxSuit(cards, hi), lo, maxSuit(cards, lo), k[0]}}, nil

	case len(pairs) == 1:
		pair := pairs[0]
		k := kickerKeys(cards, []int{pair}, 3)
		return HandScore{OnePair, []int{pair, maxSuit(cards, pair), k[0], k[1], k[2]}}, nil
	}

	return HandScore{HighCard, kickerKeys(cards, nil, 5)}, nil
}

// MustEvaluate is Evaluate for callers that guarantee five valid cards.
func MustEvaluate(cards []Card) HandScore {
	score, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}
	return score
}

// BestOfSeven returns the best score over every five-card subset of cards,
// together with the five cards that produce it. It accepts five to seven
// cards; seven is the showdown case with 21 subsets.
func BestOfSeven(cards []Card) (HandScore, []Card, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return HandScore{}, nil, fmt.Errorf("%w: need 5 to 7 cards, got %d", ErrInvalidInput, len(cards))
	}

	var (
		best     HandScore
		bestFive []Card
		found    bool
		five     = make([]Card, 5)
	)
	for idx := range Combinations(len(cards), 5) {
		for i, j := range idx {
			five[i] = cards[j]
		}
		score, err := Evaluate(five)
		if err != nil {
			return HandScore{}, nil, err
		}
		if !found || score.Compare(best) > 0 {
			best = score
			bestFive = slices.Clone(five)
			found = true
		}
	}
	return best, bestFive, nil
}

// straightHigh returns the top rank of the highest five-rank run, 5 for the
// A-2-3-4-5 wheel, or 0 when there is no straight.
func straightHigh(rankCounts [15]int) int {
	for high := int(Ace); high >= int(Six); high-- {
		run := true
		for d := range 5 {
			if rankCounts[high-d] == 0 {
				run = false
				break
			}
		}
		if run {
			return high
		}
	}
	if rankCounts[Ace] > 0 && rankCounts[Five] > 0 && rankCounts[Four] > 0 &&
		rankCounts[Three] > 0 && rankCounts[Two] > 0 {
		return int(Five)
	}
	return 0
}

// maxSuit returns the highest suit among cards of the given rank.
func maxSuit(cards []Card, rank int) int {
	best := 0
	for _, c := range cards {
		if int(c.Rank) == rank && int(c.Suit) > best {
			best = int(c.Suit)
		}
	}
	return best
}

// straightSuit is maxSuit for the top card of a straight. In the wheel the
// ace plays as the five's partner, so its suit counts as well.
func straightSuit(cards []Card, high int) int {
	best := 0
	for _, c := range cards {
		rv := int(c.Rank)
		if rv == high || (high == int(Five) && c.Rank == Ace) {
			best = max(best, int(c.Suit))
		}
	}
	return best
}

// kickerKeys returns the n highest composite keys among cards whose rank is
// not excluded, highest first. Missing kickers are reported as zero.
func kickerKeys(cards []Card, exclude []int, n int) []int {
	keys := make([]int, 0, len(cards))
	for _, c := range cards {
		if slices.Contains(exclude, int(c.Rank)) {
			continue
		}
		keys = append(keys, c.Key())
	}
	slices.SortFunc(keys, func(a, b int) int { return b - a })
	out := make([]int, n)
	copy(out, keys)
	return out
}
