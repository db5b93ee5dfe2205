package poker

import (
	"fmt"

	ph "github.com/paulhankin/poker"
)

// toReference converts a card to the paulhankin/poker representation, which
// numbers ranks 1..13 with the ace as 1.
func toReference(c Card) (ph.Card, error) {
	var s ph.Suit
	switch c.Suit {
	case Clubs:
		s = ph.Club
	case Diamonds:
		s = ph.Diamond
	case Hearts:
		s = ph.Heart
	case Spades:
		s = ph.Spade
	default:
		var zero ph.Card
		return zero, fmt.Errorf("%w: invalid suit %d", ErrInvalidInput, c.Suit)
	}
	r := ph.Rank(c.Rank)
	if c.Rank == Ace {
		r = 1
	}
	return ph.MakeCard(s, r)
}

func toReferenceSlice(cards []Card) ([]ph.Card, error) {
	out := make([]ph.Card, len(cards))
	for i, c := range cards {
		rc, err := toReference(c)
		if err != nil {
			return nil, err
		}
		out[i] = rc
	}
	return out, nil
}

// Describe returns a human-readable description of the best poker hand in
// cards, e.g. "full house, kings over fours". It accepts 3, 5 or 7 cards.
func Describe(cards []Card) (string, error) {
	rc, err := toReferenceSlice(cards)
	if err != nil {
		return "", err
	}
	desc, err := ph.Describe(rc)
	if err != nil {
		return "", fmt.Errorf("describe %s: %w", FormatCards(cards), err)
	}
	return desc, nil
}

// ReferenceScore7 scores seven cards with the paulhankin/poker lookup
// evaluator. Larger scores are stronger. Suits never break ties there, so
// it is only useful as a cross-check of the rank structure.
func ReferenceScore7(cards []Card) (int16, error) {
	if len(cards) != 7 {
		return 0, fmt.Errorf("%w: need exactly 7 cards, got %d", ErrInvalidInput, len(cards))
	}
	rc, err := toReferenceSlice(cards)
	if err != nil {
		return 0, err
	}
	var hand [7]ph.Card
	copy(hand[:], rc)
	return ph.Eval7(&hand), nil
}
