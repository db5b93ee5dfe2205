package poker

import (
	rand "math/rand/v2"
)

// Drawer produces cards on demand. The game engine only ever calls Draw; how
// the source tracks or replenishes its cards is its own business.
type Drawer interface {
	Draw() Card
}

// Deck is a shoe of one or more standard 52-card decks that reshuffles itself
// when it runs out.
type Deck struct {
	cards []Card
	next  int
	decks int
	rng   *rand.Rand
}

// NewDeck creates a shuffled single 52-card deck using rng.
func NewDeck(rng *rand.Rand) *Deck {
	return NewShoe(rng, 1)
}

// NewShoe creates a shuffled shoe of the given number of decks using rng.
func NewShoe(rng *rand.Rand, decks int) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	if decks < 1 {
		decks = 1
	}

	d := &Deck{
		cards: make([]Card, 0, 52*decks),
		decks: decks,
		rng:   rng,
	}
	for range decks {
		for suit := Clubs; suit <= Spades; suit++ {
			for rank := Two; rank <= Ace; rank++ {
				d.cards = append(d.cards, NewCard(rank, suit))
			}
		}
	}
	d.Shuffle()
	return d
}

// Shuffle reorders every card in the shoe and resets the draw position.
func (d *Deck) Shuffle() {
	d.next = 0
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw deals the next card, reshuffling the full shoe first if it is empty.
func (d *Deck) Draw() Card {
	if d.next >= len(d.cards) {
		d.Shuffle()
	}
	c := d.cards[d.next]
	d.next++
	return c
}

// Remaining returns the number of cards left before the next reshuffle.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

// StackedDeck deals a fixed sequence of cards, then falls back to another
// Drawer. It makes deals reproducible in tests and replays.
type StackedDeck struct {
	cards    []Card
	next     int
	fallback Drawer
}

// NewStackedDeck returns a deck that deals cards in the given order.
func NewStackedDeck(cards ...Card) *StackedDeck {
	return &StackedDeck{cards: append([]Card(nil), cards...)}
}

// Then sets the Drawer used once the stacked cards are exhausted.
func (s *StackedDeck) Then(fallback Drawer) *StackedDeck {
	s.fallback = fallback
	return s
}

// Draw deals the next stacked card. It panics when the stack is exhausted and
// no fallback was configured.
func (s *StackedDeck) Draw() Card {
	if s.next < len(s.cards) {
		c := s.cards[s.next]
		s.next++
		return c
	}
	if s.fallback == nil {
		panic("stacked deck exhausted")
	}
	return s.fallback.Draw()
}

// Remaining returns the number of stacked cards not yet dealt.
func (s *StackedDeck) Remaining() int {
	return len(s.cards) - s.next
}
