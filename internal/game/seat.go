package game

import "github.com/lox/sevenstud/poker"

// Card positions within a seat's hand.
const (
	firstExposed = 2 // cards 0 and 1 are dealt face down
	lastExposed  = 5 // card 6, seventh street, is face down again
)

// Seat is one player's part of a hand.
type Seat struct {
	ID          string       `json:"id"`
	Cards       []poker.Card `json:"cards"`
	Contributed int          `json:"contributed"`
	Folded      bool         `json:"folded"`
	Bot         bool         `json:"bot"`
	Profile     *Profile     `json:"profile,omitempty"`
	LastAction  Action       `json:"last_action"`
	LastAmount  int          `json:"last_amount"`
	Winner      bool         `json:"winner"`
	Payout      int          `json:"payout"`

	ShowdownScore   *poker.HandScore `json:"showdown_score,omitempty"`
	HandDescription string           `json:"hand_description,omitempty"`
}

// Exposed returns the seat's face-up cards.
func (s *Seat) Exposed() []poker.Card {
	if len(s.Cards) <= firstExposed {
		return nil
	}
	end := min(len(s.Cards), lastExposed+1)
	return s.Cards[firstExposed:end]
}

// Concealed reports whether the card at position i is dealt face down.
func Concealed(i int) bool {
	return i < firstExposed || i > lastExposed
}

func (s *Seat) record(a Action, amount int) {
	s.LastAction = a
	s.LastAmount = amount
}
