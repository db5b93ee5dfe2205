package game

import (
	"slices"

	"github.com/lox/sevenstud/poker"
)

// MaxRaises caps the number of increases of the standing bet on a street,
// counting the opening bet.
const MaxRaises = 3

// MinAnte is the smallest ante, and the base bet unit, a table can use.
const MinAnte = 10

// State is the complete record of one hand. It is plain data: every field
// except the deck serializes to JSON, and nothing points back up the tree.
type State struct {
	HandID string           `json:"hand_id"`
	Seats  map[string]*Seat `json:"seats"`
	Order  []string         `json:"order"`

	Pot                int            `json:"pot"`
	Ante               int            `json:"ante"`
	CurrentBet         int            `json:"current_bet"`
	RaisesThisStreet   int            `json:"raises_this_street"`
	StreetContribution map[string]int `json:"street_contribution"`
	Pending            []string       `json:"pending"`
	Turn               string         `json:"turn,omitempty"`
	Stage              Street         `json:"stage"`
	InProgress         bool           `json:"in_progress"`

	Winners    []string       `json:"winners"`
	Payouts    map[string]int `json:"payouts"`
	SettledPot int            `json:"settled_pot"`
	// ShowedDown is set when the hand was decided by comparing hands rather
	// than by everyone else folding.
	ShowedDown bool `json:"showed_down"`

	LastActor  string `json:"last_actor,omitempty"`
	LastAction Action `json:"last_action"`
	LastAmount int    `json:"last_amount"`

	Log []Event `json:"log"`

	deck poker.Drawer
}

// NewState returns an empty state ready for Start.
func NewState() *State {
	return &State{
		Seats:              make(map[string]*Seat),
		StreetContribution: make(map[string]int),
		Payouts:            make(map[string]int),
	}
}

func (s *State) reset() {
	*s = State{
		Seats:              make(map[string]*Seat),
		StreetContribution: make(map[string]int),
		Payouts:            make(map[string]int),
	}
}

func (s *State) isPending(id string) bool {
	return slices.Contains(s.Pending, id)
}

func (s *State) removePending(id string) {
	s.Pending = slices.DeleteFunc(s.Pending, func(p string) bool { return p == id })
}

// activeFrom returns the non-folded seats in table order starting at index
// start, wrapping around.
func (s *State) activeFrom(start int) []string {
	n := len(s.Order)
	out := make([]string, 0, n)
	for offset := range n {
		id := s.Order[(start+offset)%n]
		if seat := s.Seats[id]; seat != nil && !seat.Folded {
			out = append(out, id)
		}
	}
	return out
}

func (s *State) contribute(id string, amount int) {
	if amount <= 0 {
		return
	}
	s.Pot += amount
	s.Seats[id].Contributed += amount
}
