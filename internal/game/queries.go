package game

import (
	"maps"
	"slices"

	"github.com/lox/sevenstud/poker"
)

// ToCall returns what seatID must add to match the standing bet.
func (s *State) ToCall(seatID string) int {
	if s.CurrentBet == 0 {
		return 0
	}
	return max(0, s.CurrentBet-s.StreetContribution[seatID])
}

// BetUnit is the fixed bet and raise size on the current street.
func (s *State) BetUnit() int {
	st := min(s.Stage, SeventhStreet)
	return max(MinAnte, s.Ante) * st.Multiplier()
}

// PendingOrder returns the seats still to act on this street, in turn order.
func (s *State) PendingOrder() []string {
	return slices.Clone(s.Pending)
}

// WinnersList returns the seats that won the last settled hand.
func (s *State) WinnersList() []string {
	return slices.Clone(s.Winners)
}

// PayoutsMap returns what each seat was paid when the hand settled.
func (s *State) PayoutsMap() map[string]int {
	return maps.Clone(s.Payouts)
}

// ActiveCount returns the number of seats that have not folded.
func (s *State) ActiveCount() int {
	n := 0
	for _, seat := range s.Seats {
		if !seat.Folded {
			n++
		}
	}
	return n
}

// ExposedCards returns seatID's face-up cards, or nil for an unknown seat.
func (s *State) ExposedCards(seatID string) []poker.Card {
	seat, ok := s.Seats[seatID]
	if !ok {
		return nil
	}
	return slices.Clone(seat.Exposed())
}

// Seat returns the seat with the given id.
func (s *State) Seat(id string) (*Seat, bool) {
	seat, ok := s.Seats[id]
	return seat, ok
}

// IsPending reports whether seatID still has to act on this street.
func (s *State) IsPending(seatID string) bool {
	return s.isPending(seatID)
}

// LegalActions returns what seatID may do right now; empty when it is not
// the seat's turn.
func (s *State) LegalActions(seatID string) []Action {
	if !s.InProgress || s.Turn != seatID || !s.isPending(seatID) {
		return nil
	}
	if s.ToCall(seatID) > 0 {
		actions := []Action{ActionFold, ActionCall}
		if s.RaisesThisStreet < MaxRaises {
			actions = append(actions, ActionRaise)
		}
		return actions
	}
	return []Action{ActionFold, ActionCheck, ActionBet}
}

// Clone returns a deep copy of s that shares no mutable data with it. The
// copy has no deck and cannot be played further.
func (s *State) Clone() *State {
	c := *s
	c.deck = nil
	c.Order = slices.Clone(s.Order)
	c.Pending = slices.Clone(s.Pending)
	c.Winners = slices.Clone(s.Winners)
	c.Log = slices.Clone(s.Log)
	c.StreetContribution = maps.Clone(s.StreetContribution)
	c.Payouts = maps.Clone(s.Payouts)
	c.Seats = make(map[string]*Seat, len(s.Seats))
	for id, seat := range s.Seats {
		cp := *seat
		cp.Cards = slices.Clone(seat.Cards)
		if seat.Profile != nil {
			p := *seat.Profile
			cp.Profile = &p
		}
		if seat.ShowdownScore != nil {
			sc := *seat.ShowdownScore
			sc.TieBreakers = slices.Clone(sc.TieBreakers)
			cp.ShowdownScore = &sc
		}
		c.Seats[id] = &cp
	}
	return &c
}
