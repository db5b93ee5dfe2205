package game

import (
	"github.com/lox/sevenstud/poker"
)

// settleUncontested awards the whole pot to the one seat left.
func (e *Engine) settleUncontested(s *State) {
	winner := ""
	for _, id := range s.Order {
		if !s.Seats[id].Folded {
			winner = id
			break
		}
	}
	if winner == "" {
		e.logger.Warn("no contenders left, hand closed without payout", "hand", s.HandID, "pot", s.Pot)
		e.finish(s)
		return
	}

	s.SettledPot = s.Pot
	clear(s.Payouts)
	for _, id := range s.Order {
		seat := s.Seats[id]
		seat.Winner, seat.Payout = false, 0
		s.Payouts[id] = 0
		if id == winner {
			continue
		}
		if seat.Folded {
			seat.record(ActionFold, 0)
		} else {
			seat.record(ActionLose, 0)
		}
	}
	w := s.Seats[winner]
	w.Winner, w.Payout = true, s.Pot
	w.record(ActionWin, s.Pot)
	s.Payouts[winner] = s.Pot
	s.Winners = []string{winner}

	s.logEvent(EventUncontested, winner, ActionWin, s.Pot)
	e.logger.Debug("hand won uncontested", "hand", s.HandID, "winner", winner, "pot", s.Pot)
	s.Pot = 0
	e.finish(s)
}

// showdown scores every live seat's best five cards and splits the pot
// between the best. Odd units go one at a time to winners in seat order.
func (e *Engine) showdown(s *State) {
	var contenders []string
	for _, id := range s.Order {
		if !s.Seats[id].Folded {
			contenders = append(contenders, id)
		}
	}
	if len(contenders) == 0 {
		e.settleUncontested(s)
		return
	}

	var best poker.HandScore
	for i, id := range contenders {
		seat := s.Seats[id]
		score, _, err := poker.BestOfSeven(seat.Cards)
		if err != nil {
			e.logger.Warn("unscorable hand at showdown", "hand", s.HandID, "seat", id, "cards", len(seat.Cards), "err", err)
			score = poker.HandScore{}
		}
		seat.ShowdownScore = &score
		if desc, err := poker.Describe(seat.Cards); err == nil {
			seat.HandDescription = desc
		}
		if i == 0 || score.Compare(best) > 0 {
			best = score
		}
	}

	var winners []string
	for _, id := range contenders {
		if s.Seats[id].ShowdownScore.Equal(best) {
			winners = append(winners, id)
		}
	}

	pot := s.Pot
	s.SettledPot = pot
	share, remainder := pot/len(winners), pot%len(winners)
	clear(s.Payouts)
	for _, id := range s.Order {
		seat := s.Seats[id]
		seat.Winner, seat.Payout = false, 0
		s.Payouts[id] = 0
		if !seat.Folded {
			seat.record(ActionLose, 0)
		}
	}
	for _, id := range winners {
		payout := share
		if remainder > 0 {
			payout++
			remainder--
		}
		seat := s.Seats[id]
		seat.Winner, seat.Payout = true, payout
		seat.record(ActionWin, payout)
		s.Payouts[id] = payout
	}
	s.Winners = winners

	s.Stage = Showdown
	s.ShowedDown = true
	s.logEvent(EventShowdown, "", ActionNone, pot)
	e.logger.Debug("showdown", "hand", s.HandID, "winners", winners, "best", best.Category, "pot", pot)
	s.Pot = 0
	e.finish(s)
}

func (e *Engine) finish(s *State) {
	s.InProgress = false
	s.Turn = ""
	s.Pending = nil
	s.Stage = Showdown
}
