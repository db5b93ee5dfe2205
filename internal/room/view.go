package room

import (
	"time"

	"github.com/lox/sevenstud/internal/game"
	"github.com/lox/sevenstud/poker"
)

// CardView is one card as a particular viewer sees it.
type CardView struct {
	Card   *poker.Card `json:"card,omitempty"`
	Hidden bool        `json:"hidden"`
}

// PlayerView is a seat with its hole cards masked for the viewer.
type PlayerView struct {
	ID           string      `json:"id"`
	Cards        []CardView  `json:"cards"`
	Contributed  int         `json:"contributed"`
	StreetBet    int         `json:"street_bet"`
	ToCall       int         `json:"to_call"`
	Folded       bool        `json:"folded"`
	Bot          bool        `json:"bot"`
	Profile      string      `json:"profile,omitempty"`
	LastAction   game.Action `json:"last_action"`
	LastAmount   int         `json:"last_amount"`
	Winner       bool        `json:"winner"`
	Payout       int         `json:"payout"`
	Hand         string      `json:"hand,omitempty"`
	BalanceDelta int         `json:"balance_delta,omitempty"`
}

// View is a snapshot of a room from one seat's point of view.
type View struct {
	RoomID     string      `json:"room_id"`
	HandID     string      `json:"hand_id"`
	Viewer     string      `json:"viewer"`
	Stage      game.Street `json:"stage"`
	InProgress bool        `json:"in_progress"`
	Turn       string      `json:"turn,omitempty"`

	Ante       int      `json:"ante"`
	Pot        int      `json:"pot"`
	CurrentBet int      `json:"current_bet"`
	BetUnit    int      `json:"bet_unit"`
	Raises     int      `json:"raises"`
	Pending    []string `json:"pending"`

	Players []PlayerView   `json:"players"`
	Winners []string       `json:"winners"`
	Payouts map[string]int `json:"payouts"`
	Settled int            `json:"settled_pot"`
	Log     []game.Event   `json:"log"`

	LegalActions []game.Action `json:"legal_actions"`
	ToCall       int           `json:"to_call"`
	Balance      int           `json:"balance"`
	BalanceDelta int           `json:"balance_delta"`

	Seq       int       `json:"seq"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot returns roomID as viewer sees it. Other seats' face-down cards
// are hidden until a showdown turns them over.
func (m *Manager) Snapshot(roomID, viewer string) (*View, error) {
	r, err := m.lookup(roomID)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.state
	v := &View{
		RoomID:       r.id,
		HandID:       s.HandID,
		Viewer:       viewer,
		Stage:        s.Stage,
		InProgress:   s.InProgress,
		Turn:         s.Turn,
		Ante:         s.Ante,
		Pot:          s.Pot,
		CurrentBet:   s.CurrentBet,
		BetUnit:      s.BetUnit(),
		Raises:       s.RaisesThisStreet,
		Pending:      s.PendingOrder(),
		Winners:      s.WinnersList(),
		Payouts:      s.PayoutsMap(),
		Settled:      s.SettledPot,
		Log:          s.EventsSince(0),
		LegalActions: s.LegalActions(viewer),
		ToCall:       s.ToCall(viewer),
		Balance:      m.wallet.Balance(viewer),
		BalanceDelta: r.deltas[viewer],
		Seq:          r.seq,
		UpdatedAt:    r.updatedAt,
	}

	revealed := !s.InProgress && s.ShowedDown
	for _, id := range s.Order {
		seat := s.Seats[id]
		if seat == nil {
			continue
		}
		open := id == viewer || (revealed && !seat.Folded)
		pv := PlayerView{
			ID:           id,
			Cards:        maskCards(seat.Cards, open),
			Contributed:  seat.Contributed,
			StreetBet:    s.StreetContribution[id],
			ToCall:       s.ToCall(id),
			Folded:       seat.Folded,
			Bot:          seat.Bot,
			LastAction:   seat.LastAction,
			LastAmount:   seat.LastAmount,
			Winner:       seat.Winner,
			Payout:       seat.Payout,
			BalanceDelta: r.deltas[id],
		}
		if seat.Profile != nil {
			pv.Profile = seat.Profile.Name
		}
		if open {
			pv.Hand = seat.HandDescription
		}
		v.Players = append(v.Players, pv)
	}
	return v, nil
}

func maskCards(cards []poker.Card, open bool) []CardView {
	out := make([]CardView, len(cards))
	for i := range cards {
		if !open && game.Concealed(i) {
			out[i] = CardView{Hidden: true}
			continue
		}
		c := cards[i]
		out[i] = CardView{Card: &c}
	}
	return out
}
