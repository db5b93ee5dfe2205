package room

import (
	"fmt"

	"github.com/lox/sevenstud/internal/phh"
)

// History returns the last finished hand in roomID as a PHH record. Humans'
// starting stacks are reconstructed from their wallet balances; bots are
// shown with the wallet's opening balance.
func (m *Manager) History(roomID string) (*phh.HandHistory, error) {
	r, err := m.lookup(roomID)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.state
	h, err := phh.FromState(s, r.id, func(id string) int {
		seat := s.Seats[id]
		if seat.Bot {
			return m.wallet.Initial()
		}
		return m.wallet.Balance(id) + seat.Contributed - seat.Payout
	})
	if err != nil {
		return nil, fmt.Errorf("room %s: %w", roomID, err)
	}
	h.SetTime(r.updatedAt)
	return h, nil
}
