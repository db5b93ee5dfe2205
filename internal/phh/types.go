// Package phh writes finished stud hands in the Poker Hand History format,
// a TOML layout that hand replayers and analysis tools can read.
package phh

import "time"

// Variant is the PHH code for fixed-limit seven card stud.
const Variant = "F7S"

// HandHistory is a single hand encoded in PHH format. Seats are numbered
// p1, p2, ... in table order.
type HandHistory struct {
	Variant         string   `toml:"variant"`
	Table           string   `toml:"table,omitempty"`
	SeatCount       int      `toml:"seat_count,omitempty"`
	Antes           []int    `toml:"antes"`
	BringIn         int      `toml:"bring_in"`
	SmallBet        int      `toml:"small_bet"`
	BigBet          int      `toml:"big_bet"`
	StartingStacks  []int    `toml:"starting_stacks"`
	FinishingStacks []int    `toml:"finishing_stacks,omitempty"`
	Winnings        []int    `toml:"winnings,omitempty"`
	Actions         []string `toml:"actions"`
	Players         []string `toml:"players,omitempty"`
	HandID          string   `toml:"hand"`
	Day             int      `toml:"day,omitempty"`
	Month           int      `toml:"month,omitempty"`
	Year            int      `toml:"year,omitempty"`

	Timestamp time.Time `toml:"-"`
}

// SetTime fills the date fields from t.
func (h *HandHistory) SetTime(t time.Time) {
	h.Timestamp = t
	if t.IsZero() {
		h.Day, h.Month, h.Year = 0, 0, 0
		return
	}
	t = t.UTC()
	h.Day, h.Month, h.Year = t.Day(), int(t.Month()), t.Year()
}
