package phh

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/lox/sevenstud/internal/game"
	"github.com/lox/sevenstud/poker"
)

// ErrUnfinished is returned when a hand history is requested before the hand
// has been settled.
var ErrUnfinished = errors.New("hand not finished")

// DefaultStack is the notional starting stack used when the caller has no
// bankroll for a seat.
const DefaultStack = 1000

// StackFunc reports the chips a seat held before the hand began.
type StackFunc func(seat string) int

// FromState builds the history of a settled hand. A nil stacks gives every
// seat DefaultStack, raised if needed to cover what the seat put in.
func FromState(st *game.State, table string, stacks StackFunc) (*HandHistory, error) {
	if st == nil || st.HandID == "" {
		return nil, fmt.Errorf("%w: no hand dealt", ErrUnfinished)
	}
	if st.InProgress {
		return nil, fmt.Errorf("%w: %s", ErrUnfinished, st.HandID)
	}

	n := len(st.Order)
	h := &HandHistory{
		Variant:         Variant,
		Table:           table,
		SeatCount:       n,
		BringIn:         st.Ante,
		SmallBet:        st.Ante,
		BigBet:          st.Ante * game.SeventhStreet.Multiplier(),
		Antes:           make([]int, n),
		StartingStacks:  make([]int, n),
		FinishingStacks: make([]int, n),
		Winnings:        make([]int, n),
		Players:         append([]string(nil), st.Order...),
		HandID:          st.HandID,
	}

	index := make(map[string]int, n)
	for i, id := range st.Order {
		index[id] = i
		seat := st.Seats[id]
		h.Antes[i] = st.Ante
		start := DefaultStack
		if stacks != nil {
			start = stacks(id)
		}
		start = max(start, seat.Contributed)
		h.StartingStacks[i] = start
		h.Winnings[i] = seat.Payout
		h.FinishingStacks[i] = start - seat.Contributed + seat.Payout
	}

	h.Actions = replay(st, index)
	return h, nil
}

// replay walks the hand log, interleaving the deals each street implies.
func replay(st *game.State, index map[string]int) []string {
	var (
		actions   []string
		folded    = make(map[string]bool)
		streetBet = make(map[string]int)
	)
	deal := func(from, to int) {
		for _, id := range st.Order {
			seat := st.Seats[id]
			if folded[id] || len(seat.Cards) < to {
				continue
			}
			actions = append(actions, fmt.Sprintf("d dh p%d %s", index[id]+1, joinCards(seat.Cards[from:to])))
		}
	}

	for _, ev := range st.Log {
		switch ev.Kind {
		case game.EventStreet:
			clear(streetBet)
			if ev.Street == game.ThirdStreet {
				deal(0, 3)
			} else {
				i := 2 + int(ev.Street)
				deal(i, i+1)
			}
		case game.EventAction:
			streetBet[ev.Seat] += ev.Amount
			if ev.Action == game.ActionFold {
				folded[ev.Seat] = true
			}
			if a, ok := FormatAction(index[ev.Seat], ev.Action, streetBet[ev.Seat]); ok {
				actions = append(actions, a)
			}
		case game.EventShowdown:
			for _, id := range st.Order {
				seat := st.Seats[id]
				if seat.Folded {
					continue
				}
				var hole []poker.Card
				for i, c := range seat.Cards {
					if game.Concealed(i) {
						hole = append(hole, c)
					}
				}
				actions = append(actions, fmt.Sprintf("p%d sm %s", index[id]+1, joinCards(hole)))
			}
		}
	}
	return actions
}

// FormatAction converts an engine action to its PHH form. streetTotal is
// what the seat has put in on the current street after the action. It
// returns false for actions that have no PHH counterpart.
func FormatAction(seat int, a game.Action, streetTotal int) (string, bool) {
	player := fmt.Sprintf("p%d", seat+1)
	switch a {
	case game.ActionFold:
		return player + " f", true
	case game.ActionCheck, game.ActionCall:
		return player + " cc", true
	case game.ActionBet, game.ActionRaise:
		if streetTotal <= 0 {
			return "", false
		}
		return fmt.Sprintf("%s cbr %d", player, streetTotal), true
	default:
		return "", false
	}
}

func joinCards(cards []poker.Card) string {
	var b bytes.Buffer
	for _, c := range cards {
		b.WriteString(c.String())
	}
	return b.String()
}

// Encode writes the hand history to w in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteSession writes hands as a PHHS session: one numbered table per hand.
func WriteSession(w io.Writer, hands []*HandHistory) error {
	for i, hand := range hands {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "[%d]\n", i+1); err != nil {
			return err
		}
		if err := Encode(w, hand); err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
	}
	return nil
}

// Decode reads a single hand written by Encode.
func Decode(data []byte) (*HandHistory, error) {
	var h HandHistory
	if _, err := toml.Decode(string(data), &h); err != nil {
		return nil, fmt.Errorf("phh: %w", err)
	}
	return &h, nil
}

// DecodeSession reads a session written by WriteSession, in hand order.
func DecodeSession(data []byte) ([]*HandHistory, error) {
	var raw map[string]HandHistory
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("phh: %w", err)
	}
	hands := make([]*HandHistory, len(raw))
	for i := range hands {
		h, ok := raw[fmt.Sprint(i+1)]
		if !ok {
			return nil, fmt.Errorf("phh: session missing hand %d", i+1)
		}
		hands[i] = &h
	}
	return hands, nil
}
