package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/sevenstud/internal/gameid"
	"github.com/lox/sevenstud/internal/randutil"
	"github.com/lox/sevenstud/poker"
)

// MaxSeats is the largest table a single deck can deal seven cards to.
const MaxSeats = 7

// Engine runs stud hands. It holds everything a hand needs besides its
// State: randomness, the deck factory, bot personalities and logging.
type Engine struct {
	rng          *rand.Rand
	logger       *log.Logger
	newDeck      func(*rand.Rand) poker.Drawer
	isBot        func(string) bool
	profiles     ProfileTable
	handID       func() string
	maxAutoSteps int
}

// NewEngine creates an engine. Without WithRNG it seeds itself from the
// clock.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger:       log.New(io.Discard),
		newDeck:      func(rng *rand.Rand) poker.Drawer { return poker.NewDeck(rng) },
		isBot:        IsBotID,
		profiles:     DefaultProfiles(),
		maxAutoSteps: DefaultMaxAutoSteps,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = randutil.New(randutil.Seed(0))
	}
	if e.handID == nil {
		e.handID = gameid.NewGenerator(nil, e.rng).Generate
	}
	return e
}

// Start deals a new hand into s, discarding whatever hand it held. Blank
// seat ids are dropped and repeats ignored; 2 to MaxSeats seats must remain.
// The ante is raised to MinAnte if lower. Bots act before Start returns if
// one of them leads.
func (e *Engine) Start(s *State, seatIDs []string, ante int) error {
	order := make([]string, 0, len(seatIDs))
	for _, raw := range seatIDs {
		id := strings.TrimSpace(raw)
		if id == "" || slices.Contains(order, id) {
			continue
		}
		order = append(order, id)
	}
	if len(order) < 2 || len(order) > MaxSeats {
		return fmt.Errorf("%w: need 2 to %d seats, got %d", ErrInvalidSeats, MaxSeats, len(order))
	}

	s.reset()
	s.HandID = e.handID()
	s.Order = order
	s.Ante = max(MinAnte, ante)
	s.Stage = ThirdStreet
	s.InProgress = true
	s.deck = e.newDeck(e.rng)

	for _, id := range order {
		seat := &Seat{ID: id, Bot: e.isBot(id)}
		if seat.Bot {
			p := e.profiles.Pick(e.rng)
			seat.Profile = &p
		}
		s.Seats[id] = seat
	}
	s.logEvent(EventHandStart, "", ActionNone, 0)

	// Two down to each seat, then one up to each seat.
	for _, id := range order {
		seat := s.Seats[id]
		seat.Cards = append(seat.Cards, s.deck.Draw(), s.deck.Draw())
	}
	for _, id := range order {
		seat := s.Seats[id]
		seat.Cards = append(seat.Cards, s.deck.Draw())
	}

	for _, id := range order {
		s.contribute(id, s.Ante)
		s.Seats[id].record(ActionAnte, s.Ante)
		s.logEvent(EventAnte, id, ActionAnte, s.Ante)
	}

	e.logger.Debug("hand started", "hand", s.HandID, "seats", len(order), "ante", s.Ante, "pot", s.Pot)
	e.startStreet(s)
	e.AutoPlay(s)
	return nil
}

// Bet opens the street for one unit, or raises one unit over a standing
// bet. Once MaxRaises increases have been made on the street it calls
// instead. The amount is advisory: every bet is exactly one unit.
func (e *Engine) Bet(s *State, seatID string, amount int) error {
	return e.act(s, seatID, ActionBet, amount)
}

// Raise is Bet under its other name.
func (e *Engine) Raise(s *State, seatID string) error {
	return e.act(s, seatID, ActionRaise, 0)
}

// Call matches the standing bet, or checks when there is nothing to call.
func (e *Engine) Call(s *State, seatID string) error {
	return e.act(s, seatID, ActionCall, 0)
}

// Check passes the action. It is illegal against a standing bet.
func (e *Engine) Check(s *State, seatID string) error {
	return e.act(s, seatID, ActionCheck, 0)
}

// Fold gives up the hand. If one seat remains it wins the pot at once.
func (e *Engine) Fold(s *State, seatID string) error {
	return e.act(s, seatID, ActionFold, 0)
}

// Act applies the named action; BET and RAISE use amount.
func (e *Engine) Act(s *State, seatID string, a Action, amount int) error {
	switch a {
	case ActionBet, ActionRaise, ActionCall, ActionCheck, ActionFold:
		return e.act(s, seatID, a, amount)
	default:
		return fmt.Errorf("%w: %s is not a seat action", ErrIllegalAction, a)
	}
}

// Next ends the current street regardless of who is still to act, deals
// the next one or settles the hand, then lets bots act.
func (e *Engine) Next(s *State) error {
	if !s.InProgress {
		return fmt.Errorf("%w: hand is not in progress", ErrIllegalAction)
	}
	s.Pending = nil
	e.logger.Debug("street forced", "hand", s.HandID, "street", s.Stage)
	e.advanceStreet(s)
	e.AutoPlay(s)
	return nil
}

// AutoPlay lets bots act while one of them holds the turn, up to the
// engine's step bound, and returns how many actions were taken. Seat actions
// call it already; callers only need it to push an all-bot hand past the
// bound.
func (e *Engine) AutoPlay(s *State) int {
	steps := 0
	for steps < e.maxAutoSteps && s.InProgress && s.Turn != "" {
		seat := s.Seats[s.Turn]
		if seat == nil || !seat.Bot || seat.Folded {
			break
		}
		d := e.decide(s, seat)
		if err := e.apply(s, seat.ID, d.Action, d.Amount); err != nil {
			e.logger.Warn("bot action rejected", "hand", s.HandID, "seat", seat.ID, "action", d.Action, "err", err)
			break
		}
		steps++
	}
	return steps
}

func (e *Engine) act(s *State, seatID string, a Action, amount int) error {
	if err := e.apply(s, seatID, a, amount); err != nil {
		e.logger.Debug("action rejected", "hand", s.HandID, "seat", seatID, "action", a, "err", err)
		return err
	}
	e.AutoPlay(s)
	return nil
}

func (e *Engine) validate(s *State, seatID string) error {
	if !s.InProgress {
		return fmt.Errorf("%w: hand is not in progress", ErrIllegalAction)
	}
	seat, ok := s.Seats[seatID]
	if !ok {
		return fmt.Errorf("%w: unknown seat %q", ErrIllegalAction, seatID)
	}
	if seat.Folded {
		return fmt.Errorf("%w: seat %q has folded", ErrIllegalAction, seatID)
	}
	if s.Turn != seatID {
		return fmt.Errorf("%w: not %q's turn", ErrIllegalAction, seatID)
	}
	if !s.isPending(seatID) {
		return fmt.Errorf("%w: seat %q has nothing to act on", ErrIllegalAction, seatID)
	}
	return nil
}

// apply validates and performs one action without running bots.
func (e *Engine) apply(s *State, seatID string, a Action, _ int) error {
	if err := e.validate(s, seatID); err != nil {
		return err
	}
	seat := s.Seats[seatID]
	toCall := s.ToCall(seatID)

	if a.Aggressive() && s.RaisesThisStreet >= MaxRaises {
		a = ActionCall
	}
	if a == ActionCall && toCall <= 0 {
		a = ActionCheck
	}
	if a == ActionCheck && toCall > 0 {
		return fmt.Errorf("%w: cannot check facing a bet of %d", ErrIllegalAction, toCall)
	}

	paid := 0
	switch a {
	case ActionBet, ActionRaise:
		if s.CurrentBet == 0 {
			a = ActionBet
		} else {
			a = ActionRaise
		}
		s.CurrentBet += s.BetUnit()
		s.RaisesThisStreet++
		paid = s.CurrentBet - s.StreetContribution[seatID]
		s.StreetContribution[seatID] = s.CurrentBet
		s.contribute(seatID, paid)
		e.resetPendingAfter(s, seatID)

	case ActionCall:
		paid = toCall
		s.StreetContribution[seatID] += paid
		s.contribute(seatID, paid)
		s.removePending(seatID)

	case ActionCheck:
		s.removePending(seatID)

	case ActionFold:
		seat.Folded = true
		s.removePending(seatID)
		delete(s.StreetContribution, seatID)
	}

	seat.record(a, paid)
	s.LastActor, s.LastAction, s.LastAmount = seatID, a, paid
	s.logEvent(EventAction, seatID, a, paid)
	e.logger.Debug("action", "hand", s.HandID, "street", s.Stage, "seat", seatID, "action", a, "paid", paid, "pot", s.Pot)

	if a == ActionFold && s.ActiveCount() <= 1 {
		e.settleUncontested(s)
		return nil
	}
	if e.streetComplete(s) {
		e.advanceStreet(s)
		return nil
	}
	e.advanceTurn(s, seatID)
	return nil
}

// resetPendingAfter re-opens the action for every other live seat, in table
// order after the aggressor.
func (e *Engine) resetPendingAfter(s *State, aggressor string) {
	idx := slices.Index(s.Order, aggressor)
	pending := s.activeFrom(idx + 1)
	s.Pending = slices.DeleteFunc(pending, func(id string) bool { return id == aggressor })
	for _, id := range s.Pending {
		if _, ok := s.StreetContribution[id]; !ok {
			s.StreetContribution[id] = 0
		}
	}
}

func (e *Engine) streetComplete(s *State) bool {
	if len(s.Pending) > 0 {
		return false
	}
	if s.CurrentBet == 0 {
		return true
	}
	for _, id := range s.Order {
		if seat := s.Seats[id]; !seat.Folded && s.StreetContribution[id] < s.CurrentBet {
			return false
		}
	}
	return true
}

// advanceTurn passes the turn to the next pending seat after from in table
// order.
func (e *Engine) advanceTurn(s *State, from string) {
	s.Turn = ""
	if len(s.Pending) == 0 {
		return
	}
	start := slices.Index(s.Order, from) + 1
	for _, id := range s.activeFrom(start) {
		if s.isPending(id) {
			s.Turn = id
			return
		}
	}
}

// advanceStreet deals the next street or, after seventh street, settles.
func (e *Engine) advanceStreet(s *State) {
	if !s.InProgress {
		return
	}
	if s.ActiveCount() <= 1 {
		e.settleUncontested(s)
		return
	}
	if s.Stage >= SeventhStreet {
		e.showdown(s)
		return
	}
	s.Stage++
	if s.Stage.Deals() {
		for _, id := range s.Order {
			if seat := s.Seats[id]; !seat.Folded {
				seat.Cards = append(seat.Cards, s.deck.Draw())
			}
		}
	}
	e.startStreet(s)
}

// startStreet clears the betting for a new street and gives the lead the
// turn. Every live seat starts out pending, the lead first.
func (e *Engine) startStreet(s *State) {
	s.CurrentBet = 0
	s.RaisesThisStreet = 0
	clear(s.StreetContribution)
	s.Pending = nil
	s.Turn = ""

	for _, id := range s.Order {
		if seat := s.Seats[id]; !seat.Folded {
			seat.record(ActionWaiting, 0)
		}
	}
	s.LastActor, s.LastAction, s.LastAmount = "", ActionNone, 0

	lead := findLead(s)
	if lead < 0 {
		return
	}
	s.Pending = s.activeFrom(lead)
	for _, id := range s.Pending {
		s.StreetContribution[id] = 0
	}
	s.Turn = s.Order[lead]

	s.logEvent(EventStreet, s.Turn, ActionNone, 0)
	e.logger.Debug("street", "hand", s.HandID, "street", s.Stage, "lead", s.Turn, "unit", s.BetUnit(), "pot", s.Pot)
}
