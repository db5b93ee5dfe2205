// Package room hosts concurrent stud tables. Each room owns one game.State
// guarded by its own mutex; the Manager tracks rooms, charges human
// bankrolls as chips go in and out, and signals subscribers when a room
// changes.
package room

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/sevenstud/internal/game"
	"github.com/lox/sevenstud/internal/gameid"
)

// ErrRoomNotFound is returned for operations on a room that was never
// started or has been swept.
var ErrRoomNotFound = errors.New("room not found")

// DefaultIdleTimeout is how long a room may sit untouched before Sweep
// removes it.
const DefaultIdleTimeout = 30 * time.Minute

// DefaultBankroll is the starting balance of a new wallet account.
const DefaultBankroll = 1000

// maxBotRounds bounds the AutoPlay rounds one room call may drive.
const maxBotRounds = 1000

// Room is a single table.
type Room struct {
	mu     sync.Mutex
	id     string
	engine *game.Engine
	state  *game.State

	// charged is what each human seat has been debited this hand.
	charged map[string]int
	// settled is the hand id whose payouts have been credited.
	settled string
	// deltas holds the last balance change per human seat.
	deltas map[string]int

	seq       int
	updatedAt time.Time
}

// Manager owns every room.
type Manager struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	clock       quartz.Clock
	logger      *log.Logger
	wallet      *Wallet
	newEngine   func() *game.Engine
	engineOpts  []game.Option
	idleTimeout time.Duration
	notifier    *notifier
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the clock used for timestamps, hand ids and idle eviction.
func WithClock(c quartz.Clock) Option {
	return func(m *Manager) {
		m.clock = c
	}
}

// WithLogger sets the manager's logger. Engines log through a "game"
// prefixed child of it.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithWallet shares a wallet between managers, or lets tests inspect it.
func WithWallet(w *Wallet) Option {
	return func(m *Manager) {
		m.wallet = w
	}
}

// WithEngineOptions adds options to every engine the manager creates. The
// options are shared, so a *rand.Rand passed through game.WithRNG would be
// used by every room at once; rooms played concurrently need their own
// generator from WithEngineFactory.
func WithEngineOptions(opts ...game.Option) Option {
	return func(m *Manager) {
		m.engineOpts = append(m.engineOpts, opts...)
	}
}

// WithEngineFactory replaces engine construction entirely. It is called once
// per room, which makes it the place to give each room its own RNG.
func WithEngineFactory(f func() *game.Engine) Option {
	return func(m *Manager) {
		m.newEngine = f
	}
}

// WithIdleTimeout sets how long an untouched room survives Sweep.
func WithIdleTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.idleTimeout = d
		}
	}
}

// NewManager creates an empty manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rooms:       make(map[string]*Room),
		logger:      log.New(io.Discard),
		idleTimeout: DefaultIdleTimeout,
		notifier:    newNotifier(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.clock == nil {
		m.clock = quartz.NewReal()
	}
	if m.wallet == nil {
		m.wallet = NewWallet(DefaultBankroll)
	}
	if m.newEngine == nil {
		m.newEngine = func() *game.Engine {
			opts := []game.Option{
				game.WithLogger(m.logger.WithPrefix("game")),
				game.WithHandIDs(gameid.NewGenerator(m.clock, nil).Generate),
			}
			return game.NewEngine(append(opts, m.engineOpts...)...)
		}
	}
	return m
}

// Wallet returns the bankroll store.
func (m *Manager) Wallet() *Wallet {
	return m.wallet
}

// Start deals a new hand in roomID, creating the room on first use.
func (m *Manager) Start(roomID string, seats []string, ante int) error {
	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return fmt.Errorf("%w: empty room id", game.ErrInvalidSeats)
	}
	r := m.ensure(roomID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.engine.Start(r.state, seats, ante); err != nil {
		return fmt.Errorf("room %s: %w", roomID, err)
	}
	runBots(r)
	clear(r.charged)
	clear(r.deltas)
	r.settled = ""
	m.settle(r)
	m.logger.Info("hand started", "room", roomID, "hand", r.state.HandID, "seats", len(r.state.Order), "ante", r.state.Ante)
	return nil
}

// Act applies a seat's action in roomID.
func (m *Manager) Act(roomID, seat string, a game.Action, amount int) error {
	return m.mutate(roomID, func(r *Room) error {
		return r.engine.Act(r.state, seat, a, amount)
	})
}

// Next forces roomID's current street to end.
func (m *Manager) Next(roomID string) error {
	return m.mutate(roomID, func(r *Room) error {
		return r.engine.Next(r.state)
	})
}

// Resume lets bots in roomID carry on acting. Every call that changes a
// room already does this; Resume is for engines whose step bound left a bot
// holding the turn.
func (m *Manager) Resume(roomID string) error {
	return m.mutate(roomID, func(r *Room) error {
		if !r.state.InProgress {
			return fmt.Errorf("%w: hand is not in progress", game.ErrIllegalAction)
		}
		return nil
	})
}

// Rooms returns the ids of every live room.
func (m *Manager) Rooms() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.rooms))
	for id := range m.rooms {
		ids = append(ids, id)
	}
	return ids
}

// Subscribe returns a channel that receives a signal after every change to
// roomID, and a function that ends the subscription. The channel is closed
// when the room is swept.
func (m *Manager) Subscribe(roomID string) (<-chan struct{}, func()) {
	return m.notifier.subscribe(roomID)
}

func (m *Manager) ensure(roomID string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[roomID]
	if !ok {
		r = &Room{
			id:        roomID,
			engine:    m.newEngine(),
			state:     game.NewState(),
			charged:   make(map[string]int),
			deltas:    make(map[string]int),
			updatedAt: m.clock.Now(),
		}
		m.rooms[roomID] = r
		m.logger.Debug("room created", "room", roomID)
	}
	return r
}

func (m *Manager) lookup(roomID string) (*Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRoomNotFound, roomID)
	}
	return r, nil
}

func (m *Manager) mutate(roomID string, op func(*Room) error) error {
	r, err := m.lookup(roomID)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := op(r); err != nil {
		m.logger.Debug("action rejected", "room", roomID, "err", err)
		return fmt.Errorf("room %s: %w", roomID, err)
	}
	runBots(r)
	m.settle(r)
	return nil
}

// runBots re-invokes AutoPlay past the engine's per-call step bound until a
// human holds the turn or the hand is over. The caller holds r.mu.
func runBots(r *Room) {
	for range maxBotRounds {
		if !r.state.InProgress || r.engine.AutoPlay(r.state) == 0 {
			return
		}
	}
}

// settle brings the wallet in line with the room's state: every human seat
// is debited what it has put in beyond what was already charged, and once
// the hand is over the payouts are credited exactly once. The caller holds
// r.mu.
func (m *Manager) settle(r *Room) {
	s := r.state
	for _, id := range s.Order {
		seat := s.Seats[id]
		if seat == nil || seat.Bot {
			continue
		}
		if owed := seat.Contributed - r.charged[id]; owed > 0 {
			r.charged[id] = seat.Contributed
			m.wallet.Add(id, -owed)
			r.deltas[id] = -owed
		}
	}

	if !s.InProgress && s.HandID != "" && r.settled != s.HandID {
		r.settled = s.HandID
		for _, id := range s.Order {
			seat := s.Seats[id]
			if seat == nil || seat.Bot {
				continue
			}
			if payout := s.Payouts[id]; payout != 0 {
				m.wallet.Add(id, payout)
				r.deltas[id] = payout
			}
		}
		m.logger.Info("hand settled", "room", r.id, "hand", s.HandID, "pot", s.SettledPot, "winners", strings.Join(s.Winners, ","))
	}

	r.seq++
	r.updatedAt = m.clock.Now()
	m.notifier.notify(r.id)
}
