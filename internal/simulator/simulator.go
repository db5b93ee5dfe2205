// Package simulator plays bot-only stud hands across concurrent tables,
// checking chip conservation on every hand and tallying results per bot
// personality.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/sevenstud/internal/game"
	"github.com/lox/sevenstud/internal/randutil"
	"github.com/lox/sevenstud/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// ErrConservation is returned when a hand pays out more or less than went
// into the pot.
var ErrConservation = errors.New("pot not conserved")

// ErrStalled is returned when a hand fails to finish.
var ErrStalled = errors.New("hand stalled")

// maxRounds bounds the AutoPlay/Next rounds one hand may take.
const maxRounds = 1000

// Config holds configuration for running simulations
type Config struct {
	Hands    int
	Tables   int
	Seats    int
	Ante     int
	Seed     int64
	Profiles game.ProfileTable
	Logger   *log.Logger

	// OnHand, if set, sees every finished hand. Calls are serialized across
	// tables; st is reused once the call returns.
	OnHand func(table int, st *game.State)
}

// Result is the outcome of a simulation run.
type Result struct {
	Seed        int64
	Hands       int
	Showdowns   int
	Uncontested int
	Chips       int // Total settled across all pots
	Profiles    map[string]*statistics.Statistics
}

// ProfileNames returns the profiles that played, sorted.
func (r *Result) ProfileNames() []string {
	return slices.Sorted(maps.Keys(r.Profiles))
}

// Simulator runs stud hand simulations
type Simulator struct {
	config Config
	logger *log.Logger
	hookMu sync.Mutex
}

// New creates a simulator, filling in defaults for unset fields.
func New(config Config) *Simulator {
	if config.Tables < 1 {
		config.Tables = 1
	}
	if config.Seats == 0 {
		config.Seats = 4
	}
	if len(config.Profiles) == 0 {
		config.Profiles = game.DefaultProfiles()
	}
	config.Seed = randutil.Seed(config.Seed)
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Simulator{config: config, logger: logger.WithPrefix("sim")}
}

// Run plays the configured number of hands spread over the tables.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	cfg := s.config
	if cfg.Seats < 2 || cfg.Seats > game.MaxSeats {
		return nil, fmt.Errorf("%w: seats must be 2 to %d, got %d", game.ErrInvalidSeats, game.MaxSeats, cfg.Seats)
	}
	if cfg.Hands < 1 {
		return nil, fmt.Errorf("hands must be positive, got %d", cfg.Hands)
	}

	tables := min(cfg.Tables, cfg.Hands)
	perTable, remainder := cfg.Hands/tables, cfg.Hands%tables
	s.logger.Info("simulating", "hands", cfg.Hands, "tables", tables, "seats", cfg.Seats, "seed", cfg.Seed)

	results := make([]*Result, tables)
	g, ctx := errgroup.WithContext(ctx)
	for table := range tables {
		hands := perTable
		if table < remainder {
			hands++
		}
		g.Go(func() error {
			r, err := s.runTable(ctx, table, hands)
			if err != nil {
				return fmt.Errorf("table %d: %w", table, err)
			}
			results[table] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := &Result{Seed: cfg.Seed, Profiles: make(map[string]*statistics.Statistics)}
	for _, r := range results {
		total.merge(r)
	}
	for name, st := range total.Profiles {
		if err := st.Validate(); err != nil {
			return nil, fmt.Errorf("statistics for %s: %w", name, err)
		}
	}
	return total, nil
}

func (s *Simulator) runTable(ctx context.Context, table, hands int) (*Result, error) {
	cfg := s.config
	rng := randutil.Derive(cfg.Seed, table)
	handNo := 0
	e := game.NewEngine(
		game.WithRNG(rng),
		game.WithProfiles(cfg.Profiles),
		game.WithLogger(s.logger.With("table", table)),
		game.WithHandIDs(func() string {
			handNo++
			return "t" + strconv.Itoa(table) + "-h" + strconv.Itoa(handNo)
		}),
	)

	seats := make([]string, cfg.Seats)
	for i := range seats {
		seats[i] = "AI_" + strconv.Itoa(i+1)
	}

	r := &Result{Seed: cfg.Seed, Profiles: make(map[string]*statistics.Statistics)}
	st := game.NewState()
	for range hands {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := e.Start(st, seats, cfg.Ante); err != nil {
			return nil, err
		}
		if err := PlayOut(e, st); err != nil {
			return nil, fmt.Errorf("hand %s: %w", st.HandID, err)
		}
		if err := CheckConservation(st); err != nil {
			return nil, fmt.Errorf("hand %s: %w", st.HandID, err)
		}
		r.record(st, cfg.Seed)
		if cfg.OnHand != nil {
			s.hookMu.Lock()
			cfg.OnHand(table, st)
			s.hookMu.Unlock()
		}
	}
	return r, nil
}

// PlayOut drives a hand in which every seat is a bot to its end, forcing
// the street along if the bots stop acting.
func PlayOut(e *game.Engine, st *game.State) error {
	for range maxRounds {
		if !st.InProgress {
			return nil
		}
		if e.AutoPlay(st) == 0 && st.InProgress {
			if err := e.Next(st); err != nil {
				return err
			}
		}
	}
	if st.InProgress {
		return ErrStalled
	}
	return nil
}

// CheckConservation verifies that a settled hand paid out exactly what
// went into the pot.
func CheckConservation(st *game.State) error {
	contributed, paid := 0, 0
	for _, seat := range st.Seats {
		contributed += seat.Contributed
	}
	for _, p := range st.Payouts {
		paid += p
	}
	if len(st.Winners) == 0 {
		return fmt.Errorf("%w: no winners", ErrConservation)
	}
	if paid != st.SettledPot || contributed != st.SettledPot {
		return fmt.Errorf("%w: contributed %d, settled %d, paid %d", ErrConservation, contributed, st.SettledPot, paid)
	}
	return nil
}

func (r *Result) record(st *game.State, seed int64) {
	r.Hands++
	r.Chips += st.SettledPot
	showdown := st.ShowedDown
	if showdown {
		r.Showdowns++
	} else {
		r.Uncontested++
	}

	reached := st.Stage
	for pos, id := range st.Order {
		seat := st.Seats[id]
		name := "human"
		if seat.Profile != nil {
			name = seat.Profile.Name
		}
		stats, ok := r.Profiles[name]
		if !ok {
			stats = &statistics.Statistics{}
			r.Profiles[name] = stats
		}
		stats.Add(statistics.HandResult{
			Net:            seat.Payout - seat.Contributed,
			Ante:           st.Ante,
			Seed:           seed,
			Position:       pos,
			WentToShowdown: showdown && !seat.Folded,
			Won:            seat.Winner,
			FinalPotSize:   st.SettledPot,
			StreetReached:  reached,
		})
	}
}

func (r *Result) merge(other *Result) {
	r.Hands += other.Hands
	r.Showdowns += other.Showdowns
	r.Uncontested += other.Uncontested
	r.Chips += other.Chips
	for name, st := range other.Profiles {
		if mine, ok := r.Profiles[name]; ok {
			mine.Merge(st)
		} else {
			r.Profiles[name] = st
		}
	}
}
