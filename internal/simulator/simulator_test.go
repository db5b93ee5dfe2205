package simulator

import (
	"bytes"
	"context"
	"testing"

	"github.com/lox/sevenstud/internal/game"
	"github.com/lox/sevenstud/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConservesChips(t *testing.T) {
	t.Parallel()

	sim := New(Config{Hands: 200, Tables: 4, Seats: 5, Ante: 10, Seed: 42})
	r, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 200, r.Hands)
	assert.Equal(t, r.Hands, r.Showdowns+r.Uncontested)
	assert.Equal(t, int64(42), r.Seed)

	seats, net := 0, 0.0
	for _, st := range r.Profiles {
		seats += st.Hands
		net += st.Sum
	}
	assert.Equal(t, 200*5, seats)
	assert.InDelta(t, 0, net, 1e-6, "bots only trade chips among themselves")
	for _, name := range r.ProfileNames() {
		_, ok := game.DefaultProfiles().Lookup(name)
		assert.True(t, ok, "unexpected profile %q", name)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	t.Parallel()

	run := func() *Result {
		r, err := New(Config{Hands: 60, Tables: 3, Seats: 3, Seed: 7}).Run(context.Background())
		require.NoError(t, err)
		return r
	}
	a, b := run(), run()
	assert.Equal(t, a.Showdowns, b.Showdowns)
	assert.Equal(t, a.Chips, b.Chips)
	assert.Equal(t, a.ProfileNames(), b.ProfileNames())
	for _, name := range a.ProfileNames() {
		assert.Equal(t, a.Profiles[name].Values, b.Profiles[name].Values, name)
	}
}

func TestRunSingleProfile(t *testing.T) {
	t.Parallel()

	r, err := New(Config{Hands: 30, Seats: 4, Seed: 3, Profiles: game.ProfileTable{game.Maniac}}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Maniac"}, r.ProfileNames())
	assert.Equal(t, 120, r.Profiles["Maniac"].Hands)
}

func TestRunValidatesConfig(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Hands: 10, Seats: 8, Seed: 1}).Run(context.Background())
	require.ErrorIs(t, err, game.ErrInvalidSeats)

	_, err = New(Config{Hands: 0, Seed: 1}).Run(context.Background())
	require.Error(t, err)
}

func TestRunHonoursCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Config{Hands: 100, Tables: 2, Seed: 1}).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCheckConservation(t *testing.T) {
	t.Parallel()

	e := game.NewEngine(game.WithRNG(randutil.New(5)))
	st := game.NewState()
	require.NoError(t, e.Start(st, []string{"AI_1", "AI_2", "AI_3"}, 10))
	require.NoError(t, PlayOut(e, st))
	require.NoError(t, CheckConservation(st))

	for id := range st.Payouts {
		st.Payouts[id]++
		break
	}
	require.ErrorIs(t, CheckConservation(st), ErrConservation)
}

func TestWriteSummary(t *testing.T) {
	t.Parallel()

	r, err := New(Config{Hands: 20, Seats: 3, Seed: 11}).Run(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteSummary(&buf, r)
	out := buf.String()
	assert.Contains(t, out, "seed 11")
	assert.Contains(t, out, "Hands played: 20")
	for _, name := range r.ProfileNames() {
		assert.Contains(t, out, name)
	}
}

func TestOnHandSeesEveryHand(t *testing.T) {
	t.Parallel()

	var (
		hands     int
		showdowns int
		tables    = make(map[int]bool)
	)
	r, err := New(Config{
		Hands:  25,
		Tables: 3,
		Seats:  3,
		Seed:   11,
		OnHand: func(table int, st *game.State) {
			hands++
			tables[table] = true
			assert.False(t, st.InProgress)
			assert.NotEmpty(t, st.Winners)
			if st.Log[len(st.Log)-1].Kind == game.EventShowdown {
				showdowns++
			}
		},
	}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 25, hands)
	assert.Len(t, tables, 3)
	assert.Equal(t, showdowns, r.Showdowns, "fold wins are not showdowns")
	assert.Equal(t, 25-showdowns, r.Uncontested)
}

func TestReport(t *testing.T) {
	t.Parallel()

	r, err := New(Config{Hands: 40, Seats: 4, Seed: 9}).Run(context.Background())
	require.NoError(t, err)

	rep := r.Report()
	assert.Equal(t, int64(9), rep.Seed)
	assert.Equal(t, 40, rep.Hands)
	assert.Equal(t, r.Showdowns, rep.Showdowns)
	require.Len(t, rep.Profiles, len(r.ProfileNames()))

	seats := 0
	for i, p := range rep.Profiles {
		assert.Equal(t, r.ProfileNames()[i], p.Profile)
		assert.LessOrEqual(t, p.CILow, p.Mean)
		assert.GreaterOrEqual(t, p.CIHigh, p.Mean)
		seats += p.Seats
	}
	assert.Equal(t, 160, seats)
}
