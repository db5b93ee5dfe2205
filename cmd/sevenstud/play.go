package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/sevenstud/internal/config"
	"github.com/lox/sevenstud/internal/game"
	"github.com/lox/sevenstud/internal/randutil"
	"github.com/lox/sevenstud/internal/room"
	"github.com/lox/sevenstud/internal/tui"
)

// PlayCmd seats the user at a table of bots.
type PlayCmd struct {
	Name    string `default:"you" help:"Your seat name"`
	Bots    int    `short:"b" default:"3" help:"Number of bot opponents (1-6)"`
	Ante    int    `default:"10" help:"Ante per hand"`
	Seed    int64  `help:"Deterministic RNG seed (0 picks one)"`
	LogFile string `type:"path" help:"Write logs here; the table owns the terminal"`
	Config  string `short:"c" default:"sevenstud.hcl" env:"SEVENSTUD_CONFIG" help:"HCL file with profile overrides"`
}

func (c *PlayCmd) Run(g *Globals) error {
	if c.Bots < 1 || c.Bots >= game.MaxSeats {
		return fmt.Errorf("bots must be 1 to %d, got %d", game.MaxSeats-1, c.Bots)
	}
	if game.IsBotID(c.Name) {
		return fmt.Errorf("seat name %q is reserved for bots", c.Name)
	}
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	var w io.Writer = io.Discard
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	logger, err := newLogger(w, g, "info")
	if err != nil {
		return err
	}

	seed := randutil.Seed(c.Seed)
	logger.Info("table opened", "seed", seed, "bots", c.Bots)
	manager := room.NewManager(
		room.WithLogger(logger),
		room.WithWallet(room.NewWallet(cfg.Server.Bankroll)),
		room.WithEngineOptions(
			game.WithRNG(randutil.New(seed)),
			game.WithProfiles(cfg.ProfileTable()),
		),
	)

	opponents := make([]string, c.Bots)
	for i := range opponents {
		opponents[i] = fmt.Sprintf("AI_%d", i+1)
	}

	ctx, cancel := signalContext(logger)
	defer cancel()
	return tui.Run(ctx, manager, tui.Config{
		RoomID:    "local",
		Seat:      c.Name,
		Opponents: opponents,
		Ante:      c.Ante,
	}, logger.With("seat", c.Name))
}
