package main

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/coder/quartz"
	"github.com/lox/sevenstud/internal/config"
	"github.com/lox/sevenstud/internal/game"
	"github.com/lox/sevenstud/internal/gameid"
	"github.com/lox/sevenstud/internal/randutil"
	"github.com/lox/sevenstud/internal/room"
	"github.com/lox/sevenstud/internal/server"
)

// ServerCmd runs the API.
type ServerCmd struct {
	Config string `short:"c" default:"sevenstud.hcl" env:"SEVENSTUD_CONFIG" help:"Path to HCL configuration file"`
	Addr   string `short:"a" env:"SEVENSTUD_ADDR" help:"Address to listen on (overrides config)"`
	Seed   int64  `help:"Deterministic RNG seed (0 picks one)"`
}

func (c *ServerCmd) Run(g *Globals) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, g, cfg.Server.LogLevel)
	if err != nil {
		return err
	}
	idle, err := cfg.IdleTimeout()
	if err != nil {
		return err
	}
	addr := cfg.Addr()
	if c.Addr != "" {
		addr = c.Addr
	}

	seed := randutil.Seed(c.Seed)
	logger.Info("starting", "addr", addr, "seed", seed, "config", c.Config)

	// Rooms play concurrently, so each engine gets its own generator.
	clock := quartz.NewReal()
	profiles := cfg.ProfileTable()
	var rooms atomic.Int64
	manager := room.NewManager(
		room.WithClock(clock),
		room.WithLogger(logger.WithPrefix("room")),
		room.WithWallet(room.NewWallet(cfg.Server.Bankroll)),
		room.WithIdleTimeout(idle),
		room.WithEngineFactory(func() *game.Engine {
			n := int(rooms.Add(1))
			return game.NewEngine(
				game.WithRNG(randutil.Derive(seed, n)),
				game.WithProfiles(profiles),
				game.WithLogger(logger.WithPrefix("game")),
				game.WithHandIDs(gameid.NewGenerator(clock, nil).Generate),
			)
		}),
	)

	for _, rc := range cfg.Rooms {
		if err := manager.Start(rc.Name, rc.Seats, rc.Ante); err != nil {
			return fmt.Errorf("preset room %q: %w", rc.Name, err)
		}
	}

	ctx, cancel := signalContext(logger)
	defer cancel()
	return server.NewServer(manager, server.WithLogger(logger)).Run(ctx, addr)
}
