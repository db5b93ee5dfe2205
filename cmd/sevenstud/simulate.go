package main

import (
	"io"
	"os"
	"strconv"

	"github.com/lox/sevenstud/internal/config"
	"github.com/lox/sevenstud/internal/fileutil"
	"github.com/lox/sevenstud/internal/game"
	"github.com/lox/sevenstud/internal/phh"
	"github.com/lox/sevenstud/internal/simulator"
)

// SimulateCmd plays bot-only hands.
type SimulateCmd struct {
	Hands   int    `short:"n" default:"1000" help:"Number of hands to play"`
	Tables  int    `short:"t" default:"4" help:"Tables to run concurrently"`
	Seats   int    `short:"s" default:"5" help:"Bots per table (2-7)"`
	Ante    int    `default:"10" help:"Ante per hand"`
	Seed    int64  `help:"Deterministic RNG seed (0 picks one)"`
	Config  string `short:"c" default:"sevenstud.hcl" env:"SEVENSTUD_CONFIG" help:"HCL file with profile overrides"`
	Out     string `short:"o" type:"path" help:"Write a JSON report to this file"`
	History string `type:"path" help:"Write every hand to this PHH session file"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, g, "warn")
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(logger)
	defer cancel()

	var hands []*phh.HandHistory
	simCfg := simulator.Config{
		Hands:    c.Hands,
		Tables:   c.Tables,
		Seats:    c.Seats,
		Ante:     c.Ante,
		Seed:     c.Seed,
		Profiles: cfg.ProfileTable(),
		Logger:   logger,
	}
	if c.History != "" {
		simCfg.OnHand = func(table int, st *game.State) {
			h, err := phh.FromState(st, "table-"+strconv.Itoa(table), nil)
			if err != nil {
				logger.Warn("skipping hand history", "hand", st.HandID, "err", err)
				return
			}
			hands = append(hands, h)
		}
	}

	result, err := simulator.New(simCfg).Run(ctx)
	if err != nil {
		return err
	}
	simulator.WriteSummary(os.Stdout, result)

	if c.Out != "" {
		if err := fileutil.WriteJSON(c.Out, result.Report()); err != nil {
			return err
		}
		logger.Info("report written", "path", c.Out)
	}
	if c.History != "" {
		err := fileutil.WriteAtomic(c.History, 0o644, func(w io.Writer) error {
			return phh.WriteSession(w, hands)
		})
		if err != nil {
			return err
		}
		logger.Info("hand histories written", "path", c.History, "hands", len(hands))
	}
	return nil
}
