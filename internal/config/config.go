// Package config loads the HCL file that configures the server, its room
// presets and the bot personality table.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/sevenstud/internal/game"
)

// Config is the complete file.
type Config struct {
	Server   ServerSettings  `hcl:"server,block"`
	Rooms    []RoomConfig    `hcl:"room,block"`
	Profiles []ProfileConfig `hcl:"profile,block"`
}

// ServerSettings are the listener and house settings.
type ServerSettings struct {
	Address     string `hcl:"address,optional"`
	Port        int    `hcl:"port,optional"`
	LogLevel    string `hcl:"log_level,optional"`
	IdleTimeout string `hcl:"idle_timeout,optional"`
	Bankroll    int    `hcl:"bankroll,optional"`
}

// RoomConfig is a room created at startup.
type RoomConfig struct {
	Name  string   `hcl:"name,label"`
	Ante  int      `hcl:"ante,optional"`
	Seats []string `hcl:"seats"`
}

// ProfileConfig overrides or adds a bot personality.
type ProfileConfig struct {
	Name            string    `hcl:"name,label"`
	Weight          float64   `hcl:"weight"`
	Bluff           float64   `hcl:"bluff"`
	BetAggression   float64   `hcl:"bet_aggression"`
	RaiseAggression float64   `hcl:"raise_aggression"`
	CallTightness   float64   `hcl:"call_tightness"`
	SemiBluff       float64   `hcl:"semi_bluff"`
	StreetWeights   []float64 `hcl:"street_weights,optional"`
}

const (
	defaultAddress     = "localhost"
	defaultPort        = 8080
	defaultLogLevel    = "info"
	defaultIdleTimeout = "30m"
	defaultBankroll    = 1000
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads filename. A missing file yields Default.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var c Config
	if diags := gohcl.DecodeBody(file.Body, nil, &c); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = defaultAddress
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = defaultLogLevel
	}
	if c.Server.IdleTimeout == "" {
		c.Server.IdleTimeout = defaultIdleTimeout
	}
	if c.Server.Bankroll == 0 {
		c.Server.Bankroll = defaultBankroll
	}
	for i := range c.Rooms {
		if c.Rooms[i].Ante == 0 {
			c.Rooms[i].Ante = game.MinAnte
		}
	}
}

// Validate checks the configuration for values the server cannot use.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if _, err := log.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Server.LogLevel, err)
	}
	if _, err := c.IdleTimeout(); err != nil {
		return err
	}
	if c.Server.Bankroll < 0 {
		return fmt.Errorf("bankroll must not be negative")
	}

	seen := make(map[string]bool, len(c.Rooms))
	for _, r := range c.Rooms {
		if seen[r.Name] {
			return fmt.Errorf("room %s: defined more than once", r.Name)
		}
		seen[r.Name] = true
		if r.Ante < 0 {
			return fmt.Errorf("room %s: ante must not be negative", r.Name)
		}
		if n := len(r.Seats); n < 2 || n > game.MaxSeats {
			return fmt.Errorf("room %s: need 2 to %d seats, got %d", r.Name, game.MaxSeats, n)
		}
	}

	for _, p := range c.Profiles {
		if len(p.StreetWeights) != 0 && len(p.StreetWeights) != 5 {
			return fmt.Errorf("profile %s: street_weights needs 5 values, got %d", p.Name, len(p.StreetWeights))
		}
	}
	return c.ProfileTable().Validate()
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// IdleTimeout returns how long an untouched room is kept.
func (c *Config) IdleTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Server.IdleTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid idle_timeout %q: %w", c.Server.IdleTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("idle_timeout must be positive, got %s", d)
	}
	return d, nil
}

// Room returns the preset with the given name.
func (c *Config) Room(name string) (RoomConfig, bool) {
	i := slices.IndexFunc(c.Rooms, func(r RoomConfig) bool { return r.Name == name })
	if i < 0 {
		return RoomConfig{}, false
	}
	return c.Rooms[i], true
}

// ProfileTable merges the file's profiles into the stock archetypes. A
// profile with a stock name replaces it; other names are added.
func (c *Config) ProfileTable() game.ProfileTable {
	table := game.DefaultProfiles()
	for _, pc := range c.Profiles {
		p := pc.toProfile()
		i := slices.IndexFunc(table, func(q game.Profile) bool { return strings.EqualFold(q.Name, p.Name) })
		if i >= 0 {
			table[i] = p
		} else {
			table = append(table, p)
		}
	}
	return table
}

func (pc ProfileConfig) toProfile() game.Profile {
	p := game.Profile{
		Name:            pc.Name,
		Weight:          pc.Weight,
		Bluff:           pc.Bluff,
		BetAggression:   pc.BetAggression,
		RaiseAggression: pc.RaiseAggression,
		CallTightness:   pc.CallTightness,
		SemiBluff:       pc.SemiBluff,
	}
	for i := range p.StreetWeights {
		p.StreetWeights[i] = 1.0
		if i < len(pc.StreetWeights) {
			p.StreetWeights[i] = pc.StreetWeights[i]
		}
	}
	return p
}
