package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
server {
  address      = "0.0.0.0"
  port         = 9090
  log_level    = "debug"
  idle_timeout = "5m"
  bankroll     = 500
}

room "main" {
  ante  = 20
  seats = ["you", "AI_1", "AI_2"]
}

room "quiet" {
  seats = ["you", "AI_nit"]
}

profile "Maniac" {
  weight           = 0.5
  bluff            = 0.3
  bet_aggression   = 0.9
  raise_aggression = 0.9
  call_tightness   = 0.1
  semi_bluff       = 0.4
  street_weights   = [1.5, 1.5, 1.2, 1.1, 1.0]
}

profile "Calling Station" {
  weight           = 0.1
  bluff            = 0
  bet_aggression   = 0.1
  raise_aggression = 0.05
  call_tightness   = 0
  semi_bluff       = 0
}
`

func TestParse(t *testing.T) {
	t.Parallel()

	c, err := Parse([]byte(sample), "sample.hcl")
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, "0.0.0.0:9090", c.Addr())
	assert.Equal(t, "debug", c.Server.LogLevel)
	assert.Equal(t, 500, c.Server.Bankroll)
	d, err := c.IdleTimeout()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, d)

	main, ok := c.Room("main")
	require.True(t, ok)
	assert.Equal(t, 20, main.Ante)
	assert.Equal(t, []string{"you", "AI_1", "AI_2"}, main.Seats)

	quiet, ok := c.Room("quiet")
	require.True(t, ok)
	assert.Equal(t, 10, quiet.Ante)

	_, ok = c.Room("missing")
	assert.False(t, ok)
}

func TestProfileTableMergesOverrides(t *testing.T) {
	t.Parallel()

	c, err := Parse([]byte(sample), "sample.hcl")
	require.NoError(t, err)

	table := c.ProfileTable()
	require.Len(t, table, 6)

	maniac, ok := table.Lookup("Maniac")
	require.True(t, ok)
	assert.InDelta(t, 0.5, maniac.Weight, 1e-9)
	assert.InDelta(t, 1.5, maniac.StreetWeights[0], 1e-9)

	station, ok := table.Lookup("calling station")
	require.True(t, ok)
	assert.Equal(t, [5]float64{1, 1, 1, 1, 1}, station.StreetWeights)

	_, ok = table.Lookup("Nit")
	assert.True(t, ok, "stock profiles stay unless replaced")
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, "localhost:8080", c.Addr())
	assert.Equal(t, "info", c.Server.LogLevel)
	assert.Len(t, c.ProfileTable(), 5)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	c, err := Load(filepath.Join(dir, "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	path := filepath.Join(dir, "sevenstud.hcl")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, c.Server.Port)

	bad := filepath.Join(dir, "bad.hcl")
	require.NoError(t, os.WriteFile(bad, []byte("server {"), 0o600))
	_, err = Load(bad)
	require.Error(t, err)
}

func TestValidateRejects(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"bad port":      `server { port = 70000 }`,
		"bad level":     `server { log_level = "loud" }`,
		"bad timeout":   `server { idle_timeout = "soon" }`,
		"one seat":      "server {}\nroom \"r\" { seats = [\"you\"] }",
		"duplicate":     "server {}\nroom \"r\" { seats = [\"a\", \"b\"] }\nroom \"r\" { seats = [\"a\", \"b\"] }",
		"short weights": "server {}\nprofile \"x\" {\n weight = 1\n bluff = 0\n bet_aggression = 0\n raise_aggression = 0\n call_tightness = 0\n semi_bluff = 0\n street_weights = [1]\n}",
		"bad coeff":     "server {}\nprofile \"x\" {\n weight = 1\n bluff = 2\n bet_aggression = 0\n raise_aggression = 0\n call_tightness = 0\n semi_bluff = 0\n}",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			c, err := Parse([]byte(src), name+".hcl")
			require.NoError(t, err)
			assert.Error(t, c.Validate())
		})
	}
}

func TestParseRejectsUnknownBlocks(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("server {}\ntable \"x\" {}"), "x.hcl")
	require.Error(t, err)
}
