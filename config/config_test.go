package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timpalpant/efg/gamestate"
	"github.com/timpalpant/efg/solver"
)

func writeConfig(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "solver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Player)
	assert.Equal(t, "zerosum", cfg.Mode)
	assert.Equal(t, 1e-10, cfg.Tolerance)
	assert.Equal(t, 1e-6, cfg.IntegralityTolerance)
	assert.Equal(t, 100, cfg.MaxIterations)
	assert.False(t, cfg.DoubleOracle)

	opts, err := cfg.SolverOptions()
	require.NoError(t, err)
	assert.Equal(t, gamestate.Player1, opts.Player)
	assert.Equal(t, solver.ZeroSum, opts.Mode)
	assert.Equal(t, time.Duration(0), opts.Engine.TimeLimit)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
player: 2
mode: stackelberg
tolerance: 1e-8
time_limit: 30s
normalize_payoffs: true
double_oracle: true
max_iterations: 7
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1e-6, cfg.IntegralityTolerance)

	opts, err := cfg.SolverOptions()
	require.NoError(t, err)
	assert.Equal(t, gamestate.Player2, opts.Player)
	assert.Equal(t, solver.Stackelberg, opts.Mode)
	assert.True(t, opts.NormalizePayoffs)
	assert.Equal(t, 1e-8, opts.Engine.Tolerance)
	assert.Equal(t, 30*time.Second, opts.Engine.TimeLimit)
	assert.True(t, cfg.DoubleOracle)
	assert.Equal(t, 7, cfg.MaxIterations)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "player: 2\nmode: stackelberg\n")
	t.Setenv("EFG_MODE", "zerosum")
	t.Setenv("EFG_TIME_LIMIT", "1m")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Player)
	assert.Equal(t, "zerosum", cfg.Mode)
	assert.Equal(t, time.Minute, cfg.TimeLimit)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSolverOptionsInvalid(t *testing.T) {
	base := Config{Player: 1, Mode: "zerosum", Tolerance: 1e-10, IntegralityTolerance: 1e-6}
	_, err := base.SolverOptions()
	require.NoError(t, err)

	for _, tc := range []struct {
		name   string
		modify func(*Config)
	}{
		{"player", func(c *Config) { c.Player = 3 }},
		{"mode", func(c *Config) { c.Mode = "cooperative" }},
		{"tolerance", func(c *Config) { c.Tolerance = 0 }},
		{"time limit", func(c *Config) { c.TimeLimit = -time.Second }},
		{"max iterations", func(c *Config) { c.MaxIterations = -1 }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.modify(&cfg)
			_, err := cfg.SolverOptions()
			assert.Error(t, err)
		})
	}
}
