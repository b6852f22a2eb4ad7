// Package config loads solver settings from a YAML file and EFG_*
// environment variables.
package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"

	"github.com/timpalpant/efg/gamestate"
	"github.com/timpalpant/efg/lp"
	"github.com/timpalpant/efg/solver"
)

type Config struct {
	// Player is the solving player, numbered 1 or 2 as in game files.
	Player               int           `yaml:"player" env:"EFG_PLAYER" env-default:"1" env-description:"solving player (1 or 2)"`
	Mode                 string        `yaml:"mode" env:"EFG_MODE" env-default:"zerosum" env-description:"zerosum or stackelberg"`
	Tolerance            float64       `yaml:"tolerance" env:"EFG_TOLERANCE" env-default:"1e-10"`
	IntegralityTolerance float64       `yaml:"integrality_tolerance" env:"EFG_INTEGRALITY_TOLERANCE" env-default:"1e-6"`
	TimeLimit            time.Duration `yaml:"time_limit" env:"EFG_TIME_LIMIT" env-description:"engine time limit, 0 for none"`
	NormalizePayoffs     bool          `yaml:"normalize_payoffs" env:"EFG_NORMALIZE_PAYOFFS"`
	DoubleOracle         bool          `yaml:"double_oracle" env:"EFG_DOUBLE_ORACLE"`
	MaxIterations        int           `yaml:"max_iterations" env:"EFG_MAX_ITERATIONS" env-default:"100"`
}

// Load reads the configuration from the YAML file at path, if any,
// with environment variables taking precedence.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, errors.Wrap(err, "reading environment")
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, errors.Wrapf(err, "reading config %v", path)
	}
	return cfg, nil
}

// SolverOptions validates the configuration and converts it to
// solver options.
func (c *Config) SolverOptions() (solver.Options, error) {
	opts := solver.DefaultOptions()
	player, err := gamestate.PlayerFromNumber(c.Player)
	if err != nil {
		return opts, err
	}
	mode, err := solver.ParseMode(c.Mode)
	if err != nil {
		return opts, err
	}
	if c.Tolerance <= 0 || c.IntegralityTolerance <= 0 {
		return opts, errors.Errorf("tolerances must be positive: %v, %v",
			c.Tolerance, c.IntegralityTolerance)
	}
	if c.TimeLimit < 0 {
		return opts, errors.Errorf("negative time limit: %v", c.TimeLimit)
	}
	if c.MaxIterations < 0 {
		return opts, errors.Errorf("negative max iterations: %d", c.MaxIterations)
	}

	opts.Player = player
	opts.Mode = mode
	opts.NormalizePayoffs = c.NormalizePayoffs
	opts.Engine = lp.Options{
		Tolerance:            c.Tolerance,
		IntegralityTolerance: c.IntegralityTolerance,
		TimeLimit:            c.TimeLimit,
	}
	return opts, nil
}
