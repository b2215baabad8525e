package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SCOREBOOK_CONFIG is set
//  3. env (prefix SCOREBOOK_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SCOREBOOK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SCOREBOOK_ADDR, SCOREBOOK_DB_PATH, ...
	// Map env keys like SCOREBOOK_DB_PATH -> db_path (flat keys),
	// preserving underscores to match koanf tags on the struct.
	envProvider := env.Provider("SCOREBOOK_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "scorebook_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.BoardRankLimit < 1 {
		return fmt.Errorf("%w: board_rank_limit must be positive", ErrInvalidConfig)
	}
	// One value per rank; a short schedule would silently pay 0 to the
	// trailing ranks.
	if len(c.TeamBonusFour) != 4 {
		return fmt.Errorf("%w: team_bonus_four must list exactly 4 values", ErrInvalidConfig)
	}
	if len(c.TeamBonusThree) != 3 {
		return fmt.Errorf("%w: team_bonus_three must list exactly 3 values", ErrInvalidConfig)
	}
	for _, schedule := range [][]int{c.TeamBonusFour, c.TeamBonusThree} {
		for _, v := range schedule {
			if v < 0 {
				return fmt.Errorf("%w: bonus schedules must be non-negative", ErrInvalidConfig)
			}
		}
	}
	return nil
}
