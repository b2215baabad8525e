// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// DBPath points the sqlite snapshot store at a file. Empty keeps
	// the snapshot in memory only.
	DBPath string `koanf:"db_path"`

	// AdminPIN gates mutating endpoints. Empty disables the gate.
	AdminPIN string `koanf:"admin_pin"`

	// BoardRankLimit caps ranking boards at this many ranks.
	BoardRankLimit int `koanf:"board_rank_limit"`

	// CollatorLocale selects the locale for name ordering.
	CollatorLocale string `koanf:"collator_locale"`

	// TeamBonusFour is the rank->bonus schedule with four active teams.
	TeamBonusFour []int `koanf:"team_bonus_four"`

	// TeamBonusThree is the schedule with three or fewer active teams.
	TeamBonusThree []int `koanf:"team_bonus_three"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":8090",
		DBPath:         "",
		AdminPIN:       "",
		BoardRankLimit: 5,
		CollatorLocale: "ko",
		TeamBonusFour:  []int{4, 3, 2, 1},
		TeamBonusThree: []int{4, 2, 1},
	}
}
