package config

import (
	"errors"
)

// Sentinel kinds for scorebook configuration. Load wraps the koanf,
// file, and validation detail inside these so callers can errors.Is
// without depending on the loader's internals.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
