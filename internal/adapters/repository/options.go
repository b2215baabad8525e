package repository

import "github.com/goldinfc/scorebook/pkg/logger"

// Option applies a configuration option to a store.
type Option func(*options)

type options struct {
	log logger.Logger
}

// WithLogger sets the logger used for store diagnostics.
func WithLogger(log logger.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

func newOptions(opts ...Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
