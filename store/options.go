package store

import (
	"go.uber.org/zap"

	"github.com/stein197/rehook/state"
)

type config struct {
	logger *zap.Logger
	equal  state.EqualFunc[any]
}

func newConfig(opts []Option) config {
	cfg := config{
		logger: zap.NewNop(),
		equal:  state.Same[any],
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Option configures a Store or Broadcast.
type Option func(*config)

// WithLogger installs a logger for write and fan-out diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithEqualFunc replaces the policy used to suppress redundant keyed
// writes. The default is reference equality; installing a structural
// policy changes which writes notify and is a distinct behavior, not an
// optimization.
func WithEqualFunc(fn state.EqualFunc[any]) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.equal = fn
		}
	}
}
