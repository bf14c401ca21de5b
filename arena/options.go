package arena

import "log/slog"

// Option configures an arena.
type Option func(*config)

type config struct {
	source BlockSource
	logger *slog.Logger
}

func newConfig(opts []Option) config {
	c := config{
		source: Unlimited,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithSource sets the source backing blocks are acquired from. A nil
// source means Unlimited.
func WithSource(s BlockSource) Option {
	return func(c *config) {
		if s != nil {
			c.source = s
		}
	}
}

// WithLogger makes the arena log block acquisition and release at debug
// level. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
