package store

import "go.uber.org/zap"

// Option configures a Persistence backend.
type Option func(*options)

type options struct {
	log *zap.Logger
}

// WithLogger sets the logger used for watch failures. The default discards.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
