package utility

import "github.com/rs/zerolog"

// DefaultScalarKernels selects the lane-blocked estimation kernel by default.
const DefaultScalarKernels = false

// Option configures a Builder.
type Option func(*Options)

// Options holds Builder settings after applying Option setters.
type Options struct {
	scalar bool
	log    zerolog.Logger
}

// WithScalarKernels forces the scalar reference kernel for estimation logsums.
func WithScalarKernels() Option {
	return func(o *Options) { o.scalar = true }
}

// WithLogger routes batch-phase diagnostics to l.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.log = l }
}

func gatherOptions(user ...Option) Options {
	o := Options{scalar: DefaultScalarKernels, log: zerolog.Nop()}
	for _, opt := range user {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
