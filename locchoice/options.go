package locchoice

import "github.com/rs/zerolog"

// Option configures a Model.
type Option func(*Options)

// Options holds Model settings after applying Option setters.
type Options struct {
	scalar bool
	log    zerolog.Logger
}

// WithScalarKernels forces the fused scalar reference path for every
// probability query and estimation logsum.
func WithScalarKernels() Option {
	return func(o *Options) { o.scalar = true }
}

// WithLogger routes Load diagnostics to l. The query path never logs.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.log = l }
}

func gatherOptions(user ...Option) Options {
	o := Options{log: zerolog.Nop()}
	for _, opt := range user {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
