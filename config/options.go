package config

import "github.com/rs/zerolog"

// Option configures Build.
type Option func(*Options)

// Options holds Build settings after applying Option setters.
type Options struct {
	log    zerolog.Logger
	scalar bool
}

// WithLogger hands l to every model Build creates.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.log = l }
}

// WithScalarKernels makes the location-choice model use its scalar kernels.
func WithScalarKernels() Option {
	return func(o *Options) { o.scalar = true }
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
