package autoown

import "github.com/rs/zerolog"

// Option configures a Model.
type Option func(*Options)

// Options holds Model settings after applying Option setters.
type Options struct {
	log zerolog.Logger
}

// WithLogger routes Load diagnostics to l.
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
