package zone

import "github.com/katalvlaran/zonechoice/matrix"

// Option configures a System at construction.
type Option func(*Options)

// Options holds the construction-time settings of a System.
type Options struct {
	distances *matrix.Dense
}

// WithDistances supplies an explicit N×N distance matrix in meters, indexed
// by flat zone index. Without it, distances are Euclidean over zone X/Y.
func WithDistances(d *matrix.Dense) Option {
	return func(o *Options) { o.distances = d }
}
