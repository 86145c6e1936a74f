package utility

import "errors"

var (
	// ErrShape indicates land-use or mask data whose length differs from the zone count.
	ErrShape = errors.New("utility: data length does not match zone count")

	// ErrPeriodCount indicates a parameter set whose period count differs from the model's.
	ErrPeriodCount = errors.New("utility: time period count mismatch")

	// ErrNotLoaded indicates a surface read before Load.
	ErrNotLoaded = errors.New("utility: surfaces not loaded")

	// ErrMissingInput indicates a nil zone system, period set or network.
	ErrMissingInput = errors.New("utility: missing input")
)
