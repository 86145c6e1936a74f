package autoown

import "errors"

var (
	// ErrNoHomeZone is returned for a household without a home zone.
	ErrNoHomeZone = errors.New("autoown: household has no home zone")

	// ErrNotLoaded is returned for predictions issued before Load.
	ErrNotLoaded = errors.New("autoown: model not loaded")

	// ErrInvalidConfig wraps failures detected by New.
	ErrInvalidConfig = errors.New("autoown: invalid configuration")

	// ErrShape is returned when a land-use input does not have one entry per zone.
	ErrShape = errors.New("autoown: input shape differs from zone count")

	// ErrLevel is returned for an ownership level outside 0..MaxLevel.
	ErrLevel = errors.New("autoown: ownership level out of range")

	// ErrNoProbability is returned when every K-factor weighted level has zero mass.
	ErrNoProbability = errors.New("autoown: all ownership levels have zero probability")
)
