package locchoice

import "errors"

var (
	// ErrNoHomeZone is returned when an episode needs the household's home
	// zone as an anchor and the household has none.
	ErrNoHomeZone = errors.New("locchoice: household has no home zone")

	// ErrScratchSize is returned when a caller-supplied buffer is not one slot per zone.
	ErrScratchSize = errors.New("locchoice: scratch buffer length differs from zone count")

	// ErrAnchorOutOfRange is returned for a query whose anchor flat index is outside 0..N-1.
	ErrAnchorOutOfRange = errors.New("locchoice: anchor zone index out of range")

	// ErrNotLoaded is returned for queries issued before Load completed.
	ErrNotLoaded = errors.New("locchoice: model not loaded")

	// ErrUnsupportedActivity is returned by probability queries for activities
	// no submodel handles.
	ErrUnsupportedActivity = errors.New("locchoice: activity has no location-choice submodel")

	// ErrInvalidConfig wraps configuration failures detected by New.
	ErrInvalidConfig = errors.New("locchoice: invalid configuration")
)
