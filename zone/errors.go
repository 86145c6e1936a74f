package zone

import "errors"

var (
	// ErrEmpty is returned when a zone system is built from no zones.
	ErrEmpty = errors.New("zone: zone system has no zones")

	// ErrInvalidNumber is returned for zone numbers <= 0.
	ErrInvalidNumber = errors.New("zone: zone number must be positive")

	// ErrDuplicateZone is returned when two zones share a number.
	ErrDuplicateZone = errors.New("zone: duplicate zone number")

	// ErrUnknownZone is returned when a zone number is not part of the system.
	ErrUnknownZone = errors.New("zone: unknown zone")

	// ErrDistanceShape is returned when a supplied distance matrix is not N×N.
	ErrDistanceShape = errors.New("zone: distance matrix does not match zone count")
)
