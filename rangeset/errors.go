package rangeset

import "errors"

var (
	// ErrSyntax is returned when a range-set literal cannot be parsed.
	ErrSyntax = errors.New("rangeset: invalid syntax")

	// ErrReversedRange is returned for a range whose start exceeds its stop ("9-3").
	ErrReversedRange = errors.New("rangeset: range start greater than stop")
)
