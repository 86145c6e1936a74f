package landuse

import (
	"fmt"

	"github.com/katalvlaran/zonechoice/matrix"
	"github.com/katalvlaran/zonechoice/rangeset"
	"github.com/katalvlaran/zonechoice/zone"
)

// Masked keeps the cells of a base OD source whose origin and destination
// zone numbers fall in the given ranges and overwrites the rest.
type Masked struct {
	state[*matrix.Dense]
	base        Source[*matrix.Dense]
	origins     rangeset.Set
	destination rangeset.Set
	value       float64
	zones       *zone.System
}

// NewMasked creates an unloaded masking source over base.
func NewMasked(name string, base Source[*matrix.Dense], origins, destinations rangeset.Set, maskedValue float64, zones *zone.System) *Masked {
	return &Masked{
		state:       state[*matrix.Dense]{name: name},
		base:        base,
		origins:     origins,
		destination: destinations,
		value:       maskedValue,
		zones:       zones,
	}
}

// Load implements Source. The base source is acquired for the duration of the call.
func (m *Masked) Load() error {
	return m.load(func() (*matrix.Dense, error) {
		src, release, err := Acquire(m.base)
		if err != nil {
			return nil, err
		}
		defer release()
		if err := matrix.ValidateOD(src, m.zones.Len()); err != nil {
			return nil, fmt.Errorf("%s: %w: %v", m.Name(), ErrShape, err)
		}
		return matrix.Mask(src, m.zones.Mask(m.origins), m.zones.Mask(m.destination), m.value)
	})
}

// Unload implements Source.
func (m *Masked) Unload() { m.unload() }

// Difference is the element-wise first − second of two OD sources.
type Difference struct {
	state[*matrix.Dense]
	first, second Source[*matrix.Dense]
}

// NewDifference creates an unloaded rate-difference source.
func NewDifference(name string, first, second Source[*matrix.Dense]) *Difference {
	return &Difference{state: state[*matrix.Dense]{name: name}, first: first, second: second}
}

// Load implements Source.
func (d *Difference) Load() error {
	return d.load(func() (*matrix.Dense, error) {
		a, releaseA, err := Acquire(d.first)
		if err != nil {
			return nil, err
		}
		defer releaseA()
		b, releaseB, err := Acquire(d.second)
		if err != nil {
			return nil, err
		}
		defer releaseB()
		out, err := matrix.Sub(a, b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", d.Name(), ErrShape, err)
		}
		return out, nil
	})
}

// Unload implements Source.
func (d *Difference) Unload() { d.unload() }
