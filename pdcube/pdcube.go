// Package pdcube precomputes the planning-district constant cube: for every
// time period and every (previous PD, next PD, PD of interest) triple, the
// index of the first OD constant whose three range sets all contain the
// respective districts, or -1 when none matches.
//
// The cube trades O(P³) memory per period for O(1) lookups on the hot
// query path, where a linear scan would run once per candidate zone.
//
// Layout per period (P = number of planning districts):
//
//	cells[(prev*P + next)*P + interest]
//
// so Row(tp, prev, next) is a contiguous slice indexed by the PD of interest.
package pdcube

import (
	"context"
	"errors"
	"math"

	"github.com/katalvlaran/zonechoice/internal/parallel"
	"github.com/katalvlaran/zonechoice/rangeset"
)

// ErrNoDistricts is returned when the cube is built without planning districts.
var ErrNoDistricts = errors.New("pdcube: no planning districts")

// NoMatch marks a triple without an applicable OD constant (multiplier 1).
const NoMatch = -1

// ODConstant applies Constant to trips whose previous anchor, destination and
// next anchor lie in the Previous, Interest and Next planning districts.
type ODConstant struct {
	Previous rangeset.Set `yaml:"previous"`
	Interest rangeset.Set `yaml:"interest"`
	Next     rangeset.Set `yaml:"next"`
	Constant float64      `yaml:"constant"`
}

// Matches reports whether the constant applies to the PD triple.
func (c ODConstant) Matches(prevPD, interestPD, nextPD int) bool {
	return c.Previous.Contains(prevPD) && c.Interest.Contains(interestPD) && c.Next.Contains(nextPD)
}

// LinearScan returns the index of the first constant matching the triple, or
// NoMatch. Arguments are planning-district numbers, not cube indices.
func LinearScan(constants []ODConstant, prevPD, interestPD, nextPD int) int {
	for i, c := range constants {
		if c.Matches(prevPD, interestPD, nextPD) {
			return i
		}
	}
	return NoMatch
}

// Cube is the immutable lookup built by Build; safe for concurrent reads.
type Cube struct {
	p     int
	cells [][]int32   // [period][(prev*P+next)*P+interest]
	exp   [][]float64 // [period][constant] = exp(Constant)
}

// Build computes the cube for the ordered planning districts pds (cube index
// k stands for pds[k]) and one constant list per time period. Previous-PD
// slabs are filled in parallel.
//
// Complexity: O(T · P³ · C) time, O(T · P³) space.
func Build(ctx context.Context, pds []int, constants [][]ODConstant) (*Cube, error) {
	p := len(pds)
	if p == 0 {
		return nil, ErrNoDistricts
	}
	c := &Cube{
		p:     p,
		cells: make([][]int32, len(constants)),
		exp:   make([][]float64, len(constants)),
	}
	for tp, list := range constants {
		exps := make([]float64, len(list))
		for k, oc := range list {
			exps[k] = math.Exp(oc.Constant)
		}
		c.exp[tp] = exps

		cells := make([]int32, p*p*p)
		err := parallel.For(ctx, p, func(prev int) error {
			slab := cells[prev*p*p : (prev+1)*p*p]
			for next := 0; next < p; next++ {
				row := slab[next*p : (next+1)*p]
				for interest := 0; interest < p; interest++ {
					row[interest] = int32(LinearScan(list, pds[prev], pds[interest], pds[next]))
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		c.cells[tp] = cells
	}
	return c, nil
}

// Districts returns P.
func (c *Cube) Districts() int { return c.p }

// Periods returns the number of time periods.
func (c *Cube) Periods() int { return len(c.cells) }

// Index returns the matching constant index for cube indices, or NoMatch.
func (c *Cube) Index(tp, prev, next, interest int) int {
	return int(c.cells[tp][(prev*c.p+next)*c.p+interest])
}

// Row returns the interest-indexed slice for (prev, next). Callers must not modify it.
func (c *Cube) Row(tp, prev, next int) []int32 {
	off := (prev*c.p + next) * c.p
	return c.cells[tp][off : off+c.p : off+c.p]
}

// Exp returns exp(Constant) of constant idx in period tp.
func (c *Cube) Exp(tp, idx int) float64 { return c.exp[tp][idx] }

// Exps returns exp(Constant) for every constant of period tp. Callers must not modify it.
func (c *Cube) Exps(tp int) []float64 { return c.exp[tp] }

// Multiplier returns exp(Constant) for idx, or 1 for NoMatch.
func (c *Cube) Multiplier(tp int, idx int32) float64 {
	if idx < 0 {
		return 1
	}
	return c.exp[tp][idx]
}
