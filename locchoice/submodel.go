package locchoice

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/zonechoice/choice"
	"github.com/katalvlaran/zonechoice/clock"
	"github.com/katalvlaran/zonechoice/pdcube"
	"github.com/katalvlaran/zonechoice/timeperiod"
	"github.com/katalvlaran/zonechoice/utility"
	"github.com/katalvlaran/zonechoice/zone"
)

// Query is one probability request. Previous and Next are flat zone
// indices of the anchors; Available is the time budget in minutes for the
// detour previous → destination → next.
type Query struct {
	Previous  int
	Next      int
	Start     clock.Time
	Available clock.Time
}

// Submodel is one activity kind: its utility surfaces, its PD cube and the
// same-PD multipliers per period.
type Submodel struct {
	kind      Kind
	builder   *utility.Builder
	cube      *pdcube.Cube
	expSamePD []float64
	zones     *zone.System
	periods   *timeperiod.Set
	scalar    bool
}

// Kind returns the activity kind served.
func (s *Submodel) Kind() Kind { return s.kind }

// Builder exposes the utility surfaces.
func (s *Submodel) Builder() *utility.Builder { return s.builder }

// Cube exposes the PD cube.
func (s *Submodel) Cube() *pdcube.Cube { return s.cube }

// load rebuilds surfaces and, unless estimating with a cube already built, the PD cube.
func (s *Submodel) load(ctx context.Context, in *utility.Inputs, iteration int) error {
	pp := s.builder.PeriodParams()
	s.expSamePD = make([]float64, len(pp))
	for tp := range pp {
		s.expSamePD[tp] = math.Exp(pp[tp].SamePD)
	}
	if !in.Estimation || s.cube == nil {
		constants := make([][]pdcube.ODConstant, len(pp))
		for tp := range pp {
			constants[tp] = pp[tp].ODConstants
		}
		cube, err := pdcube.Build(ctx, s.zones.PlanningDistricts(), constants)
		if err != nil {
			return fmt.Errorf("%s: %w", s.kind, err)
		}
		s.cube = cube
	}
	return s.builder.Load(ctx, in, iteration)
}

// Probabilities writes the unnormalized weight of every destination into
// space (one slot per zone) and returns their sum. A sum <= 0 means no
// destination is feasible.
func (s *Submodel) Probabilities(q Query, space []float64) (float64, error) {
	if !s.builder.Loaded() || s.cube == nil {
		return 0, ErrNotLoaded
	}
	n := s.zones.Len()
	if len(space) != n {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrScratchSize, len(space), n)
	}
	if q.Previous < 0 || q.Previous >= n || q.Next < 0 || q.Next >= n {
		return 0, fmt.Errorf("%w: previous=%d next=%d", ErrAnchorOutOfRange, q.Previous, q.Next)
	}

	tp := s.periods.Find(q.Start)
	period := s.periods.Period(tp)
	if !period.Loaded() {
		return 0, fmt.Errorf("%s: %w", period.Name, timeperiod.ErrNotLoaded)
	}
	flatPD := s.zones.FlatPDIndex()
	pIndex, nIndex := flatPD[q.Previous], flatPD[q.Next]
	row := s.cube.Row(tp, pIndex, nIndex)

	pOff, nOff := q.Previous*n, q.Next*n
	rowT := period.RowTimes[pOff : pOff+n]
	colT := period.ColumnTimes[nOff : nOff+n]
	to := s.builder.To(tp)[pOff : pOff+n]
	from := s.builder.From(tp)[nOff : nOff+n]
	available := q.Available.Minutes()
	cexp := s.cube.Exps(tp)

	if s.scalar {
		return probabilitiesScalar(space, rowT, colT, to, from, row, flatPD, cexp,
			pIndex, nIndex, s.expSamePD[tp], available), nil
	}
	odMultipliers(space, row, flatPD, cexp, pIndex, nIndex, s.expSamePD[tp])
	return maskedProduct(space, rowT, colT, to, from, available), nil
}

// Normalized is Probabilities followed by division by the sum when it is positive.
func (s *Submodel) Normalized(q Query, space []float64) (float64, error) {
	total, err := s.Probabilities(q, space)
	if err != nil || total <= 0 {
		return total, err
	}
	inv := 1 / total
	for i := range space {
		space[i] *= inv
	}
	return total, nil
}

// Choose samples a destination flat index with the uniform draw u in [0, 1).
// ok is false when no destination is feasible.
func (s *Submodel) Choose(q Query, space []float64, u float64) (int, bool, error) {
	total, err := s.Probabilities(q, space)
	if err != nil {
		return -1, false, err
	}
	i, ok := choice.Sample(space, total, u)
	return i, ok, nil
}
