// Package utility builds the aggregate utility surfaces of a location-choice
// submodel: the per-zone attraction jSum and, per time period, the flat
// To[i*N+j] and From[j*N+i] arrays combining attraction with the auto and
// transit travel logsum.
//
// Load is a batch phase: rows are computed in parallel and the surfaces are
// mutated in place. Surfaces are read-only afterwards and safe for
// concurrent readers; Load must not run concurrently with itself or readers.
package utility

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/zonechoice/clock"
	"github.com/katalvlaran/zonechoice/internal/parallel"
	"github.com/katalvlaran/zonechoice/network"
	"github.com/katalvlaran/zonechoice/timeperiod"
	"github.com/katalvlaran/zonechoice/zone"
)

// Inputs are the collaborators a Load reads. Employment vectors and
// ValidDestinations are flat-indexed and must have one entry per zone.
type Inputs struct {
	Zones             *zone.System
	Periods           *timeperiod.Set
	Auto              network.Auto
	Transit           network.Transit
	Employment        [NumCategories][]float64
	ValidDestinations []bool
	Estimation        bool
}

func (in *Inputs) validate(periodParams int) error {
	if in.Zones == nil || in.Periods == nil || in.Auto == nil || in.Transit == nil {
		return ErrMissingInput
	}
	if in.Periods.Len() != periodParams {
		return fmt.Errorf("%w: model has %d, parameters have %d", ErrPeriodCount, in.Periods.Len(), periodParams)
	}
	n := in.Zones.Len()
	for c, v := range in.Employment {
		if len(v) != n {
			return fmt.Errorf("%s employment has %d entries for %d zones: %w", Category(c), len(v), n, ErrShape)
		}
	}
	if len(in.ValidDestinations) != n {
		return fmt.Errorf("valid destinations has %d entries for %d zones: %w", len(in.ValidDestinations), n, ErrShape)
	}
	return nil
}

// Builder owns the surfaces of one submodel.
type Builder struct {
	name    string
	params  Params
	periods []PeriodParams
	opts    Options

	expIntraZonal float64
	jSum          [][]float64
	to, from      [][]float64
	logsums       [][]float64 // estimation scratch, one per period
	loaded        bool
}

// NewBuilder creates an empty builder; surfaces are allocated on first Load.
func NewBuilder(name string, params Params, periods []PeriodParams, opts ...Option) *Builder {
	return &Builder{
		name:          name,
		params:        params,
		periods:       periods,
		opts:          gatherOptions(opts...),
		expIntraZonal: math.Exp(params.IntraZonal),
	}
}

// Name returns the submodel name used in errors and logs.
func (b *Builder) Name() string { return b.name }

// Params returns the coefficients.
func (b *Builder) Params() Params { return b.params }

// PeriodParams returns the per-period constants.
func (b *Builder) PeriodParams() []PeriodParams { return b.periods }

// Validate checks in against the builder without computing anything.
func (b *Builder) Validate(in *Inputs) error {
	if err := in.validate(len(b.periods)); err != nil {
		return fmt.Errorf("%s: %w", b.name, err)
	}
	return nil
}

// Load recomputes every surface. For iteration > 0 on an already loaded
// builder the new values are averaged 50/50 with the previous ones, except
// in estimation mode, where every load replaces the surfaces.
// Period travel-time tables (and the estimation cache) must already be loaded.
func (b *Builder) Load(ctx context.Context, in *Inputs, iteration int) error {
	if err := b.Validate(in); err != nil {
		return err
	}
	began := time.Now()
	n := in.Zones.Len()
	tps := in.Periods.Len()
	b.allocate(tps, n)
	blend := iteration > 0 && b.loaded && !in.Estimation

	b.computeAttraction(in)

	for tp := 0; tp < tps; tp++ {
		var err error
		if in.Estimation {
			err = b.loadEstimation(ctx, in, tp, blend)
		} else {
			err = b.loadNetwork(ctx, in, tp, blend)
		}
		if err != nil {
			return fmt.Errorf("%s period %d: %w", b.name, tp, err)
		}
	}
	b.loaded = true

	b.opts.log.Debug().
		Str("submodel", b.name).
		Int("zones", n).
		Int("periods", tps).
		Int("iteration", iteration).
		Bool("blended", blend).
		Bool("estimation", in.Estimation).
		Dur("took", time.Since(began)).
		Msg("utility surfaces loaded")
	return nil
}

func (b *Builder) allocate(tps, n int) {
	size := n * n
	if len(b.to) == tps && len(b.to[0]) == size {
		return
	}
	b.jSum = make([][]float64, tps)
	b.to = make([][]float64, tps)
	b.from = make([][]float64, tps)
	for tp := 0; tp < tps; tp++ {
		b.jSum[tp] = make([]float64, n)
		b.to[tp] = make([]float64, size)
		b.from[tp] = make([]float64, size)
	}
	b.logsums = nil
	b.loaded = false
}

// computeAttraction fills jSum[tp][j] = exp(Σ log(1+x)·w) · exp(PD constant),
// or 0 for zones outside the valid destinations.
func (b *Builder) computeAttraction(in *Inputs) {
	zones := in.Zones.Zones()
	for tp := range b.jSum {
		pp := &b.periods[tp]
		js := b.jSum[tp]
		for j, z := range zones {
			if !in.ValidDestinations[j] {
				js[j] = 0
				continue
			}
			u := 0.0
			for c := Category(0); c < NumCategories; c++ {
				u += math.Log(1+in.Employment[c][j]) * b.params.Employment[c]
			}
			u += math.Log(1+z.Population) * b.params.Population
			js[j] = math.Exp(u) * math.Exp(pp.pdConstant(z.PlanningDistrict))
		}
	}
}

// travelLogsum is exp(auto) + exp(transit) for one pair; 0 without an auto
// path, and no transit term without a transit path.
func (b *Builder) travelLogsum(auto network.Auto, transit network.Transit, i, j int, t clock.Time) float64 {
	ivtt, cost, ok := auto.AllData(i, j, t)
	if !ok {
		return 0
	}
	p := &b.params
	transitU := 0.0
	if td, ok := transit.AllData(i, j, t); ok && td.HasPath() {
		transitU = math.Exp(p.TransitConstant +
			p.TransitTime*td.IVTT +
			p.TransitWalk*td.Walk +
			p.TransitWait*td.Wait +
			p.TransitBoarding*td.Boarding +
			p.Cost*td.Fare)
	}
	return math.Exp(ivtt*p.AutoTime+cost*p.Cost) + transitU
}

func (b *Builder) store(tp, n, i int, blend bool, logsum func(j int) float64) {
	js, to, from := b.jSum[tp], b.to[tp], b.from[tp]
	base := i * n
	for j := 0; j < n; j++ {
		attraction := js[j]
		if i == j {
			attraction *= b.expIntraZonal
		}
		ls := logsum(j)
		t := attraction * ls
		if blend {
			to[base+j] = (t + to[base+j]) * 0.5
			from[j*n+i] = (ls + from[j*n+i]) * 0.5
			continue
		}
		to[base+j] = t
		from[j*n+i] = ls
	}
}

func (b *Builder) loadNetwork(ctx context.Context, in *Inputs, tp int, blend bool) error {
	n := in.Zones.Len()
	at := in.Periods.Period(tp).Window.Start
	return parallel.For(ctx, n, func(i int) error {
		b.store(tp, n, i, blend, func(j int) float64 {
			return b.travelLogsum(in.Auto, in.Transit, i, j, at)
		})
		return nil
	})
}

func (b *Builder) loadEstimation(ctx context.Context, in *Inputs, tp int, blend bool) error {
	n := in.Zones.Len()
	est := in.Periods.Period(tp).Estimation
	if est == nil {
		return timeperiod.ErrNotLoaded
	}
	if b.logsums == nil {
		b.logsums = make([][]float64, len(b.to))
	}
	if len(b.logsums[tp]) != n*n {
		b.logsums[tp] = make([]float64, n*n)
	}
	ls := b.logsums[tp]
	kernel := estimationLogsums
	if b.opts.scalar {
		kernel = estimationLogsumsScalar
	}
	return parallel.For(ctx, n, func(i int) error {
		base := i * n
		kernel(&b.params, est, ls, base, base+n)
		b.store(tp, n, i, blend, func(j int) float64 { return ls[base+j] })
		return nil
	})
}

// Loaded reports whether the surfaces have been computed.
func (b *Builder) Loaded() bool { return b.loaded }

// To returns the To surface of period tp ([i*N+j]). Callers must not modify it.
func (b *Builder) To(tp int) []float64 { return b.to[tp] }

// From returns the From surface of period tp ([j*N+i]). Callers must not modify it.
func (b *Builder) From(tp int) []float64 { return b.from[tp] }

// JSum returns the zone attraction of period tp.
func (b *Builder) JSum(tp int) []float64 { return b.jSum[tp] }
