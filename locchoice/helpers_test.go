package locchoice_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/zonechoice/clock"
	"github.com/katalvlaran/zonechoice/landuse"
	"github.com/katalvlaran/zonechoice/locchoice"
	"github.com/katalvlaran/zonechoice/matrix"
	"github.com/katalvlaran/zonechoice/network"
	"github.com/katalvlaran/zonechoice/timeperiod"
	"github.com/katalvlaran/zonechoice/utility"
	"github.com/katalvlaran/zonechoice/zone"
)

// fixed is a uniform source that always returns the same draw.
type fixed float64

func (f fixed) Float64() float64 { return float64(f) }

// scenario is a single-period model over an explicit auto time table.
// Only professional full-time jobs attract (coefficient 1), every other
// coefficient is zero and there is no transit, so a destination's weight is
// (1 + jobs) times its OD multipliers.
type scenario struct {
	zones      []zone.Zone
	times      []float64
	jobs       []float64
	period     utility.PeriodParams
	estimation bool
}

func threeZones() scenario {
	return scenario{
		zones: []zone.Zone{
			{Number: 1, PlanningDistrict: 1},
			{Number: 2, PlanningDistrict: 1},
			{Number: 3, PlanningDistrict: 2},
		},
		times: []float64{1, 1, 1, 1, 1, 1, 1, 1, 1},
		jobs:  []float64{0, 1, 2},
	}
}

func build(sc scenario, opts ...locchoice.Option) (*locchoice.Model, error) {
	zs, err := zone.NewSystem(sc.zones)
	if err != nil {
		return nil, err
	}
	n := zs.Len()
	whole := clock.Interval{Start: clock.StartOfDay, End: clock.EndOfDay}

	tt, err := matrix.NewDenseFrom(n, n, sc.times, matrix.WithAllowInfDistances())
	if err != nil {
		return nil, err
	}
	auto, err := network.NewAutoSkim(locchoice.DefaultAutoNetwork, n, network.AutoPeriod{Window: whole, Time: tt})
	if err != nil {
		return nil, err
	}
	zero, _ := matrix.NewSquare(n)
	transit, err := network.NewTransitSkim(locchoice.DefaultTransitNetwork, n,
		network.TransitPeriod{Window: whole, IVTT: zero, Walk: zero, Wait: zero})
	if err != nil {
		return nil, err
	}
	reg, err := network.NewRegistry(auto, transit)
	if err != nil {
		return nil, err
	}
	periods, err := timeperiod.NewSet(&timeperiod.Period{Name: "day", Window: whole})
	if err != nil {
		return nil, err
	}

	deps := locchoice.Deps{Zones: zs, Periods: periods, Networks: reg}
	for c := utility.Category(0); c < utility.NumCategories; c++ {
		v := make([]float64, n)
		if c == utility.ProfessionalFullTime {
			copy(v, sc.jobs)
		}
		deps.Employment[c] = landuse.NewStatic[[]float64](c.String(), v)
	}

	cfg := locchoice.DefaultConfig()
	cfg.Estimation = sc.estimation
	for k := range cfg.Submodels {
		var p utility.Params
		p.Employment[utility.ProfessionalFullTime] = 1
		cfg.Submodels[k] = locchoice.SubmodelConfig{Params: p, Periods: []utility.PeriodParams{sc.period}}
	}
	m, err := locchoice.New(cfg, deps, opts...)
	if err != nil {
		return nil, err
	}
	if err := m.Load(context.Background(), 0); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return m, nil
}

// market returns a market episode at start in a fresh schedule of a
// household living in home.
func market(home int, start clock.Time) *locchoice.Episode {
	s := &locchoice.Schedule{HouseholdID: 7, HomeZone: home}
	return &locchoice.Episode{Activity: locchoice.Market, Start: start, Duration: 30, OriginalDuration: 30, Schedule: s}
}

func newDense(n int, data []float64) (*matrix.Dense, error) {
	return matrix.NewDenseFrom(n, n, data)
}

func staticZeros(n int) landuse.Source[[]float64] {
	return landuse.NewStatic[[]float64]("zeros", make([]float64, n))
}
