package utility_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/zonechoice/clock"
	"github.com/katalvlaran/zonechoice/network"
	"github.com/katalvlaran/zonechoice/rangeset"
	"github.com/katalvlaran/zonechoice/timeperiod"
	"github.com/katalvlaran/zonechoice/utility"
	"github.com/katalvlaran/zonechoice/zone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridAuto: time = 1 + |o-d| * scale, cost 0.5; no path into flat index 3 (zone 4).
type gridAuto struct{ scale float64 }

func (a *gridAuto) Name() string { return "auto" }
func (a *gridAuto) TravelTime(o, d int, _ clock.Time) float64 {
	if d == 3 && o != 3 {
		return math.Inf(1)
	}
	return 1 + math.Abs(float64(o-d))*a.scale
}
func (a *gridAuto) AllData(o, d int, t clock.Time) (float64, float64, bool) {
	tt := a.TravelTime(o, d, t)
	if math.IsInf(tt, 1) {
		return 0, 0, false
	}
	return tt, 0.5, true
}

// stripeTransit has a path only from even origins.
type stripeTransit struct{}

func (stripeTransit) Name() string { return "transit" }
func (stripeTransit) AllData(o, d int, _ clock.Time) (network.TransitData, bool) {
	td := network.TransitData{IVTT: 10 + float64(d), Wait: 4, Boarding: 1, Fare: 3}
	if o%2 == 0 {
		td.Walk = 6
	}
	return td, td.HasPath()
}

type fixture struct {
	in *utility.Inputs
}

func newFixture(t *testing.T, estimation bool) *fixture {
	t.Helper()
	zs, err := zone.NewSystem([]zone.Zone{
		{Number: 1, PlanningDistrict: 1, Population: 100},
		{Number: 2, PlanningDistrict: 1, Population: 50},
		{Number: 3, PlanningDistrict: 2, Population: 10},
		{Number: 4, PlanningDistrict: 2, Population: 0},
	})
	require.NoError(t, err)
	am := &timeperiod.Period{Name: "am", Window: clock.Interval{Start: 360, End: 540}}
	rest := &timeperiod.Period{Name: "rest", Window: clock.Interval{Start: 540, End: clock.EndOfDay}}
	periods, err := timeperiod.NewSet(am, rest)
	require.NoError(t, err)

	auto := &gridAuto{scale: 2}
	require.NoError(t, periods.Load(context.Background(), zs.Len(), auto, stripeTransit{}, estimation))

	in := &utility.Inputs{
		Zones:             zs,
		Periods:           periods,
		Auto:              auto,
		Transit:           stripeTransit{},
		ValidDestinations: zs.Mask(rangeset.MustParse("1-3")),
		Estimation:        estimation,
	}
	for c := range in.Employment {
		in.Employment[c] = []float64{float64(c), 10, 0, 5}
	}
	return &fixture{in: in}
}

func params() (utility.Params, []utility.PeriodParams) {
	p := utility.Params{
		Population:      0.3,
		AutoTime:        -0.05,
		TransitConstant: -1,
		TransitTime:     -0.03,
		TransitWalk:     -0.08,
		TransitWait:     -0.06,
		TransitBoarding: -0.2,
		Cost:            -0.1,
		IntraZonal:      0.7,
	}
	for c := range p.Employment {
		p.Employment[c] = 0.1 * float64(c+1)
	}
	pp := []utility.PeriodParams{
		{PDConstants: []utility.SpatialRegion{
			{PlanningDistricts: rangeset.MustParse("2"), Constant: 0.4},
			{PlanningDistricts: rangeset.MustParse("1-2"), Constant: -9}, // shadowed for PD 2
		}},
		{},
	}
	return p, pp
}

func TestAttraction(t *testing.T) {
	f := newFixture(t, false)
	p, pp := params()
	b := utility.NewBuilder("market", p, pp)
	require.NoError(t, b.Load(context.Background(), f.in, 0))

	// zone 3 (flat 2): PD 2, first region wins with +0.4
	want := 0.0
	for c := 0; c < int(utility.NumCategories); c++ {
		want += math.Log(1+0) * p.Employment[c]
	}
	want = math.Exp(want+math.Log(1+10)*p.Population) * math.Exp(0.4)
	assert.InDelta(t, want, b.JSum(0)[2], 1e-12)

	// zone 4 is not a valid destination
	assert.Zero(t, b.JSum(0)[3])
	// PD 1 gets -9 in period 0 and nothing in period 1
	assert.InDelta(t, b.JSum(1)[1]*math.Exp(-9), b.JSum(0)[1], 1e-12)
}

func TestToFromContract(t *testing.T) {
	f := newFixture(t, false)
	p, pp := params()
	b := utility.NewBuilder("market", p, pp)
	require.NoError(t, b.Load(context.Background(), f.in, 0))

	n := 4
	to, from, js := b.To(0), b.From(0), b.JSum(0)
	auto := f.in.Auto
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			ivtt, cost, ok := auto.AllData(i, j, 360)
			ls := 0.0
			if ok {
				ls = math.Exp(ivtt*p.AutoTime + cost*p.Cost)
				if td, tok := f.in.Transit.AllData(i, j, 360); tok {
					ls += math.Exp(p.TransitConstant + p.TransitTime*td.IVTT + p.TransitWalk*td.Walk +
						p.TransitWait*td.Wait + p.TransitBoarding*td.Boarding + p.Cost*td.Fare)
				}
			}
			a := js[j]
			if i == j {
				a *= math.Exp(p.IntraZonal)
			}
			assert.InDelta(t, a*ls, to[i*n+j], 1e-12, "To[%d,%d]", i, j)
			assert.InDelta(t, ls, from[j*n+i], 1e-12, "From[%d,%d]", j, i)
		}
	}
	// no auto path into zone 4 (flat 3) from elsewhere: logsum 0
	assert.Zero(t, from[3*n+0])
	assert.Positive(t, from[2*n+0])
}

func TestBlending(t *testing.T) {
	f := newFixture(t, false)
	p, pp := params()
	b := utility.NewBuilder("market", p, pp)
	require.NoError(t, b.Load(context.Background(), f.in, 0))
	first := append([]float64(nil), b.To(0)...)

	// slow the network down and reload at iteration 1
	f.in.Auto.(*gridAuto).scale = 10
	fresh := utility.NewBuilder("fresh", p, pp)
	require.NoError(t, fresh.Load(context.Background(), f.in, 0))
	require.NoError(t, b.Load(context.Background(), f.in, 1))

	for k := range first {
		assert.InDelta(t, (first[k]+fresh.To(0)[k])*0.5, b.To(0)[k], 1e-12)
	}

	// iteration 0 never blends
	require.NoError(t, b.Load(context.Background(), f.in, 0))
	assert.InDeltaSlice(t, fresh.To(0), b.To(0), 1e-12)
}

func TestEstimationNeverBlends(t *testing.T) {
	f := newFixture(t, true)
	p, pp := params()
	b := utility.NewBuilder("market", p, pp)
	require.NoError(t, b.Load(context.Background(), f.in, 0))
	first := append([]float64(nil), b.To(0)...)

	for c := range f.in.Employment {
		f.in.Employment[c] = []float64{40, 0, 3, 1}
	}
	fresh := utility.NewBuilder("fresh", p, pp)
	require.NoError(t, fresh.Load(context.Background(), f.in, 0))
	require.NoError(t, b.Load(context.Background(), f.in, 3))

	assert.InDeltaSlice(t, fresh.To(0), b.To(0), 1e-12)
	assert.InDeltaSlice(t, fresh.From(1), b.From(1), 1e-12)
	assert.NotEqual(t, first, b.To(0))
}

func TestEstimationMatchesNetworkMode(t *testing.T) {
	p, pp := params()

	net := newFixture(t, false)
	nb := utility.NewBuilder("net", p, pp)
	require.NoError(t, nb.Load(context.Background(), net.in, 0))

	for _, opts := range [][]utility.Option{nil, {utility.WithScalarKernels()}} {
		est := newFixture(t, true)
		eb := utility.NewBuilder("est", p, pp, opts...)
		require.NoError(t, eb.Load(context.Background(), est.in, 0))
		for tp := 0; tp < 2; tp++ {
			assert.InDeltaSlice(t, nb.To(tp), eb.To(tp), 1e-12)
			assert.InDeltaSlice(t, nb.From(tp), eb.From(tp), 1e-12)
		}
	}
}

func TestLaneKernelMatchesScalar(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	p, _ := params()
	for _, size := range []int{1, 7, 8, 9, 16, 37} {
		e := &timeperiod.Estimation{
			AutoPath:        make([]bool, size),
			AutoIVTT:        make([]float64, size),
			AutoCost:        make([]float64, size),
			TransitIVTT:     make([]float64, size),
			TransitWalk:     make([]float64, size),
			TransitWait:     make([]float64, size),
			TransitBoarding: make([]float64, size),
			TransitFare:     make([]float64, size),
		}
		for k := 0; k < size; k++ {
			e.AutoPath[k] = r.Intn(5) > 0
			e.AutoIVTT[k] = r.Float64() * 60
			e.AutoCost[k] = r.Float64() * 5
			e.TransitIVTT[k] = r.Float64() * 60
			e.TransitWalk[k] = r.Float64()*20 - 5 // some <= 0: no transit path
			e.TransitWait[k] = r.Float64() * 10
			e.TransitBoarding[k] = float64(r.Intn(3))
			e.TransitFare[k] = 3.25
		}
		lane, scalar := make([]float64, size), make([]float64, size)
		utility.EstimationLogsums(&p, e, lane)
		utility.EstimationLogsumsScalar(&p, e, scalar)
		require.Equal(t, scalar, lane, "size %d", size)
		for _, v := range lane {
			require.False(t, math.IsNaN(v))
		}
	}
}

func TestValidation(t *testing.T) {
	f := newFixture(t, false)
	p, pp := params()

	b := utility.NewBuilder("market", p, pp[:1])
	assert.ErrorIs(t, b.Load(context.Background(), f.in, 0), utility.ErrPeriodCount)

	f.in.Employment[utility.RetailPartTime] = []float64{1, 2}
	b = utility.NewBuilder("market", p, pp)
	assert.ErrorIs(t, b.Load(context.Background(), f.in, 0), utility.ErrShape)

	assert.ErrorIs(t, b.Load(context.Background(), &utility.Inputs{}, 0), utility.ErrMissingInput)
}
