package timeperiod_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/katalvlaran/zonechoice/clock"
	"github.com/katalvlaran/zonechoice/network"
	"github.com/katalvlaran/zonechoice/timeperiod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingAuto returns time = 10*o + d and counts every query.
type countingAuto struct{ calls atomic.Int64 }

func (a *countingAuto) Name() string { return "auto" }
func (a *countingAuto) TravelTime(o, d int, _ clock.Time) float64 {
	a.calls.Add(1)
	return float64(10*o + d)
}
func (a *countingAuto) AllData(o, d int, _ clock.Time) (float64, float64, bool) {
	a.calls.Add(1)
	return float64(10*o + d), 1, o != d
}

type fixedTransit struct{}

func (fixedTransit) Name() string { return "transit" }
func (fixedTransit) AllData(o, d int, _ clock.Time) (network.TransitData, bool) {
	td := network.TransitData{IVTT: 20, Walk: float64(o), Wait: 2, Fare: 3}
	return td, td.HasPath()
}

func TestLoadRowAndColumn(t *testing.T) {
	p := &timeperiod.Period{Name: "am", Window: clock.Interval{Start: 360, End: 540}}
	require.NoError(t, p.Load(context.Background(), 3, &countingAuto{}, fixedTransit{}, false))

	assert.Equal(t, []float64{0, 1, 2, 10, 11, 12, 20, 21, 22}, p.RowTimes)
	assert.Equal(t, []float64{0, 10, 20, 1, 11, 21, 2, 12, 22}, p.ColumnTimes)
	assert.Nil(t, p.Estimation)

	// buffers of the right size are reused
	row := p.RowTimes
	require.NoError(t, p.Load(context.Background(), 3, &countingAuto{}, fixedTransit{}, false))
	assert.Same(t, &row[0], &p.RowTimes[0])
}

func TestEstimationLoadsOnce(t *testing.T) {
	auto := &countingAuto{}
	p := &timeperiod.Period{Name: "am", Window: clock.Interval{Start: 360, End: 540}}
	require.NoError(t, p.Load(context.Background(), 2, auto, fixedTransit{}, true))
	first := auto.calls.Load()
	assert.Equal(t, int64(8), first) // 4 AllData + 4 TravelTime

	require.NoError(t, p.Load(context.Background(), 2, auto, fixedTransit{}, true))
	assert.Equal(t, first, auto.calls.Load(), "second estimation load must not query the network")

	e := p.Estimation
	require.NotNil(t, e)
	assert.Equal(t, []bool{false, true, true, false}, e.AutoPath)
	// origin 0 has no transit walk, so its transit fields stay zero
	assert.Equal(t, []float64{0, 0, 20, 20}, e.TransitIVTT)
}

func TestSetFind(t *testing.T) {
	am := &timeperiod.Period{Name: "am", Window: clock.Interval{Start: 360, End: 540}}
	md := &timeperiod.Period{Name: "md", Window: clock.Interval{Start: 540, End: 900}}
	s, err := timeperiod.NewSet(am, md)
	require.NoError(t, err)

	assert.Equal(t, 0, s.Find(400))
	assert.Equal(t, 1, s.Find(540))
	assert.Equal(t, 1, s.Find(1000)) // beyond every window
	assert.Equal(t, 1, s.Find(0))    // before every window
	assert.Equal(t, 2, s.Len())

	_, err = timeperiod.NewSet()
	assert.ErrorIs(t, err, timeperiod.ErrNoPeriods)

	_, err = timeperiod.NewSet(&timeperiod.Period{Window: clock.Interval{Start: 5, End: 5}})
	assert.ErrorIs(t, err, timeperiod.ErrEmptyWindow)
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &timeperiod.Period{Name: "am", Window: clock.Interval{Start: 0, End: 60}}
	err := p.Load(ctx, 4, &countingAuto{}, fixedTransit{}, false)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, p.Loaded())
}
