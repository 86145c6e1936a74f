package network_test

import (
	"context"
	"math"
	"testing"

	"github.com/katalvlaran/zonechoice/clock"
	"github.com/katalvlaran/zonechoice/matrix"
	"github.com/katalvlaran/zonechoice/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dense(t *testing.T, n int, v ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(n, n, v, matrix.WithAllowInfDistances())
	require.NoError(t, err)
	return m
}

func twoPeriodAuto(t *testing.T) *network.AutoSkim {
	t.Helper()
	am := network.AutoPeriod{
		Window: clock.Interval{Start: clock.FromHours(6), End: clock.FromHours(9)},
		Time:   dense(t, 2, 0, 10, 12, 0),
		Cost:   dense(t, 2, 0, 1, 1, 0),
	}
	md := network.AutoPeriod{
		Window: clock.Interval{Start: clock.FromHours(9), End: clock.FromHours(15)},
		Time:   dense(t, 2, 0, 5, math.Inf(1), 0),
	}
	s, err := network.NewAutoSkim("auto", 2, am, md)
	require.NoError(t, err)
	return s
}

func TestAutoSkimPeriods(t *testing.T) {
	s := twoPeriodAuto(t)

	assert.Equal(t, 10.0, s.TravelTime(0, 1, clock.FromHours(7)))
	assert.Equal(t, 5.0, s.TravelTime(0, 1, clock.FromHours(10)))
	// outside every window resolves to the last period
	assert.Equal(t, 5.0, s.TravelTime(0, 1, clock.FromHours(22)))

	ivtt, cost, ok := s.AllData(0, 1, clock.FromHours(7))
	require.True(t, ok)
	assert.Equal(t, 10.0, ivtt)
	assert.Equal(t, 1.0, cost)

	_, _, ok = s.AllData(1, 0, clock.FromHours(10))
	assert.False(t, ok, "+Inf time means no path")
}

func TestSkimValidation(t *testing.T) {
	_, err := network.NewAutoSkim("a", 2)
	assert.ErrorIs(t, err, network.ErrNoPeriods)

	_, err = network.NewAutoSkim("a", 3, network.AutoPeriod{Time: dense(t, 2, 0, 1, 1, 0)})
	assert.ErrorIs(t, err, network.ErrSkimShape)

	_, err = network.NewTransitSkim("t", 2, network.TransitPeriod{IVTT: dense(t, 2, 0, 1, 1, 0)})
	assert.ErrorIs(t, err, network.ErrSkimShape)
}

func TestTransitSkim(t *testing.T) {
	p := network.TransitPeriod{
		Window: clock.Interval{Start: 0, End: clock.EndOfDay},
		IVTT:   dense(t, 2, 0, 20, 20, 0),
		Walk:   dense(t, 2, 0, 5, 0, 0),
		Wait:   dense(t, 2, 0, 3, 3, 0),
		Fare:   dense(t, 2, 0, 3.25, 3.25, 0),
	}
	s, err := network.NewTransitSkim("transit", 2, p)
	require.NoError(t, err)

	td, ok := s.AllData(0, 1, clock.FromHours(8))
	require.True(t, ok)
	assert.Equal(t, 28.0, td.Perceived)
	assert.Equal(t, 3.25, td.Fare)

	_, ok = s.AllData(1, 0, clock.FromHours(8))
	assert.False(t, ok, "zero walk time means no transit path")
}

func TestRegistry(t *testing.T) {
	auto := twoPeriodAuto(t)
	r, err := network.NewRegistry(auto)
	require.NoError(t, err)

	got, err := r.Auto("auto")
	require.NoError(t, err)
	assert.Same(t, auto, got)

	_, err = r.Auto("missing")
	assert.ErrorIs(t, err, network.ErrNetworkNotFound)

	_, err = r.Transit("auto")
	assert.ErrorIs(t, err, network.ErrWrongNetworkType)

	_, err = network.NewRegistry(auto, auto)
	assert.ErrorIs(t, err, network.ErrDuplicateNetwork)
}

func TestSkimFromLinks(t *testing.T) {
	links := []network.Link{
		{From: 0, To: 1, Time: 4},
		{From: 1, To: 2, Time: 3},
		{From: 0, To: 2, Time: 10},
		{From: 2, To: 0, Time: 1},
	}
	m, err := network.SkimFromLinks(context.Background(), 4, links)
	require.NoError(t, err)

	at := func(i, j int) float64 {
		v, _ := m.At(i, j)
		return v
	}
	assert.Equal(t, 7.0, at(0, 2), "via zone 1 beats the direct link")
	assert.Equal(t, 4.0, at(1, 0))
	assert.Equal(t, 0.0, at(3, 3))
	assert.True(t, math.IsInf(at(0, 3), 1), "zone 3 is unreachable")
}

func TestSkimFromLinksErrors(t *testing.T) {
	_, err := network.SkimFromLinks(context.Background(), 2, []network.Link{{From: 0, To: 1, Time: -1}})
	assert.ErrorIs(t, err, network.ErrNegativeTime)

	_, err = network.SkimFromLinks(context.Background(), 2, []network.Link{{From: 0, To: 5, Time: 1}})
	assert.ErrorIs(t, err, network.ErrLinkEndpoint)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = network.SkimFromLinks(ctx, 3, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
