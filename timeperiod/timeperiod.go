// Package timeperiod holds the time-of-day periods of the location-choice
// model and the auto travel-time tables each period caches at load time.
//
// Periods are half-open windows [Start, End). Lookup scans in declared order
// and falls back to the last period, so a time at or beyond every window
// resolves to the final one.
package timeperiod

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/zonechoice/clock"
	"github.com/katalvlaran/zonechoice/internal/parallel"
	"github.com/katalvlaran/zonechoice/network"
)

var (
	// ErrNoPeriods is returned when a Set is built without periods.
	ErrNoPeriods = errors.New("timeperiod: no time periods")

	// ErrEmptyWindow is returned for a period whose End is not after its Start.
	ErrEmptyWindow = errors.New("timeperiod: end must be after start")

	// ErrNotLoaded is returned when period tables are used before Load.
	ErrNotLoaded = errors.New("timeperiod: period not loaded")
)

// Estimation holds the per-pair network attributes cached once in
// estimation mode, so repeated utility builds never touch the networks.
// Arrays are indexed [o*N+d]; AutoPath marks pairs with an auto path.
type Estimation struct {
	AutoPath        []bool
	AutoIVTT        []float64
	AutoCost        []float64
	TransitIVTT     []float64
	TransitWalk     []float64
	TransitWait     []float64
	TransitBoarding []float64
	TransitFare     []float64
}

// Period is one time-of-day window with its travel-time tables.
//
// RowTimes[i*N+j] is the auto time i→j and ColumnTimes[j*N+i] holds the same
// value transposed, so both "from the previous anchor" and "to the next
// anchor" reads walk memory contiguously.
type Period struct {
	Name        string
	Window      clock.Interval
	RowTimes    []float64
	ColumnTimes []float64
	Estimation  *Estimation
}

// Loaded reports whether the travel-time tables are present.
func (p *Period) Loaded() bool { return p.RowTimes != nil }

// Load fills the travel-time tables for n zones, querying the auto network at
// the period start. Rows are computed in parallel and buffers of the right
// size are reused. With estimation set, the estimation cache is filled once
// and, once tables exist, later loads return without touching the networks.
func (p *Period) Load(ctx context.Context, n int, auto network.Auto, transit network.Transit, estimation bool) error {
	if estimation {
		if p.Estimation == nil {
			est, err := loadEstimation(ctx, n, p.Window.Start, auto, transit)
			if err != nil {
				return fmt.Errorf("%s: %w", p.Name, err)
			}
			p.Estimation = est
		}
		if p.RowTimes != nil {
			return nil
		}
	}

	size := n * n
	row, col := p.RowTimes, p.ColumnTimes
	if len(row) != size {
		row = make([]float64, size)
	}
	if len(col) != size {
		col = make([]float64, size)
	}
	start := p.Window.Start
	err := parallel.For(ctx, n, func(i int) error {
		base := i * n
		for j := 0; j < n; j++ {
			t := auto.TravelTime(i, j, start)
			row[base+j] = t
			col[j*n+i] = t
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", p.Name, err)
	}
	p.RowTimes, p.ColumnTimes = row, col
	return nil
}

func loadEstimation(ctx context.Context, n int, at clock.Time, auto network.Auto, transit network.Transit) (*Estimation, error) {
	size := n * n
	e := &Estimation{
		AutoPath:        make([]bool, size),
		AutoIVTT:        make([]float64, size),
		AutoCost:        make([]float64, size),
		TransitIVTT:     make([]float64, size),
		TransitWalk:     make([]float64, size),
		TransitWait:     make([]float64, size),
		TransitBoarding: make([]float64, size),
		TransitFare:     make([]float64, size),
	}
	err := parallel.For(ctx, n, func(i int) error {
		for j := 0; j < n; j++ {
			k := i*n + j
			e.AutoIVTT[k], e.AutoCost[k], e.AutoPath[k] = auto.AllData(i, j, at)
			if td, ok := transit.AllData(i, j, at); ok {
				e.TransitIVTT[k] = td.IVTT
				e.TransitWalk[k] = td.Walk
				e.TransitWait[k] = td.Wait
				e.TransitBoarding[k] = td.Boarding
				e.TransitFare[k] = td.Fare
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Set is the ordered list of periods.
type Set struct {
	periods []*Period
	windows []clock.Interval
}

// NewSet validates the windows and keeps the declared order.
func NewSet(periods ...*Period) (*Set, error) {
	if len(periods) == 0 {
		return nil, ErrNoPeriods
	}
	s := &Set{periods: periods, windows: make([]clock.Interval, len(periods))}
	for i, p := range periods {
		if p.Window.End <= p.Window.Start {
			return nil, fmt.Errorf("%s [%s, %s): %w", p.Name, p.Window.Start, p.Window.End, ErrEmptyWindow)
		}
		s.windows[i] = p.Window
	}
	return s, nil
}

// Len returns the number of periods.
func (s *Set) Len() int { return len(s.periods) }

// Period returns the i-th period.
func (s *Set) Period(i int) *Period { return s.periods[i] }

// Find returns the index of the period containing t, or the last index.
func (s *Set) Find(t clock.Time) int { return clock.Find(s.windows, t) }

// Load loads every period in order.
func (s *Set) Load(ctx context.Context, n int, auto network.Auto, transit network.Transit, estimation bool) error {
	for _, p := range s.periods {
		if err := p.Load(ctx, n, auto, transit, estimation); err != nil {
			return err
		}
	}
	return nil
}
