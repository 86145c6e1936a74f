package network

import (
	"fmt"
	"math"

	"github.com/katalvlaran/zonechoice/clock"
	"github.com/katalvlaran/zonechoice/matrix"
)

// AutoPeriod is the auto skim for one time window. Cost may be nil (free).
type AutoPeriod struct {
	Window clock.Interval
	Time   *matrix.Dense
	Cost   *matrix.Dense
}

// AutoSkim is an Auto network over per-period OD matrices.
type AutoSkim struct {
	name    string
	n       int
	windows []clock.Interval
	periods []AutoPeriod
}

var _ Auto = (*AutoSkim)(nil)

// NewAutoSkim validates every period against n zones.
func NewAutoSkim(name string, n int, periods ...AutoPeriod) (*AutoSkim, error) {
	if len(periods) == 0 {
		return nil, fmt.Errorf("%q: %w", name, ErrNoPeriods)
	}
	s := &AutoSkim{name: name, n: n, periods: periods}
	for k, p := range periods {
		if err := matrix.ValidateOD(p.Time, n); err != nil {
			return nil, fmt.Errorf("%q period %d time: %w: %v", name, k, ErrSkimShape, err)
		}
		if p.Cost != nil {
			if err := matrix.ValidateOD(p.Cost, n); err != nil {
				return nil, fmt.Errorf("%q period %d cost: %w: %v", name, k, ErrSkimShape, err)
			}
		}
		s.windows = append(s.windows, p.Window)
	}
	return s, nil
}

// Name implements Network.
func (s *AutoSkim) Name() string { return s.name }

func (s *AutoSkim) period(t clock.Time) *AutoPeriod {
	return &s.periods[clock.Find(s.windows, t)]
}

// TravelTime implements Auto.
func (s *AutoSkim) TravelTime(o, d int, t clock.Time) float64 {
	return s.period(t).Time.Data()[o*s.n+d]
}

// AllData implements Auto. A non-finite time reports no path.
func (s *AutoSkim) AllData(o, d int, t clock.Time) (ivtt, cost float64, ok bool) {
	p := s.period(t)
	ivtt = p.Time.Data()[o*s.n+d]
	if math.IsInf(ivtt, 0) || math.IsNaN(ivtt) {
		return 0, 0, false
	}
	if p.Cost != nil {
		cost = p.Cost.Data()[o*s.n+d]
	}
	return ivtt, cost, true
}

// TransitPeriod is the transit skim for one time window. Boarding, Fare and
// Perceived may be nil; a nil Perceived is derived as IVTT+Walk+Wait+Boarding.
type TransitPeriod struct {
	Window    clock.Interval
	IVTT      *matrix.Dense
	Walk      *matrix.Dense
	Wait      *matrix.Dense
	Boarding  *matrix.Dense
	Fare      *matrix.Dense
	Perceived *matrix.Dense
}

// TransitSkim is a Transit network over per-period OD matrices.
type TransitSkim struct {
	name    string
	n       int
	windows []clock.Interval
	periods []TransitPeriod
}

var _ Transit = (*TransitSkim)(nil)

// NewTransitSkim validates every period against n zones. IVTT, Walk and Wait are required.
func NewTransitSkim(name string, n int, periods ...TransitPeriod) (*TransitSkim, error) {
	if len(periods) == 0 {
		return nil, fmt.Errorf("%q: %w", name, ErrNoPeriods)
	}
	s := &TransitSkim{name: name, n: n, periods: periods}
	for k, p := range periods {
		required := map[string]*matrix.Dense{"ivtt": p.IVTT, "walk": p.Walk, "wait": p.Wait}
		for field, m := range required {
			if err := matrix.ValidateOD(m, n); err != nil {
				return nil, fmt.Errorf("%q period %d %s: %w: %v", name, k, field, ErrSkimShape, err)
			}
		}
		optional := map[string]*matrix.Dense{"boarding": p.Boarding, "fare": p.Fare, "perceived": p.Perceived}
		for field, m := range optional {
			if m == nil {
				continue
			}
			if err := matrix.ValidateOD(m, n); err != nil {
				return nil, fmt.Errorf("%q period %d %s: %w: %v", name, k, field, ErrSkimShape, err)
			}
		}
		s.windows = append(s.windows, p.Window)
	}
	return s, nil
}

// Name implements Network.
func (s *TransitSkim) Name() string { return s.name }

func cell(m *matrix.Dense, off int) float64 {
	if m == nil {
		return 0
	}
	return m.Data()[off]
}

// AllData implements Transit. ok is false when the walk time is not positive.
func (s *TransitSkim) AllData(o, d int, t clock.Time) (TransitData, bool) {
	p := &s.periods[clock.Find(s.windows, t)]
	off := o*s.n + d
	td := TransitData{
		IVTT:     cell(p.IVTT, off),
		Walk:     cell(p.Walk, off),
		Wait:     cell(p.Wait, off),
		Boarding: cell(p.Boarding, off),
		Fare:     cell(p.Fare, off),
	}
	if p.Perceived != nil {
		td.Perceived = p.Perceived.Data()[off]
	} else {
		td.Perceived = td.IVTT + td.Walk + td.Wait + td.Boarding
	}
	return td, td.HasPath()
}
