// Package locchoice is the location-choice probability engine. Given an
// episode in a person's schedule it resolves the surrounding anchors, the
// time budget and the activity's submodel, then either samples a
// destination zone or reports the probability of every zone.
//
// Lifecycle: New validates configuration, Load runs the batch phase, and
// only then may queries run, from any number of goroutines. Load must
// complete before queries start; the host provides that barrier. Queries
// take no locks: loaded tables are read-only and every query works in its
// own scratch arena.
package locchoice

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/zonechoice/choice"
	"github.com/katalvlaran/zonechoice/clock"
	"github.com/katalvlaran/zonechoice/landuse"
	"github.com/katalvlaran/zonechoice/network"
	"github.com/katalvlaran/zonechoice/rangeset"
	"github.com/katalvlaran/zonechoice/timeperiod"
	"github.com/katalvlaran/zonechoice/utility"
	"github.com/katalvlaran/zonechoice/zone"
)

const (
	// DefaultValidDestinations is the zone range allowed as destinations.
	DefaultValidDestinations = "1-6999"

	// DefaultMaxEpisodeDurationCompression is the share of an anchor
	// episode's original duration that may be squeezed out to make room.
	DefaultMaxEpisodeDurationCompression = 0.5

	// DefaultAutoNetwork and DefaultTransitNetwork are the network names looked up.
	DefaultAutoNetwork    = "Auto"
	DefaultTransitNetwork = "Transit"
)

// SubmodelConfig are the coefficients and per-period constants of one kind.
type SubmodelConfig struct {
	Params  utility.Params
	Periods []utility.PeriodParams
}

// Config is the typed model configuration.
type Config struct {
	ValidDestinations             rangeset.Set
	MaxEpisodeDurationCompression float64
	AutoNetwork                   string
	TransitNetwork                string
	Estimation                    bool
	Submodels                     [NumKinds]SubmodelConfig
}

// DefaultConfig returns a Config with default scalars and empty submodels.
func DefaultConfig() Config {
	return Config{
		ValidDestinations:             rangeset.MustParse(DefaultValidDestinations),
		MaxEpisodeDurationCompression: DefaultMaxEpisodeDurationCompression,
		AutoNetwork:                   DefaultAutoNetwork,
		TransitNetwork:                DefaultTransitNetwork,
	}
}

// Deps are the collaborators resolved once at construction.
type Deps struct {
	Zones      *zone.System
	Periods    *timeperiod.Set
	Networks   *network.Registry
	Employment [utility.NumCategories]landuse.Source[[]float64]
}

// Model dispatches episodes to the three submodels.
type Model struct {
	cfg     Config
	zones   *zone.System
	periods *timeperiod.Set
	auto    network.Auto
	transit network.Transit
	land    [utility.NumCategories]landuse.Source[[]float64]
	opts    Options

	valid     []bool
	submodels [NumKinds]*Submodel
	scratch   *ScratchPool
	loaded    bool
}

// New validates cfg against deps. Every failure wraps ErrInvalidConfig and
// names the offending piece: missing networks, wrong network types,
// submodels whose period count differs from the model's, missing sources.
func New(cfg Config, deps Deps, opts ...Option) (*Model, error) {
	if deps.Zones == nil || deps.Periods == nil || deps.Networks == nil {
		return nil, fmt.Errorf("%w: zone system, time periods and networks are required", ErrInvalidConfig)
	}
	if cfg.MaxEpisodeDurationCompression < 0 || cfg.MaxEpisodeDurationCompression > 1 {
		return nil, fmt.Errorf("%w: duration compression %g outside [0, 1]", ErrInvalidConfig, cfg.MaxEpisodeDurationCompression)
	}
	auto, err := deps.Networks.Auto(cfg.AutoNetwork)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	transit, err := deps.Networks.Transit(cfg.TransitNetwork)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for c, src := range deps.Employment {
		if src == nil {
			return nil, fmt.Errorf("%w: no %s employment source", ErrInvalidConfig, utility.Category(c))
		}
	}

	o := gatherOptions(opts...)
	m := &Model{
		cfg:     cfg,
		zones:   deps.Zones,
		periods: deps.Periods,
		auto:    auto,
		transit: transit,
		land:    deps.Employment,
		opts:    o,
		scratch: NewScratchPool(deps.Zones.Len()),
	}
	var builderOpts []utility.Option
	if o.scalar {
		builderOpts = append(builderOpts, utility.WithScalarKernels())
	}
	builderOpts = append(builderOpts, utility.WithLogger(o.log))
	for k := Kind(0); k < NumKinds; k++ {
		sc := cfg.Submodels[k]
		if len(sc.Periods) != deps.Periods.Len() {
			return nil, fmt.Errorf("%w: %s has %d time periods, the model has %d: %w",
				ErrInvalidConfig, k, len(sc.Periods), deps.Periods.Len(), utility.ErrPeriodCount)
		}
		m.submodels[k] = &Submodel{
			kind:    k,
			builder: utility.NewBuilder(k.String(), sc.Params, sc.Periods, builderOpts...),
			zones:   deps.Zones,
			periods: deps.Periods,
			scalar:  o.scalar,
		}
	}
	return m, nil
}

// Submodel returns the submodel of kind k.
func (m *Model) Submodel(k Kind) *Submodel { return m.submodels[k] }

// Zones returns the zone system.
func (m *Model) Zones() *zone.System { return m.zones }

// Scratch returns the arena pool sized for this model.
func (m *Model) Scratch() *ScratchPool { return m.scratch }

// Load runs the batch phase: period travel times, valid destinations, land
// use, then the three submodels. iteration > 0 blends surfaces with the
// previous load. A failed Load leaves the model unloaded.
func (m *Model) Load(ctx context.Context, iteration int) error {
	began := time.Now()
	m.loaded = false
	n := m.zones.Len()
	if err := m.periods.Load(ctx, n, m.auto, m.transit, m.cfg.Estimation); err != nil {
		return err
	}
	if !m.cfg.Estimation || m.valid == nil {
		m.valid = m.zones.Mask(m.cfg.ValidDestinations)
	}

	in := &utility.Inputs{
		Zones:             m.zones,
		Periods:           m.periods,
		Auto:              m.auto,
		Transit:           m.transit,
		ValidDestinations: m.valid,
		Estimation:        m.cfg.Estimation,
	}
	for c, src := range m.land {
		data, release, err := landuse.Acquire(src)
		if err != nil {
			return err
		}
		defer release()
		in.Employment[c] = data
	}

	for _, sm := range m.submodels {
		if err := sm.load(ctx, in, iteration); err != nil {
			return err
		}
	}
	m.loaded = true

	m.opts.log.Info().
		Int("zones", n).
		Int("periods", m.periods.Len()).
		Int("iteration", iteration).
		Bool("estimation", m.cfg.Estimation).
		Dur("took", time.Since(began)).
		Msg("location choice loaded")
	return nil
}

// availableTime is the budget between the anchors, allowing each anchor
// episode to lose up to the configured share of its original duration.
func (m *Model) availableTime(previous, next *Episode) clock.Time {
	c := clock.Time(m.cfg.MaxEpisodeDurationCompression)
	end := clock.EndOfDay
	if next != nil {
		end = next.Start + next.Duration - c*next.OriginalDuration
	}
	begin := clock.StartOfDay
	if previous != nil {
		begin = previous.End() - previous.Duration - c*previous.OriginalDuration
	}
	return end - begin
}

// anchor is the zone of other, or the household's home zone when other is nil.
func (m *Model) anchor(other *Episode, s *Schedule) (int, error) {
	number := 0
	if other != nil {
		number = other.Zone
	} else {
		number = s.HomeZone
		if number == zone.NoZone {
			return -1, fmt.Errorf("household %d: %w", s.HouseholdID, ErrNoHomeZone)
		}
	}
	return m.zones.FlatIndex(number)
}

// QueryFor resolves the submodel and query of ep. ok is false when the
// activity has no submodel.
func (m *Model) QueryFor(ep *Episode) (*Submodel, Query, bool, error) {
	kind, ok := KindOf(ep.Activity)
	if !ok {
		return nil, Query{}, false, nil
	}
	s := ep.Schedule
	if s == nil {
		s = &Schedule{}
	}
	previous, next := s.neighbours(ep)
	p, err := m.anchor(previous, s)
	if err != nil {
		return nil, Query{}, false, err
	}
	nx, err := m.anchor(next, s)
	if err != nil {
		return nil, Query{}, false, err
	}
	q := Query{
		Previous:  p,
		Next:      nx,
		Start:     ep.Start,
		Available: m.availableTime(previous, next),
	}
	return m.submodels[kind], q, true, nil
}

// GetLocation picks a destination zone number for ep using the uniform
// source rng. Activities without a submodel keep ep.Zone. ok is false when
// no destination is feasible (or ep has no zone to keep); that outcome is
// not an error.
func (m *Model) GetLocation(ep *Episode, rng choice.Uniform) (number int, ok bool, err error) {
	buf := m.scratch.Get()
	defer m.scratch.Put(buf)
	return m.GetLocationWith(ep, rng, *buf)
}

// GetLocationWith is GetLocation with a caller-owned arena of one slot per zone.
func (m *Model) GetLocationWith(ep *Episode, rng choice.Uniform, space []float64) (int, bool, error) {
	if !m.loaded {
		return zone.NoZone, false, ErrNotLoaded
	}
	sm, q, handled, err := m.QueryFor(ep)
	if err != nil {
		return zone.NoZone, false, err
	}
	if !handled {
		return ep.Zone, ep.Zone != zone.NoZone, nil
	}
	i, ok, err := sm.Choose(q, space, rng.Float64())
	if err != nil || !ok {
		return zone.NoZone, false, err
	}
	return m.zones.Zone(i).Number, true, nil
}

// GetLocationProbabilities returns a fresh flat-indexed probability vector
// for ep. When no destination is feasible the vector is all zeros.
func (m *Model) GetLocationProbabilities(ep *Episode) ([]float64, error) {
	out := make([]float64, m.zones.Len())
	if _, err := m.ProbabilitiesInto(ep, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProbabilitiesInto writes the normalized probabilities of ep into dst and
// returns the pre-normalization total (<= 0 means no feasible destination).
func (m *Model) ProbabilitiesInto(ep *Episode, dst []float64) (float64, error) {
	if !m.loaded {
		return 0, ErrNotLoaded
	}
	sm, q, handled, err := m.QueryFor(ep)
	if err != nil {
		return 0, err
	}
	if !handled {
		return 0, fmt.Errorf("%s: %w", ep.Activity, ErrUnsupportedActivity)
	}
	return sm.Normalized(q, dst)
}
