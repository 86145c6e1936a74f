// Package autoown predicts how many vehicles a household owns with an
// ordered logit over precomputed home-zone accessibility.
//
// Load computes, per zone, a utility from population and job density and
// from the job-linkage weighted average auto time, perceived transit time
// and distance to work; region rules then add constants, threshold offsets
// and K-factor scales by planning district. Queries combine the zone term
// with household composition, derive monotone thresholds and return the
// K-factor weighted category probabilities.
//
// Queries are read-only after Load and safe for concurrent callers.
package autoown

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/zonechoice/choice"
	"github.com/katalvlaran/zonechoice/internal/parallel"
	"github.com/katalvlaran/zonechoice/landuse"
	"github.com/katalvlaran/zonechoice/matrix"
	"github.com/katalvlaran/zonechoice/network"
	"github.com/katalvlaran/zonechoice/vecops"
	"github.com/katalvlaran/zonechoice/zone"
)

// Deps are the collaborators resolved once at construction.
type Deps struct {
	Zones    *zone.System
	Networks *network.Registry
	// PopulationDensity and JobDensity are per zone, in units per m².
	PopulationDensity landuse.Source[[]float64]
	JobDensity        landuse.Source[[]float64]
	// JobLinkages[i][j] counts workers living in i and working in j.
	JobLinkages landuse.Source[*matrix.Dense]
}

// Accessibility is the zone-level input of the utility.
type Accessibility struct {
	PopulationDensity float64
	JobDensity        float64
	AutoTime          float64
	TransitTime       float64
	DistanceKm        float64
}

// Model is the auto-ownership calculator.
type Model struct {
	params  Params
	regions []Region
	deps    Deps
	auto    network.Auto
	transit network.Transit
	opts    Options
	rng     *choice.Locked

	access    []Accessibility
	ground    []float64
	apartment []float64
	offsets   [NumThresholds][]float64
	kFactors  []float64
	loaded    bool
}

// New validates the networks and sources. Failures wrap ErrInvalidConfig.
func New(params Params, regions []Region, deps Deps, opts ...Option) (*Model, error) {
	if deps.Zones == nil || deps.Networks == nil {
		return nil, fmt.Errorf("%w: zone system and networks are required", ErrInvalidConfig)
	}
	if deps.PopulationDensity == nil || deps.JobDensity == nil || deps.JobLinkages == nil {
		return nil, fmt.Errorf("%w: density and job linkage sources are required", ErrInvalidConfig)
	}
	if math.IsNaN(params.MaxTransitTime) {
		return nil, fmt.Errorf("%w: max transit time is NaN", ErrInvalidConfig)
	}
	auto, err := deps.Networks.Auto(params.AutoNetwork)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	transit, err := deps.Networks.Transit(params.TransitNetwork)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	effective := make([]Region, len(regions))
	for i, r := range regions {
		if effective[i], err = r.normalized(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	seed := params.Seed
	if seed == 0 {
		seed = DefaultSeed
	}
	return &Model{
		params:  params,
		regions: effective,
		deps:    deps,
		auto:    auto,
		transit: transit,
		opts:    gatherOptions(opts...),
		rng:     choice.NewLocked(seed),
	}, nil
}

// Params returns the coefficients.
func (m *Model) Params() Params { return m.params }

// Load computes zone utilities, threshold offsets and K-factors, and
// restarts the generator from the configured seed.
func (m *Model) Load(ctx context.Context) error {
	began := time.Now()
	n := m.deps.Zones.Len()

	popDensity, releasePop, err := landuse.Acquire(m.deps.PopulationDensity)
	if err != nil {
		return err
	}
	defer releasePop()
	jobDensity, releaseJobs, err := landuse.Acquire(m.deps.JobDensity)
	if err != nil {
		return err
	}
	defer releaseJobs()
	linkages, releaseLinks, err := landuse.Acquire(m.deps.JobLinkages)
	if err != nil {
		return err
	}
	defer releaseLinks()

	if len(popDensity) != n || len(jobDensity) != n {
		return fmt.Errorf("densities have %d and %d entries for %d zones: %w", len(popDensity), len(jobDensity), n, ErrShape)
	}
	if err := matrix.ValidateOD(linkages, n); err != nil {
		return fmt.Errorf("job linkages: %w: %v", ErrShape, err)
	}

	m.access = make([]Accessibility, n)
	m.ground = make([]float64, n)
	m.apartment = make([]float64, n)
	links := linkages.Data()
	err = parallel.For(ctx, n, func(i int) error {
		a := m.accessibility(i, links[i*n:(i+1)*n])
		a.PopulationDensity = popDensity[i]
		a.JobDensity = jobDensity[i]
		m.access[i] = a
		v := m.zoneUtility(a)
		m.ground[i] = v
		m.apartment[i] = v
		return nil
	})
	if err != nil {
		return err
	}
	m.applyRegions()
	m.rng.Reseed(m.seed())
	m.loaded = true

	m.opts.log.Debug().
		Int("zones", n).
		Int("regions", len(m.regions)).
		Dur("took", time.Since(began)).
		Msg("auto ownership loaded")
	return nil
}

func (m *Model) seed() int64 {
	if m.params.Seed == 0 {
		return DefaultSeed
	}
	return m.params.Seed
}

// accessibility averages travel to work from zone i over its job linkages.
// Zones without linked jobs keep zero averages. Pairs without an auto path
// add no auto time; pairs without transit use MaxTransitTime when it is
// finite and add nothing otherwise.
func (m *Model) accessibility(i int, linkRow []float64) Accessibility {
	var a Accessibility
	total := vecops.Sum(linkRow)
	if !(total > 0) {
		return a
	}
	at := m.params.TimeToUse
	maxTransit := m.params.MaxTransitTime
	for j, jobs := range linkRow {
		if jobs == 0 {
			continue
		}
		ratio := jobs / total
		if ivtt, _, ok := m.auto.AllData(i, j, at); ok {
			a.AutoTime += ratio * ivtt
		}
		if td, ok := m.transit.AllData(i, j, at); ok {
			a.TransitTime += ratio * math.Min(maxTransit, td.Perceived)
		} else if !math.IsInf(maxTransit, 1) {
			a.TransitTime += ratio * maxTransit
		}
		a.DistanceKm += ratio * m.deps.Zones.Distance(i, j) / 1000
	}
	return a
}

func (m *Model) zoneUtility(a Accessibility) float64 {
	p := &m.params
	return p.PopulationDensity*a.PopulationDensity +
		p.JobDensity*a.JobDensity +
		p.AverageAutoTime*a.AutoTime +
		p.AveragePerceivedTransitTime*a.TransitTime +
		p.AverageDistanceToWork*a.DistanceKm
}

// applyRegions initialises offsets and K-factors, then applies every region
// in order to the zones of its planning districts.
func (m *Model) applyRegions() {
	zones := m.deps.Zones.Zones()
	n := len(zones)
	for k := range m.offsets {
		m.offsets[k] = make([]float64, n)
	}
	m.kFactors = make([]float64, n*kFactorsPerZone)
	vecops.Set(m.kFactors, 1)

	for _, r := range m.regions {
		for i, z := range zones {
			if !r.PlanningDistricts.Contains(z.PlanningDistrict) {
				continue
			}
			m.ground[i] += r.Constant
			m.apartment[i] += r.Constant + r.ApartmentOffset
			for k := range m.offsets {
				m.offsets[k][i] += r.ThresholdOffsets[k]
			}
			kf := m.kFactors[i*kFactorsPerZone : (i+1)*kFactorsPerZone]
			for l := 0; l < NumLevels; l++ {
				kf[l] *= r.GroundScale[l]
				kf[NumLevels+l] *= r.ApartmentScale[l]
			}
		}
	}
}

// Accessibility returns the zone inputs computed by Load for flat index i.
func (m *Model) Accessibility(i int) Accessibility { return m.access[i] }

// ZoneUtility returns the zone term for flat index i, region constants included.
func (m *Model) ZoneUtility(i int, d DwellingType) float64 {
	if d == Apartment {
		return m.apartment[i]
	}
	return m.ground[i]
}

// KFactors returns the five calibration weights of zone i for dwelling d.
// Callers must not modify the slice.
func (m *Model) KFactors(i int, d DwellingType) []float64 {
	off := i * kFactorsPerZone
	if d == Apartment {
		off += NumLevels
	}
	return m.kFactors[off : off+NumLevels : off+NumLevels]
}

// Thresholds returns the monotone cut points of zone i for a household
// holding licences licences.
func (m *Model) Thresholds(i, licences int) [NumThresholds]float64 {
	var t [NumThresholds]float64
	for k := range t {
		t[k] = m.params.Thresholds[k] + m.offsets[k][i]
		if licences < k+1 {
			t[k] += m.params.OverSufficient
		}
	}
	choice.Monotonize(t[:])
	return t
}

// Utility returns the household utility, its licence count and the flat home zone.
func (m *Model) Utility(hh *Household) (v float64, licences, flat int, err error) {
	if !m.loaded {
		return 0, 0, -1, ErrNotLoaded
	}
	if hh.HomeZone == zone.NoZone {
		return 0, 0, -1, fmt.Errorf("household %d: %w", hh.ID, ErrNoHomeZone)
	}
	flat, err = m.deps.Zones.FlatIndex(hh.HomeZone)
	if err != nil {
		return 0, 0, -1, fmt.Errorf("household %d: %w", hh.ID, err)
	}

	p := &m.params
	v = m.ZoneUtility(flat, hh.Dwelling)
	if hh.Dwelling == Apartment {
		v += p.Apartment
	}
	c := hh.composition()
	if c.licences == len(hh.Persons)-c.kids {
		v += p.SufficientLicences
	}
	v += p.Adults*float64(c.adults) + p.Kids*float64(c.kids) + p.FullTimeWorkers*float64(c.fullTime)
	switch {
	case c.licences >= 3:
		v += p.Licences[2]
	case c.licences > 0:
		v += p.Licences[c.licences-1]
	}
	if hh.IncomeClass >= 2 && hh.IncomeClass <= 6 {
		v += p.Income[hh.IncomeClass-2]
	}
	return v, c.licences, flat, nil
}

// Probabilities returns the K-factor weighted, renormalized probability of
// owning 0..MaxLevel vehicles, and the weighted total before
// renormalization.
func (m *Model) Probabilities(hh *Household) ([NumLevels]float64, float64, error) {
	var out [NumLevels]float64
	v, licences, flat, err := m.Utility(hh)
	if err != nil {
		return out, 0, err
	}
	t := m.Thresholds(flat, licences)
	total := choice.OrderedProbabilities(v, t[:], m.KFactors(flat, hh.Dwelling), out[:])
	return out, total, nil
}

// EstimateProbability returns the probability that hh owns level vehicles.
func (m *Model) EstimateProbability(hh *Household, level int) (float64, error) {
	if level < 0 || level > MaxLevel {
		return 0, fmt.Errorf("%w: %d", ErrLevel, level)
	}
	p, total, err := m.Probabilities(hh)
	if err != nil {
		return 0, err
	}
	if !(total > 0) {
		return 0, fmt.Errorf("household %d: %w", hh.ID, ErrNoProbability)
	}
	return p[level], nil
}

// Predict draws an ownership level from the model's seeded generator.
// Draws are serialized, so the sequence depends on call order.
func (m *Model) Predict(hh *Household) (int, error) {
	return m.PredictWith(hh, m.rng)
}

// PredictWith draws an ownership level using the caller's uniform source.
func (m *Model) PredictWith(hh *Household, rng choice.Uniform) (int, error) {
	p, total, err := m.Probabilities(hh)
	if err != nil {
		return -1, err
	}
	if !(total > 0) {
		return -1, fmt.Errorf("household %d: %w", hh.ID, ErrNoProbability)
	}
	level, ok := choice.Sample(p[:], 1, rng.Float64())
	if !ok {
		return -1, fmt.Errorf("household %d: %w", hh.ID, ErrNoProbability)
	}
	return level, nil
}
