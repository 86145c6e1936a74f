package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/zonechoice/autoown"
	"github.com/katalvlaran/zonechoice/clock"
	"github.com/katalvlaran/zonechoice/landuse"
	"github.com/katalvlaran/zonechoice/locchoice"
	"github.com/katalvlaran/zonechoice/matrix"
	"github.com/katalvlaran/zonechoice/network"
	"github.com/katalvlaran/zonechoice/timeperiod"
	"github.com/katalvlaran/zonechoice/utility"
	"github.com/katalvlaran/zonechoice/zone"
)

// Run holds the assembled models. Neither model is loaded yet.
type Run struct {
	// ID tags every log line of the models built for this run.
	ID             uuid.UUID
	Zones          *zone.System
	Periods        *timeperiod.Set
	Networks       *network.Registry
	LocationChoice *locchoice.Model
	// AutoOwnership is nil when the configuration has no auto_ownership section.
	AutoOwnership *autoown.Model
}

// Build reads the zone system and the skims and constructs the models.
// Land-use files are only read when the models load.
func Build(ctx context.Context, c *Config, opts ...Option) (*Run, error) {
	o := gatherOptions(opts...)
	began := time.Now()
	id := uuid.New()
	o.log = o.log.With().Str("run", id.String()).Logger()

	zs, err := c.buildZones()
	if err != nil {
		return nil, err
	}
	periods, err := c.buildPeriods()
	if err != nil {
		return nil, err
	}
	reg, err := c.buildNetworks(ctx, zs)
	if err != nil {
		return nil, err
	}

	run := &Run{ID: id, Zones: zs, Periods: periods, Networks: reg}
	run.LocationChoice, err = c.buildLocationChoice(zs, periods, reg, o)
	if err != nil {
		return nil, err
	}
	if c.AutoOwnership != nil {
		run.AutoOwnership, err = c.buildAutoOwnership(zs, reg, o)
		if err != nil {
			return nil, err
		}
	}

	o.log.Info().
		Int("zones", zs.Len()).
		Int("periods", periods.Len()).
		Bool("auto_ownership", run.AutoOwnership != nil).
		Dur("took", time.Since(began)).
		Msg("models built")
	return run, nil
}

func (m *MatrixFile) options() landuse.CSVOptions {
	opts := landuse.CSVOptions{Format: landuse.ThirdNormalized, Header: m.Header}
	if m.Format == "square" {
		opts.Format = landuse.SquareMatrix
	}
	return opts
}

// source returns an unloaded matrix source for m, with its subtraction and
// mask stacked on the file.
func (m *MatrixFile) source(name string, zs *zone.System) landuse.Source[*matrix.Dense] {
	var src landuse.Source[*matrix.Dense] = landuse.NewCSVMatrix(name, m.File, m.options(), zs)
	if m.Subtract != nil {
		src = landuse.NewDifference(name, src, m.Subtract.source(name+".subtract", zs))
	}
	if m.Mask != nil {
		src = landuse.NewMasked(name, src, m.Mask.Origins, m.Mask.Destinations, m.Mask.Value, zs)
	}
	return src
}

// read loads m at once; a nil m yields a nil matrix.
func (m *MatrixFile) read(name string, zs *zone.System) (*matrix.Dense, error) {
	if m == nil {
		return nil, nil
	}
	src := m.source(name, zs)
	data, release, err := landuse.Acquire(src)
	if err != nil {
		return nil, err
	}
	release()
	return data, nil
}

func (c *Config) buildZones() (*zone.System, error) {
	var zones []zone.Zone
	if c.Zones.File != "" {
		var err error
		if zones, err = readZoneFile(c.Zones.File); err != nil {
			return nil, err
		}
	} else {
		for _, z := range c.Zones.Inline {
			zones = append(zones, zone.Zone(z))
		}
	}
	zs, err := zone.NewSystem(zones)
	if err != nil {
		return nil, err
	}
	if c.Zones.Distances == nil {
		return zs, nil
	}
	d, err := c.Zones.Distances.read("distances", zs)
	if err != nil {
		return nil, err
	}
	return zone.NewSystem(zones, zone.WithDistances(d))
}

func (c *Config) buildPeriods() (*timeperiod.Set, error) {
	ps := make([]*timeperiod.Period, len(c.TimePeriods))
	for i, p := range c.TimePeriods {
		ps[i] = &timeperiod.Period{Name: p.Name, Window: clock.Interval{Start: p.Start, End: p.End}}
	}
	return timeperiod.NewSet(ps...)
}

func (c *Config) buildNetworks(ctx context.Context, zs *zone.System) (*network.Registry, error) {
	n := zs.Len()
	autoCfg, transitCfg := &c.Networks.Auto, &c.Networks.Transit

	autoPeriods := make([]network.AutoPeriod, len(autoCfg.Periods))
	for i, p := range autoCfg.Periods {
		name := fmt.Sprintf("%s[%d]", autoCfg.Name, i)
		ap := network.AutoPeriod{Window: clock.Interval{Start: p.Start, End: p.End}}
		var err error
		if p.Links != "" {
			ap.Time, err = skimLinks(ctx, p.Links, zs)
		} else {
			ap.Time, err = p.Time.read(name+".time", zs)
		}
		if err != nil {
			return nil, err
		}
		if ap.Cost, err = p.Cost.read(name+".cost", zs); err != nil {
			return nil, err
		}
		autoPeriods[i] = ap
	}
	auto, err := network.NewAutoSkim(autoCfg.Name, n, autoPeriods...)
	if err != nil {
		return nil, err
	}

	transitPeriods := make([]network.TransitPeriod, len(transitCfg.Periods))
	for i, p := range transitCfg.Periods {
		name := fmt.Sprintf("%s[%d]", transitCfg.Name, i)
		tp := network.TransitPeriod{Window: clock.Interval{Start: p.Start, End: p.End}}
		fields := []struct {
			dst  **matrix.Dense
			file *MatrixFile
			name string
		}{
			{&tp.IVTT, p.IVTT, "ivtt"},
			{&tp.Walk, p.Walk, "walk"},
			{&tp.Wait, p.Wait, "wait"},
			{&tp.Boarding, p.Boarding, "boarding"},
			{&tp.Fare, p.Fare, "fare"},
			{&tp.Perceived, p.Perceived, "perceived"},
		}
		for _, f := range fields {
			if *f.dst, err = f.file.read(name+"."+f.name, zs); err != nil {
				return nil, err
			}
		}
		transitPeriods[i] = tp
	}
	transit, err := network.NewTransitSkim(transitCfg.Name, n, transitPeriods...)
	if err != nil {
		return nil, err
	}
	return network.NewRegistry(auto, transit)
}

// skimLinks reads a "from,to,minutes" connector CSV (zone numbers, with a
// header row) and computes the shortest-path time matrix.
func skimLinks(ctx context.Context, path string, zs *zone.System) (*matrix.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("links: %w", err)
	}
	defer f.Close()
	recs, err := landuse.ReadRecords(f, landuse.CSVOptions{Format: landuse.ThirdNormalized, Header: true, ReadType: landuse.Matrix})
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	links := make([]network.Link, len(recs))
	for i, r := range recs {
		from, err := zs.FlatIndex(r.Origin)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", path, err)
		}
		to, err := zs.FlatIndex(r.Destination)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", path, err)
		}
		links[i] = network.Link{From: from, To: to, Time: r.Value}
	}
	return network.SkimFromLinks(ctx, zs.Len(), links)
}

func vectorSource(name string, v *VectorFile, zs *zone.System) landuse.Source[[]float64] {
	return landuse.NewCSVVector(name, v.File, v.Header, zs)
}

func (c *Config) buildLocationChoice(zs *zone.System, periods *timeperiod.Set, reg *network.Registry, o Options) (*locchoice.Model, error) {
	lc := &c.LocationChoice
	cfg := locchoice.Config{
		ValidDestinations:             lc.ValidDestinations,
		MaxEpisodeDurationCompression: lc.MaxEpisodeDurationCompression,
		AutoNetwork:                   c.Networks.Auto.Name,
		TransitNetwork:                c.Networks.Transit.Name,
		Estimation:                    lc.Estimation,
	}
	for k, sm := range c.Submodels() {
		cfg.Submodels[k] = locchoice.SubmodelConfig{Params: sm.Params, Periods: sm.TimePeriods}
	}

	deps := locchoice.Deps{Zones: zs, Periods: periods, Networks: reg}
	for cat := utility.Category(0); cat < utility.NumCategories; cat++ {
		if v, ok := c.LandUse.Employment[cat.String()]; ok {
			deps.Employment[cat] = vectorSource(cat.String(), &v, zs)
			continue
		}
		deps.Employment[cat] = landuse.NewStatic(cat.String(), make([]float64, zs.Len()))
	}

	opts := []locchoice.Option{locchoice.WithLogger(o.log)}
	if o.scalar {
		opts = append(opts, locchoice.WithScalarKernels())
	}
	return locchoice.New(cfg, deps, opts...)
}

func (c *Config) buildAutoOwnership(zs *zone.System, reg *network.Registry, o Options) (*autoown.Model, error) {
	lu := &c.LandUse
	deps := autoown.Deps{
		Zones:             zs,
		Networks:          reg,
		PopulationDensity: vectorSource("population_density", lu.PopulationDensity, zs),
		JobDensity:        vectorSource("job_density", lu.JobDensity, zs),
		JobLinkages:       lu.JobLinkages.source("job_linkages", zs),
	}
	return autoown.New(c.AutoOwnership.Params, c.AutoOwnership.Regions, deps, autoown.WithLogger(o.log))
}
