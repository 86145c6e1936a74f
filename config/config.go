// Package config reads the YAML description of a model run: the zone
// system, time periods, network skims, land-use files, the three
// location-choice submodels and the auto-ownership model.
//
// Load decodes over Default, resolves relative file paths against the
// directory of the YAML file and validates. Build turns a validated Config
// into ready-to-load models.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/zonechoice/autoown"
	"github.com/katalvlaran/zonechoice/clock"
	"github.com/katalvlaran/zonechoice/locchoice"
	"github.com/katalvlaran/zonechoice/rangeset"
	"github.com/katalvlaran/zonechoice/utility"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// MatrixFile is a zone-pair CSV.
type MatrixFile struct {
	File string `yaml:"file"`
	// Format is "third_normalized" (origin,destination,value; the default) or "square".
	Format string `yaml:"format"`
	Header bool   `yaml:"header"`
	// Subtract is taken away cell by cell, before Mask applies.
	Subtract *MatrixFile `yaml:"subtract"`
	Mask     *MatrixMask `yaml:"mask"`
}

// MatrixMask keeps the cells from Origins to Destinations (zone numbers)
// and sets every other cell to Value.
type MatrixMask struct {
	Origins      rangeset.Set `yaml:"origins"`
	Destinations rangeset.Set `yaml:"destinations"`
	Value        float64      `yaml:"value"`
}

// VectorFile is a per-zone "zone,value" CSV.
type VectorFile struct {
	File   string `yaml:"file"`
	Header bool   `yaml:"header"`
}

// ZoneEntry is one inline zone.
type ZoneEntry struct {
	Number           int     `yaml:"number"`
	PlanningDistrict int     `yaml:"planning_district"`
	Population       float64 `yaml:"population"`
	X                float64 `yaml:"x"`
	Y                float64 `yaml:"y"`
}

// Zones lists the zones inline or names a CSV with a header row and the
// columns zone, planning district, population, x, y.
type Zones struct {
	File      string      `yaml:"file"`
	Inline    []ZoneEntry `yaml:"inline"`
	Distances *MatrixFile `yaml:"distances"`
}

// Period is one time-of-day window.
type Period struct {
	Name  string     `yaml:"name"`
	Start clock.Time `yaml:"start"`
	End   clock.Time `yaml:"end"`
}

// AutoPeriod is an auto skim window. Time comes from a matrix file or is
// computed from a "from,to,minutes" connector CSV.
type AutoPeriod struct {
	Start clock.Time  `yaml:"start"`
	End   clock.Time  `yaml:"end"`
	Time  *MatrixFile `yaml:"time"`
	Links string      `yaml:"links"`
	Cost  *MatrixFile `yaml:"cost"`
}

// TransitPeriod is a transit skim window.
type TransitPeriod struct {
	Start     clock.Time  `yaml:"start"`
	End       clock.Time  `yaml:"end"`
	IVTT      *MatrixFile `yaml:"ivtt"`
	Walk      *MatrixFile `yaml:"walk"`
	Wait      *MatrixFile `yaml:"wait"`
	Boarding  *MatrixFile `yaml:"boarding"`
	Fare      *MatrixFile `yaml:"fare"`
	Perceived *MatrixFile `yaml:"perceived"`
}

// Networks names and describes the auto and transit skims.
type Networks struct {
	Auto struct {
		Name    string       `yaml:"name"`
		Periods []AutoPeriod `yaml:"periods"`
	} `yaml:"auto"`
	Transit struct {
		Name    string          `yaml:"name"`
		Periods []TransitPeriod `yaml:"periods"`
	} `yaml:"transit"`
}

// LandUse names the land-use files. Employment is keyed by category name
// (see utility.Category); absent categories hold no jobs.
type LandUse struct {
	Employment        map[string]VectorFile `yaml:"employment"`
	PopulationDensity *VectorFile           `yaml:"population_density"`
	JobDensity        *VectorFile           `yaml:"job_density"`
	JobLinkages       *MatrixFile           `yaml:"job_linkages"`
}

// Submodel is the configuration of one location-choice kind.
type Submodel struct {
	Params      utility.Params         `yaml:"params"`
	TimePeriods []utility.PeriodParams `yaml:"time_periods"`
}

// LocationChoice configures the location-choice model.
type LocationChoice struct {
	ValidDestinations             rangeset.Set `yaml:"valid_destinations"`
	MaxEpisodeDurationCompression float64      `yaml:"max_episode_duration_compression"`
	Estimation                    bool         `yaml:"estimation"`
	Market                        Submodel     `yaml:"market"`
	Other                         Submodel     `yaml:"other"`
	WorkBasedBusiness             Submodel     `yaml:"work_based_business"`
}

// AutoOwnership configures the auto-ownership model.
type AutoOwnership struct {
	Params  autoown.Params   `yaml:"params"`
	Regions []autoown.Region `yaml:"regions"`
}

// UnmarshalYAML decodes over autoown.DefaultParams.
func (a *AutoOwnership) UnmarshalYAML(node *yaml.Node) error {
	type plain AutoOwnership
	p := plain{Params: autoown.DefaultParams()}
	if err := node.Decode(&p); err != nil {
		return err
	}
	*a = AutoOwnership(p)
	return nil
}

// Config is a whole model run.
type Config struct {
	Zones          Zones          `yaml:"zones"`
	TimePeriods    []Period       `yaml:"time_periods"`
	Networks       Networks       `yaml:"networks"`
	LandUse        LandUse        `yaml:"land_use"`
	LocationChoice LocationChoice `yaml:"location_choice"`
	AutoOwnership  *AutoOwnership `yaml:"auto_ownership"`
}

// Default returns a Config with the model defaults and nothing to load.
func Default() Config {
	var c Config
	c.Networks.Auto.Name = locchoice.DefaultAutoNetwork
	c.Networks.Transit.Name = locchoice.DefaultTransitNetwork
	c.LocationChoice.ValidDestinations = rangeset.MustParse(locchoice.DefaultValidDestinations)
	c.LocationChoice.MaxEpisodeDurationCompression = locchoice.DefaultMaxEpisodeDurationCompression
	return c
}

// Load reads path, decodes it over Default, resolves file paths relative
// to path's directory and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	cfg.resolve(filepath.Dir(path))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML over Default without validating.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	return &cfg, nil
}

// Submodels returns the three submodels in locchoice.Kind order.
func (c *Config) Submodels() [locchoice.NumKinds]*Submodel {
	lc := &c.LocationChoice
	return [locchoice.NumKinds]*Submodel{
		locchoice.KindMarket:            &lc.Market,
		locchoice.KindOther:             &lc.Other,
		locchoice.KindWorkBasedBusiness: &lc.WorkBasedBusiness,
	}
}

// resolve makes every relative file path relative to dir.
func (c *Config) resolve(dir string) {
	abs := func(p *string) {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	var mf func(m *MatrixFile)
	mf = func(m *MatrixFile) {
		if m != nil {
			abs(&m.File)
			mf(m.Subtract)
		}
	}
	vf := func(v *VectorFile) {
		if v != nil {
			abs(&v.File)
		}
	}

	abs(&c.Zones.File)
	mf(c.Zones.Distances)
	for i := range c.Networks.Auto.Periods {
		p := &c.Networks.Auto.Periods[i]
		mf(p.Time)
		mf(p.Cost)
		abs(&p.Links)
	}
	for i := range c.Networks.Transit.Periods {
		p := &c.Networks.Transit.Periods[i]
		for _, m := range []*MatrixFile{p.IVTT, p.Walk, p.Wait, p.Boarding, p.Fare, p.Perceived} {
			mf(m)
		}
	}
	for k, v := range c.LandUse.Employment {
		vf(&v)
		c.LandUse.Employment[k] = v
	}
	vf(c.LandUse.PopulationDensity)
	vf(c.LandUse.JobDensity)
	mf(c.LandUse.JobLinkages)
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func validMatrix(field string, m *MatrixFile, required bool) error {
	if m == nil {
		if required {
			return invalidf("%s: missing", field)
		}
		return nil
	}
	if strings.TrimSpace(m.File) == "" {
		return invalidf("%s: no file", field)
	}
	switch m.Format {
	case "", "third_normalized", "square":
	default:
		return invalidf("%s: unknown format %q", field, m.Format)
	}
	if m.Mask != nil && (m.Mask.Origins.Empty() || m.Mask.Destinations.Empty()) {
		return invalidf("%s.mask: origins and destinations are required", field)
	}
	return validMatrix(field+".subtract", m.Subtract, false)
}

func validWindow(field string, start, end clock.Time) error {
	if end <= start {
		return invalidf("%s: end %s is not after start %s", field, end, start)
	}
	return nil
}

// Validate reports the first configuration problem, wrapped in ErrInvalid.
func (c *Config) Validate() error {
	if (c.Zones.File == "") == (len(c.Zones.Inline) == 0) {
		return invalidf("zones: exactly one of file or inline is required")
	}
	if err := validMatrix("zones.distances", c.Zones.Distances, false); err != nil {
		return err
	}

	if len(c.TimePeriods) == 0 {
		return invalidf("time_periods: none declared")
	}
	for i, p := range c.TimePeriods {
		if p.Name == "" {
			return invalidf("time_periods[%d]: no name", i)
		}
		if err := validWindow(fmt.Sprintf("time_periods[%d]", i), p.Start, p.End); err != nil {
			return err
		}
	}

	if err := c.validateNetworks(); err != nil {
		return err
	}

	for name, v := range c.LandUse.Employment {
		if _, ok := utility.ParseCategory(name); !ok {
			return invalidf("land_use.employment: unknown category %q", name)
		}
		if v.File == "" {
			return invalidf("land_use.employment.%s: no file", name)
		}
	}

	lc := &c.LocationChoice
	if lc.MaxEpisodeDurationCompression < 0 || lc.MaxEpisodeDurationCompression > 1 {
		return invalidf("location_choice.max_episode_duration_compression: %g outside [0, 1]", lc.MaxEpisodeDurationCompression)
	}
	for k, sm := range c.Submodels() {
		if len(sm.TimePeriods) != len(c.TimePeriods) {
			return invalidf("location_choice.%s: %d time periods, the model has %d",
				locchoice.Kind(k), len(sm.TimePeriods), len(c.TimePeriods))
		}
	}

	if ao := c.AutoOwnership; ao != nil {
		lu := &c.LandUse
		if lu.PopulationDensity == nil || lu.JobDensity == nil {
			return invalidf("auto_ownership: land_use.population_density and land_use.job_density are required")
		}
		if err := validMatrix("land_use.job_linkages", lu.JobLinkages, true); err != nil {
			return err
		}
		if ao.Params.AutoNetwork != c.Networks.Auto.Name || ao.Params.TransitNetwork != c.Networks.Transit.Name {
			return invalidf("auto_ownership: networks %q/%q are not declared", ao.Params.AutoNetwork, ao.Params.TransitNetwork)
		}
	}
	return nil
}

func (c *Config) validateNetworks() error {
	auto, transit := &c.Networks.Auto, &c.Networks.Transit
	if auto.Name == "" || transit.Name == "" || auto.Name == transit.Name {
		return invalidf("networks: auto and transit need distinct names")
	}
	if len(auto.Periods) == 0 {
		return invalidf("networks.auto: no periods")
	}
	for i, p := range auto.Periods {
		field := fmt.Sprintf("networks.auto.periods[%d]", i)
		if err := validWindow(field, p.Start, p.End); err != nil {
			return err
		}
		if (p.Time == nil) == (p.Links == "") {
			return invalidf("%s: exactly one of time or links is required", field)
		}
		if err := validMatrix(field+".time", p.Time, false); err != nil {
			return err
		}
		if err := validMatrix(field+".cost", p.Cost, false); err != nil {
			return err
		}
	}
	if len(transit.Periods) == 0 {
		return invalidf("networks.transit: no periods")
	}
	for i, p := range transit.Periods {
		field := fmt.Sprintf("networks.transit.periods[%d]", i)
		if err := validWindow(field, p.Start, p.End); err != nil {
			return err
		}
		skims := []struct {
			name     string
			m        *MatrixFile
			required bool
		}{
			{"ivtt", p.IVTT, true},
			{"walk", p.Walk, true},
			{"wait", p.Wait, true},
			{"boarding", p.Boarding, false},
			{"fare", p.Fare, false},
			{"perceived", p.Perceived, false},
		}
		for _, s := range skims {
			if err := validMatrix(field+"."+s.name, s.m, s.required); err != nil {
				return err
			}
		}
	}
	return nil
}
