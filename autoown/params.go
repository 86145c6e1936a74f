package autoown

import (
	"fmt"
	"math"

	"github.com/katalvlaran/zonechoice/clock"
	"github.com/katalvlaran/zonechoice/rangeset"
	"gopkg.in/yaml.v3"
)

const (
	// NumThresholds is the number of ordered-logit cut points.
	NumThresholds = 4

	// NumLevels is the number of ownership levels, 0 through MaxLevel vehicles.
	NumLevels = NumThresholds + 1

	// MaxLevel is the top ownership level (4 or more vehicles).
	MaxLevel = NumLevels - 1

	// kFactorsPerZone is ground levels 0..4 followed by apartment levels 0..4.
	kFactorsPerZone = 2 * NumLevels

	// DefaultSeed seeds the model generator when Params.Seed is zero.
	DefaultSeed int64 = 4564616
)

// Params are the calibrated ordered-logit coefficients.
type Params struct {
	Adults          float64 `yaml:"adults"`
	Kids            float64 `yaml:"kids"`
	FullTimeWorkers float64 `yaml:"full_time_workers"`

	// Licences are the terms for 1, 2 and 3+ licences in the household.
	Licences [3]float64 `yaml:"licences"`
	// Income are the dummies for income classes 2 through 6.
	Income [5]float64 `yaml:"income"`

	// PopulationDensity and JobDensity weight persons and jobs per m².
	PopulationDensity float64 `yaml:"population_density"`
	JobDensity        float64 `yaml:"job_density"`
	// Averages over job linkages from the home zone: distance in km, times in minutes.
	AverageDistanceToWork       float64 `yaml:"average_distance_to_work"`
	AveragePerceivedTransitTime float64 `yaml:"average_perceived_transit_time"`
	AverageAutoTime             float64 `yaml:"average_auto_time"`
	Apartment                   float64 `yaml:"apartment"`

	Thresholds [NumThresholds]float64 `yaml:"thresholds"`
	// SufficientLicences applies when every person 16 or older holds a licence.
	SufficientLicences float64 `yaml:"sufficient_licences"`
	// OverSufficient is added to threshold k (1-based) when licences < k.
	OverSufficient float64 `yaml:"over_sufficient"`

	Seed           int64      `yaml:"seed"`
	TimeToUse      clock.Time `yaml:"time_to_use"`
	MaxTransitTime float64    `yaml:"max_transit_time"`
	AutoNetwork    string     `yaml:"auto_network"`
	TransitNetwork string     `yaml:"transit_network"`
}

// DefaultParams returns the calibrated coefficients.
func DefaultParams() Params {
	return Params{
		Adults:                      0.159,
		Kids:                        0.016,
		FullTimeWorkers:             0.184,
		Licences:                    [3]float64{4.820, 6.957, 8.704},
		Income:                      [5]float64{0.470, 0.746, 1.060, 1.374, 1.751},
		PopulationDensity:           -49.620,
		JobDensity:                  -19.492,
		AverageDistanceToWork:       0.104,
		AveragePerceivedTransitTime: 0.005,
		AverageAutoTime:             -0.069,
		Thresholds:                  [NumThresholds]float64{5.186, 9.395, 12.638, 14.570},
		Seed:                        DefaultSeed,
		TimeToUse:                   clock.Of(7, 0, 0),
		MaxTransitTime:              math.Inf(1),
		AutoNetwork:                 "Auto",
		TransitNetwork:              "Transit",
	}
}

// Region adjusts the zones of a set of planning districts. Regions are
// applied in declared order and accumulate: constants and offsets add,
// scales multiply. An all-zero scale array counts as unset and leaves the
// K-factors at 1, so Go literals need not spell out unit scales.
type Region struct {
	PlanningDistricts rangeset.Set           `yaml:"planning_districts"`
	Constant          float64                `yaml:"constant"`
	ApartmentOffset   float64                `yaml:"apartment_offset"`
	ThresholdOffsets  [NumThresholds]float64 `yaml:"threshold_offsets"`
	GroundScale       [NumLevels]float64     `yaml:"ground_scale"`
	ApartmentScale    [NumLevels]float64     `yaml:"apartment_scale"`
}

var unitScale = [NumLevels]float64{1, 1, 1, 1, 1}

// DefaultRegion is a region with unit scales and no adjustments.
func DefaultRegion() Region {
	return Region{GroundScale: unitScale, ApartmentScale: unitScale}
}

// normalized fills unset scales with ones and rejects negative or
// non-finite factors.
func (r Region) normalized() (Region, error) {
	for _, s := range []*[NumLevels]float64{&r.GroundScale, &r.ApartmentScale} {
		if *s == ([NumLevels]float64{}) {
			*s = unitScale
			continue
		}
		for l, v := range s {
			if !(v >= 0) || math.IsInf(v, 1) {
				return r, fmt.Errorf("region %s: scale %g at level %d", r.PlanningDistricts, v, l)
			}
		}
	}
	return r, nil
}

// UnmarshalYAML decodes over DefaultRegion so omitted scales stay 1.
func (r *Region) UnmarshalYAML(node *yaml.Node) error {
	type plain Region
	p := plain(DefaultRegion())
	if err := node.Decode(&p); err != nil {
		return err
	}
	*r = Region(p)
	return nil
}
