package utility

import (
	"github.com/katalvlaran/zonechoice/pdcube"
	"github.com/katalvlaran/zonechoice/rangeset"
)

// Category indexes the employment categories feeding zone attraction.
type Category int

// Employment categories by occupation and full/part-time status.
const (
	ProfessionalFullTime Category = iota
	ProfessionalPartTime
	GeneralFullTime
	GeneralPartTime
	RetailFullTime
	RetailPartTime
	ManufacturingFullTime
	ManufacturingPartTime
	NumCategories
)

var categoryNames = [NumCategories]string{
	"professional_full_time",
	"professional_part_time",
	"general_full_time",
	"general_part_time",
	"retail_full_time",
	"retail_part_time",
	"manufacturing_full_time",
	"manufacturing_part_time",
}

// String returns the snake_case configuration key of the category.
func (c Category) String() string {
	if c < 0 || c >= NumCategories {
		return "unknown"
	}
	return categoryNames[c]
}

// ParseCategory maps a configuration key back to its Category.
func ParseCategory(s string) (Category, bool) {
	for c, name := range categoryNames {
		if name == s {
			return Category(c), true
		}
	}
	return 0, false
}

// Params are the utility coefficients of one activity submodel.
type Params struct {
	// Employment weights log(1 + jobs) per category.
	Employment [NumCategories]float64 `yaml:"employment"`
	// Population weights log(1 + population).
	Population float64 `yaml:"population"`

	AutoTime        float64 `yaml:"auto_time"`
	TransitConstant float64 `yaml:"transit_constant"`
	TransitTime     float64 `yaml:"transit_time"`
	TransitWalk     float64 `yaml:"transit_walk"`
	TransitWait     float64 `yaml:"transit_wait"`
	TransitBoarding float64 `yaml:"transit_boarding"`
	// Cost weights both auto cost and transit fare.
	Cost       float64 `yaml:"cost"`
	IntraZonal float64 `yaml:"intra_zonal"`
}

// SpatialRegion adds Constant to the attraction of zones whose planning
// district lies in PlanningDistricts.
type SpatialRegion struct {
	PlanningDistricts rangeset.Set `yaml:"planning_districts"`
	Constant          float64      `yaml:"constant"`
}

// PeriodParams are the per-time-period constants of a submodel.
type PeriodParams struct {
	// PDConstants are scanned in order; the first region containing the
	// destination's planning district applies.
	PDConstants []SpatialRegion     `yaml:"pd_constants"`
	ODConstants []pdcube.ODConstant `yaml:"od_constants"`
	// SamePD applies when previous and next anchors share the destination's district.
	SamePD float64 `yaml:"same_pd"`
}

// pdConstant returns the constant of the first region containing pd, or 0.
func (pp *PeriodParams) pdConstant(pd int) float64 {
	for _, r := range pp.PDConstants {
		if r.PlanningDistricts.Contains(pd) {
			return r.Constant
		}
	}
	return 0
}
