// Package zone holds the zone system: the ordered zones of the study area,
// the bijection between zone numbers and dense flat indices, the planning
// district of every zone and the inter-zonal distance matrix.
//
// All hot arrays elsewhere in the module are indexed by flat index; zone
// numbers only appear at the edges (configuration, records, output).
// A System is immutable after NewSystem and safe for concurrent reads.
package zone

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/katalvlaran/zonechoice/matrix"
	"github.com/katalvlaran/zonechoice/rangeset"
)

// NoZone marks an absent zone reference (zone numbers are always > 0).
const NoZone = 0

// Zone is one traffic analysis zone.
type Zone struct {
	Number           int
	PlanningDistrict int
	Population       float64
	// X and Y are planar coordinates in meters.
	X, Y float64
}

// Point returns the zone centroid, letting a Zone satisfy orb.Pointer.
func (z Zone) Point() orb.Point { return orb.Point{z.X, z.Y} }

// System is the read-only zone system.
type System struct {
	zones    []Zone
	index    map[int]int
	pds      []int       // distinct planning districts, ascending
	pdIndex  map[int]int // planning district -> position in pds
	flatPD   []int       // flat zone -> position in pds
	distance *matrix.Dense
}

// NewSystem sorts zones by number and builds every derived lookup.
//
// Errors:
//   - ErrEmpty, ErrInvalidNumber, ErrDuplicateZone, ErrDistanceShape.
func NewSystem(zones []Zone, opts ...Option) (*System, error) {
	if len(zones) == 0 {
		return nil, ErrEmpty
	}
	o := Options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	sorted := make([]Zone, len(zones))
	copy(sorted, zones)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].Number < sorted[b].Number })

	s := &System{
		zones:   sorted,
		index:   make(map[int]int, len(sorted)),
		pdIndex: make(map[int]int),
		flatPD:  make([]int, len(sorted)),
	}
	for i, z := range sorted {
		if z.Number <= NoZone {
			return nil, fmt.Errorf("zone %d: %w", z.Number, ErrInvalidNumber)
		}
		if _, dup := s.index[z.Number]; dup {
			return nil, fmt.Errorf("zone %d: %w", z.Number, ErrDuplicateZone)
		}
		s.index[z.Number] = i
		if _, seen := s.pdIndex[z.PlanningDistrict]; !seen {
			s.pdIndex[z.PlanningDistrict] = 0
			s.pds = append(s.pds, z.PlanningDistrict)
		}
	}
	sort.Ints(s.pds)
	for k, pd := range s.pds {
		s.pdIndex[pd] = k
	}
	for i, z := range sorted {
		s.flatPD[i] = s.pdIndex[z.PlanningDistrict]
	}

	if o.distances != nil {
		if err := matrix.ValidateOD(o.distances, len(sorted)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDistanceShape, err)
		}
		s.distance = o.distances
	} else {
		d, err := euclidean(sorted)
		if err != nil {
			return nil, err
		}
		s.distance = d
	}

	return s, nil
}

func euclidean(zones []Zone) (*matrix.Dense, error) {
	n := len(zones)
	d, err := matrix.NewSquare(n)
	if err != nil {
		return nil, err
	}
	buf := d.Data()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := planar.Distance(zones[i].Point(), zones[j].Point())
			buf[i*n+j] = v
			buf[j*n+i] = v
		}
	}
	return d, nil
}

// Len returns the number of zones N.
func (s *System) Len() int { return len(s.zones) }

// Zones returns the zones in flat-index order. Callers must not modify it.
func (s *System) Zones() []Zone { return s.zones }

// Zone returns the zone at flat index i.
func (s *System) Zone(i int) Zone { return s.zones[i] }

// FlatIndex maps a zone number to its flat index.
func (s *System) FlatIndex(number int) (int, error) {
	i, ok := s.index[number]
	if !ok {
		return -1, fmt.Errorf("zone %d: %w", number, ErrUnknownZone)
	}
	return i, nil
}

// Has reports whether number is a zone of the system.
func (s *System) Has(number int) bool {
	_, ok := s.index[number]
	return ok
}

// PlanningDistrict returns the planning district of the zone at flat index i.
func (s *System) PlanningDistrict(i int) int { return s.zones[i].PlanningDistrict }

// PlanningDistricts returns the distinct planning districts in ascending order.
func (s *System) PlanningDistricts() []int { return s.pds }

// PDIndex returns the position of planning district pd in PlanningDistricts.
func (s *System) PDIndex(pd int) (int, bool) {
	k, ok := s.pdIndex[pd]
	return k, ok
}

// FlatPDIndex maps each flat zone index to its planning-district position.
// The slice is shared; callers must not modify it.
func (s *System) FlatPDIndex() []int { return s.flatPD }

// Distance returns the distance in meters between flat zones i and j.
func (s *System) Distance(i, j int) float64 {
	return s.distance.Data()[i*len(s.zones)+j]
}

// Distances exposes the N×N distance matrix.
func (s *System) Distances() *matrix.Dense { return s.distance }

// Mask returns, per flat index, whether the zone number lies in set.
func (s *System) Mask(set rangeset.Set) []bool {
	out := make([]bool, len(s.zones))
	for i, z := range s.zones {
		out[i] = set.Contains(z.Number)
	}
	return out
}
