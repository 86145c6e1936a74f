package autoown

// DwellingType selects the utility and K-factor set of a household.
type DwellingType int

// Dwelling types.
const (
	Ground DwellingType = iota
	Apartment
)

func (d DwellingType) String() string {
	if d == Apartment {
		return "apartment"
	}
	return "ground"
}

// EmploymentStatus is a person's labour-force status.
type EmploymentStatus int

// Employment statuses.
const (
	NotEmployed EmploymentStatus = iota
	FullTime
	PartTime
	WorkAtHomeFullTime
	WorkAtHomePartTime
)

// Person is the read-only slice of a person record the model needs.
type Person struct {
	Age        int              `yaml:"age"`
	Employment EmploymentStatus `yaml:"employment"`
	Licence    bool             `yaml:"licence"`
}

// Household is the read-only slice of a household record the model needs.
// HomeZone is a zone number; zone.NoZone means none. IncomeClass follows the
// 1..6 survey coding, anything else is treated as the base class.
type Household struct {
	ID          int          `yaml:"id"`
	HomeZone    int          `yaml:"home_zone"`
	Dwelling    DwellingType `yaml:"dwelling"`
	IncomeClass int          `yaml:"income_class"`
	Persons     []Person     `yaml:"persons"`
}

// composition counts the household members the utility is linear in.
type composition struct {
	adults, kids, fullTime, licences int
}

// Adults are 18 and over, kids under 16; 16 and 17 year olds count as neither.
func (h *Household) composition() composition {
	var c composition
	for _, p := range h.Persons {
		if p.Age >= 18 {
			c.adults++
		} else if p.Age < 16 {
			c.kids++
		}
		if p.Employment == FullTime {
			c.fullTime++
		}
		if p.Licence {
			c.licences++
		}
	}
	return c
}
