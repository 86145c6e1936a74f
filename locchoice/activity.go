package locchoice

// Activity is the type of a scheduled episode.
type Activity int

// Activities known to the scheduler. Only the discretionary ones map to a
// location-choice submodel; the rest keep their assigned zone.
const (
	Home Activity = iota
	PrimaryWork
	SecondaryWork
	WorkBasedBusiness
	School
	Market
	JointMarket
	IndividualOther
	JointOther
	ReturnFromWork
)

var activityNames = map[Activity]string{
	Home:              "home",
	PrimaryWork:       "primary_work",
	SecondaryWork:     "secondary_work",
	WorkBasedBusiness: "work_based_business",
	School:            "school",
	Market:            "market",
	JointMarket:       "joint_market",
	IndividualOther:   "individual_other",
	JointOther:        "joint_other",
	ReturnFromWork:    "return_from_work",
}

func (a Activity) String() string {
	if s, ok := activityNames[a]; ok {
		return s
	}
	return "unknown"
}

// ParseActivity maps a snake_case name back to its Activity.
func ParseActivity(s string) (Activity, bool) {
	for a, name := range activityNames {
		if name == s {
			return a, true
		}
	}
	return 0, false
}

// Kind selects one of the three location-choice submodels.
type Kind int

// Submodel kinds.
const (
	KindMarket Kind = iota
	KindOther
	KindWorkBasedBusiness
	NumKinds
)

func (k Kind) String() string {
	switch k {
	case KindMarket:
		return "market"
	case KindOther:
		return "other"
	case KindWorkBasedBusiness:
		return "work_based_business"
	}
	return "unknown"
}

// kindOf is the activity dispatch table.
var kindOf = map[Activity]Kind{
	Market:            KindMarket,
	JointMarket:       KindMarket,
	IndividualOther:   KindOther,
	JointOther:        KindOther,
	WorkBasedBusiness: KindWorkBasedBusiness,
	SecondaryWork:     KindWorkBasedBusiness,
}

// KindOf returns the submodel handling a, or false when none does.
func KindOf(a Activity) (Kind, bool) {
	k, ok := kindOf[a]
	return k, ok
}
