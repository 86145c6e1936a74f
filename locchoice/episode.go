package locchoice

import "github.com/katalvlaran/zonechoice/clock"

// Episode is one scheduled activity of a person. Zone is a zone number
// (zone.NoZone when unassigned). OriginalDuration is the duration before any
// schedule compression.
type Episode struct {
	Activity         Activity
	Zone             int
	Start            clock.Time
	Duration         clock.Time
	OriginalDuration clock.Time
	Schedule         *Schedule
}

// End returns Start + Duration.
func (e *Episode) End() clock.Time { return e.Start + e.Duration }

// Schedule is a person's ordered episode list. A nil entry terminates it.
type Schedule struct {
	HouseholdID int
	HomeZone    int
	Episodes    []*Episode
}

// Add appends ep and links it back to the schedule.
func (s *Schedule) Add(ep *Episode) *Episode {
	ep.Schedule = s
	s.Episodes = append(s.Episodes, ep)
	return ep
}

// neighbours finds the episodes around self: next is the first episode
// starting strictly after self.Start, previous the one before it. When none
// starts later, previous is the last episode and next is nil. self is
// skipped when it is already part of the schedule.
func (s *Schedule) neighbours(self *Episode) (previous, next *Episode) {
	for _, e := range s.Episodes {
		if e == nil {
			break
		}
		if e == self {
			continue
		}
		if self.Start < e.Start {
			return previous, e
		}
		previous = e
	}
	return previous, nil
}
