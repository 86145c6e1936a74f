package locchoice

import "github.com/katalvlaran/zonechoice/clock"

// AvailableTime exposes the anchor time budget for tests.
func (m *Model) AvailableTime(previous, next *Episode) clock.Time {
	return m.availableTime(previous, next)
}

// Neighbours exposes the schedule scan for tests.
func Neighbours(s *Schedule, self *Episode) (previous, next *Episode) {
	return s.neighbours(self)
}
