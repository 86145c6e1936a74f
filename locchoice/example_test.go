package locchoice_test

import (
	"fmt"

	"github.com/katalvlaran/zonechoice/locchoice"
)

// Three zones with 0, 1 and 2 jobs: attraction is 1 + jobs, travel is
// identical everywhere, so the destination shares are 1/6, 2/6 and 3/6.
func ExampleModel_GetLocationProbabilities() {
	m, err := build(threeZones())
	if err != nil {
		fmt.Println(err)
		return
	}
	s := &locchoice.Schedule{HouseholdID: 1, HomeZone: 1}
	ep := &locchoice.Episode{Activity: locchoice.Market, Start: 600, Duration: 30, Schedule: s}

	p, _ := m.GetLocationProbabilities(ep)
	fmt.Printf("%.3f %.3f %.3f\n", p[0], p[1], p[2])

	number, ok, _ := m.GetLocation(ep, fixed(0.9))
	fmt.Println(number, ok)
	// Output:
	// 0.167 0.333 0.500
	// 3 true
}
