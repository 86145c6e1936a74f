package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/zonechoice/matrix"
)

// ExampleMask keeps trips leaving the first zone and zeroes the rest.
func ExampleMask() {
	trips, _ := matrix.NewDenseFrom(2, 2, []float64{10, 20, 30, 40})
	masked, _ := matrix.Mask(trips, []bool{true, false}, []bool{true, true}, 0)
	fmt.Print(masked)
	// Output:
	// [10, 20]
	// [0, 0]
}
