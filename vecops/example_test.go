package vecops_test

import (
	"fmt"

	"github.com/katalvlaran/zonechoice/vecops"
)

// ExampleSubtract computes the difference of two OD rate rows.
func ExampleSubtract() {
	first := []float64{0.5, 0.25, 0.75}
	second := []float64{0.25, 0.25, 0.5}
	out := make([]float64, len(first))
	if err := vecops.Subtract(out, first, second); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(out, vecops.Sum(out))
	// Output: [0.25 0 0.25] 0.5
}
