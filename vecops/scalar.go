package vecops

// Scalar reference twins. Lengths are validated by the exported callers.

func subtract(dest, lhs, rhs []float64) {
	for i := range dest {
		dest[i] = lhs[i] - rhs[i]
	}
}

func subtractScalar(dest, lhs []float64, rhs float64) {
	for i := range dest {
		dest[i] = lhs[i] - rhs
	}
}

func scalarSubtract(dest []float64, lhs float64, rhs []float64) {
	for i := range dest {
		dest[i] = lhs - rhs[i]
	}
}

func multiply(dest, lhs, rhs []float64) {
	for i := range dest {
		dest[i] = lhs[i] * rhs[i]
	}
}

func multiplyScalar(dest, lhs []float64, s float64) {
	for i := range dest {
		dest[i] = lhs[i] * s
	}
}

func sum(v []float64) float64 {
	var total float64
	for _, x := range v {
		total += x
	}
	return total
}
