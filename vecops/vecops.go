// SPDX-License-Identifier: MIT

package vecops

import (
	"sync/atomic"

	"gonum.org/v1/gonum/floats"
)

// accelerated selects the gonum kernels; false forces the scalar twins.
var accelerated atomic.Bool

func init() { accelerated.Store(true) }

// SetAccelerated toggles the gonum-backed kernels for the whole process.
// Intended for verification runs; it is safe to call concurrently but a
// routine already in flight keeps the path it started with.
func SetAccelerated(on bool) { accelerated.Store(on) }

// Accelerated reports whether the gonum kernels are in use.
func Accelerated() bool { return accelerated.Load() }

// Subtract computes dest[i] = lhs[i] - rhs[i].
// Complexity: O(n).
func Subtract(dest, lhs, rhs []float64) error {
	if len(dest) != len(lhs) || len(lhs) != len(rhs) {
		return vecErrorf("Subtract", ErrLengthMismatch)
	}
	if accelerated.Load() {
		floats.SubTo(dest, lhs, rhs)
		return nil
	}
	subtract(dest, lhs, rhs)
	return nil
}

// SubtractScalar computes dest[i] = lhs[i] - rhs.
func SubtractScalar(dest, lhs []float64, rhs float64) error {
	if len(dest) != len(lhs) {
		return vecErrorf("SubtractScalar", ErrLengthMismatch)
	}
	if accelerated.Load() {
		copy(dest, lhs)
		floats.AddConst(-rhs, dest)
		return nil
	}
	subtractScalar(dest, lhs, rhs)
	return nil
}

// ScalarSubtract computes dest[i] = lhs - rhs[i].
func ScalarSubtract(dest []float64, lhs float64, rhs []float64) error {
	if len(dest) != len(rhs) {
		return vecErrorf("ScalarSubtract", ErrLengthMismatch)
	}
	if accelerated.Load() {
		// -r + l is bit-identical to l - r under IEEE-754.
		floats.ScaleTo(dest, -1, rhs)
		floats.AddConst(lhs, dest)
		return nil
	}
	scalarSubtract(dest, lhs, rhs)
	return nil
}

// Multiply computes dest[i] = lhs[i] * rhs[i].
func Multiply(dest, lhs, rhs []float64) error {
	if len(dest) != len(lhs) || len(lhs) != len(rhs) {
		return vecErrorf("Multiply", ErrLengthMismatch)
	}
	if accelerated.Load() {
		floats.MulTo(dest, lhs, rhs)
		return nil
	}
	multiply(dest, lhs, rhs)
	return nil
}

// MultiplyScalar computes dest[i] = lhs[i] * s. dest may alias lhs.
func MultiplyScalar(dest, lhs []float64, s float64) error {
	if len(dest) != len(lhs) {
		return vecErrorf("MultiplyScalar", ErrLengthMismatch)
	}
	if accelerated.Load() {
		floats.ScaleTo(dest, s, lhs)
		return nil
	}
	multiplyScalar(dest, lhs, s)
	return nil
}

// Sum returns the sum of v. The accelerated path may associate differently
// from the scalar twin; results agree within rounding.
func Sum(v []float64) float64 {
	if accelerated.Load() {
		return floats.Sum(v)
	}
	return sum(v)
}

// Set assigns value to every element of dest.
func Set(dest []float64, value float64) {
	for i := range dest {
		dest[i] = value
	}
}
