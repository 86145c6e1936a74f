// SPDX-License-Identifier: MIT

package vecops

import (
	"context"

	"github.com/katalvlaran/zonechoice/internal/parallel"
)

// Jagged kernels: one task per row, rows processed in parallel.
// Row shapes are validated before any write so a mismatch leaves dest intact.

func sameRows(op string, rows ...[][]float64) error {
	n := len(rows[0])
	for _, r := range rows[1:] {
		if len(r) != n {
			return vecErrorf(op, ErrLengthMismatch)
		}
	}
	for i := 0; i < n; i++ {
		l := len(rows[0][i])
		for _, r := range rows[1:] {
			if len(r[i]) != l {
				return vecErrorf(op, ErrLengthMismatch)
			}
		}
	}
	return nil
}

func forRows(n int, fn func(i int) error) error {
	return parallel.For(context.Background(), n, fn)
}

// SubtractJagged computes dest[r][i] = lhs[r][i] - rhs[r][i].
func SubtractJagged(dest, lhs, rhs [][]float64) error {
	if err := sameRows("SubtractJagged", dest, lhs, rhs); err != nil {
		return err
	}
	return forRows(len(dest), func(r int) error {
		return Subtract(dest[r], lhs[r], rhs[r])
	})
}

// ScalarSubtractJagged computes dest[r][i] = lhs - rhs[r][i].
func ScalarSubtractJagged(dest [][]float64, lhs float64, rhs [][]float64) error {
	if err := sameRows("ScalarSubtractJagged", dest, rhs); err != nil {
		return err
	}
	return forRows(len(dest), func(r int) error {
		return ScalarSubtract(dest[r], lhs, rhs[r])
	})
}

// SubtractScalarJagged computes dest[r][i] = lhs[r][i] - rhs.
func SubtractScalarJagged(dest, lhs [][]float64, rhs float64) error {
	if err := sameRows("SubtractScalarJagged", dest, lhs); err != nil {
		return err
	}
	return forRows(len(dest), func(r int) error {
		return SubtractScalar(dest[r], lhs[r], rhs)
	})
}

// MultiplyScalarJagged computes dest[r][i] = lhs[r][i] * s.
func MultiplyScalarJagged(dest, lhs [][]float64, s float64) error {
	if err := sameRows("MultiplyScalarJagged", dest, lhs); err != nil {
		return err
	}
	return forRows(len(dest), func(r int) error {
		return MultiplyScalar(dest[r], lhs[r], s)
	})
}

// SumJagged returns the sum of all elements. Row sums are reduced in row
// order so the result does not depend on scheduling.
func SumJagged(m [][]float64) float64 {
	partial := make([]float64, len(m))
	_ = forRows(len(m), func(r int) error {
		partial[r] = Sum(m[r])
		return nil
	})
	var total float64
	for _, p := range partial {
		total += p
	}
	return total
}
