// SPDX-License-Identifier: MIT

package matrix

import (
	"github.com/katalvlaran/zonechoice/vecops"
)

// Mask returns a copy of src where every cell (i, j) with !originMask[i] or
// !destMask[j] is replaced by masked. Cells inside both windows keep their
// value. The masks are indexed by row/column (flat zone index).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch when a mask length disagrees with the shape.
func Mask(src *Dense, originMask, destMask []bool, masked float64) (*Dense, error) {
	if err := ValidateNotNil(src); err != nil {
		return nil, matrixErrorf("Mask", err)
	}
	if len(originMask) != src.r || len(destMask) != src.c {
		return nil, matrixErrorf("Mask", ErrDimensionMismatch)
	}
	out := src.cloneDense()
	// Masked cells are written straight into the buffer; the masked value
	// is a caller constant and does not go through the Set policy.
	for i := 0; i < out.r; i++ {
		row := out.data[i*out.c : (i+1)*out.c]
		if !originMask[i] {
			vecops.Set(row, masked)
			continue
		}
		for j, keep := range destMask {
			if !keep {
				row[j] = masked
			}
		}
	}

	return out, nil
}

// Sub returns a − b element-wise as a new matrix carrying a's policy.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
func Sub(a, b *Dense) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf("Sub", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf("Sub", err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf("Sub", err)
	}
	out := &Dense{r: a.r, c: a.c, data: make([]float64, len(a.data)), policy: a.policy}
	if err := vecops.Subtract(out.data, a.data, b.data); err != nil {
		return nil, matrixErrorf("Sub", err)
	}

	return out, nil
}
