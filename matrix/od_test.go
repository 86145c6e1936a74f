package matrix_test

import (
	"testing"

	"github.com/katalvlaran/zonechoice/matrix"
	"github.com/stretchr/testify/require"
)

func TestMaskKeepsWindow(t *testing.T) {
	src, err := matrix.NewDenseFrom(3, 3, []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	})
	require.NoError(t, err)

	out, err := matrix.Mask(src, []bool{true, false, true}, []bool{false, true, true}, -1)
	require.NoError(t, err)
	require.Equal(t, []float64{
		-1, 2, 3,
		-1, -1, -1,
		-1, 8, 9,
	}, out.Data())

	// source untouched
	require.Equal(t, 1.0, src.Data()[0])
}

func TestMaskShapeMismatch(t *testing.T) {
	src, err := matrix.NewSquare(2)
	require.NoError(t, err)

	_, err = matrix.Mask(src, []bool{true}, []bool{true, true}, 0)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Mask(nil, nil, nil, 0)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestSub(t *testing.T) {
	a, err := matrix.NewDenseFrom(2, 2, []float64{5, 4, 3, 2})
	require.NoError(t, err)
	b, err := matrix.NewDenseFrom(2, 2, []float64{1, 1, 1, 3})
	require.NoError(t, err)

	d, err := matrix.Sub(a, b)
	require.NoError(t, err)
	require.Equal(t, []float64{4, 3, 2, -1}, d.Data())

	c, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = matrix.Sub(a, c)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestValidateOD(t *testing.T) {
	sq, _ := matrix.NewSquare(3)
	require.NoError(t, matrix.ValidateOD(sq, 3))
	require.ErrorIs(t, matrix.ValidateOD(sq, 4), matrix.ErrDimensionMismatch)

	rect, _ := matrix.NewDense(2, 3)
	require.ErrorIs(t, matrix.ValidateOD(rect, 2), matrix.ErrNonSquare)

	var nilDense *matrix.Dense
	require.ErrorIs(t, matrix.ValidateOD(nilDense, 2), matrix.ErrNilMatrix)

	require.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)
}
