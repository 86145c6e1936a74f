package vecops_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/zonechoice/vecops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomVec returns n values in [-50, 50) from a fixed-seed stream.
func randomVec(r *rand.Rand, n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = r.Float64()*100 - 50
	}
	return v
}

// TestAcceleratedMatchesScalar compares every kernel against its scalar twin
// over lengths that exercise remainders around typical lane widths.
func TestAcceleratedMatchesScalar(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for _, n := range []int{0, 1, 3, 7, 8, 9, 31, 64, 257} {
		lhs, rhs := randomVec(r, n), randomVec(r, n)
		s := r.Float64()*10 - 5
		got, want := make([]float64, n), make([]float64, n)

		require.NoError(t, vecops.Subtract(got, lhs, rhs))
		vecops.ScalarSubtractRef(want, lhs, rhs)
		assert.Equal(t, want, got, "Subtract n=%d", n)

		require.NoError(t, vecops.SubtractScalar(got, lhs, s))
		vecops.ScalarSubtractScalarRef(want, lhs, s)
		assert.Equal(t, want, got, "SubtractScalar n=%d", n)

		require.NoError(t, vecops.ScalarSubtract(got, s, rhs))
		vecops.ScalarScalarSubtractRef(want, s, rhs)
		assert.Equal(t, want, got, "ScalarSubtract n=%d", n)

		require.NoError(t, vecops.Multiply(got, lhs, rhs))
		vecops.ScalarMultiplyRef(want, lhs, rhs)
		assert.Equal(t, want, got, "Multiply n=%d", n)

		require.NoError(t, vecops.MultiplyScalar(got, lhs, s))
		vecops.ScalarMultiplyScalarRef(want, lhs, s)
		assert.Equal(t, want, got, "MultiplyScalar n=%d", n)

		assert.InDelta(t, vecops.ScalarSumRef(lhs), vecops.Sum(lhs), 1e-9, "Sum n=%d", n)
	}
}

// TestScalarPathToggle forces the scalar twins through the public API.
func TestScalarPathToggle(t *testing.T) {
	vecops.SetAccelerated(false)
	defer vecops.SetAccelerated(true)
	require.False(t, vecops.Accelerated())

	dest := make([]float64, 3)
	require.NoError(t, vecops.Subtract(dest, []float64{5, 6, 7}, []float64{1, 2, 3}))
	assert.Equal(t, []float64{4, 4, 4}, dest)
	assert.Equal(t, 6.0, vecops.Sum([]float64{1, 2, 3}))
}

// TestLengthMismatch never panics and reports the sentinel.
func TestLengthMismatch(t *testing.T) {
	short := make([]float64, 2)
	long := make([]float64, 3)
	require.ErrorIs(t, vecops.Subtract(short, long, long), vecops.ErrLengthMismatch)
	require.ErrorIs(t, vecops.SubtractScalar(short, long, 1), vecops.ErrLengthMismatch)
	require.ErrorIs(t, vecops.ScalarSubtract(short, 1, long), vecops.ErrLengthMismatch)
	require.ErrorIs(t, vecops.Multiply(long, long, short), vecops.ErrLengthMismatch)
	require.ErrorIs(t, vecops.MultiplyScalar(short, long, 2), vecops.ErrLengthMismatch)
}

// TestJagged covers the row-parallel variants, including ragged rows.
func TestJagged(t *testing.T) {
	lhs := [][]float64{{1, 2, 3}, {4}, {}}
	rhs := [][]float64{{1, 1, 1}, {2}, {}}
	dest := [][]float64{make([]float64, 3), make([]float64, 1), {}}

	require.NoError(t, vecops.SubtractJagged(dest, lhs, rhs))
	assert.Equal(t, [][]float64{{0, 1, 2}, {2}, {}}, dest)

	require.NoError(t, vecops.ScalarSubtractJagged(dest, 10, rhs))
	assert.Equal(t, [][]float64{{9, 9, 9}, {8}, {}}, dest)

	require.NoError(t, vecops.SubtractScalarJagged(dest, lhs, 1))
	assert.Equal(t, [][]float64{{0, 1, 2}, {3}, {}}, dest)

	require.NoError(t, vecops.MultiplyScalarJagged(dest, lhs, 2))
	assert.Equal(t, [][]float64{{2, 4, 6}, {8}, {}}, dest)

	assert.Equal(t, 10.0, vecops.SumJagged(lhs))

	bad := [][]float64{make([]float64, 2), make([]float64, 1), {}}
	require.ErrorIs(t, vecops.SubtractJagged(bad, lhs, rhs), vecops.ErrLengthMismatch)
	require.ErrorIs(t, vecops.SubtractJagged(dest[:2], lhs, rhs), vecops.ErrLengthMismatch)
}

// TestSet fills every slot.
func TestSet(t *testing.T) {
	v := make([]float64, 5)
	vecops.Set(v, 1)
	assert.Equal(t, []float64{1, 1, 1, 1, 1}, v)
}
