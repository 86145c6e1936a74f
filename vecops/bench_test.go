package vecops_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/zonechoice/vecops"
)

// benchmarkMultiplyScalar normalizes a zone-sized probability vector.
func benchmarkMultiplyScalar(b *testing.B, n int, accel bool) {
	vecops.SetAccelerated(accel)
	defer vecops.SetAccelerated(true)
	v := randomVec(rand.New(rand.NewSource(1)), n)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := vecops.MultiplyScalar(v, v, 1.0000001); err != nil {
			b.Fatalf("MultiplyScalar failed: %v", err)
		}
	}
}

func BenchmarkMultiplyScalar_Accelerated(b *testing.B) { benchmarkMultiplyScalar(b, 2400, true) }
func BenchmarkMultiplyScalar_Scalar(b *testing.B)      { benchmarkMultiplyScalar(b, 2400, false) }

func BenchmarkSum_2400(b *testing.B) {
	v := randomVec(rand.New(rand.NewSource(1)), 2400)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = vecops.Sum(v)
	}
}
