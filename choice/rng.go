// Package choice - deterministic random streams for the choice models.
//
// Goals:
//   - Determinism: same seed ⇒ identical draws across runs.
//   - A single RNG factory; no time-based sources hidden anywhere.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a *rand.Rand across
//     goroutines; use DeriveRand for per-worker streams or Locked for a
//     shared model-level generator.
package choice

import (
	"math/rand"
	"sync"
)

// DefaultSeed is used when callers pass seed==0.
const DefaultSeed int64 = 1

// NewRand returns a deterministic *rand.Rand. seed==0 ⇒ DefaultSeed.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream id with a SplitMix64 finalizer.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// DeriveRand creates an independent stream from base and a stream id. base
// is advanced once so reusing a stream id by mistake still yields a new
// stream. base==nil uses DefaultSeed as the parent.
//
// Call during setup (one per worker), not in hot loops.
func DeriveRand(base *rand.Rand, stream uint64) *rand.Rand {
	parent := DefaultSeed
	if base != nil {
		parent = base.Int63()
	}
	return rand.New(rand.NewSource(deriveSeed(parent, stream)))
}

// Locked is a seeded generator safe for concurrent callers.
type Locked struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewLocked returns a mutex-guarded generator seeded like NewRand.
func NewLocked(seed int64) *Locked {
	return &Locked{r: NewRand(seed)}
}

// Float64 returns a draw in [0, 1).
func (l *Locked) Float64() float64 {
	l.mu.Lock()
	v := l.r.Float64()
	l.mu.Unlock()
	return v
}

// Reseed restarts the stream from seed.
func (l *Locked) Reseed(seed int64) {
	l.mu.Lock()
	l.r = NewRand(seed)
	l.mu.Unlock()
}

// Uniform is any source of uniform draws in [0, 1); *rand.Rand and *Locked qualify.
type Uniform interface {
	Float64() float64
}

var (
	_ Uniform = (*rand.Rand)(nil)
	_ Uniform = (*Locked)(nil)
)
