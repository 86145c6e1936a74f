package locchoice

import "sync"

// ScratchPool hands out per-query scratch arenas of one slot per zone.
// An arena belongs to exactly one goroutine between Get and Put; concurrent
// queries never share one.
type ScratchPool struct {
	n    int
	pool sync.Pool
}

// NewScratchPool creates a pool of n-slot arenas.
func NewScratchPool(n int) *ScratchPool {
	sp := &ScratchPool{n: n}
	sp.pool.New = func() any {
		buf := make([]float64, n)
		return &buf
	}
	return sp
}

// Len returns the arena length.
func (sp *ScratchPool) Len() int { return sp.n }

// Get acquires an arena. Its contents are unspecified.
func (sp *ScratchPool) Get() *[]float64 {
	return sp.pool.Get().(*[]float64)
}

// Put releases an arena obtained from Get. Arenas of the wrong size are dropped.
func (sp *ScratchPool) Put(buf *[]float64) {
	if buf == nil || len(*buf) != sp.n {
		return
	}
	sp.pool.Put(buf)
}
