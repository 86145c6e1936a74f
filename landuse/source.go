// Package landuse provides the data sources feeding the choice models:
// per-zone vectors (employment, population, densities) and zone-pair
// matrices (job linkages, rates), loaded from CSV or built in memory.
//
// Every source follows explicit load/unload semantics. Load is idempotent
// and safe to call on an already loaded source; Acquire loads on demand and
// hands back a release func that unloads only if Acquire did the loading.
package landuse

import (
	"fmt"
	"sync"
)

// Source is a named, explicitly loaded data set.
type Source[T any] interface {
	Name() string
	Loaded() bool
	Load() error
	Unload()
	Data() (T, error)
}

// Acquire returns the data of src, loading it if needed. The returned
// release func must be called once the caller is done; it unloads src only
// when this call loaded it.
func Acquire[T any](src Source[T]) (T, func(), error) {
	var zero T
	loadedHere := false
	if !src.Loaded() {
		if err := src.Load(); err != nil {
			return zero, func() {}, fmt.Errorf("%s: %w", src.Name(), err)
		}
		loadedHere = true
	}
	data, err := src.Data()
	release := func() {
		if loadedHere {
			src.Unload()
		}
	}
	if err != nil {
		release()
		return zero, func() {}, err
	}
	return data, release, nil
}

// state is the shared load bookkeeping embedded by every source.
type state[T any] struct {
	mu     sync.Mutex
	name   string
	loaded bool
	data   T
}

func (s *state[T]) Name() string { return s.name }

func (s *state[T]) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

func (s *state[T]) Data() (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		var zero T
		return zero, fmt.Errorf("%s: %w", s.name, ErrNotLoaded)
	}
	return s.data, nil
}

// load runs read once unless already loaded.
func (s *state[T]) load(read func() (T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}
	data, err := read()
	if err != nil {
		return err
	}
	s.data, s.loaded = data, true
	return nil
}

func (s *state[T]) unload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	s.data, s.loaded = zero, false
}

// Static is an in-memory source. Unload is a no-op: the value stays available.
type Static[T any] struct {
	state[T]
}

// NewStatic wraps value as a loaded source.
func NewStatic[T any](name string, value T) *Static[T] {
	return &Static[T]{state: state[T]{name: name, loaded: true, data: value}}
}

// Load implements Source.
func (s *Static[T]) Load() error { return nil }

// Unload implements Source.
func (s *Static[T]) Unload() {}
