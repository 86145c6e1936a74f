// Package network defines the travel-time providers consumed by the choice
// models and ships in-memory implementations backed by OD skims.
//
// All origins and destinations are flat zone indices. A provider reports a
// missing path through its ok result (auto) or a non-positive walk time
// (transit); neither case is an error.
package network

import (
	"fmt"

	"github.com/katalvlaran/zonechoice/clock"
)

// Network is anything registered by name.
type Network interface {
	Name() string
}

// Auto is the auto-mode network.
type Auto interface {
	Network
	// TravelTime returns the travel time in minutes from o to d when
	// departing at t. A missing path yields +Inf.
	TravelTime(o, d int, t clock.Time) float64
	// AllData returns in-vehicle time (minutes) and cost; ok is false when
	// there is no path.
	AllData(o, d int, t clock.Time) (ivtt, cost float64, ok bool)
}

// TransitData is one transit OD observation. Times are minutes.
type TransitData struct {
	IVTT      float64
	Walk      float64
	Wait      float64
	Boarding  float64
	Fare      float64
	Perceived float64
}

// HasPath reports whether the observation describes a usable path.
func (td TransitData) HasPath() bool { return td.Walk > 0 }

// Transit is the transit-mode network.
type Transit interface {
	Network
	// AllData returns the OD observation; ok is false when the provider
	// has no data for the pair. A returned Walk <= 0 also signals no path.
	AllData(o, d int, t clock.Time) (TransitData, bool)
}

// Registry resolves networks by name.
type Registry struct {
	byName map[string]Network
}

// NewRegistry registers the given networks, rejecting duplicate names.
func NewRegistry(networks ...Network) (*Registry, error) {
	r := &Registry{byName: make(map[string]Network, len(networks))}
	for _, n := range networks {
		if _, dup := r.byName[n.Name()]; dup {
			return nil, fmt.Errorf("%q: %w", n.Name(), ErrDuplicateNetwork)
		}
		r.byName[n.Name()] = n
	}
	return r, nil
}

// Names lists the registered network names in no particular order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.byName))
	for name := range r.byName {
		out = append(out, name)
	}
	return out
}

// Auto returns the auto network registered as name.
func (r *Registry) Auto(name string) (Auto, error) {
	n, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("auto network %q: %w", name, ErrNetworkNotFound)
	}
	a, ok := n.(Auto)
	if !ok {
		return nil, fmt.Errorf("%q is not an auto network: %w", name, ErrWrongNetworkType)
	}
	return a, nil
}

// Transit returns the transit network registered as name.
func (r *Registry) Transit(name string) (Transit, error) {
	n, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("transit network %q: %w", name, ErrNetworkNotFound)
	}
	t, ok := n.(Transit)
	if !ok {
		return nil, fmt.Errorf("%q is not a transit network: %w", name, ErrWrongNetworkType)
	}
	return t, nil
}
