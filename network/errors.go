package network

import "errors"

// Sentinel errors returned by the network package. The first three are
// configuration errors and surface before any query runs.
var (
	// ErrNetworkNotFound indicates that no network with the requested name is registered.
	ErrNetworkNotFound = errors.New("network: network not found")

	// ErrWrongNetworkType indicates a network exists under the name but serves another mode.
	ErrWrongNetworkType = errors.New("network: network has the wrong type")

	// ErrDuplicateNetwork indicates two networks were registered under one name.
	ErrDuplicateNetwork = errors.New("network: duplicate network name")

	// ErrSkimShape indicates a skim matrix whose shape differs from the zone count.
	ErrSkimShape = errors.New("network: skim matrix shape mismatch")

	// ErrNoPeriods indicates a skim built without any time period.
	ErrNoPeriods = errors.New("network: skim has no periods")

	// ErrNegativeTime indicates a negative link travel time.
	ErrNegativeTime = errors.New("network: negative link time")

	// ErrLinkEndpoint indicates a link whose endpoint is outside 0..n-1.
	ErrLinkEndpoint = errors.New("network: link endpoint out of range")
)
