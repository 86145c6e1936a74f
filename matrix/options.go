// SPDX-License-Identifier: MIT

// Package matrix: numeric policy for Dense construction.
//
// Design goals:
//   - Deterministic behavior: no global state.
//   - Numeric policy is explicit and carried by each matrix (Clone preserves it).
//   - validateNaNInf controls whether Set rejects non-finite values at all.
//   - allowInfDistances is a narrow exception for +Inf as "no path" in travel
//     time skims. NaN and -Inf remain rejected even when it is enabled.
package matrix

import "math"

const (
	// DefaultValidateNaNInf toggles strict finite-value validation on Set.
	DefaultValidateNaNInf = true

	// DefaultAllowInfDistances permits +Inf values representing "no path".
	DefaultAllowInfDistances = false
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective numeric policy after applying Option setters.
type Options struct {
	validateNaNInf    bool
	allowInfDistances bool
}

// WithNoValidateNaNInf disables finite-value validation on Set entirely.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithValidateNaNInf enables finite-value validation (the default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithAllowInfDistances accepts +Inf on Set while keeping NaN/-Inf rejected.
func WithAllowInfDistances() Option {
	return func(o *Options) { o.allowInfDistances = true }
}

// gatherOptions applies user options over defaults.
func gatherOptions(user ...Option) Options {
	o := Options{
		validateNaNInf:    DefaultValidateNaNInf,
		allowInfDistances: DefaultAllowInfDistances,
	}
	for _, opt := range user {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// rejects reports whether v violates the policy.
func (o Options) rejects(v float64) bool {
	if !o.validateNaNInf {
		return false
	}
	if math.IsNaN(v) {
		return true
	}
	if math.IsInf(v, 1) {
		return !o.allowInfDistances
	}
	return math.IsInf(v, -1)
}
