// Package rangeset implements integer range sets written as "1-46,50,60-70".
//
// Range sets select zones and planning districts in configuration: valid
// destinations, OD-constant triples, calibration regions and OD masks.
// Parsing is strict; membership is a linear scan over the declared ranges,
// which stays cheap because real sets hold a handful of ranges.
package rangeset

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Range is the closed interval [Start, Stop].
type Range struct {
	Start, Stop int
}

// Contains reports whether v lies in [Start, Stop].
func (r Range) Contains(v int) bool { return v >= r.Start && v <= r.Stop }

func (r Range) String() string {
	if r.Start == r.Stop {
		return strconv.Itoa(r.Start)
	}
	return strconv.Itoa(r.Start) + "-" + strconv.Itoa(r.Stop)
}

// Set is an ordered list of ranges. The zero value is the empty set.
type Set struct {
	ranges []Range
}

// Of builds a set from explicit ranges, rejecting reversed ones.
func Of(ranges ...Range) (Set, error) {
	for _, r := range ranges {
		if r.Start > r.Stop {
			return Set{}, fmt.Errorf("%s: %w", r, ErrReversedRange)
		}
	}
	cp := make([]Range, len(ranges))
	copy(cp, ranges)
	return Set{ranges: cp}, nil
}

// MustParse is Parse that panics; intended for literals in tests and defaults.
func MustParse(s string) Set {
	set, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return set
}

// Parse reads a comma-separated list of integers and inclusive ranges.
// Whitespace around tokens is ignored; an empty string yields the empty set.
//
// Errors:
//   - ErrSyntax for malformed tokens ("1-", "a", "1--3", ",,").
//   - ErrReversedRange for "9-3".
func Parse(s string) (Set, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Set{}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]Range, 0, len(parts))
	for _, part := range parts {
		r, err := parseRange(strings.TrimSpace(part))
		if err != nil {
			return Set{}, fmt.Errorf("%q: %w", s, err)
		}
		out = append(out, r)
	}
	return Set{ranges: out}, nil
}

func parseRange(tok string) (Range, error) {
	if tok == "" {
		return Range{}, ErrSyntax
	}
	// a leading '-' belongs to a negative start, so search after it
	dash := strings.IndexByte(tok[1:], '-')
	if dash < 0 {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return Range{}, ErrSyntax
		}
		return Range{Start: v, Stop: v}, nil
	}
	dash++
	lo, err := strconv.Atoi(strings.TrimSpace(tok[:dash]))
	if err != nil {
		return Range{}, ErrSyntax
	}
	hi, err := strconv.Atoi(strings.TrimSpace(tok[dash+1:]))
	if err != nil {
		return Range{}, ErrSyntax
	}
	if lo > hi {
		return Range{}, ErrReversedRange
	}
	return Range{Start: lo, Stop: hi}, nil
}

// Contains reports whether any range of the set holds v.
func (s Set) Contains(v int) bool {
	for _, r := range s.ranges {
		if r.Contains(v) {
			return true
		}
	}
	return false
}

// Empty reports whether the set has no ranges.
func (s Set) Empty() bool { return len(s.ranges) == 0 }

// Ranges returns a copy of the declared ranges.
func (s Set) Ranges() []Range {
	cp := make([]Range, len(s.ranges))
	copy(cp, s.ranges)
	return cp
}

// String renders the set in the same syntax Parse accepts.
func (s Set) String() string {
	parts := make([]string, len(s.ranges))
	for i, r := range s.ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}

// UnmarshalYAML accepts a scalar ("1-46,50") or a bare integer (7).
func (s *Set) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: %w", node.Line, ErrSyntax)
	}
	set, err := Parse(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*s = set
	return nil
}

// MarshalYAML writes the set as its string form.
func (s Set) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}
