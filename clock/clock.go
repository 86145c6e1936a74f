// Package clock models times of day and durations in minutes.
//
// A Time is the number of minutes after midnight of the simulated day.
// The simulated day runs past midnight and closes at EndOfDay (28:00,
// i.e. 4 AM the following morning), so values above 24h are valid.
package clock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTime is returned when a time-of-day literal cannot be parsed.
var ErrInvalidTime = errors.New("clock: invalid time")

// Time is minutes after midnight. It doubles as a duration type.
type Time float64

const (
	// StartOfDay is midnight of the simulated day.
	StartOfDay Time = 0

	// EndOfDay closes the simulated day at 4 AM the next morning.
	EndOfDay Time = 28 * 60
)

// FromHours converts fractional hours into a Time.
func FromHours(h float64) Time { return Time(h * 60) }

// Of builds a Time from hours, minutes and seconds.
func Of(hours, minutes, seconds int) Time {
	return Time(float64(hours*60+minutes) + float64(seconds)/60)
}

// Minutes returns t as a plain float64.
func (t Time) Minutes() float64 { return float64(t) }

// Hours returns t in fractional hours.
func (t Time) Hours() float64 { return float64(t) / 60 }

// String renders t as H:MM (24h clock, hours may exceed 23).
func (t Time) String() string {
	total := int(float64(t) + 0.5)
	sign := ""
	if total < 0 {
		sign, total = "-", -total
	}
	return fmt.Sprintf("%s%d:%02d", sign, total/60, total%60)
}

// MustParse is Parse that panics; meant for package-level defaults.
func MustParse(s string) Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse accepts "7", "18:30", "7:30:15", "6:00AM" and "6:00 pm".
// 12-hour forms map 12AM to 0:00 and 12PM to 12:00.
func Parse(s string) (Time, error) {
	raw := s
	s = strings.ToUpper(strings.TrimSpace(s))
	meridiem := ""
	if strings.HasSuffix(s, "AM") || strings.HasSuffix(s, "PM") {
		meridiem = s[len(s)-2:]
		s = strings.TrimSpace(s[:len(s)-2])
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 || parts[0] == "" {
		return 0, fmt.Errorf("%q: %w", raw, ErrInvalidTime)
	}
	var fields [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("%q: %w", raw, ErrInvalidTime)
		}
		if i > 0 && (len(p) != 2 || v > 59) {
			return 0, fmt.Errorf("%q: %w", raw, ErrInvalidTime)
		}
		fields[i] = v
	}
	h := fields[0]
	if meridiem != "" {
		if h < 1 || h > 12 {
			return 0, fmt.Errorf("%q: %w", raw, ErrInvalidTime)
		}
		h %= 12
		if meridiem == "PM" {
			h += 12
		}
	}
	return Of(h, fields[1], fields[2]), nil
}

// UnmarshalYAML reads any form accepted by Parse.
func (t *Time) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: %w", node.Line, ErrInvalidTime)
	}
	v, err := Parse(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*t = v
	return nil
}

// MarshalYAML writes the H:MM form.
func (t Time) MarshalYAML() (interface{}, error) { return t.String(), nil }
