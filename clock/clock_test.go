package clock_test

import (
	"testing"

	"github.com/katalvlaran/zonechoice/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	cases := map[string]clock.Time{
		"7":        420,
		"18:30":    1110,
		"6:00AM":   360,
		"6:00 pm":  1080,
		"12:00AM":  0,
		"12:15PM":  735,
		"26:00":    1560,
		"7:30:30":  450.5,
		" 9:05 AM": 545,
	}
	for in, want := range cases {
		got, err := clock.Parse(in)
		require.NoError(t, err, in)
		assert.InDelta(t, float64(want), float64(got), 1e-9, in)
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "x", "7:5", "7:60", "13:00PM", "0AM", "1:2:3:4", "-1"} {
		_, err := clock.Parse(in)
		assert.ErrorIs(t, err, clock.ErrInvalidTime, "input %q", in)
	}
}

func TestDayBounds(t *testing.T) {
	assert.Equal(t, clock.Time(0), clock.StartOfDay)
	assert.Equal(t, "28:00", clock.EndOfDay.String())
	assert.Equal(t, 7.0, clock.FromHours(7).Hours())
}

func TestYAML(t *testing.T) {
	var doc struct {
		Start clock.Time `yaml:"start"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("start: 6:00AM\n"), &doc))
	assert.Equal(t, clock.Time(360), doc.Start)

	require.NoError(t, yaml.Unmarshal([]byte("start: 15\n"), &doc))
	assert.Equal(t, clock.Time(900), doc.Start)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "start: \"15:00\"\n", string(out))
}

func TestFindLastWins(t *testing.T) {
	periods := []clock.Interval{
		{Start: clock.FromHours(6), End: clock.FromHours(9)},
		{Start: clock.FromHours(9), End: clock.FromHours(15)},
		{Start: clock.FromHours(15), End: clock.FromHours(19)},
	}
	assert.Equal(t, 0, clock.Find(periods, clock.FromHours(6)))
	assert.Equal(t, 1, clock.Find(periods, clock.FromHours(9)))
	assert.Equal(t, 2, clock.Find(periods, clock.FromHours(18.99)))
	// outside every window: last period
	assert.Equal(t, 2, clock.Find(periods, clock.FromHours(19)))
	assert.Equal(t, 2, clock.Find(periods, clock.FromHours(3)))
	assert.Equal(t, -1, clock.Find(nil, 0))
}
