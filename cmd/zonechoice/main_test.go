package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const runYAML = `
zones:
  file: zones.csv
time_periods:
  - {name: day, start: "4:00", end: "28:00"}
networks:
  auto:
    periods:
      - {start: "4:00", end: "28:00", links: links.csv}
  transit:
    periods:
      - {start: "4:00", end: "28:00", ivtt: {file: t.csv}, walk: {file: t.csv}, wait: {file: t.csv}}
land_use:
  employment:
    retail_full_time: {file: jobs.csv}
  population_density: {file: density.csv}
  job_density: {file: density.csv}
  job_linkages: {file: linkages.csv}
location_choice:
  market:
    params: {employment: [0, 0, 0, 0, 1, 0, 0, 0]}
    time_periods: [{}]
  other:
    time_periods: [{}]
  work_based_business:
    time_periods: [{}]
auto_ownership:
  params: {seed: 3}
`

const householdsYAML = `
- id: 1
  home_zone: 1
  income_class: 3
  persons:
    - {age: 40, employment: 1, licence: true}
    - {age: 38, employment: 2, licence: true}
- id: 2
  home_zone: 3
  dwelling: 1
  persons:
    - {age: 70}
`

var fixtures = map[string]string{
	"run.yaml":        runYAML,
	"households.yaml": householdsYAML,
	"zones.csv":       "zone,pd,population,x,y\n1,1,1500,0,0\n2,1,900,1000,0\n3,2,2200,0,1000\n",
	"links.csv":       "from,to,time\n1,2,1\n2,1,1\n2,3,1\n3,2,1\n",
	"t.csv":           "1,1,0\n",
	"jobs.csv":        "2,1\n3,2\n",
	"density.csv":     "1,0.001\n2,0.001\n3,0.001\n",
	"linkages.csv":    "1,2,5\n2,3,5\n3,1,5\n",
}

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range fixtures {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(io.Discard)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidate(t *testing.T) {
	dir := writeFixtures(t)
	out, err := execute(t, "validate", filepath.Join(dir, "run.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "zones:              3 (2 planning districts, population 4,600)")
	assert.Contains(t, out, "day              4:00-28:00")
	assert.Contains(t, out, "Result: VALID")
}

func TestValidateRejects(t *testing.T) {
	dir := writeFixtures(t)
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(strings.Replace(runYAML, "time_periods: [{}]", "time_periods: []", 1)), 0o600))
	_, err := execute(t, "validate", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "location_choice.market")
}

func TestProbabilities(t *testing.T) {
	dir := writeFixtures(t)
	out, err := execute(t, "probabilities", filepath.Join(dir, "run.yaml"),
		"--home", "1", "--start", "10:00", "--scalar", "--log-level", "debug")
	require.NoError(t, err)
	assert.Equal(t, "zone\tpd\tprobability\n1\t1\t0.166667\n2\t1\t0.333333\n3\t2\t0.500000\n", out)
}

func TestProbabilitiesWithAnchors(t *testing.T) {
	dir := writeFixtures(t)
	// 9:59 to 10:02 leaves a 3 minute detour: zone 3 is 2 minutes each way.
	out, err := execute(t, "probabilities", filepath.Join(dir, "run.yaml"), "--home", "1",
		"--start", "10:00", "--prev-end", "9:59", "--next-start", "10:02", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "1\t1\t0.333333\n2\t1\t0.666667\n3\t2\t0.000000\n")
}

func TestChoose(t *testing.T) {
	dir := writeFixtures(t)
	args := []string{"choose", filepath.Join(dir, "run.yaml"), "--home", "1", "--start", "10:00", "-n", "3000", "--seed", "7"}
	first, err := execute(t, args...)
	require.NoError(t, err)
	assert.Contains(t, first, "3,000 draws over 3 of 3 zones\n")

	second, err := execute(t, args...)
	require.NoError(t, err)
	assert.Equal(t, first, second, "same seed, same draws")
}

func TestEpisodeFlags(t *testing.T) {
	dir := writeFixtures(t)
	path := filepath.Join(dir, "run.yaml")
	cases := map[string][]string{
		"unknown activity":  {"--activity", "fishing"},
		"bad start":         {"--start", "noon"},
		"prev after start":  {"--prev-end", "11:00"},
		"next before start": {"--next-start", "9:00"},
		"bad draws":         {"-n", "0"},
	}
	for name, extra := range cases {
		t.Run(name, func(t *testing.T) {
			args := append([]string{"choose", path, "--home", "1", "--start", "10:00"}, extra...)
			_, err := execute(t, args...)
			assert.Error(t, err)
		})
	}
	_, err := execute(t, "probabilities", path)
	assert.Error(t, err, "--home is required")
}

func TestAutoOwn(t *testing.T) {
	dir := writeFixtures(t)
	args := []string{"autoown", filepath.Join(dir, "run.yaml"), filepath.Join(dir, "households.yaml")}
	out, err := execute(t, args...)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "1\t"))
	assert.True(t, strings.HasPrefix(lines[1], "2\t"))
	assert.True(t, strings.HasPrefix(lines[2], "2 households: 0="))

	again, err := execute(t, args...)
	require.NoError(t, err)
	assert.Equal(t, out, again, "seeded from the configuration")

	out, err = execute(t, append(args, "-p")...)
	require.NoError(t, err)
	fields := strings.Split(strings.Split(out, "\n")[0], "\t")
	assert.Len(t, fields, 6)
}

func TestAutoOwnPerHouseholdStreams(t *testing.T) {
	dir := writeFixtures(t)
	reversed := `
- id: 2
  home_zone: 3
  dwelling: 1
  persons:
    - {age: 70}
- id: 1
  home_zone: 1
  income_class: 3
  persons:
    - {age: 40, employment: 1, licence: true}
    - {age: 38, employment: 2, licence: true}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reversed.yaml"), []byte(reversed), 0o600))

	levels := func(households string) map[string]string {
		out, err := execute(t, "autoown", filepath.Join(dir, "run.yaml"), filepath.Join(dir, households), "--seed", "99")
		require.NoError(t, err)
		got := make(map[string]string)
		for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
			if id, level, ok := strings.Cut(line, "\t"); ok {
				got[id] = level
			}
		}
		return got
	}
	forward := levels("households.yaml")
	require.Len(t, forward, 2)
	assert.Equal(t, forward, levels("reversed.yaml"))
}

func TestLogLevel(t *testing.T) {
	dir := writeFixtures(t)
	_, err := execute(t, "validate", filepath.Join(dir, "run.yaml"), "--log-level", "loud")
	assert.Error(t, err)
}
