package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/zonechoice/autoown"
	"github.com/katalvlaran/zonechoice/choice"
	"github.com/katalvlaran/zonechoice/clock"
	"github.com/katalvlaran/zonechoice/config"
	"github.com/katalvlaran/zonechoice/locchoice"
	"github.com/katalvlaran/zonechoice/zone"
)

// build loads and validates the configuration and assembles its models.
func (a *app) build(ctx context.Context, path string) (*config.Config, *config.Run, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	opts := []config.Option{config.WithLogger(a.log)}
	if a.scalar {
		opts = append(opts, config.WithScalarKernels())
	}
	run, err := config.Build(ctx, cfg, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("building models: %w", err)
	}
	return cfg, run, nil
}

func (a *app) runValidate(ctx context.Context, w io.Writer, path string) error {
	cfg, run, err := a.build(ctx, path)
	if err != nil {
		return err
	}
	printSummary(w, cfg, run)
	return nil
}

// episode builds a one-person schedule around the episode to place.
func (f *episodeFlags) episode() (*locchoice.Episode, error) {
	activity, ok := locchoice.ParseActivity(f.activity)
	if !ok {
		return nil, fmt.Errorf("unknown activity %q", f.activity)
	}
	start, err := clock.Parse(f.start)
	if err != nil {
		return nil, fmt.Errorf("--start: %w", err)
	}
	duration, err := clock.Parse(f.duration)
	if err != nil {
		return nil, fmt.Errorf("--duration: %w", err)
	}

	s := &locchoice.Schedule{HouseholdID: f.household, HomeZone: f.home}
	prevZone, nextZone := f.prevZone, f.nextZone
	if prevZone == zone.NoZone {
		prevZone = f.home
	}
	if nextZone == zone.NoZone {
		nextZone = f.home
	}
	if f.prevEnd != "" {
		end, err := clock.Parse(f.prevEnd)
		if err != nil {
			return nil, fmt.Errorf("--prev-end: %w", err)
		}
		if end > start {
			return nil, fmt.Errorf("--prev-end %s is after --start %s", end, start)
		}
		s.Add(&locchoice.Episode{Activity: locchoice.Home, Zone: prevZone, Start: end})
	}
	ep := &locchoice.Episode{Activity: activity, Start: start, Duration: duration, OriginalDuration: duration}
	s.Add(ep)
	if f.nextStart != "" {
		next, err := clock.Parse(f.nextStart)
		if err != nil {
			return nil, fmt.Errorf("--next-start: %w", err)
		}
		if next <= start {
			return nil, fmt.Errorf("--next-start %s is not after --start %s", next, start)
		}
		s.Add(&locchoice.Episode{Activity: locchoice.Home, Zone: nextZone, Start: next})
	}
	return ep, nil
}

func (a *app) loadLocationChoice(ctx context.Context, path string) (*config.Run, error) {
	_, run, err := a.build(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := run.LocationChoice.Load(ctx, 0); err != nil {
		return nil, fmt.Errorf("loading location choice: %w", err)
	}
	return run, nil
}

func (a *app) runProbabilities(ctx context.Context, w io.Writer, path string, ef *episodeFlags, all bool) error {
	ep, err := ef.episode()
	if err != nil {
		return err
	}
	run, err := a.loadLocationChoice(ctx, path)
	if err != nil {
		return err
	}
	p, err := run.LocationChoice.GetLocationProbabilities(ep)
	if err != nil {
		return err
	}
	printProbabilities(w, run, p, all)
	return nil
}

func (a *app) runChoose(ctx context.Context, w io.Writer, path string, ef *episodeFlags, draws int, seed int64) error {
	if draws <= 0 {
		return fmt.Errorf("--draws must be positive, got %d", draws)
	}
	ep, err := ef.episode()
	if err != nil {
		return err
	}
	run, err := a.loadLocationChoice(ctx, path)
	if err != nil {
		return err
	}

	rng := choice.NewRand(seed)
	counts := make(map[int]int)
	failed := 0
	for i := 0; i < draws; i++ {
		number, ok, err := run.LocationChoice.GetLocation(ep, rng)
		if err != nil {
			return err
		}
		if !ok {
			failed++
			continue
		}
		counts[number]++
	}
	printDraws(w, run, counts, draws, failed)
	return nil
}

func readHouseholds(path string) ([]autoown.Household, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading households: %w", err)
	}
	var hhs []autoown.Household
	if err := yaml.Unmarshal(data, &hhs); err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	return hhs, nil
}

// predictHousehold draws a level for hh. A non-zero seed gives every
// household its own stream keyed by its id, so a household's level does not
// depend on its position in the file.
func predictHousehold(model *autoown.Model, seed int64, hh *autoown.Household) (int, error) {
	if seed == 0 {
		return model.Predict(hh)
	}
	return model.PredictWith(hh, choice.DeriveRand(choice.NewRand(seed), uint64(hh.ID)))
}

func (a *app) runAutoOwn(ctx context.Context, w io.Writer, path, householdsPath string, probabilities bool, seed int64) error {
	hhs, err := readHouseholds(householdsPath)
	if err != nil {
		return err
	}
	_, run, err := a.build(ctx, path)
	if err != nil {
		return err
	}
	if run.AutoOwnership == nil {
		return fmt.Errorf("%q has no auto_ownership section", path)
	}
	model := run.AutoOwnership
	if err := model.Load(ctx); err != nil {
		return fmt.Errorf("loading auto ownership: %w", err)
	}

	var levels [autoown.NumLevels]int
	for i := range hhs {
		hh := &hhs[i]
		if probabilities {
			p, _, err := model.Probabilities(hh)
			if err != nil {
				return fmt.Errorf("household %d: %w", hh.ID, err)
			}
			printLevelProbabilities(w, hh, p)
		}
		level, err := predictHousehold(model, seed, hh)
		if err != nil {
			return fmt.Errorf("household %d: %w", hh.ID, err)
		}
		levels[level]++
		if !probabilities {
			fmt.Fprintf(w, "%d\t%d\n", hh.ID, level)
		}
	}
	printLevels(w, levels)
	return nil
}
