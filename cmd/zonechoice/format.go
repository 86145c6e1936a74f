package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/katalvlaran/zonechoice/autoown"
	"github.com/katalvlaran/zonechoice/config"
)

func printSummary(w io.Writer, cfg *config.Config, run *config.Run) {
	var population float64
	for _, z := range run.Zones.Zones() {
		population += z.Population
	}
	fmt.Fprintf(w, "zones:              %s (%d planning districts, population %s)\n",
		humanize.Comma(int64(run.Zones.Len())), len(run.Zones.PlanningDistricts()),
		humanize.CommafWithDigits(population, 0))
	fmt.Fprintf(w, "time periods:       %d\n", run.Periods.Len())
	for i := 0; i < run.Periods.Len(); i++ {
		p := run.Periods.Period(i)
		fmt.Fprintf(w, "  %-16s %s-%s\n", p.Name, p.Window.Start, p.Window.End)
	}
	fmt.Fprintf(w, "networks:           %s, %s\n", cfg.Networks.Auto.Name, cfg.Networks.Transit.Name)
	fmt.Fprintf(w, "valid destinations: %s\n", cfg.LocationChoice.ValidDestinations)
	if run.AutoOwnership != nil {
		fmt.Fprintf(w, "auto ownership:     %d regions\n", len(cfg.AutoOwnership.Regions))
	} else {
		fmt.Fprintln(w, "auto ownership:     not configured")
	}
	fmt.Fprintln(w, "Result: VALID")
}

// printProbabilities lists zone, planning district and probability.
func printProbabilities(w io.Writer, run *config.Run, p []float64, all bool) {
	fmt.Fprintln(w, "zone\tpd\tprobability")
	for i, v := range p {
		if v == 0 && !all {
			continue
		}
		z := run.Zones.Zone(i)
		fmt.Fprintf(w, "%d\t%d\t%.6f\n", z.Number, z.PlanningDistrict, v)
	}
}

func printDraws(w io.Writer, run *config.Run, counts map[int]int, draws, failed int) {
	numbers := make([]int, 0, len(counts))
	for n := range counts {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	fmt.Fprintln(w, "zone\tdraws\tshare")
	for _, n := range numbers {
		fmt.Fprintf(w, "%d\t%s\t%.4f\n", n, humanize.Comma(int64(counts[n])), float64(counts[n])/float64(draws))
	}
	fmt.Fprintf(w, "%s draws over %d of %d zones", humanize.Comma(int64(draws)), len(numbers), run.Zones.Len())
	if failed > 0 {
		fmt.Fprintf(w, ", %s without a feasible destination", humanize.Comma(int64(failed)))
	}
	fmt.Fprintln(w)
}

func printLevelProbabilities(w io.Writer, hh *autoown.Household, p [autoown.NumLevels]float64) {
	fmt.Fprintf(w, "%d", hh.ID)
	for _, v := range p {
		fmt.Fprintf(w, "\t%.6f", v)
	}
	fmt.Fprintln(w)
}

func printLevels(w io.Writer, levels [autoown.NumLevels]int) {
	total := 0
	for _, n := range levels {
		total += n
	}
	fmt.Fprintf(w, "%s households:", humanize.Comma(int64(total)))
	for level, n := range levels {
		label := fmt.Sprintf("%d", level)
		if level == autoown.MaxLevel {
			label += "+"
		}
		fmt.Fprintf(w, " %s=%s", label, humanize.Comma(int64(n)))
	}
	fmt.Fprintln(w)
}
