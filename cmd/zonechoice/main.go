// Command zonechoice loads a model run configuration and queries the
// location-choice and auto-ownership models from the command line.
package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app carries the settings shared by every subcommand.
type app struct {
	logLevel string
	scalar   bool
	log      zerolog.Logger
}

func main() {
	if err := newRootCmd(os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:          "zonechoice",
		Short:        "Discrete location choice and auto ownership for travel demand runs",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, err := zerolog.ParseLevel(a.logLevel)
			if err != nil {
				return err
			}
			a.log = zerolog.New(zerolog.ConsoleWriter{Out: logOut, NoColor: true}).
				Level(level).With().Timestamp().Logger()
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error, disabled)")
	rootCmd.PersistentFlags().BoolVar(&a.scalar, "scalar", false, "use the scalar probability kernels")

	rootCmd.AddCommand(a.validateCmd())
	rootCmd.AddCommand(a.probabilitiesCmd())
	rootCmd.AddCommand(a.chooseCmd())
	rootCmd.AddCommand(a.autoOwnCmd())
	return rootCmd
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config]",
		Short: "Check a run configuration and build its models without loading land use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}
}

// episodeFlags describe the episode to place and its fixed neighbours.
type episodeFlags struct {
	activity  string
	household int
	home      int
	start     string
	duration  string
	prevZone  int
	prevEnd   string
	nextZone  int
	nextStart string
}

func (f *episodeFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.activity, "activity", "market", "episode activity")
	fl.IntVar(&f.household, "household", 1, "household id")
	fl.IntVar(&f.home, "home", 0, "home zone number")
	fl.StringVar(&f.start, "start", "12:00", "episode start time")
	fl.StringVar(&f.duration, "duration", "0:30", "episode duration")
	fl.IntVar(&f.prevZone, "prev-zone", 0, "zone of the previous episode (home when unset)")
	fl.StringVar(&f.prevEnd, "prev-end", "", "end time of the previous episode")
	fl.IntVar(&f.nextZone, "next-zone", 0, "zone of the next episode (home when unset)")
	fl.StringVar(&f.nextStart, "next-start", "", "start time of the next episode")
	_ = cmd.MarkFlagRequired("home")
}

func (a *app) probabilitiesCmd() *cobra.Command {
	var ef episodeFlags
	var all bool
	cmd := &cobra.Command{
		Use:   "probabilities [config]",
		Short: "Print the destination probabilities of one episode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runProbabilities(cmd.Context(), cmd.OutOrStdout(), args[0], &ef, all)
		},
	}
	ef.register(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "also print zones with zero probability")
	return cmd
}

func (a *app) chooseCmd() *cobra.Command {
	var ef episodeFlags
	var draws int
	var seed int64
	cmd := &cobra.Command{
		Use:   "choose [config]",
		Short: "Draw destinations for one episode and tabulate them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChoose(cmd.Context(), cmd.OutOrStdout(), args[0], &ef, draws, seed)
		},
	}
	ef.register(cmd)
	cmd.Flags().IntVarP(&draws, "draws", "n", 1000, "number of draws")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	return cmd
}

func (a *app) autoOwnCmd() *cobra.Command {
	var probabilities bool
	var seed int64
	cmd := &cobra.Command{
		Use:   "autoown [config] [households]",
		Short: "Predict the number of vehicles of every household in a YAML list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAutoOwn(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], probabilities, seed)
		},
	}
	cmd.Flags().BoolVarP(&probabilities, "probabilities", "p", false, "print the level probabilities")
	cmd.Flags().Int64Var(&seed, "seed", 0, "draw each household from its own stream derived from this seed and its id (0 uses the model generator)")
	return cmd
}
