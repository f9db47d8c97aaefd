package main

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ensigniasec/sar-runner/internal/config"
	"github.com/ensigniasec/sar-runner/internal/pattern"
	"github.com/ensigniasec/sar-runner/internal/plan"
	"github.com/ensigniasec/sar-runner/internal/runner"
	"github.com/ensigniasec/sar-runner/internal/tui"
	"github.com/ensigniasec/sar-runner/internal/units"
)

//nolint:gochecknoglobals // Cobra requires package-level vars for flag bindings in current structure.
var (
	// Version metadata populated at build time via -ldflags.
	releaseVersion = "dev"
	commit         = "none"
	date           = "unknown"

	// Used for flags.
	configFile string
	verbose    bool
	logFile    string
	speedValue float64
	speedUnit  string

	rootCmd = &cobra.Command{
		Use:   "sar-runner",
		Short: "Run search and rescue search patterns one leg at a time from the terminal.",
		Long:  `sar-runner walks a crew through a search pattern (creeping line ahead, sector search or expanding square) leg by leg: it shows the heading to fly, how far, and counts down the time each leg takes at the current speed.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig(cmd)
			speed, err := cfg.TravelSpeed()
			if err != nil {
				logrus.Fatal(err)
			}

			opts := tui.Options{Params: cfg.Pattern, Speed: speed}
			if path := firstNonEmpty(logFile, cfg.LogFile); path != "" {
				f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
				if err != nil {
					logrus.Fatalf("Unable to open log file: %v", err)
				}
				defer f.Close()
				opts.LogOutput = f
			}

			if err := tui.Run(cmd.Context(), opts); err != nil {
				logrus.Fatalf("TUI mode failed: %v", err)
			}
		},
	}
)

//nolint:gochecknoglobals // Flags for the plan subcommand.
var (
	planPattern    string
	planSweep      float64
	planLegLength  float64
	planLegs       int
	planMultiplier float64
	planIterations int
	planStart      int
	planDistance   string
	jsonOutput     bool
)

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the legs of a search pattern without starting the TUI",
	Long:  "Print every leg of a search pattern with its heading, distance and the time it takes at the configured speed. Parameters not given on the command line come from the config file.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		// Keep stdout clean for --json output.
		if jsonOutput && !verbose {
			logrus.SetLevel(logrus.WarnLevel)
		}
		if cmd.Flags().Changed("distance-unit") {
			cfg.DistanceUnit = planDistance
			if err := cfg.Validate(); err != nil {
				logrus.Fatal(err)
			}
		}

		params, err := planParams(cmd, cfg.Pattern)
		if err != nil {
			logrus.Fatal(err)
		}
		p, err := pattern.New(params)
		if err != nil {
			logrus.Fatal(err)
		}
		speed, err := cfg.TravelSpeed()
		if err != nil {
			logrus.Fatal(err)
		}
		if err := plan.Print(os.Stdout, plan.Build(p, speed, cfg.DistanceUnit), jsonOutput); err != nil {
			logrus.Fatal(err)
		}
	},
}

//nolint:gochecknoinits // Cobra command wiring performed in init in current structure.
func init() {
	// Route logs to stderr to avoid polluting stdout, especially for --json output.
	logrus.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable detailed logging output")
	rootCmd.PersistentFlags().
		Float64Var(&speedValue, "speed", 0, "Travel speed, overrides the config file")
	rootCmd.PersistentFlags().
		StringVar(&speedUnit, "speed-unit", "", "Unit of --speed: "+strings.Join(units.SpeedUnits(), ", "))
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs here while the TUI is running (default: discard)")

	kinds := make([]string, 0, len(pattern.Kinds()))
	for _, k := range pattern.Kinds() {
		kinds = append(kinds, string(k))
	}
	planCmd.Flags().StringVar(&planPattern, "pattern", "", "Pattern kind: "+strings.Join(kinds, ", ")+" (or cla, vs, ss)")
	planCmd.Flags().Float64Var(&planSweep, "sweep-width", 0, "Sweep width in metres")
	planCmd.Flags().Float64Var(&planLegLength, "leg-length", 0, "Creeping line ahead: cross leg length in metres")
	planCmd.Flags().IntVar(&planLegs, "legs", 0, "Creeping line ahead: number of cross legs")
	planCmd.Flags().Float64Var(&planMultiplier, "multiplier", 0, "Sector search: radius as a multiple of the sweep width")
	planCmd.Flags().IntVar(&planIterations, "iterations", 0, "Sector search and expanding square: number of iterations")
	planCmd.Flags().IntVar(&planStart, "start", 0, "Start direction in degrees")
	planCmd.Flags().StringVar(&planDistance, "distance-unit", "", "Unit for distances in the table: "+strings.Join(units.DistanceUnits(), ", ")+" (default: m, km when long)")
	planCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the plan in JSON format instead of a table")

	rootCmd.AddCommand(planCmd)

	// Built-in version flag: set version string and a custom template.
	rootCmd.Version = releaseVersion
	rootCmd.Annotations = map[string]string{"commit": commit, "date": date}
	rootCmd.SetVersionTemplate("{{printf \"%s %s\\ncommit: %s\\ndate: %s\\n\" .DisplayName .Version (index .Annotations \"commit\") (index .Annotations \"date\")}}")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

// loadConfig reads the config file and applies the persistent flags on top.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg, err := config.Load(configFile)
	if err != nil {
		logrus.Fatal(err)
	}
	logrus.SetLevel(cfg.Level())
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	flags := cmd.Flags()
	if flags.Changed("speed") {
		cfg.Speed.Value = speedValue
	}
	if flags.Changed("speed-unit") {
		cfg.Speed.Unit = speedUnit
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatal(err)
	}
	return cfg
}

// planParams overlays the plan flags that were set onto base. Choosing a
// different kind starts from that kind's runner defaults instead.
func planParams(cmd *cobra.Command, base pattern.Params) (pattern.Params, error) {
	flags := cmd.Flags()
	params := base
	if flags.Changed("pattern") {
		kind, err := pattern.ParseKind(planPattern)
		if err != nil {
			return pattern.Params{}, err
		}
		if kind != base.Kind {
			params = defaultParams(kind)
		}
	}
	if flags.Changed("sweep-width") {
		params.SweepWidth = planSweep
	}
	if flags.Changed("leg-length") {
		params.LegLength = planLegLength
	}
	if flags.Changed("legs") {
		params.Legs = planLegs
	}
	if flags.Changed("multiplier") {
		params.Multiplier = planMultiplier
	}
	if flags.Changed("iterations") {
		params.Iterations = planIterations
	}
	if flags.Changed("start") {
		params.StartDirection = planStart
	}
	return params, nil
}

func defaultParams(kind pattern.Kind) pattern.Params {
	switch kind {
	case pattern.CreepingLineAhead:
		return runner.DefaultPattern().Params()
	case pattern.Sector:
		return config.Default().Pattern
	default:
		return pattern.Params{Kind: kind, SweepWidth: config.Default().Pattern.SweepWidth, Iterations: 1}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func main() {
	Execute()
}
