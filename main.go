package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tracktor.local/steer/internal/app"
	"tracktor.local/steer/internal/config"
	"tracktor.local/steer/internal/geom"
	"tracktor.local/steer/internal/logging"
	"tracktor.local/steer/internal/sim"
)

var (
	flagConfig      string
	flagHeadless    bool
	flagTicks       int
	flagDt          float64
	flagSeed        uint64
	flagPolicy      string
	flagHeadingMode string
	flagFixedHandle bool
	flagLogLevel    string
	flagLogFile     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tracktor",
		Short: "TRACKTOR - Bezier steering controller with a terminal field view",
		Long: `TRACKTOR drives a simulated vehicle to a sequence of target poses.
Each tick it plans a cubic Bezier curve from the current pose to the target,
steers toward a look-ahead point on it and turns away from obstacles that
come too close.

Use --headless to run a fixed number of ticks without the terminal UI.`,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVar(&flagConfig, "config", "", "YAML scenario file (defaults are used for absent fields)")
	rootCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Run without the terminal UI and print a summary")
	rootCmd.Flags().IntVar(&flagTicks, "ticks", 3000, "Number of ticks to simulate in headless mode")
	rootCmd.Flags().Float64Var(&flagDt, "dt", 1.0/config.TargetFPS, "Seconds per tick in headless mode and for single steps")
	rootCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "Random seed for target selection (0 picks one)")
	rootCmd.Flags().StringVar(&flagPolicy, "policy", "", "Reversal policy: bearing or quarter-turn")
	rootCmd.Flags().StringVar(&flagHeadingMode, "heading-mode", "", "Target heading: relative or uniform")
	rootCmd.Flags().BoolVar(&flagFixedHandle, "fixed-handle", false, "Use a fixed approach handle instead of the distance-adaptive one")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Log destination (headless mode defaults to stderr)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	params, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	applyFlags(cmd, &params)

	logPath := flagLogFile
	if logPath == "" && flagHeadless {
		logPath = "stderr"
	}
	log, err := logging.New(flagLogLevel, logPath)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log = log.With(zap.String("run", uuid.NewString()))

	world, err := sim.New(params, log)
	if err != nil {
		return err
	}

	log.Info("simulation started",
		zap.String("policy", params.Planner.ReversalPolicy),
		zap.String("heading_mode", params.HeadingMode),
		zap.Int("obstacles", len(params.Obstacles)),
		zap.Bool("headless", flagHeadless),
	)

	if flagHeadless {
		return runHeadless(world, log)
	}

	p := tea.NewProgram(
		app.New(world, log, flagDt),
		tea.WithAltScreen(),
		tea.WithFPS(config.TargetFPS),
	)
	_, err = p.Run()
	return err
}

// applyFlags overrides loaded parameters with flags set on the command line.
func applyFlags(cmd *cobra.Command, p *config.Params) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		p.Seed = flagSeed
	}
	if flags.Changed("policy") {
		p.Planner.ReversalPolicy = flagPolicy
	}
	if flags.Changed("heading-mode") {
		p.HeadingMode = flagHeadingMode
	}
	if flagFixedHandle {
		p.Planner.FarHandleFixed = config.FarHandleFixed
	}
}

func runHeadless(world *sim.World, log *zap.Logger) error {
	if flagTicks < 0 || flagDt <= 0 {
		return fmt.Errorf("headless run needs ticks >= 0 and dt > 0, got %d and %g", flagTicks, flagDt)
	}

	arrivals := world.Run(flagTicks, flagDt)
	st := world.Stats()
	v := world.Vehicle()

	log.Info("simulation finished",
		zap.Uint64("ticks", st.Ticks),
		zap.Int("arrivals", arrivals),
		zap.Float64("travelled", st.Travelled),
		zap.Int("relaxed", st.Relaxed),
	)

	fmt.Printf("seed       %d\n", world.Seed())
	fmt.Printf("ticks      %d (%.1fs simulated)\n", st.Ticks, st.SimTime)
	fmt.Printf("arrivals   %d\n", st.Arrivals)
	fmt.Printf("travelled  %.1f\n", st.Travelled)
	fmt.Printf("relaxed    %d\n", st.Relaxed)
	fmt.Printf("vehicle    (%.1f, %.1f) heading %.3f speed %.2f\n", v.Pos.X, v.Pos.Y, geom.NormalizeAngle(v.Heading), v.Speed)
	return nil
}
