package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mathflyer/internal/autopilot"
	"github.com/vovakirdan/mathflyer/internal/engine"
	"github.com/vovakirdan/mathflyer/internal/platform/tui"
	"github.com/vovakirdan/mathflyer/internal/questions"
)

var (
	flagFrames    int
	flagAccuracy  float64
	flagDelta     float64
	flagShowFinal bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Fly a headless run with the autopilot",
	Long: `Run the engine without a terminal UI. The autopilot steers toward the
zone it picked for each obstacle, choosing the correct answer with the given
probability. The run uses fixed frame deltas, so a seed reproduces it exactly.

Examples:
  mathflyer simulate
  mathflyer simulate --frames 10000 --seed 7
  mathflyer simulate --accuracy 0.5 --show-final`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagFrames, "frames", 3600, "Maximum number of frames to simulate")
	simulateCmd.Flags().Float64Var(&flagAccuracy, "accuracy", 1.0, "Probability the autopilot picks the correct zone (0-1)")
	simulateCmd.Flags().Float64Var(&flagDelta, "delta", 1000.0/60, "Frame length in milliseconds")
	simulateCmd.Flags().BoolVar(&flagShowFinal, "show-final", false, "Print the last frame")
}

func runSimulate(_ *cobra.Command, _ []string) {
	if flagAccuracy < 0 || flagAccuracy > 1 {
		exitOnErr("parsing flags", fmt.Errorf("--accuracy must be in [0, 1], got %v", flagAccuracy))
	}

	cfg, err := loadConfig()
	exitOnErr("loading config", err)

	qs, err := loadQuestions()
	exitOnErr("loading questions", err)

	logger, closeLog, err := newLogger()
	exitOnErr("opening log", err)
	defer closeLog()

	seed := runSeed()
	pool, err := questions.NewPool(qs, rand.New(rand.NewSource(seed)))
	exitOnErr("building question pool", err)

	e, err := engine.New(cfg, pool,
		engine.WithSeed(seed),
		engine.WithLogger(logger),
		engine.WithDebugAssertions(flagDebug),
	)
	exitOnErr("creating engine", err)
	defer e.Destroy()

	var errs []error
	screen := tui.NewRenderer(80, 24, nil)
	exitOnErr("initializing engine", e.Initialize(screen, engine.Callbacks{
		OnError: func(err error) { errs = append(errs, err) },
	}))

	frames, err := autopilot.Run(e, autopilot.New(flagAccuracy, seed), flagFrames, flagDelta)
	exitOnErr("simulating", err)

	s := e.Summary()
	outcome := "survived"
	if e.Phase() == engine.PhaseGameOver {
		outcome = "crashed into " + s.Reason
	}

	fmt.Printf("Simulation (seed %d, accuracy %.2f)\n", seed, flagAccuracy)
	fmt.Println()
	fmt.Printf("  %-16s %d of %d (%s)\n", "Frames", frames, flagFrames, outcome)
	fmt.Printf("  %-16s %d\n", "Obstacles passed", s.Score)
	fmt.Printf("  %-16s %d\n", "Math score", s.MathScore)
	fmt.Printf("  %-16s %d correct, %d wrong\n", "Answers", s.TotalCorrect, s.TotalIncorrect)
	fmt.Printf("  %-16s %.1f%%\n", "Accuracy", s.Accuracy)
	fmt.Printf("  %-16s %d (current %d)\n", "Best streak", s.HighestStreak, s.Streak)
	if len(errs) > 0 {
		fmt.Printf("  %-16s %d (first: %v)\n", "Errors", len(errs), errs[0])
	}

	if flagShowFinal {
		e.Render()
		fmt.Println()
		fmt.Println(screen.Screen().String())
	}
}
