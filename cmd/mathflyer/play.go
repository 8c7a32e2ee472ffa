package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mathflyer/internal/core"
	"github.com/vovakirdan/mathflyer/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a run in the current terminal.

Controls:
  Space/Up/W - Flap (also starts the run)
  P          - Pause
  R          - Restart
  Ctrl+S     - Save a screenshot to ~/.mathflyer/screenshots
  Q/Esc      - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression

Examples:
  mathflyer play
  mathflyer play --difficulty hard
  mathflyer play --category addition --category subtraction --max-difficulty 2
  mathflyer play --questions-db ~/.mathflyer/questions.db`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	exitOnErr("loading config", err)

	qs, err := loadQuestions()
	exitOnErr("loading questions", err)

	logger, closeLog, err := newLogger()
	exitOnErr("opening log", err)
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.GameOptions{
		Config:    cfg,
		Questions: qs,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Logger: logger,
		Debug:  flagDebug,
	}

	if err := tui.Run(opts); err != nil {
		closeLog()
		exitOnErr("running game", err)
	}
}
