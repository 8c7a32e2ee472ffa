// mathflyer is a side-scrolling arithmetic game for the terminal: steer through
// the gap that holds the correct answer to the question on screen.
//
// Usage:
//
//	mathflyer play                 - Play in this terminal
//	mathflyer serve                - Start SSH server for remote play
//	mathflyer simulate             - Fly a headless run with the autopilot
//	mathflyer questions list       - Print the question bank
//	mathflyer questions browse     - Browse the question bank interactively
//	mathflyer questions import     - Load questions into a SQLite database
//	mathflyer questions export     - Write the question bank as YAML
//	mathflyer questions stats      - Count questions per category and difficulty
//
// Global flags:
//
//	--fps <rate>            - Set tick rate (default: config target_frame_rate)
//	--seed <value>          - Set RNG seed for reproducible gameplay
//	--config <path>         - Engine config YAML
//	--difficulty <preset>   - easy, normal, hard or fixed
//	--questions-db <path>   - Read questions from SQLite instead of the built-in set
//	--category <name>       - Restrict questions to categories (repeatable)
//	--max-difficulty <n>    - Skip questions harder than n
//	--log-file <path>       - Write logs to a file
//	--debug                 - Panic on invariant violations, debug logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS           int
	flagSeed          int64
	flagConfig        string
	flagDifficulty    string
	flagQuestionsDB   string
	flagCategories    []string
	flagMaxDifficulty int
	flagLogFile       string
	flagDebug         bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mathflyer",
	Short: "Math Flyer - answer arithmetic questions in flight",
	Long: `Math Flyer is a side-scrolling terminal game. Every obstacle has a gap
split into two answer zones; fly through the zone holding the answer to the
question at the top of the screen.

Available commands:
  play       - Play in this terminal
  serve      - Start SSH server for remote play
  simulate   - Headless autopilot run printing the game over summary
  questions  - List, browse, import, export and count questions

Examples:
  mathflyer play
  mathflyer play --difficulty hard --category multiplication
  mathflyer simulate --frames 3600 --seed 42 --accuracy 0.8
  mathflyer questions import my-questions.yaml
  mathflyer serve --ssh :2222`,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 0, "Tick rate in frames per second (0 = config target_frame_rate)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagConfig, "config", "", "Path to custom engine config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagQuestionsDB, "questions-db", "", "SQLite question database (empty = built-in questions)")
	pf.StringSliceVar(&flagCategories, "category", nil, "Only use these categories (addition, subtraction, multiplication, division)")
	pf.IntVar(&flagMaxDifficulty, "max-difficulty", 0, "Skip questions above this difficulty (1-4, 0 = all)")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.BoolVar(&flagDebug, "debug", false, "Panic on invariant violations and log at debug level")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(questionsCmd)
}

// exitOnErr prints msg and err to stderr and exits when err is not nil.
func exitOnErr(msg string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", msg, err)
	os.Exit(1)
}
