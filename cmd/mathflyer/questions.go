package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mathflyer/internal/platform/tui"
	"github.com/vovakirdan/mathflyer/internal/questions"
	"github.com/vovakirdan/mathflyer/internal/storage"
)

var flagImportEmbedded bool

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Inspect and manage the question bank",
	Long: `Inspect the question bank used by play, serve and simulate.

Without --questions-db the built-in 200-question set is used. Import a YAML file
into a SQLite database to play with your own questions.

Examples:
  mathflyer questions list --category division
  mathflyer questions browse
  mathflyer questions import my-questions.yaml
  mathflyer questions import --embedded --questions-db ./questions.db
  mathflyer questions export > questions.yaml
  mathflyer questions stats --questions-db ~/.mathflyer/questions.db`,
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the questions matching the filters",
	Args:  cobra.NoArgs,
	Run:   runQuestionsList,
}

var questionsBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the question bank interactively",
	Args:  cobra.NoArgs,
	Run:   runQuestionsBrowse,
}

var questionsImportCmd = &cobra.Command{
	Use:   "import [file.yaml]",
	Short: "Replace the questions of a SQLite database",
	Long: `Validate a YAML question file and replace the contents of the database
given by --questions-db (default ~/.mathflyer/questions.db) in one transaction.
An invalid file leaves the database untouched.

The file uses the built-in format:

  questions:
    - id: add-001
      category: addition
      question: "7 + 9"
      answer: 16
      difficulty: 1`,
	Args: cobra.MaximumNArgs(1),
	Run:  runQuestionsImport,
}

var questionsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the questions matching the filters as YAML",
	Args:  cobra.NoArgs,
	Run:   runQuestionsExport,
}

var questionsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count questions per category and difficulty",
	Args:  cobra.NoArgs,
	Run:   runQuestionsStats,
}

func init() {
	questionsImportCmd.Flags().BoolVar(&flagImportEmbedded, "embedded", false, "Import the built-in questions instead of a file")

	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsBrowseCmd)
	questionsCmd.AddCommand(questionsImportCmd)
	questionsCmd.AddCommand(questionsExportCmd)
	questionsCmd.AddCommand(questionsStatsCmd)
}

func runQuestionsList(_ *cobra.Command, _ []string) {
	qs, err := loadQuestions()
	exitOnErr("loading questions", err)

	fmt.Printf("  %-9s  %-14s  %-12s  %-6s  %s\n", "ID", "Category", "Question", "Answer", "Level")
	fmt.Printf("  %-9s  %-14s  %-12s  %-6s  %s\n", "--", "--------", "--------", "------", "-----")
	for _, q := range qs {
		fmt.Printf("  %-9s  %-14s  %-12s  %-6d  %d\n", q.ID, q.Category, q.Question, q.CorrectAnswer, q.Difficulty)
	}
	fmt.Println()
	fmt.Printf("%d questions\n", len(qs))
}

func runQuestionsBrowse(_ *cobra.Command, _ []string) {
	qs, err := loadQuestions()
	exitOnErr("loading questions", err)

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	exitOnErr("running browser", tui.RunBrowser(qs, width, height))
}

func runQuestionsImport(_ *cobra.Command, args []string) {
	var src questions.Source
	switch {
	case flagImportEmbedded && len(args) == 0:
		src = questions.EmbeddedSource{}
	case !flagImportEmbedded && len(args) == 1:
		src = questions.FileSource{Path: args[0]}
	default:
		exitOnErr("parsing arguments", fmt.Errorf("give either a YAML file or --embedded"))
	}

	qs, err := src.Load()
	exitOnErr("reading questions", err)

	dbPath := flagQuestionsDB
	if dbPath == "" {
		dbPath = defaultQuestionsDB
	}
	store, err := storage.Open(dbPath)
	exitOnErr("opening question database", err)
	defer store.Close()

	if err := store.ReplaceQuestions(qs); err != nil {
		store.Close()
		exitOnErr("importing questions", err)
	}

	counts := questions.CountByCategory(qs)
	fmt.Printf("Imported %d questions into %s\n", len(qs), dbPath)
	for _, c := range questions.Categories {
		fmt.Printf("  %-14s %d\n", c.Title(), counts[c])
	}
	if len(counts) < len(questions.Categories) {
		fmt.Println("Warning: some categories are empty; --category filters on them will fail.")
	}
}

func runQuestionsExport(_ *cobra.Command, _ []string) {
	qs, err := loadQuestions()
	exitOnErr("loading questions", err)

	data, err := questions.Encode(qs)
	exitOnErr("encoding questions", err)
	os.Stdout.Write(data) //nolint:errcheck // Stdout write failure has nowhere to be reported
}

func runQuestionsStats(_ *cobra.Command, _ []string) {
	qs, err := loadQuestions()
	exitOnErr("loading questions", err)

	source := "built-in"
	if flagQuestionsDB != "" {
		source = flagQuestionsDB
	}
	fmt.Printf("Question bank - %s\n", source)
	fmt.Println()

	byLevel := make(map[questions.Category][questions.MaxDifficulty + 1]int)
	for _, q := range qs {
		levels := byLevel[q.Category]
		levels[q.Difficulty]++
		byLevel[q.Category] = levels
	}

	counts := questions.CountByCategory(qs)
	fmt.Printf("  %-14s  %5s  %3s  %3s  %3s  %3s\n", "Category", "Total", "L1", "L2", "L3", "L4")
	for _, c := range questions.Categories {
		l := byLevel[c]
		fmt.Printf("  %-14s  %5d  %3d  %3d  %3d  %3d\n", c.Title(), counts[c], l[1], l[2], l[3], l[4])
	}
	fmt.Printf("  %-14s  %5d\n", "All", len(qs))

	if flagQuestionsDB == "" {
		return
	}
	store, err := storage.Open(flagQuestionsDB)
	exitOnErr("opening question database", err)
	defer store.Close()

	info, err := store.LastImport()
	exitOnErr("reading import info", err)
	if !info.ImportedAt.IsZero() {
		fmt.Println()
		fmt.Printf("Last import: %d questions at %s\n", info.Count, info.ImportedAt.Format("2006-01-02 15:04"))
	}
}
