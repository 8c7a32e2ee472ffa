package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mathflyer/internal/config"
	"github.com/vovakirdan/mathflyer/internal/questions"
	"github.com/vovakirdan/mathflyer/internal/storage"
)

const defaultQuestionsDB = "~/.mathflyer/questions.db"

// loadConfig loads the engine config and applies the difficulty preset.
func loadConfig() (config.Config, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	config.ApplyPreset(&cfg, preset)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// loadAllQuestions reads the selected question source without filtering.
func loadAllQuestions() ([]questions.MathQuestion, error) {
	if flagQuestionsDB == "" {
		return questions.EmbeddedSource{}.Load()
	}

	store, err := storage.Open(flagQuestionsDB)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	qs, err := store.Load()
	if err != nil {
		return nil, err
	}
	if len(qs) == 0 {
		return nil, fmt.Errorf("%w: %s holds no questions, run 'mathflyer questions import' first",
			questions.ErrQuestionSource, flagQuestionsDB)
	}
	return qs, nil
}

// loadQuestions reads the question source and applies --category and --max-difficulty.
// A filter that leaves nothing to ask is a configuration error.
func loadQuestions() ([]questions.MathQuestion, error) {
	qs, err := loadAllQuestions()
	if err != nil {
		return nil, err
	}

	categories := make([]questions.Category, 0, len(flagCategories))
	for _, name := range flagCategories {
		c, err := questions.ParseCategory(name)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if flagMaxDifficulty < 0 || flagMaxDifficulty > questions.MaxDifficulty {
		return nil, fmt.Errorf("%w: --max-difficulty must be between 0 and %d",
			config.ErrInvalidConfig, questions.MaxDifficulty)
	}

	filtered := questions.Filter(qs, categories, flagMaxDifficulty)
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: no questions match the category and difficulty filters", config.ErrInvalidConfig)
	}
	return filtered, nil
}

// newLogger returns the logger for the run and a function closing its file.
// Without --log-file, logs are discarded so they never corrupt the game screen.
func newLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "mathflyer",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, func() { f.Close() }, nil
}

// runSeed returns --seed, or a time-based seed when it is zero.
func runSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
