package main

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/mathflyer/internal/config"
	"github.com/vovakirdan/mathflyer/internal/questions"
	"github.com/vovakirdan/mathflyer/internal/storage"
)

// withFlags resets the global flags after the test.
func withFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		flagCategories = nil
		flagMaxDifficulty = 0
		flagQuestionsDB = ""
		flagDifficulty = ""
		flagConfig = ""
	})
}

func TestLoadQuestionsFilters(t *testing.T) {
	withFlags(t)

	qs, err := loadQuestions()
	if err != nil || len(qs) != 200 {
		t.Fatalf("loadQuestions() = %d questions, %v", len(qs), err)
	}

	flagCategories = []string{"add", "div"}
	flagMaxDifficulty = 1
	qs, err = loadQuestions()
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) == 0 {
		t.Fatal("expected some easy addition and division questions")
	}
	for _, q := range qs {
		if (q.Category != questions.Addition && q.Category != questions.Division) || q.Difficulty > 1 {
			t.Errorf("filter let %s through (%s, level %d)", q.ID, q.Category, q.Difficulty)
		}
	}
}

func TestLoadQuestionsRejects(t *testing.T) {
	tests := []struct {
		name     string
		set      func()
		sentinel error
	}{
		{"unknown category", func() { flagCategories = []string{"modulo"} }, nil},
		{"difficulty out of range", func() { flagMaxDifficulty = 9 }, config.ErrInvalidConfig},
		{"empty database", func() { flagQuestionsDB = filepath.Join(t.TempDir(), "empty.db") }, questions.ErrQuestionSource},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			withFlags(t)
			tc.set()
			_, err := loadQuestions()
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.sentinel != nil && !errors.Is(err, tc.sentinel) {
				t.Errorf("error %v does not wrap %v", err, tc.sentinel)
			}
		})
	}
}

func TestLoadQuestionsEmptyFilterIsConfigError(t *testing.T) {
	withFlags(t)

	flagQuestionsDB = filepath.Join(t.TempDir(), "q.db")
	store, err := storage.Open(flagQuestionsDB)
	if err != nil {
		t.Fatal(err)
	}
	err = store.ReplaceQuestions([]questions.MathQuestion{
		{ID: "a", Category: questions.Addition, Question: "1 + 1", CorrectAnswer: 2, Difficulty: 1},
	})
	store.Close()
	if err != nil {
		t.Fatal(err)
	}

	flagCategories = []string{"multiplication"}
	if _, err := loadQuestions(); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("loadQuestions() = %v, expected ErrInvalidConfig", err)
	}
}

func TestLoadConfigPreset(t *testing.T) {
	withFlags(t)

	flagDifficulty = "hard"
	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset not applied: %+v", cfg.Difficulty)
	}

	flagDifficulty = "insane"
	if _, err := loadConfig(); err == nil {
		t.Error("expected an error for an unknown preset")
	}
}
