// Package questions holds the arithmetic question database and the pool that
// deals questions without repeats until the whole set is exhausted.
package questions

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrQuestionSource is wrapped by every failure to load or draw a question.
	ErrQuestionSource = errors.New("questions: question source failure")
	// ErrEmptyPool is returned when a pool is built from no questions.
	ErrEmptyPool = errors.New("questions: pool has no questions")
)

// Category is the arithmetic operation a question exercises.
type Category string

const (
	Addition       Category = "addition"
	Subtraction    Category = "subtraction"
	Multiplication Category = "multiplication"
	Division       Category = "division"
)

// Categories lists every category in display order.
var Categories = []Category{Addition, Subtraction, Multiplication, Division}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	switch c {
	case Addition, Subtraction, Multiplication, Division:
		return true
	default:
		return false
	}
}

// Title returns the capitalized category name.
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// ParseCategory accepts a category name or its common short form.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "addition", "add", "+":
		return Addition, nil
	case "subtraction", "sub", "-":
		return Subtraction, nil
	case "multiplication", "mul", "x", "*":
		return Multiplication, nil
	case "division", "div", "/":
		return Division, nil
	default:
		return "", fmt.Errorf("questions: unknown category %q", s)
	}
}

// Difficulty bounds.
const (
	MinDifficulty = 1
	MaxDifficulty = 4
)

// MathQuestion is an immutable question record.
type MathQuestion struct {
	ID            string   `yaml:"id"`
	Category      Category `yaml:"category"`
	Question      string   `yaml:"question"`
	CorrectAnswer int      `yaml:"answer"`
	Difficulty    int      `yaml:"difficulty"`
}

// Validate checks the record against the database invariants.
func (q MathQuestion) Validate() error {
	switch {
	case q.ID == "":
		return fmt.Errorf("questions: question %q has no id", q.Question)
	case !q.Category.Valid():
		return fmt.Errorf("questions: %s has unknown category %q", q.ID, q.Category)
	case q.Question == "":
		return fmt.Errorf("questions: %s has empty text", q.ID)
	case q.CorrectAnswer <= 0:
		return fmt.Errorf("questions: %s answer %d is not positive", q.ID, q.CorrectAnswer)
	case q.Difficulty < MinDifficulty || q.Difficulty > MaxDifficulty:
		return fmt.Errorf("questions: %s difficulty %d outside [%d,%d]", q.ID, q.Difficulty, MinDifficulty, MaxDifficulty)
	}
	return nil
}

// String renders the question as shown to the player.
func (q MathQuestion) String() string {
	return q.Question + " = ?"
}
