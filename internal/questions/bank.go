package questions

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed data/questions.yaml
var databaseYAML []byte

// Source loads a complete question set.
type Source interface {
	Load() ([]MathQuestion, error)
}

// EmbeddedSource serves the built-in 200-question database.
type EmbeddedSource struct{}

// Load decodes the embedded database.
func (EmbeddedSource) Load() ([]MathQuestion, error) {
	return Decode(databaseYAML)
}

// FileSource reads a question database in the embedded YAML format.
type FileSource struct {
	Path string
}

// Load reads and decodes the file.
func (s FileSource) Load() ([]MathQuestion, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuestionSource, err)
	}
	qs, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return qs, nil
}

type document struct {
	Questions []MathQuestion `yaml:"questions"`
}

// Decode parses a YAML question database and validates every record.
func Decode(data []byte) ([]MathQuestion, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuestionSource, err)
	}
	if err := validateAll(doc.Questions); err != nil {
		return nil, err
	}
	return doc.Questions, nil
}

// Encode renders questions in the database YAML format.
func Encode(qs []MathQuestion) ([]byte, error) {
	return yaml.Marshal(document{Questions: qs})
}

func validateAll(qs []MathQuestion) error {
	seen := make(map[string]struct{}, len(qs))
	for _, q := range qs {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrQuestionSource, err)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("%w: duplicate id %s", ErrQuestionSource, q.ID)
		}
		seen[q.ID] = struct{}{}
	}
	return nil
}

// Filter keeps questions in the given categories (all when empty) whose
// difficulty does not exceed maxDifficulty (no limit when <= 0).
func Filter(qs []MathQuestion, categories []Category, maxDifficulty int) []MathQuestion {
	out := make([]MathQuestion, 0, len(qs))
	for _, q := range qs {
		if len(categories) > 0 && !slices.Contains(categories, q.Category) {
			continue
		}
		if maxDifficulty > 0 && q.Difficulty > maxDifficulty {
			continue
		}
		out = append(out, q)
	}
	return out
}

// CountByCategory tallies questions per category.
func CountByCategory(qs []MathQuestion) map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, q := range qs {
		counts[q.Category]++
	}
	return counts
}
