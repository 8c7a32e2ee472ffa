// Package storage keeps an editable question database in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/mathflyer/internal/questions"
)

// Store manages the SQLite database connection for the question bank.
type Store struct {
	db *sql.DB
}

// ImportInfo describes the last import into the store.
type ImportInfo struct {
	Count      int
	ImportedAt time.Time
}

// Store satisfies questions.Source so a database can replace the embedded set.
var _ questions.Source = (*Store)(nil)

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS questions (
			id TEXT PRIMARY KEY,
			category TEXT NOT NULL,
			question TEXT NOT NULL,
			answer INTEGER NOT NULL CHECK (answer > 0),
			difficulty INTEGER NOT NULL CHECK (difficulty BETWEEN 1 AND 4),
			imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_questions_category ON questions(category);
		CREATE INDEX IF NOT EXISTS idx_questions_difficulty ON questions(category, difficulty);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ReplaceQuestions swaps the stored set for qs in one transaction.
// Every record is validated before anything is written.
func (s *Store) ReplaceQuestions(qs []questions.MathQuestion) error {
	seen := make(map[string]struct{}, len(qs))
	for _, q := range qs {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("storage: %w", err)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("storage: duplicate question id %s", q.ID)
		}
		seen[q.ID] = struct{}{}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM questions"); err != nil {
		return fmt.Errorf("storage: cannot clear questions: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO questions (id, category, question, answer, difficulty) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, q := range qs {
		if _, err := stmt.Exec(q.ID, string(q.Category), q.Question, q.CorrectAnswer, q.Difficulty); err != nil {
			return fmt.Errorf("storage: cannot insert %s: %w", q.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit import: %w", err)
	}
	return nil
}

// Load returns every stored question ordered by id.
func (s *Store) Load() ([]questions.MathQuestion, error) {
	return s.query(`SELECT id, category, question, answer, difficulty FROM questions ORDER BY id`)
}

// QuestionsByCategory returns the stored questions of one category, easiest first.
func (s *Store) QuestionsByCategory(c questions.Category) ([]questions.MathQuestion, error) {
	return s.query(
		`SELECT id, category, question, answer, difficulty
		 FROM questions
		 WHERE category = ?
		 ORDER BY difficulty, id`,
		string(c),
	)
}

func (s *Store) query(q string, args ...any) ([]questions.MathQuestion, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query questions: %w", err)
	}
	defer rows.Close()

	var out []questions.MathQuestion
	for rows.Next() {
		var mq questions.MathQuestion
		var category string
		if err := rows.Scan(&mq.ID, &category, &mq.Question, &mq.CorrectAnswer, &mq.Difficulty); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		mq.Category = questions.Category(category)
		out = append(out, mq)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// CountByCategory tallies stored questions per category.
func (s *Store) CountByCategory() (map[questions.Category]int, error) {
	rows, err := s.db.Query("SELECT category, COUNT(*) FROM questions GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count questions: %w", err)
	}
	defer rows.Close()

	counts := make(map[questions.Category]int)
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		counts[questions.Category(category)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return counts, nil
}

// LastImport reports the stored question count and the newest import time.
// ImportedAt is zero when the store is empty.
func (s *Store) LastImport() (ImportInfo, error) {
	var info ImportInfo
	var importedAt any
	err := s.db.QueryRow("SELECT COUNT(*), MAX(imported_at) FROM questions").Scan(&info.Count, &importedAt)
	if err != nil {
		return ImportInfo{}, fmt.Errorf("storage: cannot query import info: %w", err)
	}

	switch v := importedAt.(type) {
	case time.Time:
		info.ImportedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			info.ImportedAt = parsed
		}
	}
	return info, nil
}
