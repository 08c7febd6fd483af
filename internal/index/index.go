// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index mirrors a journal into SQLite for text search. The JSON
// document stays the source of truth; the database is rebuilt from it after
// every save and can be deleted at any time.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/amsa/pkg/types"
)

const defaultMaxResults = 20

// schemaVersion is stored in PRAGMA user_version. Databases written with an
// older layout are dropped and recreated; Sync repopulates them.
const schemaVersion = 1

// Kind says whether a search hit matched question or answer text.
type Kind string

const (
	KindQuestion Kind = "question"
	KindAnswer   Kind = "answer"
)

// Hit is one search match.
type Hit struct {
	Kind     Kind   `json:"kind" yaml:"kind"`
	Position int    `json:"position" yaml:"position"`
	Question string `json:"question" yaml:"question"`
	Text     string `json:"text" yaml:"text"`
	Date     int64  `json:"date" yaml:"date"`
}

// Stats summarizes the indexed journal.
type Stats struct {
	Questions  int
	Answers    int
	Unanswered int
}

// Store manages the index database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// DefaultPath returns the index path used when none is configured:
// the journal path with its extension replaced by ".db". A journal that
// already ends in ".db" gets ".index.db" appended instead.
func DefaultPath(journalPath string) string {
	if strings.EqualFold(filepath.Ext(journalPath), ".db") {
		return journalPath + ".index.db"
	}
	return strings.TrimSuffix(journalPath, filepath.Ext(journalPath)) + ".db"
}

// Open opens or creates the index database at cfg.Path and ensures the
// schema exists.
func Open(cfg types.IndexConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating index directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	s := &Store{db: db, maxResults: maxResults}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	var version int
	if err := s.db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	var statements []string
	if version != schemaVersion {
		statements = append(statements,
			`DROP TABLE IF EXISTS answers`,
			`DROP TABLE IF EXISTS questions`,
		)
	}
	statements = append(statements,
		`CREATE TABLE IF NOT EXISTS questions (
			position INTEGER PRIMARY KEY,
			date INTEGER NOT NULL,
			description TEXT NOT NULL,
			search_text TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS answers (
			question_position INTEGER NOT NULL REFERENCES questions(position) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			date INTEGER NOT NULL,
			description TEXT NOT NULL,
			search_text TEXT NOT NULL,
			PRIMARY KEY (question_position, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_answers_date ON answers(date)`,
		fmt.Sprintf(`PRAGMA user_version = %d`, schemaVersion),
	)
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Sync replaces the indexed contents with doc in a single transaction.
func (s *Store) Sync(ctx context.Context, doc *types.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM answers`); err != nil {
		return fmt.Errorf("clearing answers: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM questions`); err != nil {
		return fmt.Errorf("clearing questions: %w", err)
	}

	qStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO questions (position, date, description, search_text) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing question insert: %w", err)
	}
	defer qStmt.Close()

	aStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO answers (question_position, seq, date, description, search_text) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing answer insert: %w", err)
	}
	defer aStmt.Close()

	for i, q := range doc.Questions {
		if _, err := qStmt.ExecContext(ctx, i, q.Date, q.Description, foldCase(q.Description)); err != nil {
			return fmt.Errorf("inserting question %d: %w", i, err)
		}
		for j, a := range q.Answers {
			if _, err := aStmt.ExecContext(ctx, i, j, a.Date, a.Description, foldCase(a.Description)); err != nil {
				return fmt.Errorf("inserting answer %d of question %d: %w", j, i, err)
			}
		}
	}

	return tx.Commit()
}

// Search returns question and answer matches for text, newest first.
// Matching is a case-insensitive substring test over Unicode text: both
// sides are folded in Go, since SQLite's lower() only folds ASCII. limit <= 0
// uses the configured default.
func (s *Store) Search(ctx context.Context, text string, limit int) ([]Hit, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("search text required")
	}
	if limit <= 0 {
		limit = s.maxResults
	}

	pattern := "%" + escapeLike(foldCase(text)) + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT 'question', q.position, q.description, q.description, q.date
		FROM questions q
		WHERE q.search_text LIKE ? ESCAPE '\'
		UNION ALL
		SELECT 'answer', q.position, q.description, a.description, a.date
		FROM answers a JOIN questions q ON q.position = a.question_position
		WHERE a.search_text LIKE ? ESCAPE '\'
		ORDER BY 5 DESC
		LIMIT ?`, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		var kind string
		if err := rows.Scan(&kind, &h.Position, &h.Question, &h.Text, &h.Date); err != nil {
			return nil, fmt.Errorf("scanning hit: %w", err)
		}
		h.Kind = Kind(kind)
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// Stats counts indexed questions and answers.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT count(*) FROM questions),
			(SELECT count(*) FROM answers),
			(SELECT count(*) FROM questions q
			 WHERE NOT EXISTS (SELECT 1 FROM answers a WHERE a.question_position = q.position))`,
	).Scan(&st.Questions, &st.Answers, &st.Unanswered)
	if err != nil {
		return Stats{}, fmt.Errorf("counting index rows: %w", err)
	}
	return st, nil
}

func foldCase(s string) string {
	return strings.ToLower(s)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
