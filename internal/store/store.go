// Package store persists generated content, quizzes, attempts, and the
// generation event log in SQLite.
package store

import (
	"database/sql"
	"fmt"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite handle and provides the repositories.
type Store struct {
	db *sql.DB
}

// Open creates a Store for the database at path, applying the
// recommended pragmas and creating missing tables.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying handle for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ContentRepo returns the generated-content repository.
func (s *Store) ContentRepo() ContentRepo {
	return &contentRepo{db: s.db}
}

// QuizRepo returns the quiz and attempt repository.
func (s *Store) QuizRepo() QuizRepo {
	return &quizRepo{db: s.db}
}

// EventRepo returns the generation event log.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db}
}

// applyPragmas configures SQLite for single-user local use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS generated_content (
	document_id TEXT PRIMARY KEY,
	summary     TEXT NOT NULL DEFAULT '',
	key_points  TEXT NOT NULL DEFAULT '',
	updated_at  TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS quizzes (
	id          TEXT PRIMARY KEY,
	document_id TEXT NOT NULL,
	questions   TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quizzes_document ON quizzes(document_id);

CREATE TABLE IF NOT EXISTS attempts (
	id              TEXT PRIMARY KEY,
	quiz_id         TEXT NOT NULL REFERENCES quizzes(id),
	answers         TEXT NOT NULL,
	total_correct   INTEGER NOT NULL,
	total_questions INTEGER NOT NULL,
	percentage      REAL NOT NULL,
	breakdown       TEXT NOT NULL,
	created_at      TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_attempts_quiz ON attempts(quiz_id);

CREATE TABLE IF NOT EXISTS generation_events (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	document_id TEXT NOT NULL,
	operation   TEXT NOT NULL,
	model       TEXT NOT NULL,
	latency_ms  INTEGER NOT NULL,
	fragments   INTEGER NOT NULL,
	success     INTEGER NOT NULL,
	error       TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMP NOT NULL
);
`
	_, err := db.Exec(schema)
	return err
}
