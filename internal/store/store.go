package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store is the SQLite-backed ProgressStore.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
}

var _ ProgressStore = (*Store)(nil)

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates the tables if needed.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One writer at a time; each save is a single transaction.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db, drv: entsql.OpenDB(dialect.SQLite, db)}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// builder returns a statement builder for the SQLite dialect.
func (s *Store) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.drv.Dialect())
}

// applyPragmas configures SQLite for optimal single-user performance.
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

var tableDDL = []string{
	`CREATE TABLE IF NOT EXISTS ` + tableAttempts + ` (
		seq INTEGER NOT NULL,
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		quiz_id TEXT NOT NULL,
		answers TEXT NOT NULL,
		correct_count INTEGER NOT NULL,
		total_questions INTEGER NOT NULL,
		time_taken_seconds INTEGER NOT NULL,
		score REAL NOT NULL,
		submitted_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ` + tableProgress + ` (
		seq INTEGER NOT NULL,
		user_id TEXT NOT NULL,
		skill TEXT NOT NULL,
		mastered_probability REAL NOT NULL,
		PRIMARY KEY (user_id, skill)
	)`,
	`CREATE TABLE IF NOT EXISTS ` + tableLessonActivity + ` (
		seq INTEGER NOT NULL,
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		lesson_id TEXT NOT NULL,
		minutes_spent INTEGER NOT NULL,
		completed_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ` + tableHelpTickets + ` (
		seq INTEGER NOT NULL,
		ticket_id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		channel TEXT NOT NULL,
		question TEXT NOT NULL,
		created_at TEXT NOT NULL,
		status TEXT NOT NULL,
		response TEXT
	)`,
}

func createTables(db *sql.DB) error {
	for _, ddl := range tableDDL {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. TWOTOR_DB environment variable
// 2. $XDG_DATA_HOME/twotor/twotor.db
// 3. ~/.local/share/twotor/twotor.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("TWOTOR_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "twotor", "twotor.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
