package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrEmailExists = errors.New("email already exists")
)

// fixed-width so that lexical order in sqlite matches time order
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store is the sqlite-backed persistence for users, tracker entries, goals
// and label analyses.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open connects to the database at path and creates missing tables.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		"id" INTEGER PRIMARY KEY AUTOINCREMENT,
		"email" TEXT NOT NULL UNIQUE,
		"password_hash" TEXT NOT NULL DEFAULT '',
		"name" TEXT,
		"age" INTEGER,
		"gender" TEXT,
		"height" REAL,
		"weight" REAL,
		"diseases" TEXT,
		"profile_completed" INTEGER NOT NULL DEFAULT 0,
		"created_at" TEXT NOT NULL,
		"updated_at" TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS food_entries (
		"id" INTEGER PRIMARY KEY AUTOINCREMENT,
		"user_email" TEXT NOT NULL,
		"food" TEXT NOT NULL,
		"quantity_g" REAL NOT NULL DEFAULT 0,
		"calories" REAL NOT NULL DEFAULT 0,
		"protein" REAL NOT NULL DEFAULT 0,
		"carbs" REAL NOT NULL DEFAULT 0,
		"fat" REAL NOT NULL DEFAULT 0,
		"meal_type" TEXT NOT NULL DEFAULT '',
		"source" TEXT NOT NULL,
		"consumed_on" TEXT NOT NULL,
		"time_label" TEXT NOT NULL DEFAULT '',
		"created_at" TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_food_entries_user_day ON food_entries(user_email, consumed_on)`,
	`CREATE TABLE IF NOT EXISTS weight_goals (
		"user_email" TEXT PRIMARY KEY,
		"payload" TEXT NOT NULL,
		"updated_at" TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS analyses (
		"id" TEXT PRIMARY KEY,
		"user_email" TEXT NOT NULL DEFAULT '',
		"extracted_text" TEXT NOT NULL,
		"reply" TEXT NOT NULL,
		"product" TEXT NOT NULL DEFAULT '',
		"created_at" TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_analyses_user ON analyses(user_email, created_at)`,
}

func (s *Store) migrate(ctx context.Context) error {
	for i, stmt := range migrations {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

func parseTime(v string) time.Time {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
