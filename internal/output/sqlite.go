// internal/output/sqlite.go
package output

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/valpere/PeopleScrapexter/pkg/types"
)

// SQLiteWriter persists accumulated records to a local SQLite database.
// Duplicate profile URLs are ignored, so re-scraping a page is idempotent.
type SQLiteWriter struct {
	db    *sql.DB
	table string
}

// NewSQLiteWriter opens (and initializes) the database file.
func NewSQLiteWriter(opts Options) (*SQLiteWriter, error) {
	if opts.File == "" {
		return nil, fmt.Errorf("SQLite database path is required")
	}
	table := opts.Table
	if table == "" {
		table = "people"
	}
	if err := validateIdentifier(table); err != nil {
		return nil, err
	}

	if dir := filepath.Dir(opts.File); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", opts.File+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}
	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	w := &SQLiteWriter{db: db, table: table}
	if err := w.createTable(); err != nil {
		db.Close()
		return nil, err
	}
	return w, nil
}

func (w *SQLiteWriter) createTable() error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		company TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		industry TEXT NOT NULL DEFAULT '',
		connection_degree TEXT NOT NULL DEFAULT '',
		shared_connections TEXT NOT NULL DEFAULT '',
		profile_url TEXT NOT NULL DEFAULT '',
		scraped_at TIMESTAMP NOT NULL,
		UNIQUE(profile_url, name)
	)`, w.table)
	if _, err := w.db.Exec(stmt); err != nil {
		return fmt.Errorf("failed to create table %s: %w", w.table, err)
	}
	return nil
}

// Write inserts the records in one transaction.
func (w *SQLiteWriter) Write(records []types.Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	cols := strings.Join(types.RecordHeader, ", ")
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(types.RecordHeader)+1), ", ")
	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT OR IGNORE INTO %s (%s, scraped_at) VALUES (%s)", w.table, cols, placeholders))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, rec := range records {
		args := make([]interface{}, 0, len(types.RecordHeader)+1)
		for _, v := range rec.Row() {
			args = append(args, v)
		}
		args = append(args, now)
		if _, err := stmt.Exec(args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Close closes the database.
func (w *SQLiteWriter) Close() error {
	return w.db.Close()
}
