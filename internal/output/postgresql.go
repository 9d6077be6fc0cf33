// internal/output/postgresql.go
package output

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/valpere/PeopleScrapexter/pkg/types"
)

// PostgreSQLWriter writes records to a PostgreSQL table, ignoring conflicts
// on (profile_url, name).
type PostgreSQLWriter struct {
	db    *sql.DB
	table string
}

// NewPostgreSQLWriter connects and ensures the target table exists.
func NewPostgreSQLWriter(opts Options) (*PostgreSQLWriter, error) {
	if opts.DSN == "" {
		return nil, fmt.Errorf("PostgreSQL DSN is required")
	}
	table := opts.Table
	if table == "" {
		table = "people"
	}
	if err := validateIdentifier(table); err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(time.Hour)

	w := &PostgreSQLWriter{db: db, table: table}
	if err := w.createTable(); err != nil {
		db.Close()
		return nil, err
	}
	return w, nil
}

func (w *PostgreSQLWriter) createTable() error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		company TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		industry TEXT NOT NULL DEFAULT '',
		connection_degree TEXT NOT NULL DEFAULT '',
		shared_connections TEXT NOT NULL DEFAULT '',
		profile_url TEXT NOT NULL DEFAULT '',
		scraped_at TIMESTAMPTZ NOT NULL,
		UNIQUE(profile_url, name)
	)`, w.table)
	if _, err := w.db.Exec(stmt); err != nil {
		return fmt.Errorf("failed to create table %s: %w", w.table, err)
	}
	return nil
}

// Write inserts the records in one transaction.
func (w *PostgreSQLWriter) Write(records []types.Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	placeholders := make([]string, 0, len(types.RecordHeader)+1)
	for i := 0; i < len(types.RecordHeader)+1; i++ {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
	}
	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT INTO %s (%s, scraped_at) VALUES (%s) ON CONFLICT DO NOTHING",
		w.table, strings.Join(types.RecordHeader, ", "), strings.Join(placeholders, ", ")))
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

// Close closes the connection pool.
func (w *PostgreSQLWriter) Close() error {
	return w.db.Close()
}
