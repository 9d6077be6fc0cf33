// internal/output/mysql.go
package output

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver

	"github.com/valpere/PeopleScrapexter/pkg/types"
)

// MySQLWriter writes records to a MySQL table with INSERT IGNORE
// semantics on the (profile_url, name) key.
type MySQLWriter struct {
	db    *sql.DB
	table string
}

// NewMySQLWriter connects and ensures the target table exists. The DSN must
// include parseTime=true for the timestamp column.
func NewMySQLWriter(opts Options) (*MySQLWriter, error) {
	if opts.DSN == "" {
		return nil, fmt.Errorf("MySQL DSN is required")
	}
	table := opts.Table
	if table == "" {
		table = "people"
	}
	if err := validateIdentifier(table); err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(time.Hour)

	w := &MySQLWriter{db: db, table: table}
	if err := w.createTable(); err != nil {
		db.Close()
		return nil, err
	}
	return w, nil
}

func (w *MySQLWriter) createTable() error {
	// Key length is capped because profile URLs can exceed MySQL's index
	// limit for utf8mb4.
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name TEXT NOT NULL,
		title TEXT NOT NULL,
		company TEXT NOT NULL,
		location TEXT NOT NULL,
		industry TEXT NOT NULL,
		connection_degree VARCHAR(8) NOT NULL DEFAULT '',
		shared_connections TEXT NOT NULL,
		profile_url VARCHAR(512) NOT NULL DEFAULT '',
		scraped_at TIMESTAMP NOT NULL,
		UNIQUE KEY uniq_profile (profile_url(255), name(128))
	) CHARACTER SET utf8mb4`, w.table)
	if _, err := w.db.Exec(stmt); err != nil {
		return fmt.Errorf("failed to create table %s: %w", w.table, err)
	}
	return nil
}

// Write inserts the records in one transaction.
func (w *MySQLWriter) Write(records []types.Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(types.RecordHeader)+1), ", ")
	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT IGNORE INTO %s (%s, scraped_at) VALUES (%s)",
		w.table, strings.Join(types.RecordHeader, ", "), placeholders))
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
func (w *MySQLWriter) Close() error {
	return w.db.Close()
}
