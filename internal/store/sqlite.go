package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

// sqliteMemoryDSN opens a database that lives only as long as its connection.
const sqliteMemoryDSN = ":memory:"

// SQLite is a Store backed by a private in-memory SQLite database.
//
// The pool is pinned to a single connection that is never recycled, because
// closing it would discard the database. The single connection also makes
// reads wait for an in-flight insert transaction.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite creates an empty SQLite store.
func OpenSQLite() (*SQLite, error) {
	db, err := sql.Open("sqlite", sqliteMemoryDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	s := &SQLite{db: db}
	if err := s.createTables(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

func (s *SQLite) createTables(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS urls (
		host TEXT NOT NULL,
		url TEXT NOT NULL,
		PRIMARY KEY (host, url)
	);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// InsertUnique implements Store. The whole call runs in one transaction.
func (s *SQLite) InsertUnique(host string, urls []string) ([]string, error) {
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // no-op after commit
	}()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO urls (host, url) VALUES (?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	fresh := make([]string, 0, len(urls))
	for _, u := range urls {
		res, err := stmt.ExecContext(ctx, host, u)
		if err != nil {
			return nil, fmt.Errorf("failed to insert url: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to read rows affected: %w", err)
		}
		if n == 1 {
			fresh = append(fresh, u)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return fresh, nil
}

// URLs implements Store. The result is sorted.
func (s *SQLite) URLs(host string) ([]string, error) {
	ctx := context.Background()

	rows, err := s.db.QueryContext(ctx, `SELECT url FROM urls WHERE host = ? ORDER BY url`, host)
	if err != nil {
		return nil, fmt.Errorf("failed to query urls: %w", err)
	}
	defer rows.Close()

	return scanStrings(rows)
}

// Count implements Store.
func (s *SQLite) Count(host string) (int, error) {
	var n int
	err := s.db.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM urls WHERE host = ?`, host).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count urls: %w", err)
	}
	return n, nil
}

// Hosts implements Store. The result is sorted.
func (s *SQLite) Hosts() ([]string, error) {
	rows, err := s.db.QueryContext(context.Background(), `SELECT DISTINCT host FROM urls ORDER BY host`)
	if err != nil {
		return nil, fmt.Errorf("failed to query hosts: %w", err)
	}
	defer rows.Close()

	return scanStrings(rows)
}

// Close implements Store. The database is discarded.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func scanStrings(rows *sql.Rows) ([]string, error) {
	out := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return out, nil
}
