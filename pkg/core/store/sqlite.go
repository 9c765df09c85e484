package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"finagentex/pkg/models"

	_ "modernc.org/sqlite"
)

// SQLiteStore is the local fallback backend, used when no DATABASE_URL is
// configured. Same schema as Postgres, file on disk.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the cache database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite cache at %s: %w", path, err)
	}
	// SQLite allows one writer; the batch pool would otherwise trip SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS fundamentals_cache (
			ticker         TEXT NOT NULL,
			period_type    TEXT NOT NULL,
			period         TEXT NOT NULL,
			statement_type TEXT NOT NULL,
			data_json      TEXT,
			fetched_at     TEXT,
			PRIMARY KEY (ticker, period_type, period, statement_type)
		);
		CREATE INDEX IF NOT EXISTS idx_fundamentals_ticker ON fundamentals_cache (ticker);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure fundamentals_cache schema: %w", err)
	}
	return nil
}

// Put implements Store.
func (s *SQLiteStore) Put(ctx context.Context, ticker string, g models.Granularity, periodLabel string, st models.StatementType, doc []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO fundamentals_cache
		(ticker, period_type, period, statement_type, data_json, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, ticker, string(g), periodLabel, string(st), string(doc), time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert fundamentals cache row: %w", err)
	}
	return nil
}

// ListPeriods implements Store.
func (s *SQLiteStore) ListPeriods(ctx context.Context, ticker string, g models.Granularity) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT period FROM fundamentals_cache
		WHERE ticker = ? AND period_type = ?
		ORDER BY period DESC
	`, ticker, string(g))
	if err != nil {
		return nil, fmt.Errorf("failed to list cached periods: %w", err)
	}
	defer rows.Close()

	var periods []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan period: %w", err)
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// GetAll implements Store.
func (s *SQLiteStore) GetAll(ctx context.Context, ticker string, g models.Granularity) (map[models.StatementType]map[string]json.RawMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT period, statement_type, data_json FROM fundamentals_cache
		WHERE ticker = ? AND period_type = ?
	`, ticker, string(g))
	if err != nil {
		return nil, fmt.Errorf("failed to query fundamentals cache: %w", err)
	}
	defer rows.Close()

	out := make(map[models.StatementType]map[string]json.RawMessage)
	for rows.Next() {
		var p, st, doc string
		if err := rows.Scan(&p, &st, &doc); err != nil {
			return nil, fmt.Errorf("failed to scan cache row: %w", err)
		}
		stype := models.StatementType(st)
		if out[stype] == nil {
			out[stype] = make(map[string]json.RawMessage)
		}
		out[stype][p] = json.RawMessage(doc)
	}
	return out, rows.Err()
}

// Clear implements Store.
func (s *SQLiteStore) Clear(ctx context.Context, ticker string) error {
	var err error
	if ticker != "" {
		_, err = s.db.ExecContext(ctx, `DELETE FROM fundamentals_cache WHERE ticker = ?`, ticker)
	} else {
		_, err = s.db.ExecContext(ctx, `DELETE FROM fundamentals_cache`)
	}
	if err != nil {
		return fmt.Errorf("failed to clear fundamentals cache: %w", err)
	}
	return nil
}

// Stats implements Store.
func (s *SQLiteStore) Stats(ctx context.Context) (int64, int64, error) {
	var rows, tickers int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT ticker) FROM fundamentals_cache`).Scan(&rows, &tickers)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read cache stats: %w", err)
	}
	return rows, tickers, nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
