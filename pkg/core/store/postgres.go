package store

import (
	"context"
	"encoding/json"
	"fmt"

	"finagentex/pkg/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the primary durable backend.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects a pool and ensures the schema exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	s := &PostgresStore{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS fundamentals_cache (
			ticker         TEXT NOT NULL,
			period_type    TEXT NOT NULL,
			period         TEXT NOT NULL,
			statement_type TEXT NOT NULL,
			data_json      JSONB,
			fetched_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (ticker, period_type, period, statement_type)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure fundamentals_cache schema: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`CREATE INDEX IF NOT EXISTS idx_fundamentals_ticker ON fundamentals_cache (ticker)`)
	if err != nil {
		return fmt.Errorf("failed to ensure fundamentals_cache index: %w", err)
	}
	return nil
}

// Put implements Store with a composite-key upsert.
func (s *PostgresStore) Put(ctx context.Context, ticker string, g models.Granularity, periodLabel string, st models.StatementType, doc []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO fundamentals_cache (ticker, period_type, period, statement_type, data_json, fetched_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (ticker, period_type, period, statement_type)
		DO UPDATE SET data_json = EXCLUDED.data_json, fetched_at = NOW()
	`, ticker, string(g), periodLabel, string(st), doc)
	if err != nil {
		return fmt.Errorf("failed to upsert fundamentals cache row: %w", err)
	}
	return nil
}

// ListPeriods implements Store.
func (s *PostgresStore) ListPeriods(ctx context.Context, ticker string, g models.Granularity) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT period FROM fundamentals_cache
		WHERE ticker = $1 AND period_type = $2
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
func (s *PostgresStore) GetAll(ctx context.Context, ticker string, g models.Granularity) (map[models.StatementType]map[string]json.RawMessage, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT period, statement_type, data_json FROM fundamentals_cache
		WHERE ticker = $1 AND period_type = $2
	`, ticker, string(g))
	if err != nil {
		return nil, fmt.Errorf("failed to query fundamentals cache: %w", err)
	}
	defer rows.Close()

	out := make(map[models.StatementType]map[string]json.RawMessage)
	for rows.Next() {
		var p, st string
		var doc []byte
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
func (s *PostgresStore) Clear(ctx context.Context, ticker string) error {
	var err error
	if ticker != "" {
		_, err = s.pool.Exec(ctx, `DELETE FROM fundamentals_cache WHERE ticker = $1`, ticker)
	} else {
		_, err = s.pool.Exec(ctx, `DELETE FROM fundamentals_cache`)
	}
	if err != nil {
		return fmt.Errorf("failed to clear fundamentals cache: %w", err)
	}
	return nil
}

// Stats implements Store.
func (s *PostgresStore) Stats(ctx context.Context) (int64, int64, error) {
	var rows, tickers int64
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT ticker) FROM fundamentals_cache`).Scan(&rows, &tickers)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read cache stats: %w", err)
	}
	return rows, tickers, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}
