// Package store persists completed audit reports to PostgreSQL for
// compliance retention. It is an optional collaborator: nothing in the
// core anonymize package depends on it, and a host that does not import
// this package never links pgx.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cybergodev/anonymize"
)

// schemaSQL creates the audit_reports table if it does not already exist.
// Kept inline (rather than a loaded .sql file) since it is the store's only
// migration and a host embedding this package should not need to ship a
// separate schema file alongside its binary.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS audit_reports (
	id                 BIGSERIAL PRIMARY KEY,
	input_hash         TEXT NOT NULL,
	config_hash        TEXT NOT NULL,
	total_matches      INTEGER NOT NULL,
	conflicts_resolved INTEGER NOT NULL,
	processing_time_ms BIGINT NOT NULL,
	report             JSONB NOT NULL,
	recorded_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (input_hash, config_hash)
);
`

// AuditStore persists AuditReports produced by anonymize.Anonymize.
type AuditStore struct {
	pool *pgxpool.Pool
}

// Connect opens a pgx connection pool against connStr and verifies it with
// a ping. Callers should defer Close.
func Connect(ctx context.Context, connStr string) (*AuditStore, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("anonymize/store: unable to connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("anonymize/store: ping failed: %w", err)
	}
	return &AuditStore{pool: pool}, nil
}

// Close releases the underlying connection pool.
func (s *AuditStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// InitSchema creates the audit_reports table if it does not exist.
func (s *AuditStore) InitSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("anonymize/store: schema init: %w", err)
	}
	return nil
}

// Save records report, upserting on the (input_hash, config_hash) pair so a
// host that re-anonymizes identical input under an unchanged configuration
// does not accumulate duplicate rows.
func (s *AuditStore) Save(ctx context.Context, report *anonymize.AuditReport) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("anonymize/store: marshal report: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("anonymize/store: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const upsertSQL = `
		INSERT INTO audit_reports
			(input_hash, config_hash, total_matches, conflicts_resolved, processing_time_ms, report)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (input_hash, config_hash) DO UPDATE
		SET total_matches = EXCLUDED.total_matches,
		    conflicts_resolved = EXCLUDED.conflicts_resolved,
		    processing_time_ms = EXCLUDED.processing_time_ms,
		    report = EXCLUDED.report,
		    recorded_at = now();
	`
	_, err = tx.Exec(ctx, upsertSQL,
		report.InputHash, report.ConfigHash,
		report.Statistics.TotalMatches, report.Statistics.ConflictsResolved,
		report.Statistics.ProcessingTimeMs, body,
	)
	if err != nil {
		return fmt.Errorf("anonymize/store: upsert: %w", err)
	}

	return tx.Commit(ctx)
}

// Record is a row read back from the audit_reports table.
type Record struct {
	ID         int64                  `json:"id"`
	InputHash  string                 `json:"input_hash"`
	ConfigHash string                 `json:"config_hash"`
	Report     *anonymize.AuditReport `json:"report"`
}

// List returns up to limit reports ordered newest-first, starting at the
// given one-based page (a page below 1 is treated as 1; a limit outside
// 1..500 becomes 50), plus the total row count.
func (s *AuditStore) List(ctx context.Context, page, limit int) ([]Record, int, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM audit_reports`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("anonymize/store: count: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, input_hash, config_hash, report
		FROM audit_reports
		ORDER BY recorded_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("anonymize/store: list: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0, limit)
	for rows.Next() {
		var rec Record
		var body []byte
		if err := rows.Scan(&rec.ID, &rec.InputHash, &rec.ConfigHash, &body); err != nil {
			return nil, 0, fmt.Errorf("anonymize/store: scan: %w", err)
		}
		var report anonymize.AuditReport
		if err := json.Unmarshal(body, &report); err != nil {
			return nil, 0, fmt.Errorf("anonymize/store: unmarshal report: %w", err)
		}
		rec.Report = &report
		records = append(records, rec)
	}
	return records, total, rows.Err()
}

// Pool exposes the underlying connection pool for callers that need direct
// access (migrations tooling, health checks).
func (s *AuditStore) Pool() *pgxpool.Pool {
	return s.pool
}
