package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunRecord is the persisted metadata of one pipeline run.
type RunRecord struct {
	RunID     string
	Pipeline  string
	StartedAt time.Time
	Duration  time.Duration
	TotalRows int
	Succeeded bool
	Error     string
}

// RunStore persists run metadata for auditing.
type RunStore interface {
	Record(ctx context.Context, record RunRecord) error
}

// NopRunStore discards run metadata. Used when no backing store is
// configured; the structured log remains the only run record.
type NopRunStore struct{}

func (NopRunStore) Record(context.Context, RunRecord) error { return nil }

// PostgresRunStore appends run metadata to a Postgres table:
//
//	CREATE TABLE pipeline_runs (
//	    run_id      text PRIMARY KEY,
//	    pipeline    text NOT NULL,
//	    started_at  timestamptz NOT NULL,
//	    duration_ms bigint NOT NULL,
//	    total_rows  integer NOT NULL,
//	    succeeded   boolean NOT NULL,
//	    error       text
//	);
type PostgresRunStore struct {
	DSN string
}

func (s *PostgresRunStore) Record(ctx context.Context, record RunRecord) error {
	pool, err := pgxpool.New(ctx, s.DSN)
	if err != nil {
		return fmt.Errorf("connect run store: %w", err)
	}
	defer pool.Close()

	_, err = pool.Exec(ctx,
		`INSERT INTO pipeline_runs (run_id, pipeline, started_at, duration_ms, total_rows, succeeded, error)
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))`,
		record.RunID, record.Pipeline, record.StartedAt, record.Duration.Milliseconds(),
		record.TotalRows, record.Succeeded, record.Error)
	if err != nil {
		return fmt.Errorf("insert run record: %w", err)
	}
	return nil
}
