package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"arete/internal/reconcile"
)

// IngestReport inserts a reconciled report into the database. Repeating
// the ingest for the same run is a no-op.
func IngestReport(ctx context.Context, db *sql.DB, report reconcile.Report) error {
	if ctx == nil {
		return errors.New("duckdb: context is nil")
	}
	if db == nil {
		return errors.New("duckdb: db is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ingest: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO runs (run_id, generated_at, best_condition, trial_count)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (run_id) DO NOTHING`,
		report.RunID,
		report.GeneratedAt,
		report.Best,
		len(report.Records),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, record := range report.Records {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO trials (run_id, blind_id, condition, problem_id, trial, outcome,
			                     edge_cases, error_handling, idiomaticity, documentation, ship_it, total, note)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (run_id, blind_id) DO NOTHING`,
			report.RunID,
			record.BlindID,
			record.Condition,
			record.ProblemID,
			record.Trial,
			string(record.Outcome),
			record.Rating.EdgeCases,
			record.Rating.ErrorHandling,
			record.Rating.Idiomaticity,
			record.Rating.Documentation,
			record.Rating.ShipIt,
			record.Total,
			record.Rating.Note,
		); err != nil {
			return fmt.Errorf("insert trial %s: %w", record.BlindID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ingest: %w", err)
	}
	return nil
}

// CountTrials returns the number of stored trials for a run.
func CountTrials(ctx context.Context, db *sql.DB, runID string) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT count(*) FROM trials WHERE run_id = ?`, runID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count trials: %w", err)
	}
	return count, nil
}
