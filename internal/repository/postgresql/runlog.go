package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/samarqand/backoffice-go/internal/domain/runlog"
	"github.com/samarqand/backoffice-go/internal/pkg/database"
)

type runLogRepository struct {
	db *database.DB
}

func NewRunLogRepository(db *database.DB) runlog.RunLogRepository {
	return &runLogRepository{db: db}
}

func (r *runLogRepository) RecordImportRun(ctx context.Context, run runlog.ImportRun) (runlog.ImportRun, error) {
	q := GetQuerier(ctx, r.db)

	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	query := `
		INSERT INTO import_runs (id, actor_id, source, dry_run, default_project_id,
			items_count, created_count, updated_count, error_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		run.ID, run.ActorID, run.Source, run.DryRun, run.DefaultProjectID,
		run.ItemsCount, run.CreatedCount, run.UpdatedCount, run.ErrorCount,
	).Scan(&run.ID, &run.CreatedAt)
	if err != nil {
		return runlog.ImportRun{}, fmt.Errorf("failed to record import run: %w", err)
	}

	return run, nil
}

func (r *runLogRepository) RecordGenerationRun(ctx context.Context, run runlog.GenerationRun) (runlog.GenerationRun, error) {
	q := GetQuerier(ctx, r.db)

	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	query := `
		INSERT INTO generation_runs (id, actor_id, dry_run, year, month, worker_id,
			items_count, created_count, updated_count, skipped_count, error_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		run.ID, run.ActorID, run.DryRun, run.Year, run.Month, run.WorkerID,
		run.ItemsCount, run.CreatedCount, run.UpdatedCount, run.SkippedCount, run.ErrorCount,
	).Scan(&run.ID, &run.CreatedAt)
	if err != nil {
		return runlog.GenerationRun{}, fmt.Errorf("failed to record generation run: %w", err)
	}

	return run, nil
}

func (r *runLogRepository) ListImportRuns(ctx context.Context, limit int) ([]runlog.ImportRun, error) {
	q := GetQuerier(ctx, r.db)

	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, created_at, actor_id, source, dry_run, default_project_id,
			items_count, created_count, updated_count, error_count
		FROM import_runs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list import runs: %w", err)
	}
	defer rows.Close()

	var runs []runlog.ImportRun
	for rows.Next() {
		var run runlog.ImportRun
		if err := rows.Scan(
			&run.ID, &run.CreatedAt, &run.ActorID, &run.Source, &run.DryRun,
			&run.DefaultProjectID, &run.ItemsCount, &run.CreatedCount,
			&run.UpdatedCount, &run.ErrorCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan import run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, nil
}

func (r *runLogRepository) ListGenerationRuns(ctx context.Context, limit int) ([]runlog.GenerationRun, error) {
	q := GetQuerier(ctx, r.db)

	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, created_at, actor_id, dry_run, year, month, worker_id,
			items_count, created_count, updated_count, skipped_count, error_count
		FROM generation_runs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list generation runs: %w", err)
	}
	defer rows.Close()

	var runs []runlog.GenerationRun
	for rows.Next() {
		var run runlog.GenerationRun
		if err := rows.Scan(
			&run.ID, &run.CreatedAt, &run.ActorID, &run.DryRun, &run.Year, &run.Month,
			&run.WorkerID, &run.ItemsCount, &run.CreatedCount, &run.UpdatedCount,
			&run.SkippedCount, &run.ErrorCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan generation run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, nil
}
