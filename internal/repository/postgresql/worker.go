package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/samarqand/backoffice-go/internal/domain/worker"
	"github.com/samarqand/backoffice-go/internal/pkg/database"
)

type workerRepository struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepository{db: db}
}

const workerColumns = `id, kind, active, name, time_clock_id, daily_cost, monthly_salary, created_at, updated_at`

func scanWorker(row pgx.Row) (worker.Worker, error) {
	var w worker.Worker
	err := row.Scan(
		&w.ID, &w.Kind, &w.Active, &w.Name, &w.TimeClockID,
		&w.DailyCost, &w.MonthlySalary, &w.CreatedAt, &w.UpdatedAt,
	)
	return w, err
}

func (r *workerRepository) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM workers WHERE id = $1`, workerColumns)

	w, err := scanWorker(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker: %w", err)
	}

	return w, nil
}

func (r *workerRepository) GetByTimeClockID(ctx context.Context, timeClockID string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM workers WHERE time_clock_id = $1`, workerColumns)

	w, err := scanWorker(q.QueryRow(ctx, query, timeClockID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker by time clock id: %w", err)
	}

	return w, nil
}

func (r *workerRepository) ListActive(ctx context.Context) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM workers WHERE active = true ORDER BY name, id`, workerColumns)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active workers: %w", err)
	}
	defer rows.Close()

	var workers []worker.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}

	return workers, nil
}

func (r *workerRepository) List(ctx context.Context, filter worker.WorkerFilter) ([]worker.Worker, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := ` FROM workers WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Kind != nil {
		baseQuery += fmt.Sprintf(" AND kind = $%d", argIdx)
		args = append(args, *filter.Kind)
		argIdx++
	}
	if filter.Active != nil {
		baseQuery += fmt.Sprintf(" AND active = $%d", argIdx)
		args = append(args, *filter.Active)
		argIdx++
	}
	if filter.Search != nil {
		baseQuery += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	var totalCount int64
	countQuery := "SELECT COUNT(*)" + baseQuery
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count workers: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`SELECT %s%s ORDER BY name, id LIMIT $%d OFFSET $%d`,
		workerColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	var workers []worker.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}

	return workers, totalCount, nil
}

func (r *workerRepository) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	if w.ID == "" {
		w.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO workers (id, kind, active, name, time_clock_id, daily_cost, monthly_salary)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s
	`, workerColumns)

	created, err := scanWorker(q.QueryRow(ctx, query,
		w.ID, w.Kind, w.Active, w.Name, w.TimeClockID, w.DailyCost, w.MonthlySalary,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_workers_time_clock_id") {
			return worker.Worker{}, worker.ErrDuplicateTimeClockID
		}
		return worker.Worker{}, fmt.Errorf("failed to create worker: %w", err)
	}

	return created, nil
}

func (r *workerRepository) Update(ctx context.Context, id string, req worker.UpdateWorkerRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{id}
	argIdx := 2

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Active != nil {
		setParts = append(setParts, fmt.Sprintf("active = $%d", argIdx))
		args = append(args, *req.Active)
		argIdx++
	}
	if req.TimeClockID != nil {
		// An empty string clears the assignment.
		setParts = append(setParts, fmt.Sprintf("time_clock_id = NULLIF($%d, '')", argIdx))
		args = append(args, *req.TimeClockID)
		argIdx++
	}
	if req.DailyCost != nil {
		setParts = append(setParts, fmt.Sprintf("daily_cost = $%d", argIdx))
		args = append(args, *req.DailyCost)
		argIdx++
	}
	if req.MonthlySalary != nil {
		setParts = append(setParts, fmt.Sprintf("monthly_salary = $%d", argIdx))
		args = append(args, *req.MonthlySalary)
		argIdx++
	}

	query := fmt.Sprintf(`
		UPDATE workers
		SET %s
		WHERE id = $1
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return worker.ErrWorkerNotFound
		}
		if strings.Contains(err.Error(), "uk_workers_time_clock_id") {
			return worker.ErrDuplicateTimeClockID
		}
		return fmt.Errorf("failed to update worker: %w", err)
	}

	return nil
}
