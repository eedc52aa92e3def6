package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/samarqand/backoffice-go/internal/domain/payroll"
	"github.com/samarqand/backoffice-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `p.id, p.worker_id, p.year, p.month, p.kind, p.amount, p.date, p.notes, p.created_at, p.updated_at`

func scanPayrollEntry(row pgx.Row) (payroll.PayrollEntry, error) {
	var e payroll.PayrollEntry
	err := row.Scan(
		&e.ID, &e.WorkerID, &e.Year, &e.Month, &e.Kind, &e.Amount,
		&e.Date, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM payroll_entries p WHERE p.id = $1`, payrollColumns)

	e, err := scanPayrollEntry(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollEntry{}, payroll.ErrEntryNotFound
		}
		return payroll.PayrollEntry{}, fmt.Errorf("failed to get payroll entry: %w", err)
	}

	return e, nil
}

func (r *payrollRepository) GetSalaryEntry(ctx context.Context, workerID string, year, month int) (*payroll.PayrollEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM payroll_entries p
		WHERE p.worker_id = $1 AND p.year = $2 AND p.month = $3 AND p.kind = 'salary'
	`, payrollColumns)

	e, err := scanPayrollEntry(q.QueryRow(ctx, query, workerID, year, month))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get salary entry: %w", err)
	}

	return &e, nil
}

// UpsertSalaryEntry relies on the partial unique index over
// (worker_id, year, month) WHERE kind = 'salary' so generation stays
// idempotent under concurrent runs.
func (r *payrollRepository) UpsertSalaryEntry(ctx context.Context, entry payroll.PayrollEntry) (payroll.PayrollEntry, bool, error) {
	q := GetQuerier(ctx, r.db)

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO payroll_entries (id, worker_id, year, month, kind, amount, date, notes)
		VALUES ($1, $2, $3, $4, 'salary', $5, $6, $7)
		ON CONFLICT (worker_id, year, month) WHERE kind = 'salary' DO UPDATE SET
			amount = EXCLUDED.amount,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING %s, (xmax = 0) AS inserted
	`, strings.ReplaceAll(payrollColumns, "p.", ""))

	var stored payroll.PayrollEntry
	var inserted bool
	err := q.QueryRow(ctx, query,
		entry.ID, entry.WorkerID, entry.Year, entry.Month, entry.Amount, entry.Date, entry.Notes,
	).Scan(
		&stored.ID, &stored.WorkerID, &stored.Year, &stored.Month, &stored.Kind,
		&stored.Amount, &stored.Date, &stored.Notes, &stored.CreatedAt, &stored.UpdatedAt,
		&inserted,
	)
	if err != nil {
		return payroll.PayrollEntry{}, false, fmt.Errorf("failed to upsert salary entry: %w", err)
	}

	return stored, inserted, nil
}

func (r *payrollRepository) Create(ctx context.Context, entry payroll.PayrollEntry) (payroll.PayrollEntry, error) {
	q := GetQuerier(ctx, r.db)

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO payroll_entries (id, worker_id, year, month, kind, amount, date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`, strings.ReplaceAll(payrollColumns, "p.", ""))

	created, err := scanPayrollEntry(q.QueryRow(ctx, query,
		entry.ID, entry.WorkerID, entry.Year, entry.Month, entry.Kind,
		entry.Amount, entry.Date, entry.Notes,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_salary_period") {
			return payroll.PayrollEntry{}, payroll.ErrDuplicateSalaryRow
		}
		return payroll.PayrollEntry{}, fmt.Errorf("failed to create payroll entry: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM payroll_entries WHERE id = $1 RETURNING id`

	var deletedID string
	err := q.QueryRow(ctx, query, id).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrEntryNotFound
		}
		return fmt.Errorf("failed to delete payroll entry: %w", err)
	}

	return nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.EntryFilter) ([]payroll.PayrollEntry, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM payroll_entries p
		JOIN workers w ON p.worker_id = w.id
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if filter.WorkerID != nil {
		baseQuery += fmt.Sprintf(" AND p.worker_id = $%d", argIdx)
		args = append(args, *filter.WorkerID)
		argIdx++
	}
	if filter.Year != nil {
		baseQuery += fmt.Sprintf(" AND p.year = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.Month != nil {
		baseQuery += fmt.Sprintf(" AND p.month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Kind != nil {
		baseQuery += fmt.Sprintf(" AND p.kind = $%d", argIdx)
		args = append(args, *filter.Kind)
		argIdx++
	}

	var totalCount int64
	countQuery := "SELECT COUNT(*) " + baseQuery
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll entries: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`
		SELECT %s, w.name
		%s
		ORDER BY p.year DESC, p.month DESC, w.name
		LIMIT $%d OFFSET $%d
	`, payrollColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll entries: %w", err)
	}
	defer rows.Close()

	var entries []payroll.PayrollEntry
	for rows.Next() {
		var e payroll.PayrollEntry
		if err := rows.Scan(
			&e.ID, &e.WorkerID, &e.Year, &e.Month, &e.Kind, &e.Amount,
			&e.Date, &e.Notes, &e.CreatedAt, &e.UpdatedAt, &e.WorkerName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, totalCount, nil
}
