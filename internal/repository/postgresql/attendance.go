package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/samarqand/backoffice-go/internal/domain/attendance"
	"github.com/samarqand/backoffice-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `a.id, a.worker_id, a.project_id, a.date, a.status, a.hours, a.notes,
	a.approval_state, a.locked, a.created_at, a.updated_at`

func scanAttendance(row pgx.Row) (attendance.AttendanceRecord, error) {
	var rec attendance.AttendanceRecord
	err := row.Scan(
		&rec.ID, &rec.WorkerID, &rec.ProjectID, &rec.Date, &rec.Status, &rec.Hours,
		&rec.Notes, &rec.ApprovalState, &rec.Locked, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, w.name
		FROM attendance_records a
		JOIN workers w ON a.worker_id = w.id
		WHERE a.id = $1
	`, attendanceColumns)

	var rec attendance.AttendanceRecord
	err := q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.WorkerID, &rec.ProjectID, &rec.Date, &rec.Status, &rec.Hours,
		&rec.Notes, &rec.ApprovalState, &rec.Locked, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.WorkerName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.AttendanceRecord{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

func (r *attendanceRepository) GetByWorkerAndDate(ctx context.Context, workerID string, date time.Time) (*attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance_records a
		WHERE a.worker_id = $1 AND a.date = $2
	`, attendanceColumns)

	rec, err := scanAttendance(q.QueryRow(ctx, query, workerID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by worker and date: %w", err)
	}

	return &rec, nil
}

func (r *attendanceRepository) Create(ctx context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.ApprovalState == "" {
		rec.ApprovalState = attendance.ApprovalUnapproved
	}

	query := fmt.Sprintf(`
		INSERT INTO attendance_records (id, worker_id, project_id, date, status, hours, notes, approval_state, locked)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s
	`, strings.ReplaceAll(attendanceColumns, "a.", ""))

	created, err := scanAttendance(q.QueryRow(ctx, query,
		rec.ID, rec.WorkerID, rec.ProjectID, rec.Date, rec.Status, rec.Hours,
		rec.Notes, rec.ApprovalState, rec.Locked,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_attendance_worker_date") {
			return attendance.AttendanceRecord{}, attendance.ErrDuplicateAttendance
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return created, nil
}

// Update replaces the mutable fields. The locked guard lives in the
// statement itself so a lock committed after the caller's read still wins.
func (r *attendanceRepository) Update(ctx context.Context, rec attendance.AttendanceRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET project_id = $2, status = $3, hours = $4, notes = $5,
			approval_state = $6, updated_at = NOW()
		WHERE id = $1 AND locked = false
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		rec.ID, rec.ProjectID, rec.Status, rec.Hours, rec.Notes,
		rec.ApprovalState,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return r.lockedOrMissing(ctx, q, rec.ID)
		}
		return fmt.Errorf("failed to update attendance record: %w", err)
	}

	return nil
}

// lockedOrMissing resolves a zero-row guarded write: the record either does
// not exist or is locked.
func (r *attendanceRepository) lockedOrMissing(ctx context.Context, q database.Querier, id string) error {
	var locked bool
	err := q.QueryRow(ctx, `SELECT locked FROM attendance_records WHERE id = $1`, id).Scan(&locked)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to check attendance record: %w", err)
	}
	if locked {
		return attendance.ErrAttendanceLocked
	}
	return attendance.ErrAttendanceNotFound
}

// Upsert merges by the (worker_id, date) composite key. The WHERE guard on
// the conflict branch refuses locked rows, so concurrent writers either
// merge or fail deterministically.
func (r *attendanceRepository) Upsert(ctx context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, bool, error) {
	q := GetQuerier(ctx, r.db)

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO attendance_records (id, worker_id, project_id, date, status, hours, notes, approval_state, locked)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'unapproved', false)
		ON CONFLICT (worker_id, date) DO UPDATE SET
			project_id = EXCLUDED.project_id,
			status = EXCLUDED.status,
			hours = EXCLUDED.hours,
			notes = EXCLUDED.notes,
			approval_state = 'unapproved',
			updated_at = NOW()
		WHERE attendance_records.locked = false
		RETURNING %s, (xmax = 0) AS inserted
	`, strings.ReplaceAll(attendanceColumns, "a.", ""))

	var stored attendance.AttendanceRecord
	var inserted bool
	err := q.QueryRow(ctx, query,
		rec.ID, rec.WorkerID, rec.ProjectID, rec.Date, rec.Status, rec.Hours, rec.Notes,
	).Scan(
		&stored.ID, &stored.WorkerID, &stored.ProjectID, &stored.Date, &stored.Status,
		&stored.Hours, &stored.Notes, &stored.ApprovalState, &stored.Locked,
		&stored.CreatedAt, &stored.UpdatedAt, &inserted,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			// Conflict branch hit a locked row.
			return attendance.AttendanceRecord{}, false, attendance.ErrAttendanceLocked
		}
		return attendance.AttendanceRecord{}, false, fmt.Errorf("failed to upsert attendance record: %w", err)
	}

	return stored, inserted, nil
}

func (r *attendanceRepository) SetApprovalState(ctx context.Context, id string, state attendance.ApprovalState, locked bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET approval_state = $2, locked = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, state, locked).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to set approval state: %w", err)
	}

	return nil
}

func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM attendance_records WHERE id = $1 AND locked = false RETURNING id`

	var deletedID string
	err := q.QueryRow(ctx, query, id).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return r.lockedOrMissing(ctx, q, id)
		}
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}

	return nil
}

func (r *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM attendance_records a
		JOIN workers w ON a.worker_id = w.id
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if filter.WorkerID != nil {
		baseQuery += fmt.Sprintf(" AND a.worker_id = $%d", argIdx)
		args = append(args, *filter.WorkerID)
		argIdx++
	}
	if filter.DateFrom != nil {
		baseQuery += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil {
		baseQuery += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.DateTo)
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Locked != nil {
		baseQuery += fmt.Sprintf(" AND a.locked = $%d", argIdx)
		args = append(args, *filter.Locked)
		argIdx++
	}

	var totalCount int64
	countQuery := "SELECT COUNT(*) " + baseQuery
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
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
		ORDER BY a.date DESC, w.name
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		var rec attendance.AttendanceRecord
		if err := rows.Scan(
			&rec.ID, &rec.WorkerID, &rec.ProjectID, &rec.Date, &rec.Status, &rec.Hours,
			&rec.Notes, &rec.ApprovalState, &rec.Locked, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.WorkerName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, totalCount, nil
}

func (r *attendanceRepository) ListByWorkerAndPeriod(ctx context.Context, workerID string, year, month int) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance_records a
		WHERE a.worker_id = $1
			AND EXTRACT(YEAR FROM a.date) = $2
			AND EXTRACT(MONTH FROM a.date) = $3
		ORDER BY a.date
	`, attendanceColumns)

	rows, err := q.Query(ctx, query, workerID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by period: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}
