package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for the attendance ledger.
type AttendanceRepository interface {
	// GetByID retrieves a record by primary key
	GetByID(ctx context.Context, id string) (AttendanceRecord, error)

	// GetByWorkerAndDate retrieves the record for the composite key the
	// reconciler upserts by. Returns nil when no record exists.
	GetByWorkerAndDate(ctx context.Context, workerID string, date time.Time) (*AttendanceRecord, error)

	// Create inserts a new record. The unique index on (worker_id, date)
	// surfaces as ErrDuplicateAttendance.
	Create(ctx context.Context, rec AttendanceRecord) (AttendanceRecord, error)

	// Update replaces the mutable fields of an existing record.
	Update(ctx context.Context, rec AttendanceRecord) error

	// Upsert creates or replaces by (worker_id, date) in one statement so
	// concurrent writers merge deterministically. Returns the stored record
	// and whether it was newly created.
	Upsert(ctx context.Context, rec AttendanceRecord) (AttendanceRecord, bool, error)

	// SetApprovalState transitions approval_state/locked flags.
	SetApprovalState(ctx context.Context, id string, state ApprovalState, locked bool) error

	Delete(ctx context.Context, id string) error

	// List retrieves records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]AttendanceRecord, int64, error)

	// ListByWorkerAndPeriod returns a worker's records inside one calendar
	// month, used by payroll generation.
	ListByWorkerAndPeriod(ctx context.Context, workerID string, year, month int) ([]AttendanceRecord, error)
}
