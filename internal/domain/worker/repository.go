package worker

import "context"

// WorkerRepository defines data access for the roster. The attendance and
// payroll engines only read; Create/Update exist for HR administration and
// are where duplicate_time_clock_id conflicts surface.
type WorkerRepository interface {
	GetByID(ctx context.Context, id string) (Worker, error)

	// GetByTimeClockID resolves the third-party punch identifier. The
	// non-empty time_clock_id is unique across the roster.
	GetByTimeClockID(ctx context.Context, timeClockID string) (Worker, error)

	// ListActive returns active workers ordered by name.
	ListActive(ctx context.Context) ([]Worker, error)

	List(ctx context.Context, filter WorkerFilter) ([]Worker, int64, error)

	Create(ctx context.Context, w Worker) (Worker, error)
	Update(ctx context.Context, id string, req UpdateWorkerRequest) error
}
