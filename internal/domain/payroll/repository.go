package payroll

import "context"

// PayrollRepository defines data access for payroll entries.
type PayrollRepository interface {
	GetByID(ctx context.Context, id string) (PayrollEntry, error)

	// GetSalaryEntry retrieves the single generator-owned salary entry for
	// (worker, year, month). Returns nil when none exists.
	GetSalaryEntry(ctx context.Context, workerID string, year, month int) (*PayrollEntry, error)

	// UpsertSalaryEntry creates or updates the salary entry for its period
	// in one statement. Returns the stored entry and whether it was newly
	// created.
	UpsertSalaryEntry(ctx context.Context, entry PayrollEntry) (PayrollEntry, bool, error)

	// Create inserts a manual (non-salary) entry.
	Create(ctx context.Context, entry PayrollEntry) (PayrollEntry, error)

	Delete(ctx context.Context, id string) error

	List(ctx context.Context, filter EntryFilter) ([]PayrollEntry, int64, error)
}
