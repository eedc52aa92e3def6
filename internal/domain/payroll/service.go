package payroll

import (
	"context"

	"github.com/samarqand/backoffice-go/internal/domain/runlog"
)

// PayrollService derives salary entries from the attendance ledger and
// manages the manual payroll book around them.
type PayrollService interface {
	// Generate upserts one salary-kind entry per in-scope worker for the
	// period. Idempotent: re-running over unchanged attendance yields the
	// same amounts and no duplicates.
	Generate(ctx context.Context, actor runlog.Actor, req GenerateRequest) (GenerateResult, error)

	// CreateEntry records a manual advance/bonus/deduction entry.
	CreateEntry(ctx context.Context, actor runlog.Actor, req CreateEntryRequest) (EntryResponse, error)

	DeleteEntry(ctx context.Context, actor runlog.Actor, id string) error

	ListEntries(ctx context.Context, filter EntryFilter) (ListEntriesResponse, error)
}
