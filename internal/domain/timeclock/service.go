package timeclock

import (
	"context"

	"github.com/samarqand/backoffice-go/internal/domain/runlog"
)

// ImportService reconciles raw punch data against the roster and upserts
// the attendance ledger.
type ImportService interface {
	// Import processes an ordered batch of raw punch items. In dry-run mode
	// the full pipeline runs without writing; counters report what a
	// committed run would do.
	Import(ctx context.Context, actor runlog.Actor, req ImportRequest) (ImportResult, error)

	// ImportFolder reads up to LimitFiles punch files from the configured
	// import directory and feeds them through the same per-item pipeline,
	// preserving per-file provenance in the results.
	ImportFolder(ctx context.Context, actor runlog.Actor, req FolderImportRequest) (ImportResult, error)
}
