package runlog

import "context"

// RunLogRepository records engine invocations. Append-only: rows observe
// the engines without participating in their logic.
type RunLogRepository interface {
	RecordImportRun(ctx context.Context, run ImportRun) (ImportRun, error)
	RecordGenerationRun(ctx context.Context, run GenerationRun) (GenerationRun, error)

	// ListImportRuns returns recent runs, newest first.
	ListImportRuns(ctx context.Context, limit int) ([]ImportRun, error)
	ListGenerationRuns(ctx context.Context, limit int) ([]GenerationRun, error)
}
