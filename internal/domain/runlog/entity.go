package runlog

import "time"

// Actor identifies the operator a reconciliation or generation run is
// attributed to. It is always passed explicitly into the engines so audit
// rows stay deterministic and testable without session plumbing.
type Actor struct {
	ID   string
	Role string
}

const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

type ImportSource string

const (
	SourceManual ImportSource = "manual"
	SourceFolder ImportSource = "folder"
)

// ImportRun is one append-only audit row per timeclock import invocation,
// dry-run included.
type ImportRun struct {
	ID               string
	CreatedAt        time.Time
	ActorID          string
	Source           ImportSource
	DryRun           bool
	DefaultProjectID *string
	ItemsCount       int
	CreatedCount     int
	UpdatedCount     int
	ErrorCount       int
}

// GenerationRun is one append-only audit row per payroll generation
// invocation, dry-run included.
type GenerationRun struct {
	ID           string
	CreatedAt    time.Time
	ActorID      string
	DryRun       bool
	Year         int
	Month        int
	WorkerID     *string
	ItemsCount   int
	CreatedCount int
	UpdatedCount int
	SkippedCount int
	ErrorCount   int
}
