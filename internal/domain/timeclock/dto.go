package timeclock

import (
	"github.com/shopspring/decimal"
)

// ========================================
// TIMECLOCK IMPORT DTOs
// ========================================

// RawPunchItem is one punch record as pasted by an operator or read from a
// drop-folder file. Several fields are optional and mutually exclusive;
// normalization collapses them into one internal shape before any ledger
// work happens.
type RawPunchItem struct {
	WorkerID    *string `json:"worker_id,omitempty"`
	TimeClockID *string `json:"time_clock_id,omitempty"`
	Date        *string `json:"date,omitempty"`
	ProjectID   *string `json:"project_id,omitempty"`

	// Duration signals, strongest first: explicit hours, a check-in/out
	// pair (time-of-day or full timestamps), or an explicit status.
	Hours      *decimal.Decimal `json:"hours,omitempty"`
	CheckIn    *string          `json:"check_in,omitempty"`
	CheckOut   *string          `json:"check_out,omitempty"`
	CheckInAt  *string          `json:"check_in_at,omitempty"`
	CheckOutAt *string          `json:"check_out_at,omitempty"`
	Status     *string          `json:"status,omitempty"`

	Notes *string `json:"notes,omitempty"`
}

type ImportRequest struct {
	Items            []RawPunchItem `json:"items"`
	DryRun           bool           `json:"dry_run"`
	DefaultProjectID *string        `json:"default_project_id,omitempty"`
}

func (r *ImportRequest) Validate() error {
	if len(r.Items) == 0 {
		return ErrMissingItems
	}
	return nil
}

type FolderImportRequest struct {
	DryRun           bool    `json:"dry_run"`
	DefaultProjectID *string `json:"default_project_id,omitempty"`
	LimitFiles       int     `json:"limit_files,omitempty"`
}

// Per-item reason codes. These are result data, not Go errors: one code per
// failed input item, alongside the successes from the same call.
const (
	CodeNotFound          = "not_found"
	CodeMissingWorkerRef  = "missing_worker_ref"
	CodeAmbiguousWorker   = "ambiguous_worker_ref"
	CodeMissingDate       = "missing_date"
	CodeInvalidDate       = "invalid_date"
	CodeMissingDuration   = "missing_duration"
	CodeInvalidHours      = "invalid_hours"
	CodeInvalidCheckPair  = "invalid_check_pair"
	CodeInvalidStatus     = "invalid_status"
	CodeProjectNotFound   = "project_not_found"
	CodeAttendanceLocked  = "attendance_locked"
	CodeInvalidFile       = "invalid_file"
)

// ItemError pinpoints one failed input item by index with a reason code.
type ItemError struct {
	Index      int     `json:"index"`
	Code       string  `json:"code"`
	Field      *string `json:"field,omitempty"`
	SourceFile *string `json:"source_file,omitempty"`
}

type ItemOutcome string

const (
	OutcomeCreated ItemOutcome = "created"
	OutcomeUpdated ItemOutcome = "updated"
)

// ItemResult describes one successfully reconciled item.
type ItemResult struct {
	Index        int              `json:"index"`
	WorkerID     string           `json:"worker_id"`
	WorkerName   string           `json:"worker_name"`
	Date         string           `json:"date"`
	Status       string           `json:"status"`
	Hours        *decimal.Decimal `json:"hours,omitempty"`
	ProjectID    *string          `json:"project_id,omitempty"`
	Outcome      ItemOutcome      `json:"outcome"`
	AttendanceID *string          `json:"attendance_id,omitempty"`
	SourceFile   *string          `json:"source_file,omitempty"`
}

// ImportResult is the reconciliation outcome for one invocation. Every
// input item maps to exactly one entry across Results and Errors.
type ImportResult struct {
	RunID        string       `json:"run_id,omitempty"`
	DryRun       bool         `json:"dry_run"`
	ItemsCount   int          `json:"items_count"`
	CreatedCount int          `json:"created_count"`
	UpdatedCount int          `json:"updated_count"`
	Errors       []ItemError  `json:"errors"`
	Results      []ItemResult `json:"results"`
}
