package payroll

import (
	"github.com/samarqand/backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// PAYROLL DTOs
// ========================================

// Accepted calendar window for generation scope.
const (
	MinYear = 2000
	MaxYear = 2100
)

type GenerateRequest struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	WorkerID *string `json:"worker_id,omitempty"`
	DryRun   bool    `json:"dry_run"`
}

func (r *GenerateRequest) Validate() error {
	if r.Year < MinYear || r.Year > MaxYear {
		return ErrInvalidYear
	}
	if r.Month < 1 || r.Month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// Per-worker reason codes reported by generation.
const (
	CodeMissingRate = "missing_rate"
	CodeNotFound    = "not_found"
)

type WorkerError struct {
	WorkerID string `json:"worker_id"`
	Code     string `json:"code"`
}

type GenerateOutcome string

const (
	OutcomeCreated GenerateOutcome = "created"
	OutcomeUpdated GenerateOutcome = "updated"
	OutcomeSkipped GenerateOutcome = "skipped"
)

// WorkerResult is the per-worker generation outcome, including the derived
// salary amount and which rate mode priced it.
type WorkerResult struct {
	WorkerID   string           `json:"worker_id"`
	WorkerName string           `json:"worker_name"`
	Outcome    GenerateOutcome  `json:"outcome"`
	Reason     *string          `json:"reason,omitempty"`
	RateMode   *string          `json:"rate_mode,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	EntryID    *string          `json:"entry_id,omitempty"`
}

const (
	RateModeMonthly = "monthly_salary"
	RateModeDaily   = "daily_cost"
)

type GenerateResult struct {
	RunID        string         `json:"run_id,omitempty"`
	DryRun       bool           `json:"dry_run"`
	Year         int            `json:"year"`
	Month        int            `json:"month"`
	CreatedCount int            `json:"created_count"`
	UpdatedCount int            `json:"updated_count"`
	SkippedCount int            `json:"skipped_count"`
	Errors       []WorkerError  `json:"errors"`
	Results      []WorkerResult `json:"results"`
}

// ========================================
// MANUAL ENTRY DTOs
// ========================================

type CreateEntryRequest struct {
	WorkerID string          `json:"worker_id"`
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Kind     string          `json:"kind"`
	Amount   decimal.Decimal `json:"amount"`
	Date     *string         `json:"date,omitempty"`
	Notes    *string         `json:"notes,omitempty"`
}

func (r *CreateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	}

	if r.Year < MinYear || r.Year > MaxYear {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is outside the accepted range",
		})
	}

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if !Kind(r.Kind).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be salary, advance, bonus or deduction",
		})
	}

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be formatted as YYYY-MM-DD",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EntryFilter struct {
	WorkerID *string `json:"worker_id,omitempty"`
	Year     *int    `json:"year,omitempty"`
	Month    *int    `json:"month,omitempty"`
	Kind     *string `json:"kind,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type EntryResponse struct {
	ID         string          `json:"id"`
	WorkerID   string          `json:"worker_id"`
	WorkerName *string         `json:"worker_name,omitempty"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Kind       string          `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	Date       *string         `json:"date,omitempty"`
	Notes      *string         `json:"notes,omitempty"`
	CreatedAt  string          `json:"created_at"`
	UpdatedAt  string          `json:"updated_at"`
}

type ListEntriesResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Entries    []EntryResponse `json:"entries"`
}
