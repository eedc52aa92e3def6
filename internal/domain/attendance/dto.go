package attendance

import (
	"github.com/samarqand/backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CreateAttendanceRequest struct {
	WorkerID  string           `json:"worker_id"`
	ProjectID *string          `json:"project_id,omitempty"`
	Date      string           `json:"date"`
	Status    string           `json:"status"`
	Hours     *decimal.Decimal `json:"hours,omitempty"`
	Notes     *string          `json:"notes,omitempty"`
}

func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be formatted as YYYY-MM-DD",
		})
	}

	if !Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be present, absent, half_day or leave",
		})
	}

	if r.Hours != nil && r.Hours.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "hours must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateAttendanceRequest struct {
	ID        string           `json:"-"`
	ProjectID *string          `json:"project_id,omitempty"`
	Status    *string          `json:"status,omitempty"`
	Hours     *decimal.Decimal `json:"hours,omitempty"`
	Notes     *string          `json:"notes,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Status != nil && !Status(*r.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be present, absent, half_day or leave",
		})
	}

	if r.Hours != nil && r.Hours.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "hours must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID            string           `json:"id"`
	WorkerID      string           `json:"worker_id"`
	WorkerName    *string          `json:"worker_name,omitempty"`
	ProjectID     *string          `json:"project_id,omitempty"`
	Date          string           `json:"date"`
	Status        string           `json:"status"`
	Hours         *decimal.Decimal `json:"hours,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	ApprovalState string           `json:"approval_state"`
	Locked        bool             `json:"locked"`
	CreatedAt     string           `json:"created_at"`
	UpdatedAt     string           `json:"updated_at"`
}

type AttendanceFilter struct {
	WorkerID *string `json:"worker_id,omitempty"`
	DateFrom *string `json:"date_from,omitempty"`
	DateTo   *string `json:"date_to,omitempty"`
	Status   *string `json:"status,omitempty"`
	Locked   *bool   `json:"locked,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}
