package worker

import (
	"github.com/samarqand/backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateWorkerRequest struct {
	Kind          string           `json:"kind"`
	Name          string           `json:"name"`
	Active        *bool            `json:"active,omitempty"`
	TimeClockID   *string          `json:"time_clock_id,omitempty"`
	DailyCost     *decimal.Decimal `json:"daily_cost,omitempty"`
	MonthlySalary *decimal.Decimal `json:"monthly_salary,omitempty"`
}

func (r *CreateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !Kind(r.Kind).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be worker or employee",
		})
	}

	if r.DailyCost != nil && r.DailyCost.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "daily_cost",
			Message: "daily_cost must not be negative",
		})
	}

	if r.MonthlySalary != nil && r.MonthlySalary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "monthly_salary",
			Message: "monthly_salary must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateWorkerRequest struct {
	Name          *string          `json:"name,omitempty"`
	Active        *bool            `json:"active,omitempty"`
	TimeClockID   *string          `json:"time_clock_id,omitempty"`
	DailyCost     *decimal.Decimal `json:"daily_cost,omitempty"`
	MonthlySalary *decimal.Decimal `json:"monthly_salary,omitempty"`
}

func (r *UpdateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.DailyCost != nil && r.DailyCost.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "daily_cost",
			Message: "daily_cost must not be negative",
		})
	}

	if r.MonthlySalary != nil && r.MonthlySalary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "monthly_salary",
			Message: "monthly_salary must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WorkerFilter struct {
	Kind   *string `json:"kind,omitempty"`
	Active *bool   `json:"active,omitempty"`
	Search *string `json:"search,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type ListWorkersResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Workers    []WorkerResponse `json:"workers"`
}

type WorkerResponse struct {
	ID            string           `json:"id"`
	Kind          string           `json:"kind"`
	Active        bool             `json:"active"`
	Name          string           `json:"name"`
	TimeClockID   *string          `json:"time_clock_id,omitempty"`
	DailyCost     *decimal.Decimal `json:"daily_cost,omitempty"`
	MonthlySalary *decimal.Decimal `json:"monthly_salary,omitempty"`
	CreatedAt     string           `json:"created_at"`
	UpdatedAt     string           `json:"updated_at"`
}
