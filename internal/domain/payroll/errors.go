package payroll

import "errors"

// Payroll domain errors
var (
	ErrInvalidYear         = errors.New("year is outside the accepted range")
	ErrInvalidMonth        = errors.New("month must be between 1 and 12")
	ErrWorkerNotFound      = errors.New("worker not found for payroll generation")
	ErrEntryNotFound       = errors.New("payroll entry not found")
	ErrSalaryKindReserved  = errors.New("salary entries are maintained by the generator")
	ErrDuplicateSalaryRow  = errors.New("salary entry already exists for this worker and period")
)
