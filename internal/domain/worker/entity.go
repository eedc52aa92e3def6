package worker

import (
	"time"

	"github.com/shopspring/decimal"
)

// Worker is one roster entry eligible for attendance and payroll. The
// reconciliation and generation engines treat the roster as read-only
// reference data; writes come from the HR administration screens.
type Worker struct {
	ID            string
	Kind          Kind
	Active        bool
	Name          string
	TimeClockID   *string
	DailyCost     *decimal.Decimal
	MonthlySalary *decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Kind string

const (
	KindWorker   Kind = "worker"
	KindEmployee Kind = "employee"
)

func (k Kind) Valid() bool {
	return k == KindWorker || k == KindEmployee
}

// HasPayRate reports whether payroll generation can price this worker.
func (w Worker) HasPayRate() bool {
	return w.MonthlySalary != nil || w.DailyCost != nil
}
