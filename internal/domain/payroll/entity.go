package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollEntry is one monetary movement for a worker in a payroll period.
// salary-kind entries are owned by the generator; the other kinds are
// manual bookkeeping and coexist freely.
type PayrollEntry struct {
	ID        string
	WorkerID  string
	Year      int
	Month     int
	Kind      Kind
	Amount    decimal.Decimal
	Date      *time.Time
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	WorkerName *string
}

type Kind string

const (
	KindSalary    Kind = "salary"
	KindAdvance   Kind = "advance"
	KindBonus     Kind = "bonus"
	KindDeduction Kind = "deduction"
)

func (k Kind) Valid() bool {
	switch k {
	case KindSalary, KindAdvance, KindBonus, KindDeduction:
		return true
	}
	return false
}
