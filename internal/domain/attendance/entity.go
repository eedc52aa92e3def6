package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceRecord is one fact per (worker, calendar date). The composite
// key is enforced by the database; the reconciler upserts by it and never
// duplicates.
type AttendanceRecord struct {
	ID            string
	WorkerID      string
	ProjectID     *string
	Date          time.Time
	Status        Status
	Hours         *decimal.Decimal
	Notes         *string
	ApprovalState ApprovalState
	Locked        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	WorkerName *string
}

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half_day"
	StatusLeave   Status = "leave"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay, StatusLeave:
		return true
	}
	return false
}

type ApprovalState string

const (
	ApprovalUnapproved ApprovalState = "unapproved"
	ApprovalApproved   ApprovalState = "approved"
)

// Editable reports whether ordinary edits (manual or re-import) may touch
// the record. Locked records are immutable outside the admin unlock path.
func (a AttendanceRecord) Editable() bool {
	return !a.Locked
}
