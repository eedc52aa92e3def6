package attendance

import (
	"context"

	"github.com/samarqand/backoffice-go/internal/domain/runlog"
)

// AttendanceService defines ledger operations including the
// unapproved -> approved -> locked state machine.
type AttendanceService interface {
	// Create records a manual attendance entry.
	Create(ctx context.Context, actor runlog.Actor, req CreateAttendanceRequest) (AttendanceResponse, error)

	// Update edits an unlocked record; editing an approved record resets
	// it to unapproved.
	Update(ctx context.Context, actor runlog.Actor, req UpdateAttendanceRequest) (AttendanceResponse, error)

	Get(ctx context.Context, id string) (AttendanceResponse, error)
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// Approve transitions unapproved -> approved.
	Approve(ctx context.Context, actor runlog.Actor, id string) (AttendanceResponse, error)

	// Lock transitions approved -> locked. Locked records refuse ordinary
	// edits, including reconciler upserts.
	Lock(ctx context.Context, actor runlog.Actor, id string) (AttendanceResponse, error)

	// Unlock is the privileged administrative override: locked -> approved.
	Unlock(ctx context.Context, actor runlog.Actor, id string) (AttendanceResponse, error)

	// Delete removes an unlocked record.
	Delete(ctx context.Context, actor runlog.Actor, id string) error
}
