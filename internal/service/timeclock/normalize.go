package timeclock

import (
	"time"

	"github.com/samarqand/backoffice-go/internal/domain/attendance"
	"github.com/samarqand/backoffice-go/internal/domain/timeclock"
	"github.com/samarqand/backoffice-go/internal/domain/worker"
	"github.com/samarqand/backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Hours below this threshold classify a computed day as half_day when the
// punch carries no explicit status.
var halfDayThreshold = decimal.NewFromInt(4)

var maxDayHours = decimal.NewFromInt(24)

// normalizedItem is the one internal shape every raw punch variant
// collapses into. After normalization the pipeline never looks at the
// optional raw fields again.
type normalizedItem struct {
	index     int
	worker    worker.Worker
	date      time.Time
	status    attendance.Status
	hours     *decimal.Decimal
	projectID *string
	notes     *string
}

// workerResolver looks a worker up by either punch identifier. The service
// backs it with a memoized roster read so one run sees one roster state.
type workerResolver interface {
	byID(id string) (worker.Worker, bool)
	byTimeClockID(timeClockID string) (worker.Worker, bool)
}

func strPtr(s string) *string { return &s }

func itemErr(index int, code, field string) *timeclock.ItemError {
	e := &timeclock.ItemError{Index: index, Code: code}
	if field != "" {
		e.Field = strPtr(field)
	}
	return e
}

// normalizeItem runs the single validation pass over one raw punch item:
// resolve the worker reference, the calendar date, the duration signal and
// the project in that order, failing with the first reason code found.
func normalizeItem(index int, item timeclock.RawPunchItem, workers workerResolver, defaultProjectID *string) (*normalizedItem, *timeclock.ItemError) {
	// Worker reference: exactly one identifying field.
	hasWorkerID := item.WorkerID != nil && !validator.IsEmpty(*item.WorkerID)
	hasClockID := item.TimeClockID != nil && !validator.IsEmpty(*item.TimeClockID)

	var w worker.Worker
	switch {
	case hasWorkerID && hasClockID:
		return nil, itemErr(index, timeclock.CodeAmbiguousWorker, "worker_id")
	case hasWorkerID:
		var ok bool
		if w, ok = workers.byID(*item.WorkerID); !ok {
			return nil, itemErr(index, timeclock.CodeNotFound, "worker_id")
		}
	case hasClockID:
		var ok bool
		if w, ok = workers.byTimeClockID(*item.TimeClockID); !ok {
			return nil, itemErr(index, timeclock.CodeNotFound, "time_clock_id")
		}
	default:
		return nil, itemErr(index, timeclock.CodeMissingWorkerRef, "worker_id")
	}

	// Date is mandatory.
	if item.Date == nil || validator.IsEmpty(*item.Date) {
		return nil, itemErr(index, timeclock.CodeMissingDate, "date")
	}
	date, ok := validator.IsValidDate(*item.Date)
	if !ok {
		return nil, itemErr(index, timeclock.CodeInvalidDate, "date")
	}

	hours, hoursErr := resolveHours(index, item, date)
	if hoursErr != nil {
		return nil, hoursErr
	}

	// Status: explicit value wins; otherwise derived from computed hours.
	var status attendance.Status
	if item.Status != nil && !validator.IsEmpty(*item.Status) {
		status = attendance.Status(*item.Status)
		if !status.Valid() {
			return nil, itemErr(index, timeclock.CodeInvalidStatus, "status")
		}
	} else if hours != nil {
		status = statusForHours(*hours)
	} else {
		// No hours, no check pair, no status: nothing to record.
		return nil, itemErr(index, timeclock.CodeMissingDuration, "")
	}

	// An empty project reference means unset, same as an absent field.
	projectID := item.ProjectID
	if projectID == nil || validator.IsEmpty(*projectID) {
		projectID = defaultProjectID
	}

	return &normalizedItem{
		index:     index,
		worker:    w,
		date:      date,
		status:    status,
		hours:     hours,
		projectID: projectID,
		notes:     item.Notes,
	}, nil
}

// resolveHours picks the strongest duration signal: explicit hours, then a
// time-of-day pair, then a timestamp pair. Returns nil hours when no signal
// is present, leaving the status requirement to the caller.
func resolveHours(index int, item timeclock.RawPunchItem, date time.Time) (*decimal.Decimal, *timeclock.ItemError) {
	if item.Hours != nil {
		if item.Hours.IsNegative() || item.Hours.GreaterThan(maxDayHours) {
			return nil, itemErr(index, timeclock.CodeInvalidHours, "hours")
		}
		h := item.Hours.Round(2)
		return &h, nil
	}

	if item.CheckIn != nil || item.CheckOut != nil {
		if item.CheckIn == nil || item.CheckOut == nil {
			return nil, itemErr(index, timeclock.CodeInvalidCheckPair, "check_in")
		}
		in, okIn := validator.IsValidTimeOfDay(*item.CheckIn)
		out, okOut := validator.IsValidTimeOfDay(*item.CheckOut)
		if !okIn || !okOut {
			return nil, itemErr(index, timeclock.CodeInvalidCheckPair, "check_in")
		}
		// Overnight spans roll the checkout to the next day; durations are
		// never negative.
		d := out.Sub(in)
		if d < 0 {
			d += 24 * time.Hour
		}
		h := hoursFromDuration(d)
		return &h, nil
	}

	if item.CheckInAt != nil || item.CheckOutAt != nil {
		if item.CheckInAt == nil || item.CheckOutAt == nil {
			return nil, itemErr(index, timeclock.CodeInvalidCheckPair, "check_in_at")
		}
		in, okIn := validator.IsValidTimestamp(*item.CheckInAt)
		out, okOut := validator.IsValidTimestamp(*item.CheckOutAt)
		if !okIn || !okOut {
			return nil, itemErr(index, timeclock.CodeInvalidCheckPair, "check_in_at")
		}
		d := out.Sub(in)
		if d < 0 || d > 24*time.Hour {
			return nil, itemErr(index, timeclock.CodeInvalidCheckPair, "check_out_at")
		}
		h := hoursFromDuration(d)
		return &h, nil
	}

	return nil, nil
}

func hoursFromDuration(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(int64(d / time.Minute)).Div(decimal.NewFromInt(60)).Round(2)
}

func statusForHours(hours decimal.Decimal) attendance.Status {
	switch {
	case hours.IsZero():
		return attendance.StatusAbsent
	case hours.LessThan(halfDayThreshold):
		return attendance.StatusHalfDay
	default:
		return attendance.StatusPresent
	}
}
