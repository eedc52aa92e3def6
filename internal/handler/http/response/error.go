package response

import (
	"errors"
	"net/http"

	"github.com/samarqand/backoffice-go/internal/domain/attendance"
	"github.com/samarqand/backoffice-go/internal/domain/payroll"
	"github.com/samarqand/backoffice-go/internal/domain/project"
	"github.com/samarqand/backoffice-go/internal/domain/timeclock"
	"github.com/samarqand/backoffice-go/internal/domain/worker"
	"github.com/samarqand/backoffice-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Worker domain errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrDuplicateTimeClockID):
		Conflict(w, "Time clock ID already registered")
	case errors.Is(err, worker.ErrInvalidKind):
		BadRequest(w, "Invalid worker kind", nil)

	// Project domain errors
	case errors.Is(err, project.ErrProjectNotFound):
		NotFound(w, "Project not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrDuplicateAttendance):
		Conflict(w, "Attendance record already exists for this worker and date")
	case errors.Is(err, attendance.ErrAttendanceLocked):
		Locked(w, "Attendance record is locked")
	case errors.Is(err, attendance.ErrAttendanceNotApproved):
		Conflict(w, "Attendance record is not approved")
	case errors.Is(err, attendance.ErrAttendanceAlreadyApproved):
		Conflict(w, "Attendance record is already approved")
	case errors.Is(err, attendance.ErrAttendanceNotLocked):
		Conflict(w, "Attendance record is not locked")
	case errors.Is(err, attendance.ErrUnlockForbidden):
		Forbidden(w, "Only an admin may unlock an attendance record")

	// Timeclock import errors
	case errors.Is(err, timeclock.ErrMissingItems):
		BadRequest(w, "Import items are missing or empty", nil)
	case errors.Is(err, timeclock.ErrDefaultProjectNotFound):
		NotFound(w, "Default project not found")
	case errors.Is(err, timeclock.ErrImportDirNotSet):
		BadRequest(w, "Timeclock import directory is not configured", nil)
	case errors.Is(err, timeclock.ErrImportDirNotFound):
		NotFound(w, "Timeclock import directory does not exist")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidYear):
		BadRequest(w, "Year is outside the accepted range", nil)
	case errors.Is(err, payroll.ErrInvalidMonth):
		BadRequest(w, "Month must be between 1 and 12", nil)
	case errors.Is(err, payroll.ErrWorkerNotFound):
		NotFound(w, "Worker not found for payroll generation")
	case errors.Is(err, payroll.ErrEntryNotFound):
		NotFound(w, "Payroll entry not found")
	case errors.Is(err, payroll.ErrSalaryKindReserved):
		BadRequest(w, "Salary entries are maintained by the generator", nil)
	case errors.Is(err, payroll.ErrDuplicateSalaryRow):
		Conflict(w, "Salary entry already exists for this worker and period")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
