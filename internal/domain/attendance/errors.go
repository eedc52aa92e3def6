package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound        = errors.New("attendance record not found")
	ErrDuplicateAttendance       = errors.New("attendance record already exists for this worker and date")
	ErrAttendanceLocked          = errors.New("attendance record is locked")
	ErrAttendanceNotApproved     = errors.New("attendance record is not approved")
	ErrAttendanceAlreadyApproved = errors.New("attendance record is already approved")
	ErrAttendanceNotLocked       = errors.New("attendance record is not locked")
	ErrUnlockForbidden           = errors.New("only an admin may unlock an attendance record")
)
