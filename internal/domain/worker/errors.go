package worker

import "errors"

// Worker domain errors
var (
	ErrWorkerNotFound       = errors.New("worker not found")
	ErrDuplicateTimeClockID = errors.New("time clock id already assigned to another worker")
	ErrInvalidKind          = errors.New("worker kind must be worker or employee")
)
