package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samarqand/backoffice-go/internal/domain/attendance"
	"github.com/samarqand/backoffice-go/internal/domain/project"
	"github.com/samarqand/backoffice-go/internal/domain/runlog"
	"github.com/samarqand/backoffice-go/internal/domain/worker"
	"github.com/samarqand/backoffice-go/internal/pkg/database"
	"github.com/samarqand/backoffice-go/internal/repository/postgresql"
)

type AttendanceServiceImpl struct {
	db             *database.DB
	attendanceRepo attendance.AttendanceRepository
	workerRepo     worker.WorkerRepository
	projectRepo    project.ProjectRepository
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	workerRepo worker.WorkerRepository,
	projectRepo project.ProjectRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		workerRepo:     workerRepo,
		projectRepo:    projectRepo,
	}
}

// Create implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Create(ctx context.Context, actor runlog.Actor, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	w, err := s.workerRepo.GetByID(ctx, req.WorkerID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.ProjectID != nil {
		exists, err := s.projectRepo.Exists(ctx, *req.ProjectID)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to check project: %w", err)
		}
		if !exists {
			return attendance.AttendanceResponse{}, project.ErrProjectNotFound
		}
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	rec, err := s.attendanceRepo.Create(ctx, attendance.AttendanceRecord{
		WorkerID:  w.ID,
		ProjectID: req.ProjectID,
		Date:      date,
		Status:    attendance.Status(req.Status),
		Hours:     req.Hours,
		Notes:     req.Notes,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	rec.WorkerName = &w.Name

	return toAttendanceResponse(rec), nil
}

// Update implements attendance.AttendanceService. Editing an approved
// record drops it back to unapproved so the approval reflects the final
// content.
func (s *AttendanceServiceImpl) Update(ctx context.Context, actor runlog.Actor, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.ProjectID != nil {
		exists, err := s.projectRepo.Exists(ctx, *req.ProjectID)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to check project: %w", err)
		}
		if !exists {
			return attendance.AttendanceResponse{}, project.ErrProjectNotFound
		}
	}

	var updated attendance.AttendanceRecord
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		rec, err := s.attendanceRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}
		if !rec.Editable() {
			return attendance.ErrAttendanceLocked
		}

		if req.ProjectID != nil {
			rec.ProjectID = req.ProjectID
		}
		if req.Status != nil {
			rec.Status = attendance.Status(*req.Status)
		}
		if req.Hours != nil {
			rec.Hours = req.Hours
		}
		if req.Notes != nil {
			rec.Notes = req.Notes
		}
		rec.ApprovalState = attendance.ApprovalUnapproved

		if err := s.attendanceRepo.Update(txCtx, rec); err != nil {
			return err
		}

		updated, err = s.attendanceRepo.GetByID(txCtx, rec.ID)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toAttendanceResponse(updated), nil
}

// Get implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	rec, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return toAttendanceResponse(rec), nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toAttendanceResponse(rec))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Attendances: responses,
	}, nil
}

// Approve implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Approve(ctx context.Context, actor runlog.Actor, id string) (attendance.AttendanceResponse, error) {
	var rec attendance.AttendanceRecord
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		rec, err = s.attendanceRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if rec.Locked {
			return attendance.ErrAttendanceLocked
		}
		if rec.ApprovalState == attendance.ApprovalApproved {
			return attendance.ErrAttendanceAlreadyApproved
		}

		return s.attendanceRepo.SetApprovalState(txCtx, id, attendance.ApprovalApproved, false)
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec.ApprovalState = attendance.ApprovalApproved
	return toAttendanceResponse(rec), nil
}

// Lock implements attendance.AttendanceService. Only approved records can
// be locked; locking twice fails rather than silently succeeding.
func (s *AttendanceServiceImpl) Lock(ctx context.Context, actor runlog.Actor, id string) (attendance.AttendanceResponse, error) {
	var rec attendance.AttendanceRecord
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		rec, err = s.attendanceRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if rec.Locked {
			return attendance.ErrAttendanceLocked
		}
		if rec.ApprovalState != attendance.ApprovalApproved {
			return attendance.ErrAttendanceNotApproved
		}

		return s.attendanceRepo.SetApprovalState(txCtx, id, attendance.ApprovalApproved, true)
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec.Locked = true
	return toAttendanceResponse(rec), nil
}

// Unlock implements attendance.AttendanceService. Admin only: the record
// returns to approved, not unapproved, so the earlier review stands.
func (s *AttendanceServiceImpl) Unlock(ctx context.Context, actor runlog.Actor, id string) (attendance.AttendanceResponse, error) {
	if actor.Role != runlog.RoleAdmin {
		return attendance.AttendanceResponse{}, attendance.ErrUnlockForbidden
	}

	var rec attendance.AttendanceRecord
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		rec, err = s.attendanceRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if !rec.Locked {
			return attendance.ErrAttendanceNotLocked
		}

		return s.attendanceRepo.SetApprovalState(txCtx, id, attendance.ApprovalApproved, false)
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec.Locked = false
	rec.ApprovalState = attendance.ApprovalApproved
	return toAttendanceResponse(rec), nil
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, actor runlog.Actor, id string) error {
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		rec, err := s.attendanceRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if !rec.Editable() {
			return attendance.ErrAttendanceLocked
		}

		return s.attendanceRepo.Delete(txCtx, id)
	})
}

func toAttendanceResponse(rec attendance.AttendanceRecord) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:            rec.ID,
		WorkerID:      rec.WorkerID,
		WorkerName:    rec.WorkerName,
		ProjectID:     rec.ProjectID,
		Date:          rec.Date.Format("2006-01-02"),
		Status:        string(rec.Status),
		Hours:         rec.Hours,
		Notes:         rec.Notes,
		ApprovalState: string(rec.ApprovalState),
		Locked:        rec.Locked,
		CreatedAt:     rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     rec.UpdatedAt.Format(time.RFC3339),
	}
}
