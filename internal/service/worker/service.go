package worker

import (
	"context"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samarqand/backoffice-go/internal/domain/worker"
	"github.com/samarqand/backoffice-go/internal/pkg/database"
	"github.com/samarqand/backoffice-go/internal/repository/postgresql"
)

type WorkerServiceImpl struct {
	db         *database.DB
	workerRepo worker.WorkerRepository
}

func NewWorkerService(db *database.DB, workerRepo worker.WorkerRepository) worker.WorkerService {
	return &WorkerServiceImpl{
		db:         db,
		workerRepo: workerRepo,
	}
}

// Create implements worker.WorkerService.
func (s *WorkerServiceImpl) Create(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	w, err := s.workerRepo.Create(ctx, worker.Worker{
		Kind:          worker.Kind(req.Kind),
		Active:        active,
		Name:          req.Name,
		TimeClockID:   req.TimeClockID,
		DailyCost:     req.DailyCost,
		MonthlySalary: req.MonthlySalary,
	})
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	return toWorkerResponse(w), nil
}

// Update implements worker.WorkerService.
func (s *WorkerServiceImpl) Update(ctx context.Context, id string, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	var updated worker.Worker
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if _, err := s.workerRepo.GetByID(txCtx, id); err != nil {
			return err
		}

		if err := s.workerRepo.Update(txCtx, id, req); err != nil {
			return err
		}

		var err error
		updated, err = s.workerRepo.GetByID(txCtx, id)
		return err
	})
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	return toWorkerResponse(updated), nil
}

// Get implements worker.WorkerService.
func (s *WorkerServiceImpl) Get(ctx context.Context, id string) (worker.WorkerResponse, error) {
	w, err := s.workerRepo.GetByID(ctx, id)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	return toWorkerResponse(w), nil
}

// List implements worker.WorkerService.
func (s *WorkerServiceImpl) List(ctx context.Context, filter worker.WorkerFilter) (worker.ListWorkersResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	workers, total, err := s.workerRepo.List(ctx, filter)
	if err != nil {
		return worker.ListWorkersResponse{}, err
	}

	responses := make([]worker.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		responses = append(responses, toWorkerResponse(w))
	}

	return worker.ListWorkersResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Workers:    responses,
	}, nil
}

func toWorkerResponse(w worker.Worker) worker.WorkerResponse {
	return worker.WorkerResponse{
		ID:            w.ID,
		Kind:          string(w.Kind),
		Active:        w.Active,
		Name:          w.Name,
		TimeClockID:   w.TimeClockID,
		DailyCost:     w.DailyCost,
		MonthlySalary: w.MonthlySalary,
		CreatedAt:     w.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     w.UpdatedAt.Format(time.RFC3339),
	}
}
