package payroll

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samarqand/backoffice-go/internal/domain/attendance"
	"github.com/samarqand/backoffice-go/internal/domain/payroll"
	"github.com/samarqand/backoffice-go/internal/domain/runlog"
	"github.com/samarqand/backoffice-go/internal/domain/worker"
	"github.com/samarqand/backoffice-go/internal/pkg/database"
	"github.com/samarqand/backoffice-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
)

var half = decimal.NewFromFloat(0.5)

type PayrollServiceImpl struct {
	db             *database.DB
	payrollRepo    payroll.PayrollRepository
	workerRepo     worker.WorkerRepository
	attendanceRepo attendance.AttendanceRepository
	runLogRepo     runlog.RunLogRepository
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	workerRepo worker.WorkerRepository,
	attendanceRepo attendance.AttendanceRepository,
	runLogRepo runlog.RunLogRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:             db,
		payrollRepo:    payrollRepo,
		workerRepo:     workerRepo,
		attendanceRepo: attendanceRepo,
		runLogRepo:     runLogRepo,
	}
}

// Generate implements payroll.PayrollService. One salary entry per worker
// per period; amounts derive only from the ledger and the worker's rate,
// so regeneration over unchanged attendance is a no-op update.
func (s *PayrollServiceImpl) Generate(ctx context.Context, actor runlog.Actor, req payroll.GenerateRequest) (payroll.GenerateResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.GenerateResult{}, err
	}

	workers, err := s.scopeWorkers(ctx, req.WorkerID)
	if err != nil {
		return payroll.GenerateResult{}, err
	}

	result := payroll.GenerateResult{
		DryRun:  req.DryRun,
		Year:    req.Year,
		Month:   req.Month,
		Errors:  []payroll.WorkerError{},
		Results: []payroll.WorkerResult{},
	}

	for _, w := range workers {
		if !w.HasPayRate() {
			reason := payroll.CodeMissingRate
			result.Results = append(result.Results, payroll.WorkerResult{
				WorkerID:   w.ID,
				WorkerName: w.Name,
				Outcome:    payroll.OutcomeSkipped,
				Reason:     &reason,
			})
			result.SkippedCount++
			continue
		}

		rateMode, amount, err := s.priceWorker(ctx, w, req.Year, req.Month)
		if err != nil {
			return payroll.GenerateResult{}, err
		}

		workerResult := payroll.WorkerResult{
			WorkerID:   w.ID,
			WorkerName: w.Name,
			RateMode:   &rateMode,
			Amount:     &amount,
		}

		if req.DryRun {
			existing, err := s.payrollRepo.GetSalaryEntry(ctx, w.ID, req.Year, req.Month)
			if err != nil {
				return payroll.GenerateResult{}, err
			}
			if existing != nil {
				workerResult.Outcome = payroll.OutcomeUpdated
				workerResult.EntryID = &existing.ID
			} else {
				workerResult.Outcome = payroll.OutcomeCreated
			}
		} else {
			stored, inserted, err := s.payrollRepo.UpsertSalaryEntry(ctx, payroll.PayrollEntry{
				WorkerID: w.ID,
				Year:     req.Year,
				Month:    req.Month,
				Kind:     payroll.KindSalary,
				Amount:   amount,
			})
			if err != nil {
				return payroll.GenerateResult{}, fmt.Errorf("failed to upsert salary entry for worker %s: %w", w.ID, err)
			}
			if inserted {
				workerResult.Outcome = payroll.OutcomeCreated
			} else {
				workerResult.Outcome = payroll.OutcomeUpdated
			}
			workerResult.EntryID = &stored.ID
		}

		if workerResult.Outcome == payroll.OutcomeCreated {
			result.CreatedCount++
		} else {
			result.UpdatedCount++
		}
		result.Results = append(result.Results, workerResult)
	}

	run, err := s.runLogRepo.RecordGenerationRun(ctx, runlog.GenerationRun{
		ActorID:      actor.ID,
		DryRun:       req.DryRun,
		Year:         req.Year,
		Month:        req.Month,
		WorkerID:     req.WorkerID,
		ItemsCount:   len(workers),
		CreatedCount: result.CreatedCount,
		UpdatedCount: result.UpdatedCount,
		SkippedCount: result.SkippedCount,
		ErrorCount:   len(result.Errors),
	})
	if err != nil {
		return payroll.GenerateResult{}, err
	}
	result.RunID = run.ID

	return result, nil
}

// scopeWorkers resolves the generation scope: one named worker, or every
// active worker. A named worker that does not exist fails the whole call.
func (s *PayrollServiceImpl) scopeWorkers(ctx context.Context, workerID *string) ([]worker.Worker, error) {
	if workerID != nil {
		w, err := s.workerRepo.GetByID(ctx, *workerID)
		if err != nil {
			if errors.Is(err, worker.ErrWorkerNotFound) {
				return nil, payroll.ErrWorkerNotFound
			}
			return nil, err
		}
		return []worker.Worker{w}, nil
	}
	return s.workerRepo.ListActive(ctx)
}

// priceWorker derives the salary amount for one worker and period from
// the attendance ledger. A monthly salary prorates by deducting absences;
// a daily cost multiplies by worked days. Monthly wins when both are set.
func (s *PayrollServiceImpl) priceWorker(ctx context.Context, w worker.Worker, year, month int) (string, decimal.Decimal, error) {
	records, err := s.attendanceRepo.ListByWorkerAndPeriod(ctx, w.ID, year, month)
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("failed to load attendance for worker %s: %w", w.ID, err)
	}

	var present, absent, halfDay, leave int64
	for _, rec := range records {
		switch rec.Status {
		case attendance.StatusPresent:
			present++
		case attendance.StatusAbsent:
			absent++
		case attendance.StatusHalfDay:
			halfDay++
		case attendance.StatusLeave:
			leave++
		}
	}

	if w.MonthlySalary != nil {
		daysInMonth := decimal.NewFromInt(int64(time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()))
		payable := daysInMonth.
			Sub(decimal.NewFromInt(absent)).
			Sub(decimal.NewFromInt(leave)).
			Sub(decimal.NewFromInt(halfDay).Mul(half))
		amount := w.MonthlySalary.Mul(payable).Div(daysInMonth).Round(2)
		if amount.IsNegative() {
			amount = decimal.Zero
		}
		return payroll.RateModeMonthly, amount, nil
	}

	workedDays := decimal.NewFromInt(present).Add(decimal.NewFromInt(halfDay).Mul(half))
	amount := w.DailyCost.Mul(workedDays).Round(2)
	return payroll.RateModeDaily, amount, nil
}

// CreateEntry implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreateEntry(ctx context.Context, actor runlog.Actor, req payroll.CreateEntryRequest) (payroll.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.EntryResponse{}, err
	}
	if payroll.Kind(req.Kind) == payroll.KindSalary {
		return payroll.EntryResponse{}, payroll.ErrSalaryKindReserved
	}

	w, err := s.workerRepo.GetByID(ctx, req.WorkerID)
	if err != nil {
		return payroll.EntryResponse{}, err
	}

	var date *time.Time
	if req.Date != nil {
		d, _ := time.Parse("2006-01-02", *req.Date)
		date = &d
	}

	entry, err := s.payrollRepo.Create(ctx, payroll.PayrollEntry{
		WorkerID: w.ID,
		Year:     req.Year,
		Month:    req.Month,
		Kind:     payroll.Kind(req.Kind),
		Amount:   req.Amount,
		Date:     date,
		Notes:    req.Notes,
	})
	if err != nil {
		return payroll.EntryResponse{}, err
	}
	entry.WorkerName = &w.Name

	return toEntryResponse(entry), nil
}

// DeleteEntry implements payroll.PayrollService. Generated salary rows may
// be deleted too; the next generation run recreates them.
func (s *PayrollServiceImpl) DeleteEntry(ctx context.Context, actor runlog.Actor, id string) error {
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if _, err := s.payrollRepo.GetByID(txCtx, id); err != nil {
			return err
		}
		return s.payrollRepo.Delete(txCtx, id)
	})
}

// ListEntries implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListEntries(ctx context.Context, filter payroll.EntryFilter) (payroll.ListEntriesResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	entries, total, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListEntriesResponse{}, err
	}

	responses := make([]payroll.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, toEntryResponse(entry))
	}

	return payroll.ListEntriesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Entries:    responses,
	}, nil
}

func toEntryResponse(entry payroll.PayrollEntry) payroll.EntryResponse {
	resp := payroll.EntryResponse{
		ID:         entry.ID,
		WorkerID:   entry.WorkerID,
		WorkerName: entry.WorkerName,
		Year:       entry.Year,
		Month:      entry.Month,
		Kind:       string(entry.Kind),
		Amount:     entry.Amount,
		Notes:      entry.Notes,
		CreatedAt:  entry.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  entry.UpdatedAt.Format(time.RFC3339),
	}
	if entry.Date != nil {
		d := entry.Date.Format("2006-01-02")
		resp.Date = &d
	}
	return resp
}
