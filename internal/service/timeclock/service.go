package timeclock

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/samarqand/backoffice-go/internal/config"
	"github.com/samarqand/backoffice-go/internal/domain/attendance"
	"github.com/samarqand/backoffice-go/internal/domain/project"
	"github.com/samarqand/backoffice-go/internal/domain/runlog"
	"github.com/samarqand/backoffice-go/internal/domain/timeclock"
	"github.com/samarqand/backoffice-go/internal/domain/worker"
	"github.com/samarqand/backoffice-go/internal/pkg/punchfile"
	"github.com/samarqand/backoffice-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

// parseWorkers caps the concurrent file-parse stage of folder imports.
const parseWorkers = 4

// ImportServiceImpl runs without a batch transaction on purpose: every
// upsert is a single guarded statement and item outcomes are independent.
type ImportServiceImpl struct {
	workerRepo     worker.WorkerRepository
	projectRepo    project.ProjectRepository
	attendanceRepo attendance.AttendanceRepository
	runLogRepo     runlog.RunLogRepository
	source         punchfile.Source
	cfg            config.TimeclockConfig
}

func NewImportService(
	workerRepo worker.WorkerRepository,
	projectRepo project.ProjectRepository,
	attendanceRepo attendance.AttendanceRepository,
	runLogRepo runlog.RunLogRepository,
	source punchfile.Source,
	cfg config.TimeclockConfig,
) timeclock.ImportService {
	return &ImportServiceImpl{
		workerRepo:     workerRepo,
		projectRepo:    projectRepo,
		attendanceRepo: attendanceRepo,
		runLogRepo:     runLogRepo,
		source:         source,
		cfg:            cfg,
	}
}

// Import implements timeclock.ImportService.
func (s *ImportServiceImpl) Import(ctx context.Context, actor runlog.Actor, req timeclock.ImportRequest) (timeclock.ImportResult, error) {
	if err := req.Validate(); err != nil {
		return timeclock.ImportResult{}, err
	}

	return s.runImport(ctx, actor, req.Items, nil, runlog.SourceManual, req.DryRun, req.DefaultProjectID, nil)
}

// ImportFolder implements timeclock.ImportService.
func (s *ImportServiceImpl) ImportFolder(ctx context.Context, actor runlog.Actor, req timeclock.FolderImportRequest) (timeclock.ImportResult, error) {
	if s.cfg.ImportDir == "" {
		return timeclock.ImportResult{}, timeclock.ErrImportDirNotSet
	}

	limit := req.LimitFiles
	if limit <= 0 {
		limit = s.cfg.DefaultFiles
	}
	if limit > s.cfg.MaxFiles {
		limit = s.cfg.MaxFiles
	}

	files, err := s.source.ListFiles(ctx, s.cfg.ImportDir, limit)
	if err != nil {
		if os.IsNotExist(err) {
			return timeclock.ImportResult{}, timeclock.ErrImportDirNotFound
		}
		return timeclock.ImportResult{}, fmt.Errorf("failed to list punch files: %w", err)
	}
	if len(files) == 0 {
		return timeclock.ImportResult{}, timeclock.ErrMissingItems
	}

	// Parse stage runs in parallel; the reconcile stage stays sequential so
	// same-key collisions resolve in input order.
	parsed := make([][]timeclock.RawPunchItem, len(files))
	parseErrs := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parseWorkers)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			parsed[i], parseErrs[i] = punchfile.Parse(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return timeclock.ImportResult{}, fmt.Errorf("failed to parse punch files: %w", err)
	}

	// Reassemble in file order, keeping provenance per item. A file that
	// failed to parse becomes one error entry at the position its items
	// would have started.
	var items []timeclock.RawPunchItem
	var sources []*string
	var preErrors []timeclock.ItemError
	for i := range files {
		name := files[i].Name
		if parseErrs[i] != nil {
			preErrors = append(preErrors, timeclock.ItemError{
				Index:      len(items),
				Code:       timeclock.CodeInvalidFile,
				SourceFile: &name,
			})
			continue
		}
		for _, item := range parsed[i] {
			items = append(items, item)
			sources = append(sources, &name)
		}
	}

	return s.runImport(ctx, actor, items, sources, runlog.SourceFolder, req.DryRun, req.DefaultProjectID, preErrors)
}

// runImport is the shared per-item pipeline behind both entry points.
// sources, when non-nil, is aligned with items and carries provenance.
func (s *ImportServiceImpl) runImport(
	ctx context.Context,
	actor runlog.Actor,
	items []timeclock.RawPunchItem,
	sources []*string,
	src runlog.ImportSource,
	dryRun bool,
	defaultProjectID *string,
	preErrors []timeclock.ItemError,
) (timeclock.ImportResult, error) {
	if defaultProjectID != nil {
		exists, err := s.projectRepo.Exists(ctx, *defaultProjectID)
		if err != nil {
			return timeclock.ImportResult{}, fmt.Errorf("failed to validate default project: %w", err)
		}
		if !exists {
			return timeclock.ImportResult{}, timeclock.ErrDefaultProjectNotFound
		}
	}

	roster, err := s.loadRoster(ctx, items)
	if err != nil {
		return timeclock.ImportResult{}, err
	}

	projectOK, err := s.loadProjects(ctx, items, defaultProjectID)
	if err != nil {
		return timeclock.ImportResult{}, err
	}

	result := timeclock.ImportResult{
		DryRun:     dryRun,
		ItemsCount: len(items),
		Errors:     append([]timeclock.ItemError{}, preErrors...),
		Results:    []timeclock.ItemResult{},
	}

	// In dry-run mode the overlay simulates earlier items of the same batch
	// so a second item for the same (worker, date) classifies as an update,
	// matching what a committed run would do.
	overlay := make(map[string]bool)

	for i, raw := range items {
		var sourceFile *string
		if sources != nil {
			sourceFile = sources[i]
		}

		norm, itemErr := normalizeItem(i, raw, roster, defaultProjectID)
		if itemErr != nil {
			itemErr.SourceFile = sourceFile
			result.Errors = append(result.Errors, *itemErr)
			continue
		}

		if norm.projectID != nil && !projectOK[*norm.projectID] {
			e := timeclock.ItemError{Index: i, Code: timeclock.CodeProjectNotFound, SourceFile: sourceFile}
			field := "project_id"
			e.Field = &field
			result.Errors = append(result.Errors, e)
			continue
		}

		itemResult, itemError, err := s.upsertItem(ctx, norm, dryRun, overlay)
		if err != nil {
			return timeclock.ImportResult{}, err
		}
		if itemError != nil {
			itemError.SourceFile = sourceFile
			result.Errors = append(result.Errors, *itemError)
			continue
		}

		itemResult.SourceFile = sourceFile
		if itemResult.Outcome == timeclock.OutcomeCreated {
			result.CreatedCount++
		} else {
			result.UpdatedCount++
		}
		result.Results = append(result.Results, *itemResult)
	}

	run, err := s.runLogRepo.RecordImportRun(ctx, runlog.ImportRun{
		ActorID:          actor.ID,
		Source:           src,
		DryRun:           dryRun,
		DefaultProjectID: defaultProjectID,
		ItemsCount:       result.ItemsCount,
		CreatedCount:     result.CreatedCount,
		UpdatedCount:     result.UpdatedCount,
		ErrorCount:       len(result.Errors),
	})
	if err != nil {
		return timeclock.ImportResult{}, err
	}
	result.RunID = run.ID

	return result, nil
}

// upsertItem applies one normalized item to the ledger, or simulates the
// application in dry-run mode. Lock refusal is a per-item error either way.
func (s *ImportServiceImpl) upsertItem(
	ctx context.Context,
	norm *normalizedItem,
	dryRun bool,
	overlay map[string]bool,
) (*timeclock.ItemResult, *timeclock.ItemError, error) {
	dateStr := norm.date.Format("2006-01-02")

	result := &timeclock.ItemResult{
		Index:      norm.index,
		WorkerID:   norm.worker.ID,
		WorkerName: norm.worker.Name,
		Date:       dateStr,
		Status:     string(norm.status),
		Hours:      norm.hours,
		ProjectID:  norm.projectID,
	}

	if dryRun {
		key := norm.worker.ID + "|" + dateStr
		existing, err := s.attendanceRepo.GetByWorkerAndDate(ctx, norm.worker.ID, norm.date)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to look up attendance for item %d: %w", norm.index, err)
		}
		if existing != nil && existing.Locked {
			return nil, itemErr(norm.index, timeclock.CodeAttendanceLocked, ""), nil
		}

		result.Outcome = timeclock.OutcomeCreated
		if existing != nil || overlay[key] {
			result.Outcome = timeclock.OutcomeUpdated
		}
		overlay[key] = true
		if existing != nil {
			result.AttendanceID = &existing.ID
		}
		return result, nil, nil
	}

	stored, inserted, err := s.attendanceRepo.Upsert(ctx, attendance.AttendanceRecord{
		WorkerID:  norm.worker.ID,
		ProjectID: norm.projectID,
		Date:      norm.date,
		Status:    norm.status,
		Hours:     norm.hours,
		Notes:     norm.notes,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceLocked) {
			return nil, itemErr(norm.index, timeclock.CodeAttendanceLocked, ""), nil
		}
		return nil, nil, fmt.Errorf("failed to upsert attendance for item %d: %w", norm.index, err)
	}

	if inserted {
		result.Outcome = timeclock.OutcomeCreated
	} else {
		result.Outcome = timeclock.OutcomeUpdated
	}
	result.AttendanceID = &stored.ID

	return result, nil, nil
}

// rosterSnapshot satisfies workerResolver with plain map lookups so
// normalization sees one roster state for the whole run.
type rosterSnapshot struct {
	idMap    map[string]worker.Worker
	clockMap map[string]worker.Worker
}

func (r rosterSnapshot) byID(id string) (worker.Worker, bool) {
	w, ok := r.idMap[id]
	return w, ok
}

func (r rosterSnapshot) byTimeClockID(timeClockID string) (worker.Worker, bool) {
	w, ok := r.clockMap[timeClockID]
	return w, ok
}

// loadRoster fetches every worker the batch references, once each, before
// per-item processing begins.
func (s *ImportServiceImpl) loadRoster(ctx context.Context, items []timeclock.RawPunchItem) (rosterSnapshot, error) {
	snap := rosterSnapshot{
		idMap:    make(map[string]worker.Worker),
		clockMap: make(map[string]worker.Worker),
	}

	for _, item := range items {
		if item.WorkerID != nil && !validator.IsEmpty(*item.WorkerID) {
			id := *item.WorkerID
			if _, seen := snap.idMap[id]; seen {
				continue
			}
			w, err := s.workerRepo.GetByID(ctx, id)
			if err != nil {
				if errors.Is(err, worker.ErrWorkerNotFound) {
					continue
				}
				return rosterSnapshot{}, fmt.Errorf("failed to load worker %s: %w", id, err)
			}
			snap.idMap[id] = w
		}
		if item.TimeClockID != nil && !validator.IsEmpty(*item.TimeClockID) {
			clockID := *item.TimeClockID
			if _, seen := snap.clockMap[clockID]; seen {
				continue
			}
			w, err := s.workerRepo.GetByTimeClockID(ctx, clockID)
			if err != nil {
				if errors.Is(err, worker.ErrWorkerNotFound) {
					continue
				}
				return rosterSnapshot{}, fmt.Errorf("failed to load worker by time clock id %s: %w", clockID, err)
			}
			snap.clockMap[clockID] = w
		}
	}

	return snap, nil
}

// loadProjects checks existence once per distinct project reference.
func (s *ImportServiceImpl) loadProjects(ctx context.Context, items []timeclock.RawPunchItem, defaultProjectID *string) (map[string]bool, error) {
	ok := make(map[string]bool)
	if defaultProjectID != nil {
		// Pre-validated as batch scope.
		ok[*defaultProjectID] = true
	}

	for _, item := range items {
		if item.ProjectID == nil || validator.IsEmpty(*item.ProjectID) {
			continue
		}
		id := *item.ProjectID
		if _, seen := ok[id]; seen {
			continue
		}
		exists, err := s.projectRepo.Exists(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check project %s: %w", id, err)
		}
		ok[id] = exists
	}

	return ok, nil
}
