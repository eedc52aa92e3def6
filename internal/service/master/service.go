package master

import (
	"context"
	"time"

	"github.com/samarqand/backoffice-go/internal/domain/project"
	"github.com/samarqand/backoffice-go/internal/domain/runlog"
)

// MasterService serves read-only reference and audit data: the project
// registry and the append-only run history of both engines.
type MasterService interface {
	ListProjects(ctx context.Context) ([]project.ProjectResponse, error)
	GetProject(ctx context.Context, id string) (project.ProjectResponse, error)

	ListImportRuns(ctx context.Context, limit int) ([]runlog.ImportRunResponse, error)
	ListGenerationRuns(ctx context.Context, limit int) ([]runlog.GenerationRunResponse, error)
}

type masterServiceImpl struct {
	projectRepo project.ProjectRepository
	runLogRepo  runlog.RunLogRepository
}

func NewMasterService(projectRepo project.ProjectRepository, runLogRepo runlog.RunLogRepository) MasterService {
	return &masterServiceImpl{
		projectRepo: projectRepo,
		runLogRepo:  runLogRepo,
	}
}

// ==================== PROJECT OPERATIONS ====================

func (s *masterServiceImpl) ListProjects(ctx context.Context) ([]project.ProjectResponse, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]project.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, toProjectResponse(p))
	}
	return responses, nil
}

func (s *masterServiceImpl) GetProject(ctx context.Context, id string) (project.ProjectResponse, error) {
	p, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return project.ProjectResponse{}, err
	}
	return toProjectResponse(p), nil
}

// ==================== RUN LOG OPERATIONS ====================

func (s *masterServiceImpl) ListImportRuns(ctx context.Context, limit int) ([]runlog.ImportRunResponse, error) {
	runs, err := s.runLogRepo.ListImportRuns(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]runlog.ImportRunResponse, 0, len(runs))
	for _, run := range runs {
		responses = append(responses, runlog.ImportRunResponse{
			ID:               run.ID,
			CreatedAt:        run.CreatedAt.Format(time.RFC3339),
			ActorID:          run.ActorID,
			Source:           string(run.Source),
			DryRun:           run.DryRun,
			DefaultProjectID: run.DefaultProjectID,
			ItemsCount:       run.ItemsCount,
			CreatedCount:     run.CreatedCount,
			UpdatedCount:     run.UpdatedCount,
			ErrorCount:       run.ErrorCount,
		})
	}
	return responses, nil
}

func (s *masterServiceImpl) ListGenerationRuns(ctx context.Context, limit int) ([]runlog.GenerationRunResponse, error) {
	runs, err := s.runLogRepo.ListGenerationRuns(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]runlog.GenerationRunResponse, 0, len(runs))
	for _, run := range runs {
		responses = append(responses, runlog.GenerationRunResponse{
			ID:           run.ID,
			CreatedAt:    run.CreatedAt.Format(time.RFC3339),
			ActorID:      run.ActorID,
			DryRun:       run.DryRun,
			Year:         run.Year,
			Month:        run.Month,
			WorkerID:     run.WorkerID,
			ItemsCount:   run.ItemsCount,
			CreatedCount: run.CreatedCount,
			UpdatedCount: run.UpdatedCount,
			SkippedCount: run.SkippedCount,
			ErrorCount:   run.ErrorCount,
		})
	}
	return responses, nil
}

func toProjectResponse(p project.Project) project.ProjectResponse {
	return project.ProjectResponse{
		ID:        p.ID,
		Name:      p.Name,
		Active:    p.Active,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}
