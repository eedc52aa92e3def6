package timeclock

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samarqand/backoffice-go/internal/config"
	"github.com/samarqand/backoffice-go/internal/domain/attendance"
	"github.com/samarqand/backoffice-go/internal/domain/runlog"
	"github.com/samarqand/backoffice-go/internal/domain/timeclock"
	"github.com/samarqand/backoffice-go/internal/domain/worker"
	"github.com/samarqand/backoffice-go/internal/pkg/punchfile"
	"github.com/samarqand/backoffice-go/internal/repository/postgresql"
	postgresqltest "github.com/samarqand/backoffice-go/internal/repository/postgresql/postgresql_test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	setup          *postgresqltest.TestDatabaseSetup
	workerRepo     worker.WorkerRepository
	attendanceRepo attendance.AttendanceRepository
	runLogRepo     runlog.RunLogRepository
	svc            timeclock.ImportService
	importDir      string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	setup, err := postgresqltest.NewTestDatabase()
	require.NoError(t, err)
	t.Cleanup(setup.Close)

	ctx := context.Background()
	require.NoError(t, setup.TruncateAllTables(ctx))

	workerRepo := postgresql.NewWorkerRepository(setup.DB)
	projectRepo := postgresql.NewProjectRepository(setup.DB)
	attendanceRepo := postgresql.NewAttendanceRepository(setup.DB)
	runLogRepo := postgresql.NewRunLogRepository(setup.DB)

	importDir := t.TempDir()
	svc := NewImportService(
		workerRepo,
		projectRepo,
		attendanceRepo,
		runLogRepo,
		punchfile.NewLocalSource(),
		config.TimeclockConfig{ImportDir: importDir, MaxFiles: 10, DefaultFiles: 5},
	)

	return &testEnv{
		setup:          setup,
		workerRepo:     workerRepo,
		attendanceRepo: attendanceRepo,
		runLogRepo:     runLogRepo,
		svc:            svc,
		importDir:      importDir,
	}
}

func (e *testEnv) createWorker(t *testing.T, name string, timeClockID *string) worker.Worker {
	t.Helper()
	w, err := e.workerRepo.Create(context.Background(), worker.Worker{
		Kind:        worker.KindWorker,
		Active:      true,
		Name:        name,
		TimeClockID: timeClockID,
	})
	require.NoError(t, err)
	return w
}

func (e *testEnv) createProject(t *testing.T, name string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := e.setup.DB.Pool.Exec(context.Background(),
		`INSERT INTO projects (id, name, active) VALUES ($1, $2, true)`, id, name)
	require.NoError(t, err)
	return id
}

func testActor() runlog.Actor {
	return runlog.Actor{ID: "op-1", Role: runlog.RoleOperator}
}

func TestImportCreatesAndReimportUpdates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	w := env.createWorker(t, "Aziz Karimov", nil)

	req := timeclock.ImportRequest{Items: []timeclock.RawPunchItem{
		{WorkerID: &w.ID, Date: strPtr("2026-08-03"), CheckIn: strPtr("08:00"), CheckOut: strPtr("16:00")},
	}}

	result, err := env.svc.Import(ctx, testActor(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CreatedCount)
	assert.Equal(t, 0, result.UpdatedCount)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Results, 1)
	assert.Equal(t, timeclock.OutcomeCreated, result.Results[0].Outcome)
	assert.Equal(t, "present", result.Results[0].Status)
	require.NotNil(t, result.Results[0].Hours)
	assert.True(t, result.Results[0].Hours.Equal(decimal.NewFromInt(8)))
	assert.NotEmpty(t, result.RunID)

	// The same batch again merges instead of duplicating.
	again, err := env.svc.Import(ctx, testActor(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, again.CreatedCount)
	assert.Equal(t, 1, again.UpdatedCount)

	stored, err := env.attendanceRepo.GetByWorkerAndDate(ctx, w.ID, mustDate(t, "2026-08-03"))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, attendance.StatusPresent, stored.Status)
}

func TestImportDryRunPredictsCommittedRun(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	w := env.createWorker(t, "Dilshod Rahimov", nil)

	items := []timeclock.RawPunchItem{
		{WorkerID: &w.ID, Date: strPtr("2026-08-03"), Hours: dec("8")},
		// Second punch for the same day should classify as an update even
		// though the first one has not been written yet.
		{WorkerID: &w.ID, Date: strPtr("2026-08-03"), Hours: dec("6")},
		{WorkerID: &w.ID, Date: strPtr("2026-08-04"), Hours: dec("8")},
	}

	dry, err := env.svc.Import(ctx, testActor(), timeclock.ImportRequest{Items: items, DryRun: true})
	require.NoError(t, err)
	assert.True(t, dry.DryRun)

	// Nothing was written.
	stored, err := env.attendanceRepo.GetByWorkerAndDate(ctx, w.ID, mustDate(t, "2026-08-03"))
	require.NoError(t, err)
	assert.Nil(t, stored)

	committed, err := env.svc.Import(ctx, testActor(), timeclock.ImportRequest{Items: items})
	require.NoError(t, err)

	assert.Equal(t, committed.CreatedCount, dry.CreatedCount)
	assert.Equal(t, committed.UpdatedCount, dry.UpdatedCount)
	assert.Equal(t, len(committed.Errors), len(dry.Errors))
}

func TestImportLockedRecordRefusesOverwrite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	w := env.createWorker(t, "Bekzod Yusupov", nil)

	hours := decimal.NewFromInt(8)
	rec, err := env.attendanceRepo.Create(ctx, attendance.AttendanceRecord{
		WorkerID: w.ID,
		Date:     mustDate(t, "2026-08-03"),
		Status:   attendance.StatusPresent,
		Hours:    &hours,
	})
	require.NoError(t, err)
	require.NoError(t, env.attendanceRepo.SetApprovalState(ctx, rec.ID, attendance.ApprovalApproved, true))

	result, err := env.svc.Import(ctx, testActor(), timeclock.ImportRequest{Items: []timeclock.RawPunchItem{
		{WorkerID: &w.ID, Date: strPtr("2026-08-03"), Hours: dec("4")},
		{WorkerID: &w.ID, Date: strPtr("2026-08-04"), Hours: dec("8")},
	}})
	require.NoError(t, err)

	// The locked day fails, the other day still lands.
	assert.Equal(t, 1, result.CreatedCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, timeclock.CodeAttendanceLocked, result.Errors[0].Code)
	assert.Equal(t, 0, result.Errors[0].Index)

	stored, err := env.attendanceRepo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, stored.Hours.Equal(hours), "locked row must keep its hours")
}

func TestImportPerItemIsolation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	w := env.createWorker(t, "Erkin Nazarov", nil)
	unknown := uuid.NewString()

	result, err := env.svc.Import(ctx, testActor(), timeclock.ImportRequest{Items: []timeclock.RawPunchItem{
		{WorkerID: &unknown, Date: strPtr("2026-08-03"), Hours: dec("8")},
		{WorkerID: &w.ID, Date: strPtr("2026-08-03"), Hours: dec("8")},
		{WorkerID: &w.ID, Hours: dec("8")},
	}})
	require.NoError(t, err)

	assert.Equal(t, 3, result.ItemsCount)
	assert.Equal(t, 1, result.CreatedCount)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, timeclock.CodeNotFound, result.Errors[0].Code)
	assert.Equal(t, timeclock.CodeMissingDate, result.Errors[1].Code)
	assert.Equal(t, 2, result.Errors[1].Index)
}

func TestImportBatchFatalWritesNoRunRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	w := env.createWorker(t, "Farrukh Toshev", nil)
	missingProject := uuid.NewString()

	_, err := env.svc.Import(ctx, testActor(), timeclock.ImportRequest{
		Items:            []timeclock.RawPunchItem{{WorkerID: &w.ID, Date: strPtr("2026-08-03"), Hours: dec("8")}},
		DefaultProjectID: &missingProject,
	})
	require.ErrorIs(t, err, timeclock.ErrDefaultProjectNotFound)

	_, err = env.svc.Import(ctx, testActor(), timeclock.ImportRequest{})
	require.ErrorIs(t, err, timeclock.ErrMissingItems)

	runs, err := env.runLogRepo.ListImportRuns(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestImportRecordsRunRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	w := env.createWorker(t, "Gulnora Azimova", nil)

	result, err := env.svc.Import(ctx, testActor(), timeclock.ImportRequest{
		Items:  []timeclock.RawPunchItem{{WorkerID: &w.ID, Date: strPtr("2026-08-03"), Hours: dec("8")}},
		DryRun: true,
	})
	require.NoError(t, err)

	runs, err := env.runLogRepo.ListImportRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, result.RunID, runs[0].ID)
	assert.True(t, runs[0].DryRun)
	assert.Equal(t, runlog.SourceManual, runs[0].Source)
	assert.Equal(t, "op-1", runs[0].ActorID)
	assert.Equal(t, 1, runs[0].ItemsCount)
	assert.Equal(t, 1, runs[0].CreatedCount)
}

func TestImportProjectMapping(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	w := env.createWorker(t, "Hasan Olimov", nil)
	projectID := env.createProject(t, "Terminal site")
	unknownProject := uuid.NewString()

	result, err := env.svc.Import(ctx, testActor(), timeclock.ImportRequest{
		Items: []timeclock.RawPunchItem{
			{WorkerID: &w.ID, Date: strPtr("2026-08-03"), Hours: dec("8")},
			{WorkerID: &w.ID, Date: strPtr("2026-08-04"), Hours: dec("8"), ProjectID: &unknownProject},
		},
		DefaultProjectID: &projectID,
	})
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	require.NotNil(t, result.Results[0].ProjectID)
	assert.Equal(t, projectID, *result.Results[0].ProjectID)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, timeclock.CodeProjectNotFound, result.Errors[0].Code)
}

func TestImportFolder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	clockID := "TC-100"
	env.createWorker(t, "Iskandar Sharipov", &clockID)

	jsonBody := []byte(`[{"time_clock_id": "TC-100", "date": "2026-08-03", "hours": 8}]`)
	csvBody := []byte("time_clock_id,date,hours\nTC-100,2026-08-04,6\n")
	require.NoError(t, os.WriteFile(filepath.Join(env.importDir, "day1.json"), jsonBody, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(env.importDir, "day2.csv"), csvBody, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(env.importDir, "broken.json"), []byte("{"), 0o644))

	result, err := env.svc.ImportFolder(ctx, testActor(), timeclock.FolderImportRequest{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.CreatedCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, timeclock.CodeInvalidFile, result.Errors[0].Code)
	require.NotNil(t, result.Errors[0].SourceFile)
	assert.Equal(t, "broken.json", *result.Errors[0].SourceFile)

	// Provenance survives into per-item results.
	for _, res := range result.Results {
		require.NotNil(t, res.SourceFile)
	}

	runs, err := env.runLogRepo.ListImportRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runlog.SourceFolder, runs[0].Source)
}

func TestImportFolderEmptyDir(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.ImportFolder(context.Background(), testActor(), timeclock.FolderImportRequest{})
	require.ErrorIs(t, err, timeclock.ErrMissingItems)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return parsed
}
