package attendance

import (
	"context"
	"os"
	"testing"

	"github.com/samarqand/backoffice-go/internal/domain/attendance"
	"github.com/samarqand/backoffice-go/internal/domain/runlog"
	"github.com/samarqand/backoffice-go/internal/domain/worker"
	"github.com/samarqand/backoffice-go/internal/repository/postgresql"
	postgresqltest "github.com/samarqand/backoffice-go/internal/repository/postgresql/postgresql_test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	setup      *postgresqltest.TestDatabaseSetup
	workerRepo worker.WorkerRepository
	svc        attendance.AttendanceService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	setup, err := postgresqltest.NewTestDatabase()
	require.NoError(t, err)
	t.Cleanup(setup.Close)
	require.NoError(t, setup.TruncateAllTables(context.Background()))

	workerRepo := postgresql.NewWorkerRepository(setup.DB)
	projectRepo := postgresql.NewProjectRepository(setup.DB)
	attendanceRepo := postgresql.NewAttendanceRepository(setup.DB)

	return &testEnv{
		setup:      setup,
		workerRepo: workerRepo,
		svc:        NewAttendanceService(setup.DB, attendanceRepo, workerRepo, projectRepo),
	}
}

func (e *testEnv) createWorker(t *testing.T, name string) worker.Worker {
	t.Helper()
	w, err := e.workerRepo.Create(context.Background(), worker.Worker{
		Kind:   worker.KindWorker,
		Active: true,
		Name:   name,
	})
	require.NoError(t, err)
	return w
}

func (e *testEnv) createRecord(t *testing.T, workerID, date string) attendance.AttendanceResponse {
	t.Helper()
	hours := decimal.NewFromInt(8)
	rec, err := e.svc.Create(context.Background(), operator(), attendance.CreateAttendanceRequest{
		WorkerID: workerID,
		Date:     date,
		Status:   "present",
		Hours:    &hours,
	})
	require.NoError(t, err)
	return rec
}

func operator() runlog.Actor {
	return runlog.Actor{ID: "op-1", Role: runlog.RoleOperator}
}

func admin() runlog.Actor {
	return runlog.Actor{ID: "adm-1", Role: runlog.RoleAdmin}
}

func TestCreateManualRecord(t *testing.T) {
	env := newTestEnv(t)
	w := env.createWorker(t, "Aziz Karimov")

	rec := env.createRecord(t, w.ID, "2026-08-03")
	assert.Equal(t, "unapproved", rec.ApprovalState)
	assert.False(t, rec.Locked)
	require.NotNil(t, rec.WorkerName)
	assert.Equal(t, "Aziz Karimov", *rec.WorkerName)

	// Same worker, same date refuses.
	hours := decimal.NewFromInt(4)
	_, err := env.svc.Create(context.Background(), operator(), attendance.CreateAttendanceRequest{
		WorkerID: w.ID,
		Date:     "2026-08-03",
		Status:   "half_day",
		Hours:    &hours,
	})
	require.ErrorIs(t, err, attendance.ErrDuplicateAttendance)
}

func TestCreateUnknownWorker(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Create(context.Background(), operator(), attendance.CreateAttendanceRequest{
		WorkerID: "99999999-9999-9999-9999-999999999999",
		Date:     "2026-08-03",
		Status:   "present",
	})
	require.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestApprovalTransitions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	w := env.createWorker(t, "Dilshod Rahimov")
	rec := env.createRecord(t, w.ID, "2026-08-03")

	// Locking an unapproved record fails.
	_, err := env.svc.Lock(ctx, operator(), rec.ID)
	require.ErrorIs(t, err, attendance.ErrAttendanceNotApproved)

	approved, err := env.svc.Approve(ctx, operator(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.ApprovalState)

	// Approving twice fails.
	_, err = env.svc.Approve(ctx, operator(), rec.ID)
	require.ErrorIs(t, err, attendance.ErrAttendanceAlreadyApproved)

	locked, err := env.svc.Lock(ctx, operator(), rec.ID)
	require.NoError(t, err)
	assert.True(t, locked.Locked)

	// Locking twice fails.
	_, err = env.svc.Lock(ctx, operator(), rec.ID)
	require.ErrorIs(t, err, attendance.ErrAttendanceLocked)
}

func TestLockedRecordRefusesEdits(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	w := env.createWorker(t, "Bekzod Yusupov")
	rec := env.createRecord(t, w.ID, "2026-08-03")

	_, err := env.svc.Approve(ctx, operator(), rec.ID)
	require.NoError(t, err)
	_, err = env.svc.Lock(ctx, operator(), rec.ID)
	require.NoError(t, err)

	status := "absent"
	_, err = env.svc.Update(ctx, operator(), attendance.UpdateAttendanceRequest{ID: rec.ID, Status: &status})
	require.ErrorIs(t, err, attendance.ErrAttendanceLocked)

	err = env.svc.Delete(ctx, operator(), rec.ID)
	require.ErrorIs(t, err, attendance.ErrAttendanceLocked)
}

func TestEditApprovedResetsApproval(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	w := env.createWorker(t, "Erkin Nazarov")
	rec := env.createRecord(t, w.ID, "2026-08-03")

	_, err := env.svc.Approve(ctx, operator(), rec.ID)
	require.NoError(t, err)

	status := "half_day"
	updated, err := env.svc.Update(ctx, operator(), attendance.UpdateAttendanceRequest{ID: rec.ID, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "half_day", updated.Status)
	assert.Equal(t, "unapproved", updated.ApprovalState)
}

func TestUnlockIsAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	w := env.createWorker(t, "Farrukh Toshev")
	rec := env.createRecord(t, w.ID, "2026-08-03")

	_, err := env.svc.Approve(ctx, operator(), rec.ID)
	require.NoError(t, err)
	_, err = env.svc.Lock(ctx, operator(), rec.ID)
	require.NoError(t, err)

	_, err = env.svc.Unlock(ctx, operator(), rec.ID)
	require.ErrorIs(t, err, attendance.ErrUnlockForbidden)

	unlocked, err := env.svc.Unlock(ctx, admin(), rec.ID)
	require.NoError(t, err)
	assert.False(t, unlocked.Locked)
	// Returns to approved, not unapproved.
	assert.Equal(t, "approved", unlocked.ApprovalState)

	// Unlocking an unlocked record fails.
	_, err = env.svc.Unlock(ctx, admin(), rec.ID)
	require.ErrorIs(t, err, attendance.ErrAttendanceNotLocked)
}

func TestListFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	w1 := env.createWorker(t, "Gulnora Azimova")
	w2 := env.createWorker(t, "Hasan Olimov")

	env.createRecord(t, w1.ID, "2026-08-03")
	env.createRecord(t, w1.ID, "2026-08-04")
	env.createRecord(t, w2.ID, "2026-08-03")

	result, err := env.svc.List(ctx, attendance.AttendanceFilter{WorkerID: &w1.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.TotalCount)

	from := "2026-08-04"
	result, err = env.svc.List(ctx, attendance.AttendanceFilter{DateFrom: &from})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalCount)
}
