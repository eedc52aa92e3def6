package postgresqltest

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/samarqand/backoffice-go/internal/domain/attendance"
	"github.com/samarqand/backoffice-go/internal/domain/worker"
	"github.com/samarqand/backoffice-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAttendanceRepo(t *testing.T) (attendance.AttendanceRepository, worker.Worker) {
	t.Helper()
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	setup, err := NewTestDatabase()
	require.NoError(t, err)
	t.Cleanup(setup.Close)
	require.NoError(t, setup.TruncateAllTables(context.Background()))

	w, err := postgresql.NewWorkerRepository(setup.DB).Create(context.Background(), worker.Worker{
		Kind: worker.KindWorker, Active: true, Name: "Aziz Karimov",
	})
	require.NoError(t, err)

	return postgresql.NewAttendanceRepository(setup.DB), w
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAttendanceUpsertInsertThenUpdate(t *testing.T) {
	repo, w := setupAttendanceRepo(t)
	ctx := context.Background()
	day := date(2026, 8, 3)

	hours := decimal.NewFromInt(8)
	first, inserted, err := repo.Upsert(ctx, attendance.AttendanceRecord{
		WorkerID: w.ID, Date: day, Status: attendance.StatusPresent, Hours: &hours,
	})
	require.NoError(t, err)
	assert.True(t, inserted)

	less := decimal.NewFromInt(6)
	second, inserted, err := repo.Upsert(ctx, attendance.AttendanceRecord{
		WorkerID: w.ID, Date: day, Status: attendance.StatusPresent, Hours: &less,
	})
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Hours.Equal(less))
}

func TestAttendanceUpsertResetsApproval(t *testing.T) {
	repo, w := setupAttendanceRepo(t)
	ctx := context.Background()
	day := date(2026, 8, 3)

	rec, _, err := repo.Upsert(ctx, attendance.AttendanceRecord{
		WorkerID: w.ID, Date: day, Status: attendance.StatusPresent,
	})
	require.NoError(t, err)
	require.NoError(t, repo.SetApprovalState(ctx, rec.ID, attendance.ApprovalApproved, false))

	merged, _, err := repo.Upsert(ctx, attendance.AttendanceRecord{
		WorkerID: w.ID, Date: day, Status: attendance.StatusHalfDay,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.ApprovalUnapproved, merged.ApprovalState)
}

func TestAttendanceUpsertRefusesLocked(t *testing.T) {
	repo, w := setupAttendanceRepo(t)
	ctx := context.Background()
	day := date(2026, 8, 3)

	rec, _, err := repo.Upsert(ctx, attendance.AttendanceRecord{
		WorkerID: w.ID, Date: day, Status: attendance.StatusPresent,
	})
	require.NoError(t, err)
	require.NoError(t, repo.SetApprovalState(ctx, rec.ID, attendance.ApprovalApproved, true))

	_, _, err = repo.Upsert(ctx, attendance.AttendanceRecord{
		WorkerID: w.ID, Date: day, Status: attendance.StatusAbsent,
	})
	require.ErrorIs(t, err, attendance.ErrAttendanceLocked)

	stored, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, stored.Status)
}

func TestAttendanceUpdateRefusesLocked(t *testing.T) {
	repo, w := setupAttendanceRepo(t)
	ctx := context.Background()

	rec, _, err := repo.Upsert(ctx, attendance.AttendanceRecord{
		WorkerID: w.ID, Date: date(2026, 8, 3), Status: attendance.StatusPresent,
	})
	require.NoError(t, err)
	require.NoError(t, repo.SetApprovalState(ctx, rec.ID, attendance.ApprovalApproved, true))

	rec.Status = attendance.StatusAbsent
	err = repo.Update(ctx, rec)
	require.ErrorIs(t, err, attendance.ErrAttendanceLocked)

	stored, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, stored.Status)
}

func TestAttendanceDeleteRefusesLocked(t *testing.T) {
	repo, w := setupAttendanceRepo(t)
	ctx := context.Background()

	rec, _, err := repo.Upsert(ctx, attendance.AttendanceRecord{
		WorkerID: w.ID, Date: date(2026, 8, 3), Status: attendance.StatusPresent,
	})
	require.NoError(t, err)
	require.NoError(t, repo.SetApprovalState(ctx, rec.ID, attendance.ApprovalApproved, true))

	err = repo.Delete(ctx, rec.ID)
	require.ErrorIs(t, err, attendance.ErrAttendanceLocked)

	_, err = repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
}

func TestAttendanceUpdateAndDeleteMissing(t *testing.T) {
	repo, _ := setupAttendanceRepo(t)
	ctx := context.Background()

	err := repo.Update(ctx, attendance.AttendanceRecord{
		ID: "00000000-0000-0000-0000-000000000000", Status: attendance.StatusPresent,
	})
	require.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	err = repo.Delete(ctx, "00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceCreateDuplicate(t *testing.T) {
	repo, w := setupAttendanceRepo(t)
	ctx := context.Background()
	day := date(2026, 8, 3)

	_, err := repo.Create(ctx, attendance.AttendanceRecord{
		WorkerID: w.ID, Date: day, Status: attendance.StatusPresent,
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendance.AttendanceRecord{
		WorkerID: w.ID, Date: day, Status: attendance.StatusAbsent,
	})
	require.ErrorIs(t, err, attendance.ErrDuplicateAttendance)
}

func TestAttendanceListByWorkerAndPeriod(t *testing.T) {
	repo, w := setupAttendanceRepo(t)
	ctx := context.Background()

	for day := 1; day <= 5; day++ {
		_, _, err := repo.Upsert(ctx, attendance.AttendanceRecord{
			WorkerID: w.ID, Date: date(2026, 8, day), Status: attendance.StatusPresent,
		})
		require.NoError(t, err)
	}
	// A record outside the period stays out of scope.
	_, _, err := repo.Upsert(ctx, attendance.AttendanceRecord{
		WorkerID: w.ID, Date: date(2026, 9, 1), Status: attendance.StatusPresent,
	})
	require.NoError(t, err)

	records, err := repo.ListByWorkerAndPeriod(ctx, w.ID, 2026, 8)
	require.NoError(t, err)
	assert.Len(t, records, 5)
}
