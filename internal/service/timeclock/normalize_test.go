package timeclock

import (
	"testing"

	"github.com/samarqand/backoffice-go/internal/domain/attendance"
	"github.com/samarqand/backoffice-go/internal/domain/timeclock"
	"github.com/samarqand/backoffice-go/internal/domain/worker"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoster() rosterSnapshot {
	clockID := "TC-100"
	w1 := worker.Worker{ID: "11111111-1111-1111-1111-111111111111", Name: "Aziz Karimov"}
	w2 := worker.Worker{ID: "22222222-2222-2222-2222-222222222222", Name: "Dilshod Rahimov", TimeClockID: &clockID}

	return rosterSnapshot{
		idMap:    map[string]worker.Worker{w1.ID: w1, w2.ID: w2},
		clockMap: map[string]worker.Worker{clockID: w2},
	}
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestNormalizeItemWorkerResolution(t *testing.T) {
	roster := testRoster()

	tests := []struct {
		name     string
		item     timeclock.RawPunchItem
		wantCode string
	}{
		{
			name:     "no worker reference",
			item:     timeclock.RawPunchItem{Date: strPtr("2026-08-03"), Hours: dec("8")},
			wantCode: timeclock.CodeMissingWorkerRef,
		},
		{
			name: "both references",
			item: timeclock.RawPunchItem{
				WorkerID:    strPtr("11111111-1111-1111-1111-111111111111"),
				TimeClockID: strPtr("TC-100"),
				Date:        strPtr("2026-08-03"),
				Hours:       dec("8"),
			},
			wantCode: timeclock.CodeAmbiguousWorker,
		},
		{
			name: "unknown worker id",
			item: timeclock.RawPunchItem{
				WorkerID: strPtr("99999999-9999-9999-9999-999999999999"),
				Date:     strPtr("2026-08-03"),
				Hours:    dec("8"),
			},
			wantCode: timeclock.CodeNotFound,
		},
		{
			name: "unknown time clock id",
			item: timeclock.RawPunchItem{
				TimeClockID: strPtr("TC-999"),
				Date:        strPtr("2026-08-03"),
				Hours:       dec("8"),
			},
			wantCode: timeclock.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			norm, itemError := normalizeItem(0, tt.item, roster, nil)
			require.Nil(t, norm)
			require.NotNil(t, itemError)
			assert.Equal(t, tt.wantCode, itemError.Code)
		})
	}
}

func TestNormalizeItemResolvesByTimeClockID(t *testing.T) {
	roster := testRoster()

	norm, itemError := normalizeItem(0, timeclock.RawPunchItem{
		TimeClockID: strPtr("TC-100"),
		Date:        strPtr("2026-08-03"),
		Hours:       dec("8"),
	}, roster, nil)

	require.Nil(t, itemError)
	require.NotNil(t, norm)
	assert.Equal(t, "22222222-2222-2222-2222-222222222222", norm.worker.ID)
	assert.Equal(t, attendance.StatusPresent, norm.status)
	assert.True(t, norm.hours.Equal(decimal.NewFromInt(8)))
}

func TestNormalizeItemDateHandling(t *testing.T) {
	roster := testRoster()
	workerID := "11111111-1111-1111-1111-111111111111"

	tests := []struct {
		name     string
		date     *string
		wantCode string
	}{
		{name: "missing date", date: nil, wantCode: timeclock.CodeMissingDate},
		{name: "empty date", date: strPtr(""), wantCode: timeclock.CodeMissingDate},
		{name: "bad format", date: strPtr("03/08/2026"), wantCode: timeclock.CodeInvalidDate},
		{name: "impossible date", date: strPtr("2026-02-30"), wantCode: timeclock.CodeInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, itemError := normalizeItem(0, timeclock.RawPunchItem{
				WorkerID: &workerID,
				Date:     tt.date,
				Hours:    dec("8"),
			}, roster, nil)
			require.NotNil(t, itemError)
			assert.Equal(t, tt.wantCode, itemError.Code)
		})
	}
}

func TestNormalizeItemDurationResolution(t *testing.T) {
	roster := testRoster()
	workerID := "11111111-1111-1111-1111-111111111111"

	tests := []struct {
		name       string
		item       timeclock.RawPunchItem
		wantHours  string
		wantStatus attendance.Status
		wantCode   string
	}{
		{
			name:       "explicit hours",
			item:       timeclock.RawPunchItem{Hours: dec("7.5")},
			wantHours:  "7.5",
			wantStatus: attendance.StatusPresent,
		},
		{
			name:     "negative hours",
			item:     timeclock.RawPunchItem{Hours: dec("-1")},
			wantCode: timeclock.CodeInvalidHours,
		},
		{
			name:     "hours above a day",
			item:     timeclock.RawPunchItem{Hours: dec("25")},
			wantCode: timeclock.CodeInvalidHours,
		},
		{
			name:       "time of day pair",
			item:       timeclock.RawPunchItem{CheckIn: strPtr("08:00"), CheckOut: strPtr("16:30")},
			wantHours:  "8.5",
			wantStatus: attendance.StatusPresent,
		},
		{
			name:       "overnight pair rolls forward",
			item:       timeclock.RawPunchItem{CheckIn: strPtr("22:00"), CheckOut: strPtr("06:00")},
			wantHours:  "8",
			wantStatus: attendance.StatusPresent,
		},
		{
			name:     "check in without check out",
			item:     timeclock.RawPunchItem{CheckIn: strPtr("08:00")},
			wantCode: timeclock.CodeInvalidCheckPair,
		},
		{
			name: "timestamp pair",
			item: timeclock.RawPunchItem{
				CheckInAt:  strPtr("2026-08-03T08:00:00Z"),
				CheckOutAt: strPtr("2026-08-03T12:00:00Z"),
			},
			wantHours:  "4",
			wantStatus: attendance.StatusPresent,
		},
		{
			name: "timestamp pair out of order",
			item: timeclock.RawPunchItem{
				CheckInAt:  strPtr("2026-08-03T12:00:00Z"),
				CheckOutAt: strPtr("2026-08-03T08:00:00Z"),
			},
			wantCode: timeclock.CodeInvalidCheckPair,
		},
		{
			name: "timestamp pair spanning beyond a day",
			item: timeclock.RawPunchItem{
				CheckInAt:  strPtr("2026-08-03T08:00:00Z"),
				CheckOutAt: strPtr("2026-08-05T08:00:00Z"),
			},
			wantCode: timeclock.CodeInvalidCheckPair,
		},
		{
			name:     "no duration signal at all",
			item:     timeclock.RawPunchItem{},
			wantCode: timeclock.CodeMissingDuration,
		},
		{
			name:       "status only",
			item:       timeclock.RawPunchItem{Status: strPtr("leave")},
			wantStatus: attendance.StatusLeave,
		},
		{
			name:     "invalid status",
			item:     timeclock.RawPunchItem{Status: strPtr("vacationing")},
			wantCode: timeclock.CodeInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := tt.item
			item.WorkerID = &workerID
			item.Date = strPtr("2026-08-03")

			norm, itemError := normalizeItem(0, item, roster, nil)
			if tt.wantCode != "" {
				require.NotNil(t, itemError)
				assert.Equal(t, tt.wantCode, itemError.Code)
				return
			}

			require.Nil(t, itemError)
			require.NotNil(t, norm)
			assert.Equal(t, tt.wantStatus, norm.status)
			if tt.wantHours != "" {
				require.NotNil(t, norm.hours)
				assert.True(t, norm.hours.Equal(decimal.RequireFromString(tt.wantHours)),
					"got %s, want %s", norm.hours, tt.wantHours)
			}
		})
	}
}

func TestNormalizeItemStatusDefaulting(t *testing.T) {
	roster := testRoster()
	workerID := "11111111-1111-1111-1111-111111111111"

	tests := []struct {
		hours string
		want  attendance.Status
	}{
		{hours: "0", want: attendance.StatusAbsent},
		{hours: "3.99", want: attendance.StatusHalfDay},
		{hours: "4", want: attendance.StatusPresent},
		{hours: "8", want: attendance.StatusPresent},
	}

	for _, tt := range tests {
		norm, itemError := normalizeItem(0, timeclock.RawPunchItem{
			WorkerID: &workerID,
			Date:     strPtr("2026-08-03"),
			Hours:    dec(tt.hours),
		}, roster, nil)
		require.Nil(t, itemError)
		assert.Equal(t, tt.want, norm.status, "hours %s", tt.hours)
	}
}

func TestNormalizeItemExplicitStatusWins(t *testing.T) {
	roster := testRoster()
	workerID := "11111111-1111-1111-1111-111111111111"

	// Two computed hours, but the punch says half_day.
	norm, itemError := normalizeItem(0, timeclock.RawPunchItem{
		WorkerID: &workerID,
		Date:     strPtr("2026-08-03"),
		Hours:    dec("8"),
		Status:   strPtr("half_day"),
	}, roster, nil)

	require.Nil(t, itemError)
	assert.Equal(t, attendance.StatusHalfDay, norm.status)
	assert.True(t, norm.hours.Equal(decimal.NewFromInt(8)))
}

func TestNormalizeItemProjectFallback(t *testing.T) {
	roster := testRoster()
	workerID := "11111111-1111-1111-1111-111111111111"
	defaultProject := "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	explicit := "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"

	norm, itemError := normalizeItem(0, timeclock.RawPunchItem{
		WorkerID: &workerID,
		Date:     strPtr("2026-08-03"),
		Hours:    dec("8"),
	}, roster, &defaultProject)
	require.Nil(t, itemError)
	require.NotNil(t, norm.projectID)
	assert.Equal(t, defaultProject, *norm.projectID)

	norm, itemError = normalizeItem(0, timeclock.RawPunchItem{
		WorkerID:  &workerID,
		Date:      strPtr("2026-08-03"),
		Hours:     dec("8"),
		ProjectID: &explicit,
	}, roster, &defaultProject)
	require.Nil(t, itemError)
	require.NotNil(t, norm.projectID)
	assert.Equal(t, explicit, *norm.projectID)

	// An explicit empty string counts as unset, not as a reference to a
	// project named "".
	empty := ""
	norm, itemError = normalizeItem(0, timeclock.RawPunchItem{
		WorkerID:  &workerID,
		Date:      strPtr("2026-08-03"),
		Hours:     dec("8"),
		ProjectID: &empty,
	}, roster, &defaultProject)
	require.Nil(t, itemError)
	require.NotNil(t, norm.projectID)
	assert.Equal(t, defaultProject, *norm.projectID)
}
