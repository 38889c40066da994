// file: internals/features/tasks/occurrences/service/generate_occurrences_service_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	taskerrors "storeops_backend/internals/features/tasks/errors"
	"storeops_backend/internals/features/tasks/occurrences/model"
)

var assignmentCols = []string{
	"assignment_id", "staff_id", "store_id", "template_id",
	"title", "recurrence", "target_count", "due_str",
	"requires_proof", "reward_points",
}

func strPtr(s string) *string { return &s }

func sampleRow(recurrence string, due *string) assignmentRow {
	return assignmentRow{
		AssignmentID:  uuid.New(),
		StaffID:       uuid.New(),
		StoreID:       uuid.New(),
		TemplateID:    uuid.New(),
		Title:         "Clean espresso machine",
		Recurrence:    recurrence,
		TargetCount:   1,
		DueStr:        due,
		RequiresProof: false,
		RewardPoints:  5,
	}
}

/* =========================
   buildOccurrence
========================= */

func TestBuildOccurrence_SnapshotAndDue(t *testing.T) {
	r := sampleRow("daily", strPtr("17:00:00"))
	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)

	occ := buildOccurrence(r, day, now, time.UTC)

	require.NotNil(t, occ.TaskOccurrenceAssignmentID)
	assert.Equal(t, r.AssignmentID, *occ.TaskOccurrenceAssignmentID)
	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), occ.TaskOccurrenceDate)
	assert.Equal(t, "Clean espresso machine", occ.TaskOccurrenceTitle)
	assert.Equal(t, model.OccurrenceStatusPending, occ.TaskOccurrenceStatus)
	assert.Equal(t, 0, occ.TaskOccurrenceProgressCount)
	assert.Equal(t, 5, occ.TaskOccurrenceRewardPoints)

	require.NotNil(t, occ.TaskOccurrenceDueAt)
	assert.Equal(t, time.Date(2026, 8, 24, 17, 0, 0, 0, time.UTC), *occ.TaskOccurrenceDueAt)

	assert.Equal(t, r.TemplateID.String(), occ.TaskOccurrenceTemplateSnapshot["template_id"])
	assert.Equal(t, "daily", occ.TaskOccurrenceTemplateSnapshot["recurrence"])
	assert.Equal(t, "17:00:00", occ.TaskOccurrenceTemplateSnapshot["due_time"])
}

func TestBuildOccurrence_LateAtBirth(t *testing.T) {
	// Generation running after the due moment must not leave the row
	// PENDING for the reconciler to catch later.
	r := sampleRow("daily", strPtr("09:00:00"))
	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	occ := buildOccurrence(r, day, now, time.UTC)
	assert.Equal(t, model.OccurrenceStatusLate, occ.TaskOccurrenceStatus)
}

func TestBuildOccurrence_DueTimeResolvedInStoreZone(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	r := sampleRow("daily", strPtr("17:00:00"))
	day := time.Date(2026, 8, 24, 0, 0, 0, 0, jakarta)
	now := time.Date(2026, 8, 24, 1, 0, 0, 0, time.UTC)

	occ := buildOccurrence(r, day, now, jakarta)
	require.NotNil(t, occ.TaskOccurrenceDueAt)
	assert.Equal(t, time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC), *occ.TaskOccurrenceDueAt)
}

func TestBuildOccurrence_NoDueTimeStaysPending(t *testing.T) {
	r := sampleRow("weekly", nil)
	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 30, 23, 0, 0, 0, time.UTC)

	occ := buildOccurrence(r, day, now, time.UTC)
	assert.Nil(t, occ.TaskOccurrenceDueAt)
	assert.Equal(t, model.OccurrenceStatusPending, occ.TaskOccurrenceStatus)
	_, hasDue := occ.TaskOccurrenceTemplateSnapshot["due_time"]
	assert.False(t, hasDue)
}

func TestBuildOccurrence_TargetClampedToOne(t *testing.T) {
	r := sampleRow("daily", nil)
	r.TargetCount = 0

	occ := buildOccurrence(r, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), time.Now(), time.UTC)
	assert.Equal(t, 1, occ.TaskOccurrenceTargetCount)
}

/* =========================
   Expansion passes
========================= */

func TestExpandWeek_DailyGetsSevenRowsWeeklyGetsOne(t *testing.T) {
	gdb, mock := newTestDB(t)

	daily := sampleRow("daily", strPtr("17:00:00"))
	weekly := sampleRow("weekly", nil)

	mock.ExpectQuery(`(?s)SELECT.+FROM task_assignments ta`).
		WillReturnRows(sqlmock.NewRows(assignmentCols).
			AddRow(daily.AssignmentID.String(), daily.StaffID.String(), daily.StoreID.String(), daily.TemplateID.String(),
				daily.Title, daily.Recurrence, daily.TargetCount, *daily.DueStr, daily.RequiresProof, daily.RewardPoints).
			AddRow(weekly.AssignmentID.String(), weekly.StaffID.String(), weekly.StoreID.String(), weekly.TemplateID.String(),
				weekly.Title, weekly.Recurrence, weekly.TargetCount, nil, weekly.RequiresProof, weekly.RewardPoints))

	// 7 daily + 1 weekly rows in one batch insert.
	mock.ExpectExec(`INSERT INTO "task_occurrences"`).
		WillReturnResult(sqlmock.NewResult(0, 8))

	gen := &Generator{DB: gdb}
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	n, err := gen.ExpandWeek(context.Background(), now, &GenerateOptions{Loc: time.UTC})
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpandWeek_RerunIsNoOp(t *testing.T) {
	gdb, mock := newTestDB(t)

	daily := sampleRow("daily", nil)
	mock.ExpectQuery(`(?s)SELECT.+FROM task_assignments ta`).
		WillReturnRows(sqlmock.NewRows(assignmentCols).
			AddRow(daily.AssignmentID.String(), daily.StaffID.String(), daily.StoreID.String(), daily.TemplateID.String(),
				daily.Title, daily.Recurrence, daily.TargetCount, nil, daily.RequiresProof, daily.RewardPoints))

	// ON CONFLICT DO NOTHING: every row already exists, zero affected.
	mock.ExpectExec(`INSERT INTO "task_occurrences"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	gen := &Generator{DB: gdb}
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	n, err := gen.ExpandWeek(context.Background(), now, &GenerateOptions{Loc: time.UTC})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpandWeek_NoActiveAssignments(t *testing.T) {
	gdb, mock := newTestDB(t)

	mock.ExpectQuery(`(?s)SELECT.+FROM task_assignments ta`).
		WillReturnRows(sqlmock.NewRows(assignmentCols))

	gen := &Generator{DB: gdb}
	n, err := gen.ExpandWeek(context.Background(), time.Now(), &GenerateOptions{Loc: time.UTC})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpandWeek_ReadFailureWrapped(t *testing.T) {
	gdb, mock := newTestDB(t)

	mock.ExpectQuery(`(?s)SELECT.+FROM task_assignments ta`).
		WillReturnError(errors.New("connection refused"))

	gen := &Generator{DB: gdb}
	_, err := gen.ExpandWeek(context.Background(), time.Now(), &GenerateOptions{Loc: time.UTC})

	var readErr *taskerrors.DependencyReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, "task_assignments", readErr.Source)
}

func TestExpandMonth_OneRowAtMonthStart(t *testing.T) {
	gdb, mock := newTestDB(t)

	monthly := sampleRow("monthly", strPtr("12:00:00"))
	mock.ExpectQuery(`(?s)SELECT.+FROM task_assignments ta`).
		WillReturnRows(sqlmock.NewRows(assignmentCols).
			AddRow(monthly.AssignmentID.String(), monthly.StaffID.String(), monthly.StoreID.String(), monthly.TemplateID.String(),
				monthly.Title, monthly.Recurrence, monthly.TargetCount, *monthly.DueStr, monthly.RequiresProof, monthly.RewardPoints))

	mock.ExpectExec(`INSERT INTO "task_occurrences"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	gen := &Generator{DB: gdb}
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	n, err := gen.ExpandMonth(context.Background(), now, &GenerateOptions{Loc: time.UTC})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateOptions_Defaults(t *testing.T) {
	var o *GenerateOptions
	got := o.withDefaults()
	assert.NotNil(t, got.Loc)
	assert.Equal(t, 500, got.BatchSize)

	got = (&GenerateOptions{BatchSize: 50}).withDefaults()
	assert.Equal(t, 50, got.BatchSize)
}
