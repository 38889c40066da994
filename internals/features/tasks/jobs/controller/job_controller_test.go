// file: internals/features/tasks/jobs/controller/job_controller_test.go
package controller

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"storeops_backend/internals/configs"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gdb, mock
}

func newJobApp(ctrl *JobController) *fiber.App {
	app := fiber.New()
	app.Post("/api/jobs/run", ctrl.Run)
	return app
}

func TestRun_ScoreWeek_WeekParamIsAStoreLocalDay(t *testing.T) {
	gdb, mock := newTestDB(t)

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	prevSecret, prevLoc := configs.CronSecret, configs.StoreLocation
	configs.CronSecret = "cron-test-secret"
	configs.StoreLocation = ny
	t.Cleanup(func() {
		configs.CronSecret = prevSecret
		configs.StoreLocation = prevLoc
	})

	// week=2026-08-24 names Monday the 24th in the store zone. The
	// aggregate must cover that week, not the one before it.
	weekStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 6)

	mock.ExpectExec(`UPDATE "task_occurrences" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`(?s)SELECT.+FROM task_occurrences`).
		WithArgs(weekStart, weekEnd).
		WillReturnRows(sqlmock.NewRows([]string{
			"staff_id", "store_id",
			"total_count", "done_count", "postponed_count", "late_count",
			"reward_points",
		}))

	app := newJobApp(NewJobController(gdb))
	req := httptest.NewRequest(fiber.MethodPost, "/api/jobs/run?type=score-week&week=2026-08-24", nil)
	req.Header.Set("X-Cron-Key", "cron-test-secret")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_RejectsBadCronKey(t *testing.T) {
	gdb, _ := newTestDB(t)

	prevSecret := configs.CronSecret
	configs.CronSecret = "cron-test-secret"
	t.Cleanup(func() { configs.CronSecret = prevSecret })

	app := newJobApp(NewJobController(gdb))
	req := httptest.NewRequest(fiber.MethodPost, "/api/jobs/run?type=reconcile", nil)
	req.Header.Set("X-Cron-Key", "wrong")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRun_UnknownTypeRejected(t *testing.T) {
	gdb, _ := newTestDB(t)

	prevSecret := configs.CronSecret
	configs.CronSecret = "cron-test-secret"
	t.Cleanup(func() { configs.CronSecret = prevSecret })

	app := newJobApp(NewJobController(gdb))
	req := httptest.NewRequest(fiber.MethodPost, "/api/jobs/run?type=expand-year", nil)
	req.Header.Set("X-Cron-Key", "cron-test-secret")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
