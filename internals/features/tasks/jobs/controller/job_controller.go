// file: internals/features/tasks/jobs/controller/job_controller.go
package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"storeops_backend/internals/configs"
	occService "storeops_backend/internals/features/tasks/occurrences/service"
	scoreService "storeops_backend/internals/features/tasks/scores/service"
	helper "storeops_backend/internals/helpers"
)

// Job trigger types.
const (
	JobExpandWeek  = "expand-week"  // daily + weekly + once occurrences for the current week
	JobExpandMonth = "expand-month" // monthly occurrences for the current month
	JobReconcile   = "reconcile"    // standalone staleness sweep
	JobScoreWeek   = "score-week"   // weekly scores (previous week by default)
)

// JobController is the cron-facing batch surface. The external scheduler
// calls it in sequence: expand → reconcile → score. Every pass is
// idempotent, so a retried tick is harmless.
type JobController struct {
	DB *gorm.DB
}

func NewJobController(db *gorm.DB) *JobController {
	return &JobController{DB: db}
}

// 🟣 POST /api/jobs/run?type=<job>
// Guarded by X-Cron-Key against CRON_SECRET.
func (ctrl *JobController) Run(c *fiber.Ctx) error {
	secret := configs.CronSecret
	if secret == "" || c.Get("X-Cron-Key") != secret {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	jobType := c.Query("type")
	now := time.Now()
	loc := configs.StoreLocation
	if loc == nil {
		loc = time.UTC
	}

	var (
		affected int64
		err      error
	)

	switch jobType {
	case JobExpandWeek:
		gen := &occService.Generator{DB: ctrl.DB}
		var n int
		n, err = gen.ExpandWeek(c.UserContext(), now, &occService.GenerateOptions{Loc: loc})
		affected = int64(n)

	case JobExpandMonth:
		gen := &occService.Generator{DB: ctrl.DB}
		var n int
		n, err = gen.ExpandMonth(c.UserContext(), now, &occService.GenerateOptions{Loc: loc})
		affected = int64(n)

	case JobReconcile:
		rec := &occService.Reconciler{DB: ctrl.DB}
		affected, err = rec.MarkLate(c.UserContext(), now)

	case JobScoreWeek:
		// Previous completed week by default; week=YYYY-MM-DD overrides.
		// Parsed in the store zone: a UTC parse would land the instant
		// on the previous local day in any zone behind UTC and score
		// the wrong week.
		weekRef := now.AddDate(0, 0, -7)
		if v := c.Query("week"); v != "" {
			d, er := time.ParseInLocation("2006-01-02", v, loc)
			if er != nil {
				return helper.Error(c, fiber.StatusBadRequest, "week must be YYYY-MM-DD")
			}
			weekRef = d
		}
		sc := &scoreService.Scorer{DB: ctrl.DB}
		var n int
		n, err = sc.ComputeWeek(c.UserContext(), now, weekRef, loc)
		affected = int64(n)

	default:
		return helper.Error(c, fiber.StatusBadRequest,
			"type must be one of: expand-week, expand-month, reconcile, score-week")
	}

	if err != nil {
		log.Printf("[JOBS] %s failed: %v", jobType, err)
		return helper.FromTaskError(c, err)
	}

	log.Printf("[JOBS] %s done, affected=%d", jobType, affected)
	return helper.Success(c, "Job finished", fiber.Map{
		"type":     jobType,
		"affected": affected,
	})
}
