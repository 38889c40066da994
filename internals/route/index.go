// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"storeops_backend/internals/configs"
	asgRoute "storeops_backend/internals/features/tasks/assignments/route"
	jobRoute "storeops_backend/internals/features/tasks/jobs/route"
	occRoute "storeops_backend/internals/features/tasks/occurrences/route"
	scoreRoute "storeops_backend/internals/features/tasks/scores/route"
	tplRoute "storeops_backend/internals/features/tasks/templates/route"
	"storeops_backend/internals/middlewares"
	authmw "storeops_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== JOBS (cron trigger) =====================
	log.Println("[INFO] Setting up JOBS group...")
	jobs := app.Group("/api/jobs", middlewares.JobTriggerRateLimiter())
	jobRoute.JobRoutes(jobs, db)

	// ===================== STAFF =====================
	log.Println("[INFO] Setting up STAFF group...")
	staff := app.Group("/api/u",
		authmw.AuthJWT(authmw.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
	)
	occRoute.TaskOccurrenceUserRoutes(staff, db)
	scoreRoute.StaffWeekScoreUserRoutes(staff, db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authmw.AuthJWT(authmw.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
		authmw.RequireRole("admin", "manager"),
	)
	tplRoute.TaskTemplateAdminRoutes(admin, db)
	asgRoute.TaskAssignmentAdminRoutes(admin, db)
	scoreRoute.StaffWeekScoreAdminRoutes(admin, db)
}
