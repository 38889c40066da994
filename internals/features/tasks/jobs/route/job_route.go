package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	jobController "storeops_backend/internals/features/tasks/jobs/controller"
)

func JobRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := jobController.NewJobController(db)
	router.Post("/run", ctrl.Run)
}
