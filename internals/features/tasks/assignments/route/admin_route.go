package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	asgController "storeops_backend/internals/features/tasks/assignments/controller"
)

func TaskAssignmentAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := asgController.NewTaskAssignmentController(db)
	r := router.Group("/task-assignments")

	r.Post("/", ctrl.Create)
	r.Get("/", ctrl.List)
	r.Patch("/:id/active", ctrl.SetActive)
	r.Delete("/:id", ctrl.Delete)
}
