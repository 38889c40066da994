package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	occController "storeops_backend/internals/features/tasks/occurrences/controller"
)

func TaskOccurrenceUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := occController.NewTaskOccurrenceController(db)
	r := router.Group("/task-occurrences")

	r.Get("/", ctrl.ListMine)
	r.Post("/:id/increment", ctrl.Increment)
	r.Post("/:id/complete", ctrl.Complete)
	r.Post("/:id/proof", ctrl.CompleteWithProof)
	r.Post("/:id/postpone", ctrl.Postpone)
}
