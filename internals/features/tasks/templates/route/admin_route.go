package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	tplController "storeops_backend/internals/features/tasks/templates/controller"
)

func TaskTemplateAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := tplController.NewTaskTemplateController(db)
	r := router.Group("/task-templates")

	r.Post("/", ctrl.Create)
	r.Get("/", ctrl.List)
	r.Get("/:id", ctrl.GetByID)
	r.Put("/:id", ctrl.Update)
	r.Delete("/:id", ctrl.Delete)
}
