package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	scoreController "storeops_backend/internals/features/tasks/scores/controller"
)

func StaffWeekScoreUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := scoreController.NewStaffWeekScoreController(db)
	router.Get("/week-scores", ctrl.ListMine)
}
