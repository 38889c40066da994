// file: internals/features/tasks/scores/controller/staff_week_score_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"storeops_backend/internals/features/tasks/scores/model"
	helper "storeops_backend/internals/helpers"
	authmw "storeops_backend/internals/middlewares/auth"
)

type StaffWeekScoreController struct {
	DB *gorm.DB
}

func NewStaffWeekScoreController(db *gorm.DB) *StaffWeekScoreController {
	return &StaffWeekScoreController{DB: db}
}

// 🟢 GET /api/u/week-scores
// The calling staff member's weekly scores, newest week first.
func (ctrl *StaffWeekScoreController) ListMine(c *fiber.Ctx) error {
	staffID, err := authmw.StaffIDFromLocals(c)
	if err != nil {
		return helper.FromTaskError(c, err)
	}

	p := helper.ParsePagination(c, "staff_week_score_week_start", "desc")

	tx := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.StaffWeekScoreModel{}).
		Where("staff_week_score_staff_id = ?", staffID)

	if v := c.Query("week"); v != "" {
		// week_start is stored as a UTC-midnight DATE, so the filter is
		// parsed in UTC on purpose (unlike the job trigger's week
		// parameter, which names a local calendar day).
		d, er := time.Parse("2006-01-02", v)
		if er != nil {
			return helper.Error(c, fiber.StatusBadRequest, "week must be YYYY-MM-DD")
		}
		tx = tx.Where("staff_week_score_week_start = ?", d)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count week scores")
	}

	var rows []model.StaffWeekScoreModel
	if err := tx.Order("staff_week_score_week_start " + p.SortOrder).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list week scores")
	}

	return helper.Success(c, "OK", fiber.Map{
		"items":      rows,
		"pagination": helper.BuildPaginationMeta(p, total),
	})
}

// 🟢 GET /api/a/week-scores
// Admin view: scores across staff, filterable by store and week.
func (ctrl *StaffWeekScoreController) ListAdmin(c *fiber.Ctx) error {
	p := helper.ParsePaginationWith(c, "staff_week_score_week_start", "desc", helper.AdminOpts)

	tx := ctrl.DB.WithContext(c.UserContext()).Model(&model.StaffWeekScoreModel{})
	if v := c.Query("store_id"); v != "" {
		id, er := uuid.Parse(v)
		if er != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid store_id filter")
		}
		tx = tx.Where("staff_week_score_store_id = ?", id)
	}
	if v := c.Query("staff_id"); v != "" {
		id, er := uuid.Parse(v)
		if er != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid staff_id filter")
		}
		tx = tx.Where("staff_week_score_staff_id = ?", id)
	}
	if v := c.Query("week"); v != "" {
		// Same UTC-midnight DATE convention as the staff listing.
		d, er := time.Parse("2006-01-02", v)
		if er != nil {
			return helper.Error(c, fiber.StatusBadRequest, "week must be YYYY-MM-DD")
		}
		tx = tx.Where("staff_week_score_week_start = ?", d)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count week scores")
	}

	var rows []model.StaffWeekScoreModel
	if err := tx.Order("staff_week_score_week_start " + p.SortOrder + ", staff_week_score_completion_rate DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list week scores")
	}

	return helper.Success(c, "OK", fiber.Map{
		"items":      rows,
		"pagination": helper.BuildPaginationMeta(p, total),
	})
}
