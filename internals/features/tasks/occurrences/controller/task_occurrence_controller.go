// file: internals/features/tasks/occurrences/controller/task_occurrence_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"storeops_backend/internals/features/tasks/occurrences/dto"
	"storeops_backend/internals/features/tasks/occurrences/model"
	"storeops_backend/internals/features/tasks/occurrences/service"
	helper "storeops_backend/internals/helpers"
	authmw "storeops_backend/internals/middlewares/auth"
)

type TaskOccurrenceController struct {
	DB        *gorm.DB
	Lifecycle *service.Lifecycle
}

func NewTaskOccurrenceController(db *gorm.DB) *TaskOccurrenceController {
	return &TaskOccurrenceController{
		DB:        db,
		Lifecycle: &service.Lifecycle{DB: db},
	}
}

var validate = validator.New()

// 🟢 GET /api/u/task-occurrences
// Lists the calling staff member's occurrences, optionally filtered by
// status and date range.
func (ctrl *TaskOccurrenceController) ListMine(c *fiber.Ctx) error {
	staffID, err := authmw.StaffIDFromLocals(c)
	if err != nil {
		return helper.FromTaskError(c, err)
	}

	p := helper.ParsePagination(c, "task_occurrence_date", "asc")

	tx := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.TaskOccurrenceModel{}).
		Where("task_occurrence_staff_id = ?", staffID)

	if v := c.Query("status"); v != "" {
		tx = tx.Where("task_occurrence_status = ?", v)
	}
	if v := c.Query("date_from"); v != "" {
		d, er := time.Parse("2006-01-02", v)
		if er != nil {
			return helper.Error(c, fiber.StatusBadRequest, "date_from must be YYYY-MM-DD")
		}
		tx = tx.Where("task_occurrence_date >= ?", d)
	}
	if v := c.Query("date_to"); v != "" {
		d, er := time.Parse("2006-01-02", v)
		if er != nil {
			return helper.Error(c, fiber.StatusBadRequest, "date_to must be YYYY-MM-DD")
		}
		tx = tx.Where("task_occurrence_date <= ?", d)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count occurrences")
	}

	order := p.SafeOrderClause(map[string]string{
		"task_occurrence_date": "task_occurrence_date",
		"created_at":           "created_at",
	}, "task_occurrence_date")

	var rows []model.TaskOccurrenceModel
	if err := tx.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list occurrences")
	}

	return helper.Success(c, "OK", fiber.Map{
		"items":      rows,
		"pagination": helper.BuildPaginationMeta(p, total),
	})
}

// 🟡 POST /api/u/task-occurrences/:id/increment
func (ctrl *TaskOccurrenceController) Increment(c *fiber.Ctx) error {
	id, err := ctrl.ownedOccurrenceID(c)
	if err != nil {
		return helper.FromTaskError(c, err)
	}

	occ, err := ctrl.Lifecycle.Increment(c.UserContext(), id)
	if err != nil {
		return helper.FromTaskError(c, err)
	}
	return helper.Success(c, "Progress updated", occ)
}

// 🟡 POST /api/u/task-occurrences/:id/complete
func (ctrl *TaskOccurrenceController) Complete(c *fiber.Ctx) error {
	id, err := ctrl.ownedOccurrenceID(c)
	if err != nil {
		return helper.FromTaskError(c, err)
	}

	occ, err := ctrl.Lifecycle.CompleteDirect(c.UserContext(), id)
	if err != nil {
		return helper.FromTaskError(c, err)
	}
	return helper.Success(c, "Task completed", occ)
}

// 🟡 POST /api/u/task-occurrences/:id/proof
func (ctrl *TaskOccurrenceController) CompleteWithProof(c *fiber.Ctx) error {
	id, err := ctrl.ownedOccurrenceID(c)
	if err != nil {
		return helper.FromTaskError(c, err)
	}

	var req dto.CompleteWithProofRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	occ, err := ctrl.Lifecycle.CompleteWithProof(c.UserContext(), id, req.ProofText)
	if err != nil {
		return helper.FromTaskError(c, err)
	}
	return helper.Success(c, "Task completed with proof", occ)
}

// 🟡 POST /api/u/task-occurrences/:id/postpone
func (ctrl *TaskOccurrenceController) Postpone(c *fiber.Ctx) error {
	id, err := ctrl.ownedOccurrenceID(c)
	if err != nil {
		return helper.FromTaskError(c, err)
	}

	var req dto.PostponeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	newDate, er := time.Parse("2006-01-02", req.PostponedTo)
	if er != nil {
		return helper.Error(c, fiber.StatusBadRequest, "postponed_to must be YYYY-MM-DD")
	}

	occ, err := ctrl.Lifecycle.Postpone(c.UserContext(), id, newDate, req.Reason)
	if err != nil {
		return helper.FromTaskError(c, err)
	}
	return helper.Success(c, "Task postponed", occ)
}

// ownedOccurrenceID parses :id and verifies the occurrence belongs to
// the calling staff member before any lifecycle action runs.
func (ctrl *TaskOccurrenceController) ownedOccurrenceID(c *fiber.Ctx) (uuid.UUID, error) {
	staffID, err := authmw.StaffIDFromLocals(c)
	if err != nil {
		return uuid.Nil, err
	}

	id, er := uuid.Parse(c.Params("id"))
	if er != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid occurrence id")
	}

	var owner struct {
		StaffID uuid.UUID `gorm:"column:task_occurrence_staff_id"`
	}
	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.TaskOccurrenceModel{}).
		Select("task_occurrence_staff_id").
		Where("task_occurrence_id = ?", id).
		Take(&owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, fiber.NewError(fiber.StatusNotFound, "Occurrence not found")
		}
		return uuid.Nil, err
	}
	if owner.StaffID != staffID {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "Not your task")
	}
	return id, nil
}
