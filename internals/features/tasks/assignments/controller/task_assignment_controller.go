// file: internals/features/tasks/assignments/controller/task_assignment_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"storeops_backend/internals/features/tasks/assignments/dto"
	"storeops_backend/internals/features/tasks/assignments/model"
	tplModel "storeops_backend/internals/features/tasks/templates/model"
	helper "storeops_backend/internals/helpers"
)

type TaskAssignmentController struct {
	DB *gorm.DB
}

func NewTaskAssignmentController(db *gorm.DB) *TaskAssignmentController {
	return &TaskAssignmentController{DB: db}
}

var validate = validator.New()

// 🟡 POST /api/a/task-assignments
func (ctrl *TaskAssignmentController) Create(c *fiber.Ctx) error {
	var req dto.CreateTaskAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// Template must exist and be live.
	var tpl tplModel.TaskTemplateModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("task_template_id = ?", req.TemplateID).
		Take(&tpl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Task template not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to check task template")
	}

	row := model.TaskAssignmentModel{
		TaskAssignmentTemplateID: req.TemplateID,
		TaskAssignmentStaffID:    req.StaffID,
		TaskAssignmentStoreID:    req.StoreID,
		TaskAssignmentIsActive:   true,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		log.Println("[ERROR] create task_assignment:", err)
		return helper.Error(c, fiber.StatusConflict, "Assignment already exists or could not be created")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Task assignment created", row)
}

// 🟢 GET /api/a/task-assignments
func (ctrl *TaskAssignmentController) List(c *fiber.Ctx) error {
	p := helper.ParsePaginationWith(c, "created_at", "desc", helper.AdminOpts)

	tx := ctrl.DB.WithContext(c.UserContext()).Model(&model.TaskAssignmentModel{})
	if v := c.Query("staff_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid staff_id filter")
		}
		tx = tx.Where("task_assignment_staff_id = ?", id)
	}
	if v := c.Query("store_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid store_id filter")
		}
		tx = tx.Where("task_assignment_store_id = ?", id)
	}
	if v := c.Query("active"); v != "" {
		tx = tx.Where("task_assignment_is_active = ?", v == "true" || v == "1")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count assignments")
	}

	var rows []model.TaskAssignmentModel
	if err := tx.Order("created_at " + p.SortOrder).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list assignments")
	}

	return helper.Success(c, "OK", fiber.Map{
		"items":      rows,
		"pagination": helper.BuildPaginationMeta(p, total),
	})
}

// 🟠 PATCH /api/a/task-assignments/:id/active
// Deactivation stops future generation only; existing occurrences stay.
func (ctrl *TaskAssignmentController) SetActive(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid assignment id")
	}

	var req dto.SetAssignmentActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.TaskAssignmentModel{}).
		Where("task_assignment_id = ?", id).
		Update("task_assignment_is_active", *req.IsActive)
	if res.Error != nil {
		log.Println("[ERROR] set task_assignment active:", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update assignment")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Assignment not found")
	}
	return helper.Success(c, "Assignment updated", fiber.Map{
		"task_assignment_id": id,
		"is_active":          *req.IsActive,
	})
}

// 🔴 DELETE /api/a/task-assignments/:id (soft delete)
func (ctrl *TaskAssignmentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid assignment id")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Where("task_assignment_id = ?", id).
		Delete(&model.TaskAssignmentModel{})
	if res.Error != nil {
		log.Println("[ERROR] delete task_assignment:", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete assignment")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Assignment not found")
	}
	return helper.Success(c, "Assignment deleted", fiber.Map{"task_assignment_id": id})
}
