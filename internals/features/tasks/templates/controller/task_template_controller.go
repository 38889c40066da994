// file: internals/features/tasks/templates/controller/task_template_controller.go
package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"storeops_backend/internals/features/tasks/templates/dto"
	"storeops_backend/internals/features/tasks/templates/model"
	helper "storeops_backend/internals/helpers"
	"storeops_backend/internals/helpers/dbtime"
)

type TaskTemplateController struct {
	DB *gorm.DB
}

func NewTaskTemplateController(db *gorm.DB) *TaskTemplateController {
	return &TaskTemplateController{DB: db}
}

var validate = validator.New()

// 🟡 POST /api/a/task-templates
func (ctrl *TaskTemplateController) Create(c *fiber.Ctx) error {
	var req dto.CreateTaskTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	row := model.TaskTemplateModel{
		TaskTemplateTitle:      req.Title,
		TaskTemplateRecurrence: model.Recurrence(req.Recurrence),
	}
	if req.TargetCount != nil {
		row.TaskTemplateTargetCount = *req.TargetCount
	}
	if req.RequiresProof != nil {
		row.TaskTemplateRequiresProof = *req.RequiresProof
	}
	if req.RewardPoints != nil {
		row.TaskTemplateRewardPoints = *req.RewardPoints
	}
	if req.DueTime != nil {
		tod, err := dbtime.Parse(*req.DueTime)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "due_time must be HH:MM or HH:MM:SS")
		}
		row.TaskTemplateDueTime = &tod
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		log.Println("[ERROR] create task_template:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create task template")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Task template created", row)
}

// 🟢 GET /api/a/task-templates
func (ctrl *TaskTemplateController) List(c *fiber.Ctx) error {
	p := helper.ParsePaginationWith(c, "created_at", "desc", helper.AdminOpts)

	tx := ctrl.DB.WithContext(c.UserContext()).Model(&model.TaskTemplateModel{})
	if rec := c.Query("recurrence"); rec != "" {
		if !model.Recurrence(rec).Valid() {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid recurrence filter")
		}
		tx = tx.Where("task_template_recurrence = ?", rec)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count task templates")
	}

	order := p.SafeOrderClause(map[string]string{
		"created_at": "created_at",
		"title":      "task_template_title",
	}, "created_at")

	var rows []model.TaskTemplateModel
	if err := tx.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list task templates")
	}

	return helper.Success(c, "OK", fiber.Map{
		"items":      rows,
		"pagination": helper.BuildPaginationMeta(p, total),
	})
}

// 🟢 GET /api/a/task-templates/:id
func (ctrl *TaskTemplateController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid template id")
	}

	var row model.TaskTemplateModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("task_template_id = ?", id).
		Take(&row).Error; err != nil {
		return helper.FromTaskError(c, err)
	}
	return helper.Success(c, "OK", row)
}

// 🟠 PUT /api/a/task-templates/:id
// Administrative edit. Occurrences keep their generation-time snapshot,
// so this never rewrites history.
func (ctrl *TaskTemplateController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid template id")
	}

	var req dto.UpdateTaskTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["task_template_title"] = *req.Title
	}
	if req.TargetCount != nil {
		updates["task_template_target_count"] = *req.TargetCount
	}
	if req.RequiresProof != nil {
		updates["task_template_requires_proof"] = *req.RequiresProof
	}
	if req.RewardPoints != nil {
		updates["task_template_reward_points"] = *req.RewardPoints
	}
	if req.DueTime != nil {
		if *req.DueTime == "" {
			updates["task_template_due_time"] = nil
		} else {
			tod, er := dbtime.Parse(*req.DueTime)
			if er != nil {
				return helper.Error(c, fiber.StatusBadRequest, "due_time must be HH:MM or HH:MM:SS")
			}
			updates["task_template_due_time"] = tod
		}
	}
	if len(updates) == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Nothing to update")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.TaskTemplateModel{}).
		Where("task_template_id = ?", id).
		Updates(updates)
	if res.Error != nil {
		log.Println("[ERROR] update task_template:", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update task template")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Task template not found")
	}
	return helper.Success(c, "Task template updated", fiber.Map{"task_template_id": id})
}

// 🔴 DELETE /api/a/task-templates/:id (soft delete)
func (ctrl *TaskTemplateController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid template id")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Where("task_template_id = ?", id).
		Delete(&model.TaskTemplateModel{})
	if res.Error != nil {
		log.Println("[ERROR] delete task_template:", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete task template")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Task template not found")
	}
	return helper.Success(c, "Task template deleted", fiber.Map{"task_template_id": id})
}
