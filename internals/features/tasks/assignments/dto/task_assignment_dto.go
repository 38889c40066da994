// file: internals/features/tasks/assignments/dto/task_assignment_dto.go
package dto

import "github.com/google/uuid"

/* =========================
   REQUEST
========================= */

type CreateTaskAssignmentRequest struct {
	TemplateID uuid.UUID `json:"template_id" validate:"required"`
	StaffID    uuid.UUID `json:"staff_id" validate:"required"`
	StoreID    uuid.UUID `json:"store_id" validate:"required"`
}

type SetAssignmentActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
