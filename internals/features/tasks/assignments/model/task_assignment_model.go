// file: internals/features/tasks/assignments/model/task_assignment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskAssignmentModel binds one template to one staff member at one
// store. While active, each generation cycle produces exactly one
// occurrence per applicable period. Deactivating stops future generation
// but never deletes existing occurrences.
type TaskAssignmentModel struct {
	TaskAssignmentID         uuid.UUID `gorm:"column:task_assignment_id;type:uuid;primaryKey" json:"task_assignment_id"`
	TaskAssignmentTemplateID uuid.UUID `gorm:"column:task_assignment_template_id;type:uuid;not null;uniqueIndex:uq_task_assignments_tpl_staff_store;index" json:"task_assignment_template_id"`
	TaskAssignmentStaffID    uuid.UUID `gorm:"column:task_assignment_staff_id;type:uuid;not null;uniqueIndex:uq_task_assignments_tpl_staff_store;index" json:"task_assignment_staff_id"`
	TaskAssignmentStoreID    uuid.UUID `gorm:"column:task_assignment_store_id;type:uuid;not null;uniqueIndex:uq_task_assignments_tpl_staff_store;index" json:"task_assignment_store_id"`
	TaskAssignmentIsActive   bool      `gorm:"column:task_assignment_is_active;not null;default:true" json:"task_assignment_is_active"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (TaskAssignmentModel) TableName() string {
	return "task_assignments"
}

func (m *TaskAssignmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.TaskAssignmentID == uuid.Nil {
		m.TaskAssignmentID = uuid.New()
	}
	return nil
}
