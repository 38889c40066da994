// file: internals/features/tasks/templates/model/task_template_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storeops_backend/internals/helpers/dbtime"
)

/* =========================
   Recurrence class
========================= */

type Recurrence string

const (
	RecurrenceOnce    Recurrence = "once"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceOnce, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// DefaultRewardPoints is used when a template is created without an
// explicit reward.
const DefaultRewardPoints = 10

/* =========================
   Model
========================= */

type TaskTemplateModel struct {
	TaskTemplateID            uuid.UUID   `gorm:"column:task_template_id;type:uuid;primaryKey" json:"task_template_id"`
	TaskTemplateTitle         string      `gorm:"column:task_template_title;not null" json:"task_template_title"`
	TaskTemplateRecurrence    Recurrence  `gorm:"column:task_template_recurrence;type:varchar(10);not null" json:"task_template_recurrence"`
	TaskTemplateTargetCount   int         `gorm:"column:task_template_target_count;not null;default:1" json:"task_template_target_count"`
	TaskTemplateDueTime       *dbtime.Tod `gorm:"column:task_template_due_time;type:time" json:"task_template_due_time,omitempty"`
	TaskTemplateRequiresProof bool        `gorm:"column:task_template_requires_proof;not null;default:false" json:"task_template_requires_proof"`
	TaskTemplateRewardPoints  int         `gorm:"column:task_template_reward_points;not null" json:"task_template_reward_points"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (TaskTemplateModel) TableName() string {
	return "task_templates"
}

func (m *TaskTemplateModel) BeforeCreate(tx *gorm.DB) error {
	if m.TaskTemplateID == uuid.Nil {
		m.TaskTemplateID = uuid.New()
	}
	if m.TaskTemplateTargetCount < 1 {
		m.TaskTemplateTargetCount = 1
	}
	if m.TaskTemplateRewardPoints <= 0 {
		m.TaskTemplateRewardPoints = DefaultRewardPoints
	}
	return nil
}
