// file: internals/features/tasks/occurrences/model/task_occurrence_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Status state machine
========================= */

type OccurrenceStatus string

const (
	OccurrenceStatusPending   OccurrenceStatus = "PENDING"
	OccurrenceStatusDone      OccurrenceStatus = "DONE"
	OccurrenceStatusPostponed OccurrenceStatus = "POSTPONED"
	OccurrenceStatusLate      OccurrenceStatus = "LATE"
)

// IsTerminal reports whether no further staff transition is possible.
// LATE is not terminal: late items can still be completed or postponed.
func (s OccurrenceStatus) IsTerminal() bool {
	return s == OccurrenceStatusDone || s == OccurrenceStatusPostponed
}

// Actionable reports whether staff lifecycle actions may touch the row.
func (s OccurrenceStatus) Actionable() bool {
	return s == OccurrenceStatusPending || s == OccurrenceStatusLate
}

/* =========================
   Model
========================= */

// TaskOccurrenceModel is one dated instance of an assignment's task.
// Title, staff, store, reward and the proof flag are snapshot-copied
// from template+assignment at generation time so later template edits
// never change history. Only the lifecycle fields (status, progress,
// postponement, proof) mutate after creation.
//
// Exactly one row exists per (assignment, date); generation upserts on
// that pair and must never create duplicates on re-run.
type TaskOccurrenceModel struct {
	TaskOccurrenceID uuid.UUID `gorm:"column:task_occurrence_id;type:uuid;primaryKey" json:"task_occurrence_id"`

	// Nullable to tolerate orphaned legacy rows.
	TaskOccurrenceAssignmentID *uuid.UUID `gorm:"column:task_occurrence_assignment_id;type:uuid;uniqueIndex:uq_task_occurrences_assignment_date" json:"task_occurrence_assignment_id,omitempty"`
	// Period anchor: the day itself for daily, the week's Monday for
	// weekly/once, the month's first day for monthly. Stored as a UTC
	// midnight DATE.
	TaskOccurrenceDate time.Time `gorm:"column:task_occurrence_date;type:date;not null;uniqueIndex:uq_task_occurrences_assignment_date;index" json:"task_occurrence_date"`

	TaskOccurrenceTitle         string           `gorm:"column:task_occurrence_title;not null" json:"task_occurrence_title"`
	TaskOccurrenceDueAt         *time.Time       `gorm:"column:task_occurrence_due_at" json:"task_occurrence_due_at,omitempty"`
	TaskOccurrenceTargetCount   int              `gorm:"column:task_occurrence_target_count;not null" json:"task_occurrence_target_count"`
	TaskOccurrenceProgressCount int              `gorm:"column:task_occurrence_progress_count;not null" json:"task_occurrence_progress_count"`
	TaskOccurrenceStatus        OccurrenceStatus `gorm:"column:task_occurrence_status;type:varchar(10);not null;index" json:"task_occurrence_status"`

	TaskOccurrenceStaffID uuid.UUID `gorm:"column:task_occurrence_staff_id;type:uuid;not null;index" json:"task_occurrence_staff_id"`
	TaskOccurrenceStoreID uuid.UUID `gorm:"column:task_occurrence_store_id;type:uuid;not null;index" json:"task_occurrence_store_id"`

	TaskOccurrenceRewardPoints  int  `gorm:"column:task_occurrence_reward_points;not null" json:"task_occurrence_reward_points"`
	TaskOccurrenceRequiresProof bool `gorm:"column:task_occurrence_requires_proof;not null" json:"task_occurrence_requires_proof"`

	TaskOccurrencePostponedTo     *time.Time `gorm:"column:task_occurrence_postponed_to;type:date" json:"task_occurrence_postponed_to,omitempty"`
	TaskOccurrencePostponeReason  *string    `gorm:"column:task_occurrence_postpone_reason" json:"task_occurrence_postpone_reason,omitempty"`
	TaskOccurrenceProofText       *string    `gorm:"column:task_occurrence_proof_text" json:"task_occurrence_proof_text,omitempty"`
	TaskOccurrenceTemplateSnapshot datatypes.JSONMap `gorm:"column:task_occurrence_template_snapshot;type:jsonb" json:"task_occurrence_template_snapshot,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (TaskOccurrenceModel) TableName() string {
	return "task_occurrences"
}

func (m *TaskOccurrenceModel) BeforeCreate(tx *gorm.DB) error {
	if m.TaskOccurrenceID == uuid.Nil {
		m.TaskOccurrenceID = uuid.New()
	}
	if m.TaskOccurrenceStatus == "" {
		m.TaskOccurrenceStatus = OccurrenceStatusPending
	}
	return nil
}

// SnapshotRecurrence reads the recurrence class captured at generation
// time, "" when the snapshot is missing (orphaned legacy rows).
func (m *TaskOccurrenceModel) SnapshotRecurrence() string {
	if m.TaskOccurrenceTemplateSnapshot == nil {
		return ""
	}
	if v, ok := m.TaskOccurrenceTemplateSnapshot["recurrence"].(string); ok {
		return v
	}
	return ""
}
