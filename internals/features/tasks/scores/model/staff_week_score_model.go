// file: internals/features/tasks/scores/model/staff_week_score_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StaffWeekScoreModel is the derived weekly aggregate of one staff
// member's occurrence outcomes. Owned exclusively by the scoring engine;
// recomputable at any time and never a source of truth.
type StaffWeekScoreModel struct {
	StaffWeekScoreID        uuid.UUID `gorm:"column:staff_week_score_id;type:uuid;primaryKey" json:"staff_week_score_id"`
	StaffWeekScoreStaffID   uuid.UUID `gorm:"column:staff_week_score_staff_id;type:uuid;not null;uniqueIndex:uq_staff_week_scores_staff_week" json:"staff_week_score_staff_id"`
	StaffWeekScoreWeekStart time.Time `gorm:"column:staff_week_score_week_start;type:date;not null;uniqueIndex:uq_staff_week_scores_staff_week;index" json:"staff_week_score_week_start"`
	StaffWeekScoreStoreID   uuid.UUID `gorm:"column:staff_week_score_store_id;type:uuid;not null;index" json:"staff_week_score_store_id"`

	StaffWeekScoreTotalCount     int     `gorm:"column:staff_week_score_total_count;not null" json:"staff_week_score_total_count"`
	StaffWeekScoreDoneCount      int     `gorm:"column:staff_week_score_done_count;not null" json:"staff_week_score_done_count"`
	StaffWeekScorePostponedCount int     `gorm:"column:staff_week_score_postponed_count;not null" json:"staff_week_score_postponed_count"`
	StaffWeekScoreLateCount      int     `gorm:"column:staff_week_score_late_count;not null" json:"staff_week_score_late_count"`
	// Percentage 0–100, not a fraction. 0 when the week had no rows.
	StaffWeekScoreCompletionRate float64 `gorm:"column:staff_week_score_completion_rate;not null" json:"staff_week_score_completion_rate"`
	StaffWeekScoreRewardPoints   int     `gorm:"column:staff_week_score_reward_points;not null" json:"staff_week_score_reward_points"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (StaffWeekScoreModel) TableName() string {
	return "staff_week_scores"
}

func (m *StaffWeekScoreModel) BeforeCreate(tx *gorm.DB) error {
	if m.StaffWeekScoreID == uuid.Nil {
		m.StaffWeekScoreID = uuid.New()
	}
	return nil
}
