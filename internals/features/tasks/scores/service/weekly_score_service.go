// file: internals/features/tasks/scores/service/weekly_score_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storeops_backend/internals/configs"
	taskerrors "storeops_backend/internals/features/tasks/errors"
	occService "storeops_backend/internals/features/tasks/occurrences/service"
	"storeops_backend/internals/features/tasks/scores/model"
)

/* =========================
   Scorer
========================= */

// Scorer aggregates a completed week of occurrences into one score row
// per staff member seen in that week.
type Scorer struct{ DB *gorm.DB }

type bucketRow struct {
	StaffID        uuid.UUID `gorm:"column:staff_id"`
	StoreID        uuid.UUID `gorm:"column:store_id"`
	TotalCount     int       `gorm:"column:total_count"`
	DoneCount      int       `gorm:"column:done_count"`
	PostponedCount int       `gorm:"column:postponed_count"`
	LateCount      int       `gorm:"column:late_count"`
	RewardPoints   int       `gorm:"column:reward_points"`
}

// ComputeWeek scores the Monday–Sunday week containing weekRef. The
// staleness sweep runs first as a hard precondition: scoring a week
// whose overdue items were never reconciled would undercount lateness.
// Upserts are keyed on (staff, week start); re-running recomputes and
// overwrites, never accumulates.
func (s *Scorer) ComputeWeek(ctx context.Context, now, weekRef time.Time, loc *time.Location) (int, error) {
	if loc == nil {
		loc = configs.StoreLocation
	}
	if loc == nil {
		loc = time.UTC
	}

	weekLocal := occService.WeekStartIn(weekRef, loc)
	weekStart := time.Date(weekLocal.Year(), weekLocal.Month(), weekLocal.Day(), 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 6)

	// Precondition, not an optimization.
	rec := &occService.Reconciler{DB: s.DB}
	if _, err := rec.MarkLate(ctx, now); err != nil {
		return 0, err
	}

	q := `
SELECT
  task_occurrence_staff_id AS staff_id,
  task_occurrence_store_id AS store_id,
  COUNT(*)                                                          AS total_count,
  COUNT(*) FILTER (WHERE task_occurrence_status = 'DONE')           AS done_count,
  COUNT(*) FILTER (WHERE task_occurrence_status = 'POSTPONED')      AS postponed_count,
  COUNT(*) FILTER (WHERE task_occurrence_status = 'LATE')           AS late_count,
  COALESCE(SUM(task_occurrence_reward_points)
           FILTER (WHERE task_occurrence_status = 'DONE'), 0)       AS reward_points
FROM task_occurrences
WHERE task_occurrence_date BETWEEN ? AND ?
GROUP BY task_occurrence_staff_id, task_occurrence_store_id`

	var buckets []bucketRow
	if err := s.DB.WithContext(ctx).Raw(q, weekStart, weekEnd).Scan(&buckets).Error; err != nil {
		return 0, &taskerrors.DependencyReadError{Source: "task_occurrences", Err: err}
	}
	if len(buckets) == 0 {
		return 0, nil
	}

	// The upsert key is (staff, week). A staff member covering two
	// stores in the same week must collapse to a single row here:
	// Postgres rejects a multi-row ON CONFLICT DO UPDATE that hits the
	// same key twice.
	buckets = mergeBuckets(buckets)

	rows := make([]model.StaffWeekScoreModel, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, scoreFromBucket(b, weekStart))
	}

	db := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "staff_week_score_staff_id"},
			{Name: "staff_week_score_week_start"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"staff_week_score_store_id",
			"staff_week_score_total_count",
			"staff_week_score_done_count",
			"staff_week_score_postponed_count",
			"staff_week_score_late_count",
			"staff_week_score_completion_rate",
			"staff_week_score_reward_points",
			"updated_at",
		}),
	})
	if err := db.Create(&rows).Error; err != nil {
		return 0, &taskerrors.DependencyWriteError{Target: "staff_week_scores", Err: err}
	}
	return len(rows), nil
}

// mergeBuckets folds per-store buckets into one bucket per staff
// member, summing all counts and rewards. The row keeps the store where
// the staff member had the most occurrences that week (ties broken by
// store id so re-runs stay deterministic).
func mergeBuckets(buckets []bucketRow) []bucketRow {
	type acc struct {
		row        bucketRow
		storeTotal int
	}
	byStaff := make(map[uuid.UUID]*acc, len(buckets))
	order := make([]uuid.UUID, 0, len(buckets))

	for _, b := range buckets {
		a, ok := byStaff[b.StaffID]
		if !ok {
			byStaff[b.StaffID] = &acc{row: b, storeTotal: b.TotalCount}
			order = append(order, b.StaffID)
			continue
		}
		if b.TotalCount > a.storeTotal ||
			(b.TotalCount == a.storeTotal && b.StoreID.String() < a.row.StoreID.String()) {
			a.row.StoreID = b.StoreID
			a.storeTotal = b.TotalCount
		}
		a.row.TotalCount += b.TotalCount
		a.row.DoneCount += b.DoneCount
		a.row.PostponedCount += b.PostponedCount
		a.row.LateCount += b.LateCount
		a.row.RewardPoints += b.RewardPoints
	}

	out := make([]bucketRow, 0, len(order))
	for _, id := range order {
		out = append(out, byStaff[id].row)
	}
	return out
}

// scoreFromBucket turns one aggregate bucket into a score row.
// Completion rate is a percentage (0–100); an empty week scores 0, not
// NaN.
func scoreFromBucket(b bucketRow, weekStart time.Time) model.StaffWeekScoreModel {
	rate := 0.0
	if b.TotalCount > 0 {
		rate = float64(b.DoneCount) / float64(b.TotalCount) * 100
	}
	return model.StaffWeekScoreModel{
		StaffWeekScoreStaffID:        b.StaffID,
		StaffWeekScoreWeekStart:      weekStart,
		StaffWeekScoreStoreID:        b.StoreID,
		StaffWeekScoreTotalCount:     b.TotalCount,
		StaffWeekScoreDoneCount:      b.DoneCount,
		StaffWeekScorePostponedCount: b.PostponedCount,
		StaffWeekScoreLateCount:      b.LateCount,
		StaffWeekScoreCompletionRate: rate,
		StaffWeekScoreRewardPoints:   b.RewardPoints,
	}
}
