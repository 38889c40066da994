// file: internals/features/tasks/occurrences/service/generate_occurrences_service.go
package service

import (
	"context"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storeops_backend/internals/configs"
	taskerrors "storeops_backend/internals/features/tasks/errors"
	"storeops_backend/internals/features/tasks/occurrences/model"
	tplModel "storeops_backend/internals/features/tasks/templates/model"
	"storeops_backend/internals/helpers/dbtime"

	"github.com/google/uuid"
)

/* =========================
   Generator + Options
========================= */

type Generator struct{ DB *gorm.DB }

type GenerateOptions struct {
	Loc       *time.Location
	BatchSize int
}

func (o *GenerateOptions) withDefaults() *GenerateOptions {
	out := GenerateOptions{}
	if o != nil {
		out = *o
	}
	if out.Loc == nil {
		out.Loc = configs.StoreLocation
	}
	if out.Loc == nil {
		out.Loc = time.UTC
	}
	if out.BatchSize <= 0 {
		out.BatchSize = 500
	}
	return &out
}

/* =========================
   Active assignment loader
========================= */

type assignmentRow struct {
	AssignmentID  uuid.UUID `gorm:"column:assignment_id"`
	StaffID       uuid.UUID `gorm:"column:staff_id"`
	StoreID       uuid.UUID `gorm:"column:store_id"`
	TemplateID    uuid.UUID `gorm:"column:template_id"`
	Title         string    `gorm:"column:title"`
	Recurrence    string    `gorm:"column:recurrence"`
	TargetCount   int       `gorm:"column:target_count"`
	DueStr        *string   `gorm:"column:due_str"`
	RequiresProof bool      `gorm:"column:requires_proof"`
	RewardPoints  int       `gorm:"column:reward_points"`
}

// loadActiveAssignments joins active assignments with their templates
// for the given recurrence classes. "once" assignments that already own
// an occurrence are filtered out here so a still-active single-shot task
// never re-anchors in a later week.
func (g *Generator) loadActiveAssignments(ctx context.Context, classes []string) ([]assignmentRow, error) {
	q := `
SELECT
  ta.task_assignment_id            AS assignment_id,
  ta.task_assignment_staff_id      AS staff_id,
  ta.task_assignment_store_id      AS store_id,
  tt.task_template_id              AS template_id,
  tt.task_template_title           AS title,
  tt.task_template_recurrence      AS recurrence,
  tt.task_template_target_count    AS target_count,
  tt.task_template_due_time::text  AS due_str,
  tt.task_template_requires_proof  AS requires_proof,
  tt.task_template_reward_points   AS reward_points
FROM task_assignments ta
JOIN task_templates tt
  ON tt.task_template_id = ta.task_assignment_template_id
WHERE ta.task_assignment_is_active = TRUE
  AND ta.task_assignment_deleted_at IS NULL
  AND tt.task_template_deleted_at IS NULL
  AND tt.task_template_recurrence IN ?
  AND NOT (
    tt.task_template_recurrence = 'once'
    AND EXISTS (
      SELECT 1 FROM task_occurrences o
      WHERE o.task_occurrence_assignment_id = ta.task_assignment_id
    )
  )
ORDER BY ta.created_at`

	var rows []assignmentRow
	if err := g.DB.WithContext(ctx).Raw(q, classes).Scan(&rows).Error; err != nil {
		return nil, &taskerrors.DependencyReadError{Source: "task_assignments", Err: err}
	}
	return rows, nil
}

/* =========================
   Expansion passes
========================= */

// ExpandWeek upserts occurrences for the Monday–Sunday window containing
// now: one row per day for daily templates, one row at the week's Monday
// for weekly and once templates. Re-running for the same week is a
// no-op on existing rows (no duplicates, no progress resets).
func (g *Generator) ExpandWeek(ctx context.Context, now time.Time, opts *GenerateOptions) (int, error) {
	o := opts.withDefaults()

	src, err := g.loadActiveAssignments(ctx, []string{
		string(tplModel.RecurrenceDaily),
		string(tplModel.RecurrenceWeekly),
		string(tplModel.RecurrenceOnce),
	})
	if err != nil {
		return 0, err
	}

	weekStart := WeekStartIn(now, o.Loc)
	rows := make([]model.TaskOccurrenceModel, 0, len(src)*7)
	for _, r := range src {
		switch tplModel.Recurrence(r.Recurrence) {
		case tplModel.RecurrenceDaily:
			for i := 0; i < 7; i++ {
				rows = append(rows, buildOccurrence(r, weekStart.AddDate(0, 0, i), now, o.Loc))
			}
		case tplModel.RecurrenceWeekly, tplModel.RecurrenceOnce:
			rows = append(rows, buildOccurrence(r, weekStart, now, o.Loc))
		}
	}

	return g.upsert(ctx, rows, o.BatchSize)
}

// ExpandMonth upserts exactly one occurrence per active monthly
// assignment, anchored at the first day of the month containing now.
func (g *Generator) ExpandMonth(ctx context.Context, now time.Time, opts *GenerateOptions) (int, error) {
	o := opts.withDefaults()

	src, err := g.loadActiveAssignments(ctx, []string{string(tplModel.RecurrenceMonthly)})
	if err != nil {
		return 0, err
	}

	monthStart := MonthStartIn(now, o.Loc)
	rows := make([]model.TaskOccurrenceModel, 0, len(src))
	for _, r := range src {
		rows = append(rows, buildOccurrence(r, monthStart, now, o.Loc))
	}

	return g.upsert(ctx, rows, o.BatchSize)
}

/* =========================
   Row builder
========================= */

// buildOccurrence snapshot-copies template+assignment fields onto a new
// occurrence for one period day. A due timestamp already in the past at
// generation time makes the row LATE from birth: a skipped reconciler
// pass must never leave it PENDING.
func buildOccurrence(r assignmentRow, dayLocal, now time.Time, loc *time.Location) model.TaskOccurrenceModel {
	aid := r.AssignmentID

	var dueAt *time.Time
	var dueStr string
	if r.DueStr != nil && strings.TrimSpace(*r.DueStr) != "" {
		if tod, err := dbtime.Parse(*r.DueStr); err == nil {
			dueStr = tod.Format("15:04:05")
			d := combineLocalDateAndTOD(dayLocal, tod, loc).UTC()
			dueAt = &d
		}
	}

	status := model.OccurrenceStatusPending
	if dueAt != nil && dueAt.Before(now) {
		status = model.OccurrenceStatusLate
	}

	snap := datatypes.JSONMap{
		"template_id":    r.TemplateID.String(),
		"title":          r.Title,
		"recurrence":     r.Recurrence,
		"target_count":   r.TargetCount,
		"requires_proof": r.RequiresProof,
		"reward_points":  r.RewardPoints,
	}
	if dueStr != "" {
		snap["due_time"] = dueStr
	}

	target := r.TargetCount
	if target < 1 {
		target = 1
	}

	return model.TaskOccurrenceModel{
		TaskOccurrenceAssignmentID:     &aid,
		TaskOccurrenceDate:             dateUTC(dayLocal),
		TaskOccurrenceTitle:            r.Title,
		TaskOccurrenceDueAt:            dueAt,
		TaskOccurrenceTargetCount:      target,
		TaskOccurrenceProgressCount:    0,
		TaskOccurrenceStatus:           status,
		TaskOccurrenceStaffID:          r.StaffID,
		TaskOccurrenceStoreID:          r.StoreID,
		TaskOccurrenceRewardPoints:     r.RewardPoints,
		TaskOccurrenceRequiresProof:    r.RequiresProof,
		TaskOccurrenceTemplateSnapshot: snap,
	}
}

/* =========================
   Idempotent batch upsert
========================= */

func (g *Generator) upsert(ctx context.Context, rows []model.TaskOccurrenceModel, batchSize int) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	db := g.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "task_occurrence_assignment_id"},
			{Name: "task_occurrence_date"},
		},
		DoNothing: true,
	})
	tx := db.CreateInBatches(&rows, batchSize)
	if tx.Error != nil {
		return 0, &taskerrors.DependencyWriteError{Target: "task_occurrences", Err: tx.Error}
	}
	return int(tx.RowsAffected), nil
}
