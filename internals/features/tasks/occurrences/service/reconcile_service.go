// file: internals/features/tasks/occurrences/service/reconcile_service.go
package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	taskerrors "storeops_backend/internals/features/tasks/errors"
	"storeops_backend/internals/features/tasks/occurrences/model"
)

// Reconciler sweeps overdue pending occurrences to LATE.
type Reconciler struct{ DB *gorm.DB }

// MarkLate moves every PENDING occurrence whose due timestamp has
// elapsed to LATE. The only transition it ever performs is
// PENDING → LATE; DONE, POSTPONED and already-LATE rows are untouched,
// so running it any number of times converges to the same state.
func (r *Reconciler) MarkLate(ctx context.Context, now time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(&model.TaskOccurrenceModel{}).
		Where(
			"task_occurrence_status = ? AND task_occurrence_due_at IS NOT NULL AND task_occurrence_due_at < ?",
			model.OccurrenceStatusPending, now.UTC(),
		).
		Update("task_occurrence_status", model.OccurrenceStatusLate)
	if res.Error != nil {
		return 0, &taskerrors.DependencyWriteError{Target: "task_occurrences", Err: res.Error}
	}
	return res.RowsAffected, nil
}
