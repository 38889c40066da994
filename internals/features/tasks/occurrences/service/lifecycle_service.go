// file: internals/features/tasks/occurrences/service/lifecycle_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	asgModel "storeops_backend/internals/features/tasks/assignments/model"
	taskerrors "storeops_backend/internals/features/tasks/errors"
	"storeops_backend/internals/features/tasks/occurrences/model"
	tplModel "storeops_backend/internals/features/tasks/templates/model"
)

/* =========================
   Lifecycle manager
========================= */

// Lifecycle applies a single staff-initiated transition to one
// occurrence. Every transition is a conditional update guarded by the
// status (and, for increments, the progress) the caller saw: a
// concurrent writer makes the guard miss and the action comes back as a
// ConflictError instead of silently double-applying.
type Lifecycle struct{ DB *gorm.DB }

var actionableStatuses = []model.OccurrenceStatus{
	model.OccurrenceStatusPending,
	model.OccurrenceStatusLate,
}

func (l *Lifecycle) load(ctx context.Context, id uuid.UUID) (*model.TaskOccurrenceModel, error) {
	var occ model.TaskOccurrenceModel
	if err := l.DB.WithContext(ctx).
		Where("task_occurrence_id = ?", id).
		Take(&occ).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, &taskerrors.DependencyReadError{Source: "task_occurrences", Err: err}
	}
	return &occ, nil
}

// Increment raises progress by 1. Valid from PENDING/LATE only. When the
// new progress reaches the target and the task does not require proof,
// the row completes (progress clamped to target). Proof-required tasks
// refuse the completing increment: the caller must go through
// CompleteWithProof.
func (l *Lifecycle) Increment(ctx context.Context, id uuid.UUID) (*model.TaskOccurrenceModel, error) {
	occ, err := l.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !occ.TaskOccurrenceStatus.Actionable() {
		return nil, conflict(occ, "increment")
	}

	newProgress := occ.TaskOccurrenceProgressCount + 1
	completes := newProgress >= occ.TaskOccurrenceTargetCount
	if completes && occ.TaskOccurrenceRequiresProof {
		return nil, &taskerrors.ValidationError{Field: "proof_text", Reason: "task requires proof to complete, submit proof text"}
	}

	updates := map[string]any{
		"task_occurrence_progress_count": newProgress,
	}
	if completes {
		updates["task_occurrence_progress_count"] = occ.TaskOccurrenceTargetCount
		updates["task_occurrence_status"] = model.OccurrenceStatusDone
	}

	// Optimistic guard on progress: a racing second increment sees zero
	// rows affected.
	guard := func(tx *gorm.DB) *gorm.DB {
		return tx.Where(
			"task_occurrence_id = ? AND task_occurrence_status IN ? AND task_occurrence_progress_count = ?",
			occ.TaskOccurrenceID, actionableStatuses, occ.TaskOccurrenceProgressCount,
		)
	}
	if err := l.applyTransition(ctx, occ, "increment", guard, updates, completes); err != nil {
		return nil, err
	}

	occ.TaskOccurrenceProgressCount = updates["task_occurrence_progress_count"].(int)
	if completes {
		occ.TaskOccurrenceStatus = model.OccurrenceStatusDone
	}
	return occ, nil
}

// CompleteDirect marks a single-count, no-proof task DONE in one step.
func (l *Lifecycle) CompleteDirect(ctx context.Context, id uuid.UUID) (*model.TaskOccurrenceModel, error) {
	occ, err := l.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !occ.TaskOccurrenceStatus.Actionable() {
		return nil, conflict(occ, "complete")
	}
	if occ.TaskOccurrenceRequiresProof {
		return nil, &taskerrors.ValidationError{Field: "proof_text", Reason: "task requires proof to complete, submit proof text"}
	}
	if occ.TaskOccurrenceTargetCount > 1 {
		return nil, &taskerrors.ValidationError{Field: "target_count", Reason: "multi-step task, use increment"}
	}

	updates := map[string]any{
		"task_occurrence_status":         model.OccurrenceStatusDone,
		"task_occurrence_progress_count": occ.TaskOccurrenceTargetCount,
	}
	if err := l.applyTransition(ctx, occ, "complete", l.statusGuard(occ), updates, true); err != nil {
		return nil, err
	}

	occ.TaskOccurrenceStatus = model.OccurrenceStatusDone
	occ.TaskOccurrenceProgressCount = occ.TaskOccurrenceTargetCount
	return occ, nil
}

// CompleteWithProof marks the task DONE and stores the proof text.
// Proof must be non-empty; valid from PENDING/LATE.
func (l *Lifecycle) CompleteWithProof(ctx context.Context, id uuid.UUID, proofText string) (*model.TaskOccurrenceModel, error) {
	proofText = strings.TrimSpace(proofText)
	if proofText == "" {
		return nil, &taskerrors.ValidationError{Field: "proof_text", Reason: "must not be empty"}
	}

	occ, err := l.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !occ.TaskOccurrenceStatus.Actionable() {
		return nil, conflict(occ, "complete_with_proof")
	}

	updates := map[string]any{
		"task_occurrence_status":         model.OccurrenceStatusDone,
		"task_occurrence_progress_count": occ.TaskOccurrenceTargetCount,
		"task_occurrence_proof_text":     proofText,
	}
	if err := l.applyTransition(ctx, occ, "complete_with_proof", l.statusGuard(occ), updates, true); err != nil {
		return nil, err
	}

	occ.TaskOccurrenceStatus = model.OccurrenceStatusDone
	occ.TaskOccurrenceProgressCount = occ.TaskOccurrenceTargetCount
	occ.TaskOccurrenceProofText = &proofText
	return occ, nil
}

// Postpone re-dates the same row to a new target date with an optional
// reason. Allowed from PENDING and from LATE: staff still need an escape
// path for items they already missed. POSTPONED is terminal for this
// row; no new occurrence is created.
func (l *Lifecycle) Postpone(ctx context.Context, id uuid.UUID, newDate time.Time, reason *string) (*model.TaskOccurrenceModel, error) {
	if newDate.IsZero() {
		return nil, &taskerrors.ValidationError{Field: "postponed_to", Reason: "target date required"}
	}

	occ, err := l.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !occ.TaskOccurrenceStatus.Actionable() {
		return nil, conflict(occ, "postpone")
	}

	target := dateUTC(newDate)
	updates := map[string]any{
		"task_occurrence_status":       model.OccurrenceStatusPostponed,
		"task_occurrence_postponed_to": target,
	}
	if reason != nil {
		if r := strings.TrimSpace(*reason); r != "" {
			updates["task_occurrence_postpone_reason"] = r
		}
	}
	if err := l.applyTransition(ctx, occ, "postpone", l.statusGuard(occ), updates, false); err != nil {
		return nil, err
	}

	occ.TaskOccurrenceStatus = model.OccurrenceStatusPostponed
	occ.TaskOccurrencePostponedTo = &target
	occ.TaskOccurrencePostponeReason = reason
	return occ, nil
}

/* =========================
   Shared transition plumbing
========================= */

func (l *Lifecycle) statusGuard(occ *model.TaskOccurrenceModel) func(tx *gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where(
			"task_occurrence_id = ? AND task_occurrence_status IN ?",
			occ.TaskOccurrenceID, actionableStatuses,
		)
	}
}

// applyTransition runs the guarded single-row update. On completion of a
// "once" task it also deactivates the owning assignment in the same
// transaction so the assignment can never re-anchor a new occurrence in
// a later week.
func (l *Lifecycle) applyTransition(
	ctx context.Context,
	occ *model.TaskOccurrenceModel,
	action string,
	guard func(tx *gorm.DB) *gorm.DB,
	updates map[string]any,
	completes bool,
) error {
	return l.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := guard(tx.Model(&model.TaskOccurrenceModel{})).Updates(updates)
		if res.Error != nil {
			return &taskerrors.DependencyWriteError{Target: "task_occurrences", Err: res.Error}
		}
		if res.RowsAffected == 0 {
			// Someone else moved the row first. Re-read so the 409
			// reports the row's actual status, not the stale one this
			// caller loaded.
			var current model.TaskOccurrenceModel
			if er := tx.Where("task_occurrence_id = ?", occ.TaskOccurrenceID).
				Take(&current).Error; er == nil {
				return conflict(&current, action)
			}
			return conflict(occ, action)
		}

		if completes &&
			occ.SnapshotRecurrence() == string(tplModel.RecurrenceOnce) &&
			occ.TaskOccurrenceAssignmentID != nil {
			if err := tx.Model(&asgModel.TaskAssignmentModel{}).
				Where("task_assignment_id = ?", *occ.TaskOccurrenceAssignmentID).
				Update("task_assignment_is_active", false).Error; err != nil {
				return &taskerrors.DependencyWriteError{Target: "task_assignments", Err: err}
			}
		}
		return nil
	})
}

func conflict(occ *model.TaskOccurrenceModel, action string) *taskerrors.ConflictError {
	return &taskerrors.ConflictError{
		OccurrenceID: occ.TaskOccurrenceID.String(),
		Status:       string(occ.TaskOccurrenceStatus),
		Action:       action,
	}
}
