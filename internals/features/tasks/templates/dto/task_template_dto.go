// file: internals/features/tasks/templates/dto/task_template_dto.go
package dto

import "strings"

/* =========================
   REQUEST
========================= */

type CreateTaskTemplateRequest struct {
	Title         string  `json:"title" validate:"required,min=1,max=200"`
	Recurrence    string  `json:"recurrence" validate:"required,oneof=once daily weekly monthly"`
	TargetCount   *int    `json:"target_count" validate:"omitempty,min=1"`
	DueTime       *string `json:"due_time" validate:"omitempty"` // "HH:MM[:SS]"
	RequiresProof *bool   `json:"requires_proof"`
	RewardPoints  *int    `json:"reward_points" validate:"omitempty,min=0"`
}

func (r *CreateTaskTemplateRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Recurrence = strings.ToLower(strings.TrimSpace(r.Recurrence))
	if r.DueTime != nil {
		v := strings.TrimSpace(*r.DueTime)
		if v == "" {
			r.DueTime = nil
		} else {
			r.DueTime = &v
		}
	}
}

type UpdateTaskTemplateRequest struct {
	Title         *string `json:"title" validate:"omitempty,min=1,max=200"`
	TargetCount   *int    `json:"target_count" validate:"omitempty,min=1"`
	DueTime       *string `json:"due_time" validate:"omitempty"`
	RequiresProof *bool   `json:"requires_proof"`
	RewardPoints  *int    `json:"reward_points" validate:"omitempty,min=0"`
}

func (r *UpdateTaskTemplateRequest) Normalize() {
	if r.Title != nil {
		v := strings.TrimSpace(*r.Title)
		if v == "" {
			r.Title = nil
		} else {
			r.Title = &v
		}
	}
	if r.DueTime != nil {
		v := strings.TrimSpace(*r.DueTime)
		r.DueTime = &v // "" means clear the due time
	}
}
