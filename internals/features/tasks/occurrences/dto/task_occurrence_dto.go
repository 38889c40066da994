// file: internals/features/tasks/occurrences/dto/task_occurrence_dto.go
package dto

import "strings"

/* =========================
   REQUEST
========================= */

type CompleteWithProofRequest struct {
	ProofText string `json:"proof_text" validate:"required,min=1"`
}

func (r *CompleteWithProofRequest) Normalize() {
	r.ProofText = strings.TrimSpace(r.ProofText)
}

type PostponeRequest struct {
	// "YYYY-MM-DD"
	PostponedTo string  `json:"postponed_to" validate:"required"`
	Reason      *string `json:"reason"`
}

func (r *PostponeRequest) Normalize() {
	r.PostponedTo = strings.TrimSpace(r.PostponedTo)
	if r.Reason != nil {
		v := strings.TrimSpace(*r.Reason)
		if v == "" {
			r.Reason = nil
		} else {
			r.Reason = &v
		}
	}
}
