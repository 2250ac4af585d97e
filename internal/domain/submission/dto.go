package submission

import (
	"time"

	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/pkg/validation"
)

type SubmitInput struct {
	RespondentID       *string             `json:"respondentId" binding:"omitempty,max=64" example:"6f1c2a9e-0000-4000-8000-000000000001"`
	LegacyRespondentID *string             `json:"respondent_id" binding:"omitempty,max=64"`
	Answers            []validation.Answer `json:"answers"`

	// RespondentName is the token holder's username. It only names a
	// respondent whose id also came from the token.
	RespondentName string `json:"-"`
}

// Respondent returns the supplied respondent id, preferring respondentId.
func (in SubmitInput) Respondent() string {
	if in.RespondentID != nil {
		return *in.RespondentID
	}
	if in.LegacyRespondentID != nil {
		return *in.LegacyRespondentID
	}
	return ""
}

type SubmissionHeader struct {
	ID           uint      `json:"id"`
	FormID       uint      `json:"formId"`
	RespondentID string    `json:"respondentId"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

type SubmissionView struct {
	SubmissionHeader
	Answers map[string]any `json:"answers"`
}

type SubmissionDetail struct {
	Form       form.FormView  `json:"form"`
	Submission SubmissionView `json:"submission"`
}

type ClearResult struct {
	FormID        uint           `json:"formId"`
	ClearedValues map[string]any `json:"clearedValues"`
}
