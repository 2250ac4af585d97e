package application

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/linskybing/formflow/internal/domain/submission"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/pkg/schema"
	"github.com/linskybing/formflow/pkg/validation"
	"gorm.io/gorm"
)

type SubmissionService struct {
	Repos *repository.Repos
	Now   func() time.Time
}

func NewSubmissionService(repos *repository.Repos) *SubmissionService {
	return &SubmissionService{
		Repos: repos,
		Now:   func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates answers against every component of the form and stores
// the submission with its answers in one transaction.
//
// Validation happens before the transaction opens. Inside it the components
// are read again and the submission is refused with ErrSchemaChanged if they
// differ from what was validated. An edit committed after that re-read is
// not detected.
func (s *SubmissionService) Submit(ctx context.Context, formID uint, input submission.SubmitInput) (*submission.SubmissionView, error) {
	if len(input.Answers) == 0 {
		return nil, ErrEmptyAnswers
	}
	if _, err := findForm(ctx, s.Repos, formID); err != nil {
		return nil, err
	}

	descriptors, err := loadDescriptors(ctx, s.Repos, formID)
	if err != nil {
		return nil, persistenceError("load components", err)
	}
	if len(descriptors) == 0 {
		return nil, ErrNoComponents
	}

	fields := schema.CompileAll(descriptors)
	accepted, err := validation.Check(fields, input.Answers)
	if err != nil {
		return nil, err
	}

	var view *submission.SubmissionView
	err = s.Repos.ExecTx(ctx, func(ctx context.Context, tx *repository.Repos) error {
		current, err := loadDescriptors(ctx, tx, formID)
		if err != nil {
			return err
		}
		if !sameSchema(descriptors, current) {
			return ErrSchemaChanged
		}

		respondentID, err := resolveRespondent(ctx, tx, input.Respondent(), input.RespondentName)
		if err != nil {
			return fmt.Errorf("resolve respondent: %w", err)
		}

		header := &submission.Submission{
			FormID:    formID,
			UserID:    respondentID,
			CreatedAt: s.Now(),
		}
		if err := tx.Submission.Create(ctx, header); err != nil {
			return fmt.Errorf("insert submission: %w", err)
		}

		rows := make([]submission.Answer, 0, len(accepted))
		answers := make(map[string]any, len(accepted))
		for _, a := range accepted {
			rows = append(rows, submission.Answer{
				SubmissionID: header.ID,
				ComponentID:  a.Field.ID,
				Properties: map[string]any{
					"value": a.Value,
					"type":  string(a.Field.Kind),
				},
			})
			answers[componentKey(a.Field.ID)] = a.Value
		}
		if err := tx.Submission.CreateAnswers(ctx, rows); err != nil {
			return fmt.Errorf("insert answers: %w", err)
		}

		view = &submission.SubmissionView{
			SubmissionHeader: toHeader(*header),
			Answers:          answers,
		}
		return nil
	})
	if err != nil {
		return nil, persistenceError("submit form", err)
	}
	return view, nil
}

// Clear deletes every submission of the form and returns the value each
// component resets to. Clearing twice yields the same values.
func (s *SubmissionService) Clear(ctx context.Context, formID uint) (*submission.ClearResult, error) {
	var result *submission.ClearResult
	err := s.Repos.ExecTx(ctx, func(ctx context.Context, tx *repository.Repos) error {
		if _, err := tx.Form.FindByID(ctx, formID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFormNotFound
			}
			return err
		}
		descriptors, err := loadDescriptors(ctx, tx, formID)
		if err != nil {
			return err
		}
		if _, err := tx.Submission.DeleteByFormID(ctx, formID); err != nil {
			return fmt.Errorf("delete submissions: %w", err)
		}
		result = &submission.ClearResult{
			FormID:        formID,
			ClearedValues: schema.DefaultValues(descriptors),
		}
		return nil
	})
	if err != nil {
		return nil, persistenceError("clear form", err)
	}
	return result, nil
}

// GetSubmission joins a stored submission back onto its form.
func (s *SubmissionService) GetSubmission(ctx context.Context, formID, submissionID uint) (*submission.SubmissionDetail, error) {
	f, err := findForm(ctx, s.Repos, formID)
	if err != nil {
		return nil, err
	}
	rows, err := s.Repos.Component.ListByFormID(ctx, formID)
	if err != nil {
		return nil, persistenceError("list components", err)
	}

	sub, err := s.Repos.Submission.FindByID(ctx, formID, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, persistenceError("load submission", err)
	}
	stored, err := s.Repos.Submission.ListAnswers(ctx, sub.ID)
	if err != nil {
		return nil, persistenceError("list answers", err)
	}

	answers := make(map[string]any, len(stored))
	for _, a := range stored {
		answers[componentKey(a.ComponentID)] = a.Value()
	}
	return &submission.SubmissionDetail{
		Form: toFormView(*f, rows),
		Submission: submission.SubmissionView{
			SubmissionHeader: toHeader(*sub),
			Answers:          answers,
		},
	}, nil
}

// ListSubmissions returns the form's submission headers, newest first.
func (s *SubmissionService) ListSubmissions(ctx context.Context, formID uint) ([]submission.SubmissionHeader, error) {
	if _, err := findForm(ctx, s.Repos, formID); err != nil {
		return nil, err
	}
	subs, err := s.Repos.Submission.ListByFormID(ctx, formID)
	if err != nil {
		return nil, persistenceError("list submissions", err)
	}
	out := make([]submission.SubmissionHeader, 0, len(subs))
	for _, sub := range subs {
		out = append(out, toHeader(sub))
	}
	return out, nil
}

// resolveRespondent upserts a supplied respondent id or creates a new
// respondent when none is given. name, when set, replaces the id prefix in
// the handle of a newly seen respondent.
func resolveRespondent(ctx context.Context, tx *repository.Repos, supplied, name string) (string, error) {
	supplied = strings.TrimSpace(supplied)
	if supplied != "" {
		handle := prefix(supplied, 8)
		if name = strings.TrimSpace(name); name != "" {
			handle = prefix(name, maxHandleName)
		}
		if err := tx.User.UpsertByID(ctx, supplied, "respondent_"+handle); err != nil {
			return "", err
		}
		return supplied, nil
	}
	handle := fmt.Sprintf("respondent_%d_%s", time.Now().UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	return tx.User.Create(ctx, handle)
}

// sameSchema compares what validation saw with what the transaction sees.
func sameSchema(a, b []schema.Descriptor) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Type != b[i].Type || a[i].Order != b[i].Order || a[i].Name != b[i].Name {
			return false
		}
		if !reflect.DeepEqual(a[i].Properties, b[i].Properties) {
			return false
		}
	}
	return true
}

func toHeader(sub submission.Submission) submission.SubmissionHeader {
	return submission.SubmissionHeader{
		ID:           sub.ID,
		FormID:       sub.FormID,
		RespondentID: sub.UserID,
		SubmittedAt:  sub.CreatedAt,
	}
}

func componentKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// maxHandleName keeps "respondent_" plus the name inside the username column.
const maxHandleName = 64

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
