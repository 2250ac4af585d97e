package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/domain/submission"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRepos(t *testing.T) *repository.Repos {
	t.Helper()
	return repository.NewRepositories(testutils.NewSQLiteDB(t))
}

func seedForm(t *testing.T, repos *repository.Repos, title string, types ...string) (*form.Form, []form.Component) {
	t.Helper()
	ctx := context.Background()
	f := &form.Form{Title: title, Status: form.FormStatusDraft}
	require.NoError(t, repos.Form.Create(ctx, f))

	var components []form.Component
	for i, typ := range types {
		c := form.Component{FormID: f.ID, Type: typ, Name: typ, Properties: map[string]any{"order": float64(i)}}
		require.NoError(t, repos.Component.Create(ctx, &c))
		components = append(components, c)
	}
	return f, components
}

// --------------------- Forms ---------------------

func TestFormRepo_CRUD(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	f, _ := seedForm(t, repos, "Survey")
	require.NotZero(t, f.ID)

	got, err := repos.Form.FindByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Survey", got.Title)
	assert.Equal(t, form.FormStatusDraft, got.Status)

	require.NoError(t, repos.Form.UpdateTitle(ctx, f.ID, "Renamed"))
	require.NoError(t, repos.Form.UpdateStatus(ctx, f.ID, form.FormStatusPublished))
	got, err = repos.Form.FindByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, form.FormStatusPublished, got.Status)

	require.NoError(t, repos.Form.Delete(ctx, f.ID))
	_, err = repos.Form.FindByID(ctx, f.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFormRepo_MissingRowsReportNotFound(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	assert.ErrorIs(t, repos.Form.UpdateTitle(ctx, 42, "x"), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repos.Form.UpdateStatus(ctx, 42, form.FormStatusPublished), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repos.Form.Delete(ctx, 42), gorm.ErrRecordNotFound)
}

func TestFormRepo_ListNewestFirst(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"old", "new", "mid"} {
		offset := map[int]time.Duration{0: 0, 1: 2 * time.Hour, 2: time.Hour}[i]
		require.NoError(t, repos.Form.Create(ctx, &form.Form{Title: title, CreatedAt: base.Add(offset)}))
	}

	forms, err := repos.Form.List(ctx)
	require.NoError(t, err)
	require.Len(t, forms, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{forms[0].Title, forms[1].Title, forms[2].Title})
}

// --------------------- Components ---------------------

func TestComponentRepo_ListAndDelete(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	a, _ := seedForm(t, repos, "A", "text", "number")
	b, _ := seedForm(t, repos, "B", "select")

	rows, err := repos.Component.ListByFormID(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "text", rows[0].Type)
	assert.Equal(t, float64(1), rows[1].Properties["order"])

	rows, err = repos.Component.ListByFormIDs(ctx, []uint{a.ID, b.ID})
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	rows, err = repos.Component.ListByFormIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.NoError(t, repos.Component.DeleteByFormID(ctx, a.ID))
	rows, err = repos.Component.ListByFormIDs(ctx, []uint{a.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, b.ID, rows[0].FormID)
}

// --------------------- Submissions ---------------------

func TestSubmissionRepo_AnswersRoundTrip(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	f, components := seedForm(t, repos, "Survey", "text", "checkbox")

	sub := &submission.Submission{FormID: f.ID, UserID: "resp-1"}
	require.NoError(t, repos.Submission.Create(ctx, sub))
	require.NoError(t, repos.Submission.CreateAnswers(ctx, []submission.Answer{
		{SubmissionID: sub.ID, ComponentID: components[1].ID, Properties: map[string]any{"value": []string{"a", "b"}, "type": "checkbox"}},
		{SubmissionID: sub.ID, ComponentID: components[0].ID, Properties: map[string]any{"value": "hello", "type": "text"}},
	}))

	got, err := repos.Submission.FindByID(ctx, f.ID, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "resp-1", got.UserID)

	answers, err := repos.Submission.ListAnswers(ctx, sub.ID)
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, "hello", answers[0].Value())
	assert.Equal(t, []any{"a", "b"}, answers[1].Value())

	_, err = repos.Submission.FindByID(ctx, f.ID+1, sub.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSubmissionRepo_DuplicateAnswerRejected(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	f, components := seedForm(t, repos, "Survey", "text")

	sub := &submission.Submission{FormID: f.ID, UserID: "resp-1"}
	require.NoError(t, repos.Submission.Create(ctx, sub))
	answer := submission.Answer{SubmissionID: sub.ID, ComponentID: components[0].ID, Properties: map[string]any{"value": "x"}}
	require.NoError(t, repos.Submission.CreateAnswers(ctx, []submission.Answer{answer}))

	assert.Error(t, repos.Submission.CreateAnswers(ctx, []submission.Answer{answer}))
	assert.NoError(t, repos.Submission.CreateAnswers(ctx, nil))
}

func TestSubmissionRepo_ListCountDelete(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	f, components := seedForm(t, repos, "A", "text")
	other, otherComponents := seedForm(t, repos, "B", "text")

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []uint
	for i := 0; i < 3; i++ {
		sub := &submission.Submission{FormID: f.ID, UserID: "r", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, repos.Submission.Create(ctx, sub))
		require.NoError(t, repos.Submission.CreateAnswers(ctx, []submission.Answer{
			{SubmissionID: sub.ID, ComponentID: components[0].ID, Properties: map[string]any{"value": "x"}},
		}))
		ids = append(ids, sub.ID)
	}
	kept := &submission.Submission{FormID: other.ID, UserID: "r"}
	require.NoError(t, repos.Submission.Create(ctx, kept))
	require.NoError(t, repos.Submission.CreateAnswers(ctx, []submission.Answer{
		{SubmissionID: kept.ID, ComponentID: otherComponents[0].ID, Properties: map[string]any{"value": "y"}},
	}))

	subs, err := repos.Submission.ListByFormID(ctx, f.ID)
	require.NoError(t, err)
	require.Len(t, subs, 3)
	assert.Equal(t, []uint{ids[2], ids[1], ids[0]}, []uint{subs[0].ID, subs[1].ID, subs[2].ID})

	n, err := repos.Submission.CountByFormID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	removed, err := repos.Submission.DeleteByFormID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	answers, err := repos.Submission.ListAnswers(ctx, ids[0])
	require.NoError(t, err)
	assert.Empty(t, answers)
	answers, err = repos.Submission.ListAnswers(ctx, kept.ID)
	require.NoError(t, err)
	assert.Len(t, answers, 1)

	removed, err = repos.Submission.DeleteByFormID(ctx, f.ID)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

// --------------------- Users ---------------------

func TestUserRepo_UpsertKeepsFirstRow(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.User.UpsertByID(ctx, "abc", "respondent_abc"))
	require.NoError(t, repos.User.UpsertByID(ctx, "abc", "someone_else"))

	u, err := repos.User.FindByID(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "respondent_abc", u.Username)

	id, err := repos.User.Create(ctx, "respondent_new")
	require.NoError(t, err)
	assert.Len(t, id, 36)

	_, err = repos.User.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// --------------------- Transactions ---------------------

func TestExecTx_RollsBackOnError(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := repos.ExecTx(ctx, func(ctx context.Context, tx *repository.Repos) error {
		if err := tx.Form.Create(ctx, &form.Form{Title: "doomed"}); err != nil {
			return err
		}
		if err := tx.User.UpsertByID(ctx, "u1", "respondent_u1"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	forms, err := repos.Form.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, forms)
	_, err = repos.User.FindByID(ctx, "u1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestExecTx_Commits(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	var id uint
	require.NoError(t, repos.ExecTx(ctx, func(ctx context.Context, tx *repository.Repos) error {
		f := &form.Form{Title: "kept"}
		if err := tx.Form.Create(ctx, f); err != nil {
			return err
		}
		id = f.ID
		return nil
	}))

	got, err := repos.Form.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Title)
}
