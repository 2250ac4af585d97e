package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/domain/submission"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestStore_ExecTxDiscardsWritesOnError(t *testing.T) {
	store := NewStore()
	repos := store.Repos()
	ctx := context.Background()

	kept := &form.Form{Title: "kept"}
	require.NoError(t, repos.Form.Create(ctx, kept))

	boom := errors.New("boom")
	err := repos.ExecTx(ctx, func(ctx context.Context, tx *repository.Repos) error {
		require.NoError(t, tx.Form.UpdateTitle(ctx, kept.ID, "changed"))
		require.NoError(t, tx.Form.Create(ctx, &form.Form{Title: "doomed"}))
		require.NoError(t, tx.User.UpsertByID(ctx, "u1", "respondent_u1"))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	forms, err := repos.Form.List(ctx)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.Equal(t, "kept", forms[0].Title)
	_, err = repos.User.FindByID(ctx, "u1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStore_UncommittedWritesStayPrivate(t *testing.T) {
	store := NewStore()
	repos := store.Repos()
	ctx := context.Background()

	f := &form.Form{Title: "old"}
	require.NoError(t, repos.Form.Create(ctx, f))

	opened := make(chan struct{})
	release := make(chan struct{})
	txDone := make(chan error, 1)
	go func() {
		txDone <- repos.ExecTx(ctx, func(ctx context.Context, tx *repository.Repos) error {
			if err := tx.Submission.Create(ctx, &submission.Submission{FormID: f.ID, UserID: "r"}); err != nil {
				return err
			}
			close(opened)
			<-release
			return errors.New("boom")
		})
	}()
	<-opened

	n, err := repos.Submission.CountByFormID(ctx, f.ID)
	require.NoError(t, err)
	assert.Zero(t, n, "open transaction leaked its header")

	renamed := make(chan error, 1)
	go func() { renamed <- repos.Form.UpdateTitle(ctx, f.ID, "new") }()
	close(release)

	assert.EqualError(t, <-txDone, "boom")
	require.NoError(t, <-renamed)

	got, err := repos.Form.FindByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
	n, err = repos.Submission.CountByFormID(ctx, f.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_ExecTxCommitsAndNestedCallJoins(t *testing.T) {
	store := NewStore()
	repos := store.Repos()
	ctx := context.Background()

	var id uint
	err := repos.ExecTx(ctx, func(ctx context.Context, tx *repository.Repos) error {
		f := &form.Form{Title: "outer"}
		if err := tx.Form.Create(ctx, f); err != nil {
			return err
		}
		id = f.ID
		return tx.ExecTx(ctx, func(ctx context.Context, inner *repository.Repos) error {
			return inner.Form.UpdateTitle(ctx, id, "inner")
		})
	})
	require.NoError(t, err)

	got, err := repos.Form.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "inner", got.Title)
}

func TestStore_ExecTxCancelledContext(t *testing.T) {
	store := NewStore()
	repos := store.Repos()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := repos.ExecTx(ctx, func(context.Context, *repository.Repos) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestStore_Options(t *testing.T) {
	var next uint = 100
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(
		WithIDs(func() uint { next++; return next }),
		WithUserIDs(func() string { return "fixed-user" }),
		WithClock(func() time.Time { return clock }),
	)
	repos := store.Repos()
	ctx := context.Background()

	f := &form.Form{Title: "x"}
	require.NoError(t, repos.Form.Create(ctx, f))
	c := &form.Component{FormID: f.ID, Type: "text"}
	require.NoError(t, repos.Component.Create(ctx, c))

	assert.Equal(t, uint(101), f.ID)
	assert.Equal(t, uint(102), c.ID)
	assert.Equal(t, clock, f.CreatedAt)
	assert.Equal(t, form.FormStatusDraft, f.Status)

	id, err := repos.User.Create(ctx, "respondent_a")
	require.NoError(t, err)
	assert.Equal(t, "fixed-user", id)
	_, err = repos.User.Create(ctx, "respondent_b")
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestSubmissionRepo_AnswersAndDelete(t *testing.T) {
	repos := NewStore().Repos()
	ctx := context.Background()

	sub := &submission.Submission{FormID: 1, UserID: "r"}
	require.NoError(t, repos.Submission.Create(ctx, sub))
	answers := []submission.Answer{
		{SubmissionID: sub.ID, ComponentID: 2, Properties: map[string]any{"value": "b"}},
		{SubmissionID: sub.ID, ComponentID: 1, Properties: map[string]any{"value": "a"}},
	}
	require.NoError(t, repos.Submission.CreateAnswers(ctx, answers))
	assert.ErrorIs(t, repos.Submission.CreateAnswers(ctx, answers[:1]), gorm.ErrDuplicatedKey)

	got, err := repos.Submission.ListAnswers(ctx, sub.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Value())

	_, err = repos.Submission.FindByID(ctx, 2, sub.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	n, err := repos.Submission.DeleteByFormID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	got, err = repos.Submission.ListAnswers(ctx, sub.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUserRepo_UpsertKeepsFirstRow(t *testing.T) {
	repos := NewStore().Repos()
	ctx := context.Background()

	require.NoError(t, repos.User.UpsertByID(ctx, "abc", "respondent_abc"))
	require.NoError(t, repos.User.UpsertByID(ctx, "abc", "other"))

	u, err := repos.User.FindByID(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "respondent_abc", u.Username)
}
