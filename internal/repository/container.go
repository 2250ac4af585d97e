package repository

import (
	"context"

	"gorm.io/gorm"
)

// Transactor runs fn against a transactional view of base. Returning an
// error from fn rolls every write back. Repository calls inside fn must use
// the context fn receives.
type Transactor interface {
	ExecTx(ctx context.Context, base *Repos, fn func(context.Context, *Repos) error) error
}

type Repos struct {
	Form       FormRepo
	Component  ComponentRepo
	Submission SubmissionRepo
	User       UserRepo

	db *gorm.DB
	tx Transactor
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		Form:       NewFormRepo(db),
		Component:  NewComponentRepo(db),
		Submission: NewSubmissionRepo(db),
		User:       NewUserRepo(db),
		db:         db,
		tx:         gormTransactor{},
	}
}

// NewReposWithTransactor assembles repositories that are not backed by gorm.
func NewReposWithTransactor(form FormRepo, component ComponentRepo, submission SubmissionRepo, user UserRepo, tx Transactor) *Repos {
	return &Repos{
		Form:       form,
		Component:  component,
		Submission: submission,
		User:       user,
		tx:         tx,
	}
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		Form:       r.Form.WithTx(tx),
		Component:  r.Component.WithTx(tx),
		Submission: r.Submission.WithTx(tx),
		User:       r.User.WithTx(tx),
		db:         tx,
		tx:         r.tx,
	}
}

// ExecTx runs fn inside one transaction. Repos without a transactor, such
// as the mock-backed ones used in unit tests, run fn directly.
func (r *Repos) ExecTx(ctx context.Context, fn func(context.Context, *Repos) error) error {
	if r.tx == nil {
		return fn(ctx, r)
	}
	return r.tx.ExecTx(ctx, r, fn)
}

type gormTransactor struct{}

func (gormTransactor) ExecTx(ctx context.Context, base *Repos, fn func(context.Context, *Repos) error) error {
	return base.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, base.WithTx(tx))
	})
}
