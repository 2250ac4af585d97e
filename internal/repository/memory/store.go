// Package memory is an in-process implementation of the repository
// interfaces. A transaction works on a private copy of the data that
// replaces the shared state only on commit.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/domain/submission"
	"github.com/linskybing/formflow/internal/domain/user"
	"github.com/linskybing/formflow/internal/repository"
)

// Sequence hands out increasing ids starting at 1.
type Sequence struct {
	mu   sync.Mutex
	next uint
}

func (s *Sequence) Next() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}

type answerKey struct {
	submissionID uint
	componentID  uint
}

type state struct {
	forms       map[uint]form.Form
	components  map[uint]form.Component
	submissions map[uint]submission.Submission
	answers     map[answerKey]submission.Answer
	users       map[string]user.User
}

func (s state) clone() state {
	c := state{
		forms:       make(map[uint]form.Form, len(s.forms)),
		components:  make(map[uint]form.Component, len(s.components)),
		submissions: make(map[uint]submission.Submission, len(s.submissions)),
		answers:     make(map[answerKey]submission.Answer, len(s.answers)),
		users:       make(map[string]user.User, len(s.users)),
	}
	for k, v := range s.forms {
		c.forms[k] = v
	}
	for k, v := range s.components {
		c.components[k] = v
	}
	for k, v := range s.submissions {
		c.submissions[k] = v
	}
	for k, v := range s.answers {
		c.answers[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data state

	formIDs       func() uint
	componentIDs  func() uint
	submissionIDs func() uint
	userIDs       func() string
	now           func() time.Time
}

type Option func(*Store)

// WithIDs makes every table draw ids from next.
func WithIDs(next func() uint) Option {
	return func(s *Store) {
		s.formIDs, s.componentIDs, s.submissionIDs = next, next, next
	}
}

func WithUserIDs(next func() string) Option {
	return func(s *Store) { s.userIDs = next }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore returns an empty store with one Sequence per table and UUID respondent ids.
func NewStore(opts ...Option) *Store {
	s := &Store{
		data: state{
			forms:       map[uint]form.Form{},
			components:  map[uint]form.Component{},
			submissions: map[uint]submission.Submission{},
			answers:     map[answerKey]submission.Answer{},
			users:       map[string]user.User{},
		},
		formIDs:       (&Sequence{}).Next,
		componentIDs:  (&Sequence{}).Next,
		submissionIDs: (&Sequence{}).Next,
		userIDs:       uuid.NewString,
		now:           func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Repos exposes the store through the repository interfaces.
func (s *Store) Repos() *repository.Repos {
	return repository.NewReposWithTransactor(
		&FormRepo{store: s},
		&ComponentRepo{store: s},
		&SubmissionRepo{store: s},
		&UserRepo{store: s},
		s,
	)
}

type txKey struct{}

type txScope struct {
	store *Store
	data  *state
}

// ExecTx serialises transactions with each other and with writes made
// outside a transaction. A nested call joins the enclosing transaction.
func (s *Store) ExecTx(ctx context.Context, base *repository.Repos, fn func(context.Context, *repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.scope(ctx) != nil {
		return fn(ctx, base)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	work := s.data.clone()
	s.mu.RUnlock()

	txCtx := context.WithValue(ctx, txKey{}, &txScope{store: s, data: &work})
	if err := fn(txCtx, base); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = work
	s.mu.Unlock()
	return nil
}

func (s *Store) scope(ctx context.Context) *state {
	if tx, ok := ctx.Value(txKey{}).(*txScope); ok && tx.store == s {
		return tx.data
	}
	return nil
}

// read sees the transaction's copy when ctx carries one, otherwise only
// committed data.
func (s *Store) read(ctx context.Context, fn func(d *state)) {
	if d := s.scope(ctx); d != nil {
		fn(d)
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.data)
}

// write outside a transaction waits for any open one to finish.
func (s *Store) write(ctx context.Context, fn func(d *state)) {
	if d := s.scope(ctx); d != nil {
		fn(d)
		return
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.data)
}
