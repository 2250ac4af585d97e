package memory

import (
	"context"
	"sort"

	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/domain/submission"
	"github.com/linskybing/formflow/internal/domain/user"
	"github.com/linskybing/formflow/internal/repository"
	"gorm.io/gorm"
)

// Lookups that miss return gorm.ErrRecordNotFound so callers handle both
// backends the same way.

type FormRepo struct{ store *Store }

func (r *FormRepo) Create(ctx context.Context, f *form.Form) error {
	r.store.write(ctx, func(d *state) {
		f.ID = r.store.formIDs()
		if f.CreatedAt.IsZero() {
			f.CreatedAt = r.store.now()
		}
		if f.Status == "" {
			f.Status = form.FormStatusDraft
		}
		stored := *f
		stored.Components = nil
		d.forms[f.ID] = stored
	})
	return nil
}

func (r *FormRepo) FindByID(ctx context.Context, id uint) (*form.Form, error) {
	var (
		f  form.Form
		ok bool
	)
	r.store.read(ctx, func(d *state) { f, ok = d.forms[id] })
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &f, nil
}

func (r *FormRepo) List(ctx context.Context) ([]form.Form, error) {
	var forms []form.Form
	r.store.read(ctx, func(d *state) {
		for _, f := range d.forms {
			forms = append(forms, f)
		}
	})
	sort.Slice(forms, func(i, j int) bool {
		if !forms[i].CreatedAt.Equal(forms[j].CreatedAt) {
			return forms[i].CreatedAt.After(forms[j].CreatedAt)
		}
		return forms[i].ID > forms[j].ID
	})
	return forms, nil
}

func (r *FormRepo) UpdateTitle(ctx context.Context, id uint, title string) error {
	return r.update(ctx, id, func(f *form.Form) { f.Title = title })
}

func (r *FormRepo) UpdateStatus(ctx context.Context, id uint, status form.FormStatus) error {
	return r.update(ctx, id, func(f *form.Form) { f.Status = status })
}

func (r *FormRepo) Delete(ctx context.Context, id uint) error {
	var err error
	r.store.write(ctx, func(d *state) {
		if _, ok := d.forms[id]; !ok {
			err = gorm.ErrRecordNotFound
			return
		}
		delete(d.forms, id)
	})
	return err
}

func (r *FormRepo) update(ctx context.Context, id uint, fn func(*form.Form)) error {
	var err error
	r.store.write(ctx, func(d *state) {
		f, ok := d.forms[id]
		if !ok {
			err = gorm.ErrRecordNotFound
			return
		}
		fn(&f)
		d.forms[id] = f
	})
	return err
}

func (r *FormRepo) WithTx(tx *gorm.DB) repository.FormRepo { return r }

type ComponentRepo struct{ store *Store }

func (r *ComponentRepo) Create(ctx context.Context, c *form.Component) error {
	r.store.write(ctx, func(d *state) {
		c.ID = r.store.componentIDs()
		d.components[c.ID] = *c
	})
	return nil
}

func (r *ComponentRepo) ListByFormID(ctx context.Context, formID uint) ([]form.Component, error) {
	return r.ListByFormIDs(ctx, []uint{formID})
}

func (r *ComponentRepo) ListByFormIDs(ctx context.Context, formIDs []uint) ([]form.Component, error) {
	wanted := make(map[uint]struct{}, len(formIDs))
	for _, id := range formIDs {
		wanted[id] = struct{}{}
	}
	var out []form.Component
	r.store.read(ctx, func(d *state) {
		for _, c := range d.components {
			if _, ok := wanted[c.FormID]; ok {
				out = append(out, c)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ComponentRepo) DeleteByFormID(ctx context.Context, formID uint) error {
	r.store.write(ctx, func(d *state) {
		for id, c := range d.components {
			if c.FormID == formID {
				delete(d.components, id)
			}
		}
	})
	return nil
}

func (r *ComponentRepo) WithTx(tx *gorm.DB) repository.ComponentRepo { return r }

type SubmissionRepo struct{ store *Store }

func (r *SubmissionRepo) Create(ctx context.Context, s *submission.Submission) error {
	r.store.write(ctx, func(d *state) {
		s.ID = r.store.submissionIDs()
		if s.CreatedAt.IsZero() {
			s.CreatedAt = r.store.now()
		}
		stored := *s
		stored.Answers = nil
		d.submissions[s.ID] = stored
	})
	return nil
}

func (r *SubmissionRepo) CreateAnswers(ctx context.Context, answers []submission.Answer) error {
	var err error
	r.store.write(ctx, func(d *state) {
		for _, a := range answers {
			key := answerKey{submissionID: a.SubmissionID, componentID: a.ComponentID}
			if _, exists := d.answers[key]; exists {
				err = gorm.ErrDuplicatedKey
				return
			}
		}
		for _, a := range answers {
			d.answers[answerKey{submissionID: a.SubmissionID, componentID: a.ComponentID}] = a
		}
	})
	return err
}

func (r *SubmissionRepo) FindByID(ctx context.Context, formID, id uint) (*submission.Submission, error) {
	var (
		s  submission.Submission
		ok bool
	)
	r.store.read(ctx, func(d *state) { s, ok = d.submissions[id] })
	if !ok || s.FormID != formID {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (r *SubmissionRepo) ListByFormID(ctx context.Context, formID uint) ([]submission.Submission, error) {
	var out []submission.Submission
	r.store.read(ctx, func(d *state) {
		for _, s := range d.submissions {
			if s.FormID == formID {
				out = append(out, s)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *SubmissionRepo) ListAnswers(ctx context.Context, submissionID uint) ([]submission.Answer, error) {
	var out []submission.Answer
	r.store.read(ctx, func(d *state) {
		for key, a := range d.answers {
			if key.submissionID == submissionID {
				out = append(out, a)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ComponentID < out[j].ComponentID })
	return out, nil
}

func (r *SubmissionRepo) CountByFormID(ctx context.Context, formID uint) (int64, error) {
	var n int64
	r.store.read(ctx, func(d *state) {
		for _, s := range d.submissions {
			if s.FormID == formID {
				n++
			}
		}
	})
	return n, nil
}

func (r *SubmissionRepo) DeleteByFormID(ctx context.Context, formID uint) (int64, error) {
	var n int64
	r.store.write(ctx, func(d *state) {
		for id, s := range d.submissions {
			if s.FormID != formID {
				continue
			}
			for key := range d.answers {
				if key.submissionID == id {
					delete(d.answers, key)
				}
			}
			delete(d.submissions, id)
			n++
		}
	})
	return n, nil
}

func (r *SubmissionRepo) WithTx(tx *gorm.DB) repository.SubmissionRepo { return r }

type UserRepo struct{ store *Store }

func (r *UserRepo) UpsertByID(ctx context.Context, id, username string) error {
	r.store.write(ctx, func(d *state) {
		if _, ok := d.users[id]; ok {
			return
		}
		d.users[id] = user.User{ID: id, Username: username, CreatedAt: r.store.now()}
	})
	return nil
}

func (r *UserRepo) Create(ctx context.Context, username string) (string, error) {
	var (
		id  string
		err error
	)
	r.store.write(ctx, func(d *state) {
		id = r.store.userIDs()
		if _, ok := d.users[id]; ok {
			err = gorm.ErrDuplicatedKey
			return
		}
		d.users[id] = user.User{ID: id, Username: username, CreatedAt: r.store.now()}
	})
	return id, err
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	var (
		u  user.User
		ok bool
	)
	r.store.read(ctx, func(d *state) { u, ok = d.users[id] })
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *UserRepo) WithTx(tx *gorm.DB) repository.UserRepo { return r }
