package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/pkg/schema"
	"gorm.io/gorm"
)

type FormService struct {
	Repos *repository.Repos
}

func NewFormService(repos *repository.Repos) *FormService {
	return &FormService{Repos: repos}
}

func (s *FormService) CreateForm(ctx context.Context, input form.CreateFormDTO) (*form.FormView, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	components := make([]form.Component, 0, len(input.Components))
	for i, in := range input.Components {
		c, err := buildComponent(in.Type, in.Name, in.Properties)
		if err != nil {
			return nil, err
		}
		setOrder(c.Properties, in.Order, float64(i))
		components = append(components, c)
	}

	f := &form.Form{
		Title:  title,
		UserID: strings.TrimSpace(input.UserID),
		Status: form.FormStatusDraft,
	}
	err := s.Repos.ExecTx(ctx, func(ctx context.Context, tx *repository.Repos) error {
		if err := tx.Form.Create(ctx, f); err != nil {
			return err
		}
		for i := range components {
			components[i].FormID = f.ID
			if err := tx.Component.Create(ctx, &components[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, persistenceError("create form", err)
	}
	view := toFormView(*f, components)
	return &view, nil
}

// AddComponent appends a component to an existing form. Without an explicit
// order it is placed after the form's current components.
func (s *FormService) AddComponent(ctx context.Context, input form.CreateComponentDTO) (*schema.Descriptor, error) {
	c, err := buildComponent(input.Type, input.Name, input.Properties)
	if err != nil {
		return nil, err
	}
	c.FormID = input.FormID

	var position int
	err = s.Repos.ExecTx(ctx, func(ctx context.Context, tx *repository.Repos) error {
		if _, err := tx.Form.FindByID(ctx, input.FormID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFormNotFound
			}
			return err
		}
		existing, err := tx.Component.ListByFormID(ctx, input.FormID)
		if err != nil {
			return err
		}
		position = len(existing)
		setOrder(c.Properties, input.Order, float64(position))
		return tx.Component.Create(ctx, &c)
	})
	if err != nil {
		return nil, persistenceError("add component", err)
	}
	d := schema.Normalize(c.Raw(), position)
	return &d, nil
}

func (s *FormService) ListForms(ctx context.Context) ([]form.FormView, error) {
	forms, err := s.Repos.Form.List(ctx)
	if err != nil {
		return nil, persistenceError("list forms", err)
	}
	ids := make([]uint, len(forms))
	for i, f := range forms {
		ids[i] = f.ID
	}
	rows, err := s.Repos.Component.ListByFormIDs(ctx, ids)
	if err != nil {
		return nil, persistenceError("list components", err)
	}
	byForm := make(map[uint][]form.Component, len(forms))
	for _, c := range rows {
		byForm[c.FormID] = append(byForm[c.FormID], c)
	}

	views := make([]form.FormView, 0, len(forms))
	for _, f := range forms {
		views = append(views, toFormView(f, byForm[f.ID]))
	}
	return views, nil
}

// GetForm returns the form with its components in canonical order.
func (s *FormService) GetForm(ctx context.Context, id uint) (*form.FormView, error) {
	f, err := findForm(ctx, s.Repos, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.Repos.Component.ListByFormID(ctx, id)
	if err != nil {
		return nil, persistenceError("list components", err)
	}
	view := toFormView(*f, rows)
	return &view, nil
}

func (s *FormService) RenameForm(ctx context.Context, id uint, title string) (*form.FormView, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if err := s.Repos.Form.UpdateTitle(ctx, id, title); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, persistenceError("rename form", err)
	}
	return s.GetForm(ctx, id)
}

func (s *FormService) PublishForm(ctx context.Context, id uint) (*form.FormView, error) {
	if err := s.Repos.Form.UpdateStatus(ctx, id, form.FormStatusPublished); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, persistenceError("publish form", err)
	}
	return s.GetForm(ctx, id)
}

// DeleteForm removes the form together with its submissions, answers and
// components. confirm must be true.
func (s *FormService) DeleteForm(ctx context.Context, id uint, confirm bool) error {
	if !confirm {
		return ErrConfirmationRequired
	}
	err := s.Repos.ExecTx(ctx, func(ctx context.Context, tx *repository.Repos) error {
		if _, err := tx.Form.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFormNotFound
			}
			return err
		}
		if _, err := tx.Submission.DeleteByFormID(ctx, id); err != nil {
			return err
		}
		if err := tx.Component.DeleteByFormID(ctx, id); err != nil {
			return err
		}
		return tx.Form.Delete(ctx, id)
	})
	return persistenceError("delete form", err)
}

func findForm(ctx context.Context, repos *repository.Repos, id uint) (*form.Form, error) {
	f, err := repos.Form.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, persistenceError("load form", err)
	}
	return f, nil
}

func loadDescriptors(ctx context.Context, repos *repository.Repos, formID uint) ([]schema.Descriptor, error) {
	rows, err := repos.Component.ListByFormID(ctx, formID)
	if err != nil {
		return nil, err
	}
	return normalizeComponents(rows), nil
}

func normalizeComponents(rows []form.Component) []schema.Descriptor {
	raws := make([]map[string]any, len(rows))
	for i, c := range rows {
		raws[i] = c.Raw()
	}
	return schema.NormalizeAll(raws)
}

func toFormView(f form.Form, rows []form.Component) form.FormView {
	return form.FormView{
		ID:         f.ID,
		Title:      f.Title,
		UserID:     f.UserID,
		Status:     f.Status,
		CreatedAt:  f.CreatedAt,
		Components: normalizeComponents(rows),
	}
}

func buildComponent(rawType, name string, properties map[string]any) (form.Component, error) {
	t, ok := schema.ParseType(rawType)
	if !ok || t == schema.TypeInput {
		return form.Component{}, fmt.Errorf("%w: unsupported component type %q", ErrInvalidComponent, rawType)
	}
	props := make(map[string]any, len(properties)+1)
	for k, v := range properties {
		props[k] = v
	}
	if err := schema.ValidateProperties(t, props); err != nil {
		return form.Component{}, fmt.Errorf("%w: %v", ErrInvalidComponent, err)
	}
	return form.Component{Type: string(t), Name: name, Properties: props}, nil
}

// setOrder stores the resolved order under properties.order. An explicit
// order wins; otherwise an existing properties.order is kept.
func setOrder(props map[string]any, explicit *float64, fallback float64) {
	if explicit != nil {
		props["order"] = *explicit
		return
	}
	if _, ok := schema.AsFloat(props["order"]); ok {
		return
	}
	props["order"] = fallback
}
