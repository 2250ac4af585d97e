package repository

import (
	"context"

	"github.com/linskybing/formflow/internal/domain/form"
	"gorm.io/gorm"
)

type ComponentRepo interface {
	Create(ctx context.Context, c *form.Component) error
	ListByFormID(ctx context.Context, formID uint) ([]form.Component, error)
	ListByFormIDs(ctx context.Context, formIDs []uint) ([]form.Component, error)
	DeleteByFormID(ctx context.Context, formID uint) error
	WithTx(tx *gorm.DB) ComponentRepo
}

type DBComponentRepo struct {
	db *gorm.DB
}

func NewComponentRepo(db *gorm.DB) *DBComponentRepo {
	return &DBComponentRepo{db: db}
}

func (r *DBComponentRepo) Create(ctx context.Context, c *form.Component) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// ListByFormID returns raw rows by id; canonical ordering is applied by the schema package.
func (r *DBComponentRepo) ListByFormID(ctx context.Context, formID uint) ([]form.Component, error) {
	var components []form.Component
	err := r.db.WithContext(ctx).Where("form_id = ?", formID).Order("id asc").Find(&components).Error
	return components, err
}

func (r *DBComponentRepo) ListByFormIDs(ctx context.Context, formIDs []uint) ([]form.Component, error) {
	if len(formIDs) == 0 {
		return nil, nil
	}
	var components []form.Component
	err := r.db.WithContext(ctx).Where("form_id IN ?", formIDs).Order("id asc").Find(&components).Error
	return components, err
}

func (r *DBComponentRepo) DeleteByFormID(ctx context.Context, formID uint) error {
	return r.db.WithContext(ctx).Where("form_id = ?", formID).Delete(&form.Component{}).Error
}

func (r *DBComponentRepo) WithTx(tx *gorm.DB) ComponentRepo {
	if tx == nil {
		return r
	}
	return &DBComponentRepo{db: tx}
}
