package repository

import (
	"context"

	"github.com/linskybing/formflow/internal/domain/form"
	"gorm.io/gorm"
)

type FormRepo interface {
	Create(ctx context.Context, f *form.Form) error
	FindByID(ctx context.Context, id uint) (*form.Form, error)
	List(ctx context.Context) ([]form.Form, error)
	UpdateTitle(ctx context.Context, id uint, title string) error
	UpdateStatus(ctx context.Context, id uint, status form.FormStatus) error
	Delete(ctx context.Context, id uint) error
	WithTx(tx *gorm.DB) FormRepo
}

type DBFormRepo struct {
	db *gorm.DB
}

func NewFormRepo(db *gorm.DB) *DBFormRepo {
	return &DBFormRepo{db: db}
}

func (r *DBFormRepo) Create(ctx context.Context, f *form.Form) error {
	return r.db.WithContext(ctx).Omit("Components").Create(f).Error
}

func (r *DBFormRepo) FindByID(ctx context.Context, id uint) (*form.Form, error) {
	var f form.Form
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *DBFormRepo) List(ctx context.Context) ([]form.Form, error) {
	var forms []form.Form
	err := r.db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&forms).Error
	return forms, err
}

func (r *DBFormRepo) UpdateTitle(ctx context.Context, id uint, title string) error {
	return r.update(ctx, id, "title", title)
}

func (r *DBFormRepo) UpdateStatus(ctx context.Context, id uint, status form.FormStatus) error {
	return r.update(ctx, id, "status", status)
}

func (r *DBFormRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&form.Form{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBFormRepo) update(ctx context.Context, id uint, column string, value any) error {
	res := r.db.WithContext(ctx).Model(&form.Form{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBFormRepo) WithTx(tx *gorm.DB) FormRepo {
	if tx == nil {
		return r
	}
	return &DBFormRepo{db: tx}
}
