package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/linskybing/formflow/internal/domain/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepo interface {
	// UpsertByID inserts the respondent unless a row with the id already exists.
	UpsertByID(ctx context.Context, id, username string) error
	// Create inserts a respondent under a generated id and returns it.
	Create(ctx context.Context, username string) (string, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
	WithTx(tx *gorm.DB) UserRepo
}

type DBUserRepo struct {
	db    *gorm.DB
	newID func() string
}

func NewUserRepo(db *gorm.DB) *DBUserRepo {
	return &DBUserRepo{
		db:    db,
		newID: uuid.NewString,
	}
}

func (r *DBUserRepo) UpsertByID(ctx context.Context, id, username string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&user.User{ID: id, Username: username}).Error
}

func (r *DBUserRepo) Create(ctx context.Context, username string) (string, error) {
	u := user.User{ID: r.newID(), Username: username}
	if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
		return "", err
	}
	return u.ID, nil
}

func (r *DBUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *DBUserRepo) WithTx(tx *gorm.DB) UserRepo {
	if tx == nil {
		return r
	}
	return &DBUserRepo{db: tx, newID: r.newID}
}
