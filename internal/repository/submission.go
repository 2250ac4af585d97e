package repository

import (
	"context"

	"github.com/linskybing/formflow/internal/domain/submission"
	"gorm.io/gorm"
)

type SubmissionRepo interface {
	Create(ctx context.Context, s *submission.Submission) error
	CreateAnswers(ctx context.Context, answers []submission.Answer) error
	FindByID(ctx context.Context, formID, id uint) (*submission.Submission, error)
	ListByFormID(ctx context.Context, formID uint) ([]submission.Submission, error)
	ListAnswers(ctx context.Context, submissionID uint) ([]submission.Answer, error)
	CountByFormID(ctx context.Context, formID uint) (int64, error)
	DeleteByFormID(ctx context.Context, formID uint) (int64, error)
	WithTx(tx *gorm.DB) SubmissionRepo
}

type DBSubmissionRepo struct {
	db *gorm.DB
}

func NewSubmissionRepo(db *gorm.DB) *DBSubmissionRepo {
	return &DBSubmissionRepo{db: db}
}

func (r *DBSubmissionRepo) Create(ctx context.Context, s *submission.Submission) error {
	return r.db.WithContext(ctx).Omit("Answers").Create(s).Error
}

func (r *DBSubmissionRepo) CreateAnswers(ctx context.Context, answers []submission.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&answers).Error
}

func (r *DBSubmissionRepo) FindByID(ctx context.Context, formID, id uint) (*submission.Submission, error) {
	var s submission.Submission
	err := r.db.WithContext(ctx).Where("id = ? AND form_id = ?", id, formID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *DBSubmissionRepo) ListByFormID(ctx context.Context, formID uint) ([]submission.Submission, error) {
	var subs []submission.Submission
	err := r.db.WithContext(ctx).
		Where("form_id = ?", formID).
		Order("created_at desc").
		Order("id desc").
		Find(&subs).Error
	return subs, err
}

func (r *DBSubmissionRepo) ListAnswers(ctx context.Context, submissionID uint) ([]submission.Answer, error) {
	var answers []submission.Answer
	err := r.db.WithContext(ctx).Where("submission_id = ?", submissionID).Order("component_id asc").Find(&answers).Error
	return answers, err
}

func (r *DBSubmissionRepo) CountByFormID(ctx context.Context, formID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&submission.Submission{}).Where("form_id = ?", formID).Count(&n).Error
	return n, err
}

// DeleteByFormID removes the answers of every submission of the form, then
// the submissions themselves, and reports how many submissions were removed.
func (r *DBSubmissionRepo) DeleteByFormID(ctx context.Context, formID uint) (int64, error) {
	db := r.db.WithContext(ctx)
	ids := db.Model(&submission.Submission{}).Select("id").Where("form_id = ?", formID)
	if err := db.Where("submission_id IN (?)", ids).Delete(&submission.Answer{}).Error; err != nil {
		return 0, err
	}
	res := db.Where("form_id = ?", formID).Delete(&submission.Submission{})
	return res.RowsAffected, res.Error
}

func (r *DBSubmissionRepo) WithTx(tx *gorm.DB) SubmissionRepo {
	if tx == nil {
		return r
	}
	return &DBSubmissionRepo{db: tx}
}
