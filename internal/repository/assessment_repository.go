package repository

import (
	"errors"

	"github.com/khwelo/classward/internal/apperror"
	"github.com/khwelo/classward/internal/model"
	"gorm.io/gorm"
)

type AssessmentRepository interface {
	Create(assessment *model.Assessment) error
	Update(assessment *model.Assessment) error
	FindByID(id uint) (*model.Assessment, error)
	FindByIDWithReview(id uint) (*model.Assessment, error)
	// FindVisible returns assessments in a learner-visible status
	// (scheduled or active), newest start date first.
	FindVisible() ([]model.Assessment, error)
	FindByTeacher(teacherID uint) ([]model.Assessment, error)
	// HasSentForReview reports whether any non-draft, non-cancelled
	// assessment references the review. Reviews are frozen once true.
	HasSentForReview(reviewID uint) (bool, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(assessment *model.Assessment) error {
	return r.db.Create(assessment).Error
}

func (r *assessmentRepository) Update(assessment *model.Assessment) error {
	return r.db.Save(assessment).Error
}

func (r *assessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var assessment model.Assessment
	if err := r.db.First(&assessment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("assessment %d", id)
		}
		return nil, err
	}
	return &assessment, nil
}

func (r *assessmentRepository) FindByIDWithReview(id uint) (*model.Assessment, error) {
	var assessment model.Assessment
	err := r.db.
		Preload("Review.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.position ASC")
		}).
		Preload("Review").
		First(&assessment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("assessment %d", id)
		}
		return nil, err
	}
	return &assessment, nil
}

func (r *assessmentRepository) FindVisible() ([]model.Assessment, error) {
	var assessments []model.Assessment
	err := r.db.
		Where("status IN ?", []model.AssessmentStatus{model.StatusScheduled, model.StatusActive}).
		Order("start_date DESC").
		Find(&assessments).Error
	return assessments, err
}

func (r *assessmentRepository) FindByTeacher(teacherID uint) ([]model.Assessment, error) {
	var assessments []model.Assessment
	err := r.db.
		Where("created_by = ?", teacherID).
		Order("created_at DESC").
		Find(&assessments).Error
	return assessments, err
}

func (r *assessmentRepository) HasSentForReview(reviewID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Assessment{}).
		Where("review_id = ? AND status IN ?", reviewID,
			[]model.AssessmentStatus{model.StatusScheduled, model.StatusActive}).
		Count(&count).Error
	return count > 0, err
}
