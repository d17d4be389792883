package repository

import (
	"errors"

	"github.com/khwelo/classward/internal/apperror"
	"github.com/khwelo/classward/internal/model"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *model.Review) error
	FindByID(id uint) (*model.Review, error)
	FindByIDWithQuestions(id uint) (*model.Review, error)
	FindByTeacher(teacherID uint) ([]model.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.Review) error {
	// GORM creates the associated questions when review.Questions is
	// populated, in slice order.
	return r.db.Create(review).Error
}

func (r *reviewRepository) FindByID(id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("review %d", id)
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByIDWithQuestions(id uint) (*model.Review, error) {
	var review model.Review
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.position ASC")
	}).First(&review, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("review %d", id)
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByTeacher(teacherID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.
		Where("created_by = ?", teacherID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}
