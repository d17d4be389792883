package repository

import (
	"errors"

	"github.com/khwelo/classward/internal/apperror"
	"github.com/khwelo/classward/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResponseRepository interface {
	FindByLearnerAndReview(learnerID, reviewID uint) (*model.LearnerResponse, error)
	FindByID(id uint) (*model.LearnerResponse, error)
	FindByReview(reviewID uint) ([]model.LearnerResponse, error)
	FindByLearner(learnerID uint) ([]model.LearnerResponse, error)
	// UpsertProgress writes the learner-authored columns of the (learner,
	// review) row atomically, inserting it on first save. Teacher-authored
	// columns (feedback) are never touched by this path.
	UpsertProgress(response *model.LearnerResponse) error
	// UpdateFeedback writes the teacher-authored feedback column only, so
	// a concurrent learner save cannot be clobbered.
	UpdateFeedback(id uint, feedback string) error
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) FindByLearnerAndReview(learnerID, reviewID uint) (*model.LearnerResponse, error) {
	var response model.LearnerResponse
	err := r.db.
		Where("learner_id = ? AND review_id = ?", learnerID, reviewID).
		First(&response).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("response for learner %d review %d", learnerID, reviewID)
		}
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) FindByID(id uint) (*model.LearnerResponse, error) {
	var response model.LearnerResponse
	if err := r.db.First(&response, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("response %d", id)
		}
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) FindByReview(reviewID uint) ([]model.LearnerResponse, error) {
	var responses []model.LearnerResponse
	err := r.db.
		Where("review_id = ?", reviewID).
		Order("updated_at DESC").
		Find(&responses).Error
	return responses, err
}

func (r *responseRepository) FindByLearner(learnerID uint) ([]model.LearnerResponse, error) {
	var responses []model.LearnerResponse
	err := r.db.
		Where("learner_id = ?", learnerID).
		Find(&responses).Error
	return responses, err
}

func (r *responseRepository) UpsertProgress(response *model.LearnerResponse) error {
	// Conditional upsert on the (learner_id, review_id) unique index
	// instead of check-then-insert, so two tabs saving concurrently
	// converge to last-write-wins on the learner columns without ever
	// duplicating the row.
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "learner_id"}, {Name: "review_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"answers", "status", "score", "submitted_at", "updated_at",
		}),
	}).Create(response).Error
}

func (r *responseRepository) UpdateFeedback(id uint, feedback string) error {
	result := r.db.Model(&model.LearnerResponse{}).
		Where("id = ?", id).
		Update("feedback", feedback)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFoundf("response %d", id)
	}
	return nil
}
