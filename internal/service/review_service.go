package service

import (
	"github.com/jinzhu/copier"
	"github.com/khwelo/classward/internal/apperror"
	"github.com/khwelo/classward/internal/dto"
	"github.com/khwelo/classward/internal/model"
	"github.com/khwelo/classward/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ReviewService manages the question containers assessments are generated
// from. A review is frozen once any assessment referencing it has been sent
// to learners.
type ReviewService interface {
	CreateReview(req dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	// UpdateReview replaces the review's metadata and question set. Rejected
	// with a conflict once any assessment referencing the review has been
	// sent to learners.
	UpdateReview(id uint, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	GetReview(id uint) (*dto.ReviewResponse, error)
	ListByTeacher(teacherID uint) ([]dto.ReviewResponse, error)
}

type reviewService struct {
	reviewRepo     repository.ReviewRepository
	assessmentRepo repository.AssessmentRepository
	db             *gorm.DB
}

func NewReviewService(reviewRepo repository.ReviewRepository, assessmentRepo repository.AssessmentRepository, db *gorm.DB) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, assessmentRepo: assessmentRepo, db: db}
}

func (s *reviewService) CreateReview(req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	review := model.Review{
		Title:     req.Title,
		Subject:   req.Subject,
		Grade:     req.Grade,
		CreatedBy: req.CreatedBy,
	}

	for _, qReq := range req.Questions {
		if !containsOption(qReq.Options, qReq.CorrectValue) {
			return nil, apperror.Validationf(
				"question at position %d: correct value %q is not one of its options",
				qReq.Position, qReq.CorrectValue)
		}
		review.Questions = append(review.Questions, model.Question{
			Prompt:       qReq.Prompt,
			Options:      qReq.Options,
			CorrectValue: qReq.CorrectValue,
			Explanation:  qReq.Explanation,
			Hint:         qReq.Hint,
			Position:     qReq.Position,
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&review).Error
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create review with questions in transaction")
		return nil, err
	}

	var resp dto.ReviewResponse
	copier.Copy(&resp, &review)
	return &resp, nil
}

func (s *reviewService) UpdateReview(id uint, req dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	sent, err := s.assessmentRepo.HasSentForReview(id)
	if err != nil {
		return nil, err
	}
	if sent {
		return nil, apperror.Conflictf("review %d has been sent to learners and is frozen", id)
	}

	questions := make([]model.Question, 0, len(req.Questions))
	for _, qReq := range req.Questions {
		if !containsOption(qReq.Options, qReq.CorrectValue) {
			return nil, apperror.Validationf(
				"question at position %d: correct value %q is not one of its options",
				qReq.Position, qReq.CorrectValue)
		}
		questions = append(questions, model.Question{
			ReviewID:     id,
			Prompt:       qReq.Prompt,
			Options:      qReq.Options,
			CorrectValue: qReq.CorrectValue,
			Explanation:  qReq.Explanation,
			Hint:         qReq.Hint,
			Position:     qReq.Position,
		})
	}

	review.Title = req.Title
	review.Subject = req.Subject
	review.Grade = req.Grade
	review.Questions = questions

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Save(review).Error
	})
	if err != nil {
		log.Error().Err(err).Uint("reviewID", id).Msg("Failed to replace review question set")
		return nil, err
	}

	var resp dto.ReviewResponse
	copier.Copy(&resp, review)
	return &resp, nil
}

func (s *reviewService) GetReview(id uint) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindByIDWithQuestions(id)
	if err != nil {
		return nil, err
	}
	var resp dto.ReviewResponse
	copier.Copy(&resp, review)
	return &resp, nil
}

func (s *reviewService) ListByTeacher(teacherID uint) ([]dto.ReviewResponse, error) {
	reviews, err := s.reviewRepo.FindByTeacher(teacherID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ReviewResponse, 0, len(reviews))
	copier.Copy(&resp, &reviews)
	return resp, nil
}

func containsOption(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}
