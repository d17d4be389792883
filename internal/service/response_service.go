package service

import (
	"github.com/jinzhu/copier"
	"github.com/khwelo/classward/internal/apperror"
	"github.com/khwelo/classward/internal/dto"
	"github.com/khwelo/classward/internal/model"
	"github.com/khwelo/classward/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// ResponseService manages the single LearnerResponse row per (learner,
// review): incremental progress saves, the final submit that triggers
// scoring, and teacher feedback. Saves and submits merge into the existing
// answer map; the row is never duplicated or deleted.
type ResponseService interface {
	SaveProgress(assessmentID uint, req dto.SaveProgressRequest) (*dto.ResponseDTO, error)
	Submit(assessmentID uint, req dto.SubmitResponseRequest) (*dto.ResponseDTO, error)
	GetForLearner(learnerID, reviewID uint) (*dto.ResponseDTO, error)
	AttachFeedback(responseID uint, req dto.FeedbackRequest) (*dto.ResponseDTO, error)
}

type responseService struct {
	assessmentRepo repository.AssessmentRepository
	responseRepo   repository.ResponseRepository
	scoring        ScoringService
	schedule       ScheduleService
	clock          Clock
}

func NewResponseService(
	assessmentRepo repository.AssessmentRepository,
	responseRepo repository.ResponseRepository,
	scoring ScoringService,
	schedule ScheduleService,
	clock Clock,
) ResponseService {
	return &responseService{
		assessmentRepo: assessmentRepo,
		responseRepo:   responseRepo,
		scoring:        scoring,
		schedule:       schedule,
		clock:          clock,
	}
}

func (s *responseService) SaveProgress(assessmentID uint, req dto.SaveProgressRequest) (*dto.ResponseDTO, error) {
	assessment, _, existing, err := s.loadAttemptable(assessmentID, req.LearnerID)
	if err != nil {
		return nil, err
	}

	response := mergeAnswers(existing, req.LearnerID, assessment.ReviewID, req.Answers)
	response.Status = model.ResponseIncomplete

	if err := s.responseRepo.UpsertProgress(response); err != nil {
		log.Error().Err(err).Uint("assessmentID", assessmentID).Uint("learnerID", req.LearnerID).
			Msg("SaveProgress: upsert failed")
		return nil, err
	}
	return toResponseDTO(response), nil
}

func (s *responseService) Submit(assessmentID uint, req dto.SubmitResponseRequest) (*dto.ResponseDTO, error) {
	assessment, questions, existing, err := s.loadAttemptable(assessmentID, req.LearnerID)
	if err != nil {
		return nil, err
	}

	response := mergeAnswers(existing, req.LearnerID, assessment.ReviewID, req.Answers)

	score, err := s.scoring.Score(response.Answers.Data(), questions)
	if err != nil {
		// An empty key means broken review data; the submit is rejected so
		// the row never carries a score computed from nothing.
		log.Error().Err(err).Uint("assessmentID", assessmentID).
			Msg("Submit: scoring flagged a data error")
		return nil, err
	}

	now := s.clock.Today()
	response.Status = model.ResponseCompleted
	response.Score = &score
	response.SubmittedAt = &now

	if err := s.responseRepo.UpsertProgress(response); err != nil {
		log.Error().Err(err).Uint("assessmentID", assessmentID).Uint("learnerID", req.LearnerID).
			Msg("Submit: upsert failed")
		return nil, err
	}
	return toResponseDTO(response), nil
}

func (s *responseService) GetForLearner(learnerID, reviewID uint) (*dto.ResponseDTO, error) {
	response, err := s.responseRepo.FindByLearnerAndReview(learnerID, reviewID)
	if err != nil {
		return nil, err
	}
	return toResponseDTO(response), nil
}

func (s *responseService) AttachFeedback(responseID uint, req dto.FeedbackRequest) (*dto.ResponseDTO, error) {
	if _, err := s.responseRepo.FindByID(responseID); err != nil {
		return nil, err
	}
	// Feedback is written through its own column-scoped update so a
	// concurrent learner save cannot be overwritten whole-row.
	if err := s.responseRepo.UpdateFeedback(responseID, req.Feedback); err != nil {
		return nil, err
	}
	response, err := s.responseRepo.FindByID(responseID)
	if err != nil {
		return nil, err
	}
	return toResponseDTO(response), nil
}

// loadAttemptable fetches the assessment with its question key and the
// learner's existing response, enforcing that the assessment is open for
// attempts: visible status, not already completed by this learner, and
// inside the date window unless force-activated by send-now.
func (s *responseService) loadAttemptable(assessmentID, learnerID uint) (*model.Assessment, []model.Question, *model.LearnerResponse, error) {
	assessment, err := s.assessmentRepo.FindByIDWithReview(assessmentID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !assessment.Status.VisibleToLearners() {
		return nil, nil, nil, apperror.NotFoundf("assessment %d", assessmentID)
	}

	var existing *model.LearnerResponse
	found, err := s.responseRepo.FindByLearnerAndReview(learnerID, assessment.ReviewID)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, nil, nil, err
	}
	if err == nil {
		existing = found
		if existing.Completed() {
			return nil, nil, nil, apperror.Conflictf("learner %d already submitted review %d", learnerID, assessment.ReviewID)
		}
	}

	today := s.clock.Today()
	bucket := s.schedule.Classify(assessment, today, false)
	switch bucket {
	case BucketUpcoming:
		// Send-now bypasses the start date: an active assessment is open
		// even before its window.
		if assessment.Status != model.StatusActive {
			return nil, nil, nil, apperror.Validationf("assessment %d opens on %s", assessmentID, assessment.StartDate.Format(dateLayout))
		}
	case BucketMissed:
		return nil, nil, nil, apperror.Validationf("assessment %d closed on %s", assessmentID, assessment.EndDate.Format(dateLayout))
	}

	return assessment, assessment.Review.Questions, existing, nil
}

// mergeAnswers folds newly submitted letters into the existing answer map.
// Previously saved answers survive unless overwritten; within one key the
// last write wins, which is acceptable because only the owning learner can
// write the row.
func mergeAnswers(existing *model.LearnerResponse, learnerID, reviewID uint, incoming map[string]string) *model.LearnerResponse {
	merged := model.AnswerMap{}
	if existing != nil {
		for qid, letter := range existing.Answers.Data() {
			merged[qid] = letter
		}
	}
	for qid, letter := range incoming {
		merged[qid] = letter
	}

	response := &model.LearnerResponse{
		LearnerID: learnerID,
		ReviewID:  reviewID,
	}
	if existing != nil {
		response.ID = existing.ID
		response.Feedback = existing.Feedback
		response.CreatedAt = existing.CreatedAt
	}
	response.Answers = datatypes.NewJSONType(merged)
	return response
}

func toResponseDTO(r *model.LearnerResponse) *dto.ResponseDTO {
	var resp dto.ResponseDTO
	copier.Copy(&resp, r)
	resp.Answers = r.Answers.Data()
	resp.Status = string(r.Status)
	return &resp
}
