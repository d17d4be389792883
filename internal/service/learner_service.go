package service

import (
	"github.com/jinzhu/copier"
	"github.com/khwelo/classward/internal/apperror"
	"github.com/khwelo/classward/internal/dto"
	"github.com/khwelo/classward/internal/model"
	"github.com/khwelo/classward/internal/repository"
	"github.com/rs/zerolog/log"
)

// LearnerService assembles the learner-facing assessment views: the
// audience resolver filters the visible assessment set down to what applies
// to the learner, and the temporal classifier buckets each surviving
// assessment against the learner's submission history.
type LearnerService interface {
	ListAssessments(learnerID uint) ([]dto.LearnerAssessmentDTO, error)
	GetAssessmentDetail(assessmentID, learnerID uint) (*dto.LearnerAssessmentDetailDTO, error)
}

type learnerService struct {
	assessmentRepo repository.AssessmentRepository
	responseRepo   repository.ResponseRepository
	membershipRepo repository.MembershipRepository
	audience       AudienceService
	schedule       ScheduleService
	clock          Clock
}

func NewLearnerService(
	assessmentRepo repository.AssessmentRepository,
	responseRepo repository.ResponseRepository,
	membershipRepo repository.MembershipRepository,
	audience AudienceService,
	schedule ScheduleService,
	clock Clock,
) LearnerService {
	return &learnerService{
		assessmentRepo: assessmentRepo,
		responseRepo:   responseRepo,
		membershipRepo: membershipRepo,
		audience:       audience,
		schedule:       schedule,
		clock:          clock,
	}
}

func (s *learnerService) ListAssessments(learnerID uint) ([]dto.LearnerAssessmentDTO, error) {
	classroomIDs, err := s.membershipRepo.ClassroomIDs(learnerID)
	if err != nil {
		return nil, err
	}
	groupIDs, err := s.membershipRepo.GroupIDs(learnerID)
	if err != nil {
		return nil, err
	}

	assessments, err := s.assessmentRepo.FindVisible()
	if err != nil {
		log.Error().Err(err).Msg("ListAssessments: failed to fetch visible assessments")
		return nil, err
	}

	responses, err := s.responseRepo.FindByLearner(learnerID)
	if err != nil {
		return nil, err
	}
	byReview := make(map[uint]*model.LearnerResponse, len(responses))
	for i := range responses {
		byReview[responses[i].ReviewID] = &responses[i]
	}

	today := s.clock.Today()
	rows := make([]dto.LearnerAssessmentDTO, 0, len(assessments))
	for i := range assessments {
		a := &assessments[i]
		if !s.audience.Applies(a, learnerID, classroomIDs, groupIDs) {
			continue
		}
		response := byReview[a.ReviewID]
		completed := response != nil && response.Completed()

		row := dto.LearnerAssessmentDTO{
			ID:           a.ID,
			ReviewID:     a.ReviewID,
			Title:        a.Title,
			Subject:      a.Subject,
			Grade:        a.Grade,
			StartDate:    a.StartDate,
			EndDate:      a.EndDate,
			Bucket:       string(s.schedule.Classify(a, today, completed)),
			DaysUntilDue: s.schedule.DaysUntilDue(a, today),
		}
		if completed {
			row.Score = response.Score
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *learnerService) GetAssessmentDetail(assessmentID, learnerID uint) (*dto.LearnerAssessmentDetailDTO, error) {
	assessment, err := s.assessmentRepo.FindByIDWithReview(assessmentID)
	if err != nil {
		return nil, err
	}
	if !assessment.Status.VisibleToLearners() {
		return nil, apperror.NotFoundf("assessment %d", assessmentID)
	}

	var completed bool
	var saved map[string]string
	response, err := s.responseRepo.FindByLearnerAndReview(learnerID, assessment.ReviewID)
	if err == nil {
		completed = response.Completed()
		saved = response.Answers.Data()
	}

	detail := dto.LearnerAssessmentDetailDTO{
		ID:           assessment.ID,
		ReviewID:     assessment.ReviewID,
		Title:        assessment.Title,
		Subject:      assessment.Subject,
		Grade:        assessment.Grade,
		Description:  assessment.Description,
		StartDate:    assessment.StartDate,
		EndDate:      assessment.EndDate,
		Bucket:       string(s.schedule.Classify(assessment, s.clock.Today(), completed)),
		DaysUntilDue: s.schedule.DaysUntilDue(assessment, s.clock.Today()),
		SavedAnswers: saved,
	}
	for _, q := range assessment.Review.Questions {
		var lq dto.LearnerQuestionResponse
		copier.Copy(&lq, &q)
		lq.Options = q.Options
		detail.Questions = append(detail.Questions, lq)
	}
	return &detail, nil
}
