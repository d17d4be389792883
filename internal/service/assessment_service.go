package service

import (
	"time"

	"github.com/jinzhu/copier"
	"github.com/khwelo/classward/internal/apperror"
	"github.com/khwelo/classward/internal/dto"
	"github.com/khwelo/classward/internal/model"
	"github.com/khwelo/classward/internal/repository"
	"github.com/rs/zerolog/log"
)

const dateLayout = "2006-01-02"

// AssessmentService owns the teacher-facing administrative lifecycle:
// create (draft or scheduled), reschedule, send-now and cancel. The
// learner-facing pipeline only ever sees scheduled or active assessments.
type AssessmentService interface {
	Create(req dto.CreateAssessmentRequest) (*dto.AssessmentResponse, error)
	Reschedule(id uint, req dto.RescheduleAssessmentRequest) (*dto.AssessmentResponse, error)
	SendNow(id uint) (*dto.AssessmentResponse, error)
	Cancel(id uint) (*dto.AssessmentResponse, error)
	GetByID(id uint) (*dto.AssessmentResponse, error)
	ListByTeacher(teacherID uint) ([]dto.AssessmentResponse, error)
}

type assessmentService struct {
	assessmentRepo repository.AssessmentRepository
	reviewRepo     repository.ReviewRepository
}

func NewAssessmentService(assessmentRepo repository.AssessmentRepository, reviewRepo repository.ReviewRepository) AssessmentService {
	return &assessmentService{assessmentRepo: assessmentRepo, reviewRepo: reviewRepo}
}

func (s *assessmentService) Create(req dto.CreateAssessmentRequest) (*dto.AssessmentResponse, error) {
	review, err := s.reviewRepo.FindByIDWithQuestions(req.ReviewID)
	if err != nil {
		return nil, err
	}
	if len(review.Questions) == 0 {
		return nil, apperror.Validationf("review %d has no questions; cannot create an assessment from it", req.ReviewID)
	}

	start, end, err := parseDateWindow(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	kind := model.AudienceKind(req.AudienceKind)
	assessment := model.Assessment{
		ReviewID:         req.ReviewID,
		Title:            req.Title,
		Subject:          req.Subject,
		Grade:            req.Grade,
		Description:      req.Description,
		StartDate:        start,
		EndDate:          end,
		Status:           model.StatusDraft,
		AudienceKind:     kind,
		TargetClassIDs:   req.TargetClassIDs,
		TargetGroupIDs:   req.TargetGroupIDs,
		TargetLearnerIDs: req.TargetLearnerIDs,
		CreatedBy:        req.CreatedBy,
	}
	if req.AsScheduled {
		assessment.Status = model.StatusScheduled
	}

	if !kind.IsValid() {
		return nil, apperror.Validationf("unknown audience kind %q", req.AudienceKind)
	}
	if len(assessment.TargetIDs()) == 0 {
		return nil, apperror.Validationf("audience kind %q requires a non-empty target set", kind)
	}

	if err := s.assessmentRepo.Create(&assessment); err != nil {
		log.Error().Err(err).Msg("Failed to create assessment")
		return nil, err
	}
	return toAssessmentResponse(&assessment), nil
}

// Reschedule moves the date window. Legal only while scheduled; active and
// cancelled assessments must be rejected by the caller-facing error.
func (s *assessmentService) Reschedule(id uint, req dto.RescheduleAssessmentRequest) (*dto.AssessmentResponse, error) {
	assessment, err := s.assessmentRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if assessment.Status != model.StatusScheduled {
		return nil, apperror.Validationf("assessment %d is %s; only scheduled assessments can be rescheduled", id, assessment.Status)
	}

	start, end, err := parseDateWindow(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	assessment.StartDate = start
	assessment.EndDate = end
	if err := s.assessmentRepo.Update(assessment); err != nil {
		return nil, err
	}
	return toAssessmentResponse(assessment), nil
}

// SendNow force-activates a scheduled assessment immediately, independent
// of its start date.
func (s *assessmentService) SendNow(id uint) (*dto.AssessmentResponse, error) {
	assessment, err := s.assessmentRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !assessment.Status.CanTransition(model.StatusActive) {
		return nil, apperror.Validationf("assessment %d is %s; only scheduled assessments can be sent now", id, assessment.Status)
	}
	assessment.Status = model.StatusActive
	if err := s.assessmentRepo.Update(assessment); err != nil {
		return nil, err
	}
	log.Info().Uint("assessmentID", id).Msg("Assessment force-activated by send-now")
	return toAssessmentResponse(assessment), nil
}

// Cancel is terminal and idempotent: cancelling an already-cancelled
// assessment is a no-op, and nothing ever leaves cancelled.
func (s *assessmentService) Cancel(id uint) (*dto.AssessmentResponse, error) {
	assessment, err := s.assessmentRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if assessment.Status == model.StatusCancelled {
		return toAssessmentResponse(assessment), nil
	}
	if !assessment.Status.CanTransition(model.StatusCancelled) {
		return nil, apperror.Validationf("assessment %d is %s and cannot be cancelled", id, assessment.Status)
	}
	assessment.Status = model.StatusCancelled
	if err := s.assessmentRepo.Update(assessment); err != nil {
		return nil, err
	}
	return toAssessmentResponse(assessment), nil
}

func (s *assessmentService) GetByID(id uint) (*dto.AssessmentResponse, error) {
	assessment, err := s.assessmentRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return toAssessmentResponse(assessment), nil
}

func (s *assessmentService) ListByTeacher(teacherID uint) ([]dto.AssessmentResponse, error) {
	assessments, err := s.assessmentRepo.FindByTeacher(teacherID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AssessmentResponse, 0, len(assessments))
	for i := range assessments {
		resp = append(resp, *toAssessmentResponse(&assessments[i]))
	}
	return resp, nil
}

func parseDateWindow(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.Validationf("invalid start date %q", startStr)
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.Validationf("invalid end date %q", endStr)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperror.Validationf("end date %s is before start date %s", endStr, startStr)
	}
	return start, end, nil
}

func toAssessmentResponse(a *model.Assessment) *dto.AssessmentResponse {
	var resp dto.AssessmentResponse
	copier.Copy(&resp, a)
	resp.Status = string(a.Status)
	resp.AudienceKind = string(a.AudienceKind)
	return &resp
}
