package service

import (
	"math"

	"github.com/khwelo/classward/internal/dto"
	"github.com/khwelo/classward/internal/model"
	"github.com/khwelo/classward/internal/repository"
	"github.com/rs/zerolog/log"
)

// ReportService combines the audience resolver, temporal classifier and
// persisted responses across an assessment's roster into submission
// statistics for the teacher.
type ReportService interface {
	BuildReport(assessmentID uint) (*dto.AssessmentReportDTO, error)
	// Roster expands the assessment's target sets into the distinct
	// learner ids the assessment applies to.
	Roster(a *model.Assessment) ([]uint, error)
}

type reportService struct {
	assessmentRepo repository.AssessmentRepository
	responseRepo   repository.ResponseRepository
	membershipRepo repository.MembershipRepository
	schedule       ScheduleService
	clock          Clock
}

func NewReportService(
	assessmentRepo repository.AssessmentRepository,
	responseRepo repository.ResponseRepository,
	membershipRepo repository.MembershipRepository,
	schedule ScheduleService,
	clock Clock,
) ReportService {
	return &reportService{
		assessmentRepo: assessmentRepo,
		responseRepo:   responseRepo,
		membershipRepo: membershipRepo,
		schedule:       schedule,
		clock:          clock,
	}
}

func (s *reportService) BuildReport(assessmentID uint) (*dto.AssessmentReportDTO, error) {
	assessment, err := s.assessmentRepo.FindByID(assessmentID)
	if err != nil {
		return nil, err
	}

	roster, err := s.Roster(assessment)
	if err != nil {
		return nil, err
	}

	responses, err := s.responseRepo.FindByReview(assessment.ReviewID)
	if err != nil {
		return nil, err
	}
	byLearner := make(map[uint]*model.LearnerResponse, len(responses))
	for i := range responses {
		byLearner[responses[i].LearnerID] = &responses[i]
	}

	today := s.clock.Today()
	buckets := map[string]int{
		string(BucketUpcoming):   0,
		string(BucketInProgress): 0,
		string(BucketMissed):     0,
		string(BucketCompleted):  0,
	}
	sum, graded := 0, 0
	for _, learnerID := range roster {
		response := byLearner[learnerID]
		completed := response != nil && response.Completed()
		bucket := s.schedule.Classify(assessment, today, completed)
		buckets[string(bucket)]++
		if completed && response.Score != nil {
			sum += *response.Score
			graded++
		}
	}

	report := &dto.AssessmentReportDTO{
		AssessmentID: assessmentID,
		RosterSize:   len(roster),
		Buckets:      buckets,
	}
	// Average is nil when nothing is graded; clients render a dash, not 0.
	if graded > 0 {
		avg := int(math.Round(float64(sum) / float64(graded)))
		report.AverageScore = &avg
	}
	return report, nil
}

func (s *reportService) Roster(a *model.Assessment) ([]uint, error) {
	switch a.AudienceKind {
	case model.AudienceClass:
		return s.membershipRepo.LearnersInClassrooms(a.TargetClassIDs)
	case model.AudienceGroup:
		return s.membershipRepo.LearnersInGroups(a.TargetGroupIDs)
	case model.AudienceIndividual:
		return a.TargetLearnerIDs, nil
	default:
		log.Warn().Uint("assessmentID", a.ID).Str("audienceKind", string(a.AudienceKind)).
			Msg("Roster: unknown audience kind, empty roster")
		return nil, nil
	}
}
