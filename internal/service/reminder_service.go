package service

import (
	"github.com/khwelo/classward/internal/repository"
	"github.com/rs/zerolog/log"
)

// NotificationDispatcher is the delivery collaborator. The core decides who
// should receive a reminder; transport (email, in-app message) lives
// elsewhere.
type NotificationDispatcher interface {
	Send(assessmentID uint, learnerIDs []uint, message string) error
}

// logDispatcher is the default dispatcher wired in development: it records
// the decision without delivering anything.
type logDispatcher struct{}

func NewLogDispatcher() NotificationDispatcher {
	return logDispatcher{}
}

func (logDispatcher) Send(assessmentID uint, learnerIDs []uint, message string) error {
	log.Info().
		Uint("assessmentID", assessmentID).
		Ints("learnerIDs", toInts(learnerIDs)).
		Str("message", message).
		Msg("Reminder dispatch (log only)")
	return nil
}

func toInts(ids []uint) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}

// ReminderService selects reminder recipients: learners the assessment
// applies to whose bucket is upcoming or in-progress, i.e. everyone still
// able to submit who has not yet completed a response.
type ReminderService interface {
	Recipients(assessmentID uint) ([]uint, error)
	SendReminders(assessmentID uint, message string) (int, error)
}

type reminderService struct {
	assessmentRepo repository.AssessmentRepository
	responseRepo   repository.ResponseRepository
	report         ReportService
	schedule       ScheduleService
	clock          Clock
	dispatcher     NotificationDispatcher
}

func NewReminderService(
	assessmentRepo repository.AssessmentRepository,
	responseRepo repository.ResponseRepository,
	report ReportService,
	schedule ScheduleService,
	clock Clock,
	dispatcher NotificationDispatcher,
) ReminderService {
	return &reminderService{
		assessmentRepo: assessmentRepo,
		responseRepo:   responseRepo,
		report:         report,
		schedule:       schedule,
		clock:          clock,
		dispatcher:     dispatcher,
	}
}

func (s *reminderService) Recipients(assessmentID uint) ([]uint, error) {
	assessment, err := s.assessmentRepo.FindByID(assessmentID)
	if err != nil {
		return nil, err
	}
	if !assessment.Status.VisibleToLearners() {
		return nil, nil
	}

	roster, err := s.report.Roster(assessment)
	if err != nil {
		return nil, err
	}
	responses, err := s.responseRepo.FindByReview(assessment.ReviewID)
	if err != nil {
		return nil, err
	}
	completed := make(map[uint]bool, len(responses))
	for i := range responses {
		if responses[i].Completed() {
			completed[responses[i].LearnerID] = true
		}
	}

	today := s.clock.Today()
	var recipients []uint
	for _, learnerID := range roster {
		if completed[learnerID] {
			continue
		}
		bucket := s.schedule.Classify(assessment, today, false)
		if bucket == BucketUpcoming || bucket == BucketInProgress {
			recipients = append(recipients, learnerID)
		}
	}
	return recipients, nil
}

func (s *reminderService) SendReminders(assessmentID uint, message string) (int, error) {
	recipients, err := s.Recipients(assessmentID)
	if err != nil {
		return 0, err
	}
	if len(recipients) == 0 {
		return 0, nil
	}
	if err := s.dispatcher.Send(assessmentID, recipients, message); err != nil {
		log.Error().Err(err).Uint("assessmentID", assessmentID).Msg("Reminder dispatch failed")
		return 0, err
	}
	return len(recipients), nil
}
