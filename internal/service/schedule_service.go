package service

import (
	"time"

	"github.com/khwelo/classward/internal/model"
)

// TemporalBucket is the learner-facing classification of an assessment
// instance relative to "today" and the learner's submission history.
type TemporalBucket string

const (
	BucketUpcoming   TemporalBucket = "upcoming"
	BucketInProgress TemporalBucket = "in_progress"
	BucketMissed     TemporalBucket = "missed"
	BucketCompleted  TemporalBucket = "completed"
)

// ScheduleService derives the temporal bucket of an assessment for one
// learner. Callers must have already established that the assessment
// applies to the learner and that its status is visible to learners;
// classification itself checks neither.
type ScheduleService interface {
	Classify(a *model.Assessment, today time.Time, hasCompletedResponse bool) TemporalBucket
	DaysUntilDue(a *model.Assessment, today time.Time) int
}

type scheduleService struct{}

func NewScheduleService() ScheduleService {
	return &scheduleService{}
}

// Classify applies the bucket rules in order: a completed response wins
// regardless of dates, then the inclusive date window decides between
// upcoming, in-progress and missed. start == end == today is in-progress.
func (s *scheduleService) Classify(a *model.Assessment, today time.Time, hasCompletedResponse bool) TemporalBucket {
	if hasCompletedResponse {
		return BucketCompleted
	}
	day := DateOnly(today)
	start := DateOnly(a.StartDate)
	end := DateOnly(a.EndDate)
	switch {
	case day.Before(start):
		return BucketUpcoming
	case !day.After(end):
		return BucketInProgress
	default:
		return BucketMissed
	}
}

// DaysUntilDue returns the signed whole-day distance to the end date,
// positive while time remains and negative once overdue. Display renders
// positives as "N days" and negatives as "N days ago".
func (s *scheduleService) DaysUntilDue(a *model.Assessment, today time.Time) int {
	diff := DateOnly(a.EndDate).Sub(DateOnly(today))
	return int(diff.Hours() / 24)
}
