package service

import (
	"testing"
	"time"

	"github.com/khwelo/classward/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReminderServiceForTest(today time.Time) (ReminderService, *fakeAssessmentRepo, *fakeResponseRepo, *fakeMembershipRepo, *fakeDispatcher) {
	assessmentRepo := newFakeAssessmentRepo()
	responseRepo := newFakeResponseRepo()
	membershipRepo := newFakeMembershipRepo()
	dispatcher := newFakeDispatcher()
	clock := fixedClock{today: today}
	schedule := NewScheduleService()
	report := NewReportService(assessmentRepo, responseRepo, membershipRepo, schedule, clock)
	svc := NewReminderService(assessmentRepo, responseRepo, report, schedule, clock, dispatcher)
	return svc, assessmentRepo, responseRepo, membershipRepo, dispatcher
}

func TestRecipientsSkipCompletedLearners(t *testing.T) {
	svc, assessmentRepo, responseRepo, membershipRepo, _ := newReminderServiceForTest(date(2025, time.March, 22))

	membershipRepo.classrooms[1] = []uint{5}
	membershipRepo.classrooms[2] = []uint{5}
	membershipRepo.classrooms[3] = []uint{5}
	assessmentRepo.add(model.Assessment{
		ReviewID:       10,
		Status:         model.StatusActive,
		StartDate:      date(2025, time.March, 20),
		EndDate:        date(2025, time.March, 27),
		AudienceKind:   model.AudienceClass,
		TargetClassIDs: []uint{5},
	})
	responseRepo.add(completedResponse(2, 10, 90))

	recipients, err := svc.Recipients(1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{1, 3}, recipients)
}

func TestRecipientsEmptyOutsideWindow(t *testing.T) {
	// One day past the end date: everyone left is missed, nobody gets nagged.
	svc, assessmentRepo, _, membershipRepo, _ := newReminderServiceForTest(date(2025, time.March, 28))

	membershipRepo.classrooms[1] = []uint{5}
	assessmentRepo.add(model.Assessment{
		ReviewID:       10,
		Status:         model.StatusActive,
		StartDate:      date(2025, time.March, 20),
		EndDate:        date(2025, time.March, 27),
		AudienceKind:   model.AudienceClass,
		TargetClassIDs: []uint{5},
	})

	recipients, err := svc.Recipients(1)
	require.NoError(t, err)
	assert.Empty(t, recipients)
}

func TestRecipientsEmptyForDraft(t *testing.T) {
	svc, assessmentRepo, _, _, _ := newReminderServiceForTest(date(2025, time.March, 22))

	assessmentRepo.add(model.Assessment{
		ReviewID:         10,
		Status:           model.StatusDraft,
		StartDate:        date(2025, time.March, 20),
		EndDate:          date(2025, time.March, 27),
		AudienceKind:     model.AudienceIndividual,
		TargetLearnerIDs: []uint{1, 2},
	})

	recipients, err := svc.Recipients(1)
	require.NoError(t, err)
	assert.Empty(t, recipients)
}

func TestRecipientsIncludeUpcoming(t *testing.T) {
	// A scheduled assessment before its window still reminds its roster.
	svc, assessmentRepo, _, _, _ := newReminderServiceForTest(date(2025, time.March, 18))

	assessmentRepo.add(model.Assessment{
		ReviewID:         10,
		Status:           model.StatusScheduled,
		StartDate:        date(2025, time.March, 20),
		EndDate:          date(2025, time.March, 27),
		AudienceKind:     model.AudienceIndividual,
		TargetLearnerIDs: []uint{4},
	})

	recipients, err := svc.Recipients(1)
	require.NoError(t, err)
	assert.Equal(t, []uint{4}, recipients)
}

func TestSendReminders(t *testing.T) {
	svc, assessmentRepo, responseRepo, _, dispatcher := newReminderServiceForTest(date(2025, time.March, 22))

	a := assessmentRepo.add(model.Assessment{
		ReviewID:         10,
		Status:           model.StatusActive,
		StartDate:        date(2025, time.March, 20),
		EndDate:          date(2025, time.March, 27),
		AudienceKind:     model.AudienceIndividual,
		TargetLearnerIDs: []uint{7, 8},
	})
	responseRepo.add(completedResponse(8, 10, 100))

	sent, err := svc.SendReminders(a.ID, "Maths review closes Friday")
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []uint{7}, dispatcher.sent[a.ID])

	// Nothing to send once everyone has completed: dispatcher stays quiet.
	responseRepo.add(completedResponse(7, 10, 60))
	sent, err = svc.SendReminders(a.ID, "Maths review closes Friday")
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Len(t, dispatcher.sent[a.ID], 1)
}
