package service

import (
	"testing"
	"time"

	"github.com/khwelo/classward/internal/apperror"
	"github.com/khwelo/classward/internal/dto"
	"github.com/khwelo/classward/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssessmentServiceForTest() (AssessmentService, *fakeAssessmentRepo, *fakeReviewRepo) {
	assessmentRepo := newFakeAssessmentRepo()
	reviewRepo := newFakeReviewRepo()
	reviewRepo.add(model.Review{
		Title:     "Fractions recap",
		Subject:   "Mathematics",
		Grade:     "7",
		Questions: []model.Question{question(1, "1/2", "1/2", "1/3")},
	})
	return NewAssessmentService(assessmentRepo, reviewRepo), assessmentRepo, reviewRepo
}

func validCreateRequest() dto.CreateAssessmentRequest {
	return dto.CreateAssessmentRequest{
		ReviewID:       1,
		Title:          "Week 12 fractions",
		Subject:        "Mathematics",
		Grade:          "7",
		StartDate:      "2025-03-20",
		EndDate:        "2025-03-27",
		AsScheduled:    true,
		CreatedBy:      9,
		AudienceKind:   "class",
		TargetClassIDs: []uint{5, 9},
	}
}

func TestCreateAssessment(t *testing.T) {
	svc, _, _ := newAssessmentServiceForTest()

	resp, err := svc.Create(validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusScheduled), resp.Status)
	assert.Equal(t, "class", resp.AudienceKind)

	req := validCreateRequest()
	req.AsScheduled = false
	resp, err = svc.Create(req)
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusDraft), resp.Status)
}

func TestCreateAssessmentValidation(t *testing.T) {
	svc, _, reviewRepo := newAssessmentServiceForTest()
	reviewRepo.add(model.Review{ID: 2, Title: "Empty review"})

	tests := []struct {
		name   string
		mutate func(*dto.CreateAssessmentRequest)
	}{
		{name: "end date before start date", mutate: func(r *dto.CreateAssessmentRequest) {
			r.StartDate, r.EndDate = "2025-03-27", "2025-03-20"
		}},
		{name: "empty target set for own kind", mutate: func(r *dto.CreateAssessmentRequest) {
			r.TargetClassIDs = nil
		}},
		{name: "target set of wrong kind does not satisfy", mutate: func(r *dto.CreateAssessmentRequest) {
			r.TargetClassIDs = nil
			r.TargetLearnerIDs = []uint{1}
		}},
		{name: "review without questions", mutate: func(r *dto.CreateAssessmentRequest) {
			r.ReviewID = 2
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)
			_, err := svc.Create(req)
			assert.True(t, apperror.IsValidation(err), "expected validation error, got %v", err)
		})
	}

	t.Run("missing review", func(t *testing.T) {
		req := validCreateRequest()
		req.ReviewID = 99
		_, err := svc.Create(req)
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestRescheduleOnlyWhileScheduled(t *testing.T) {
	svc, repo, _ := newAssessmentServiceForTest()
	req := dto.RescheduleAssessmentRequest{StartDate: "2025-04-01", EndDate: "2025-04-08"}

	scheduled := repo.add(model.Assessment{Status: model.StatusScheduled, StartDate: date(2025, time.March, 20), EndDate: date(2025, time.March, 27)})
	resp, err := svc.Reschedule(scheduled.ID, req)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.April, 1), resp.StartDate)
	assert.Equal(t, date(2025, time.April, 8), resp.EndDate)

	for _, status := range []model.AssessmentStatus{model.StatusDraft, model.StatusActive, model.StatusCancelled} {
		a := repo.add(model.Assessment{Status: status})
		_, err := svc.Reschedule(a.ID, req)
		assert.True(t, apperror.IsValidation(err), "status %s should reject reschedule", status)
	}
}

func TestSendNow(t *testing.T) {
	svc, repo, _ := newAssessmentServiceForTest()

	// Send-now activates regardless of a future start date.
	scheduled := repo.add(model.Assessment{
		Status:    model.StatusScheduled,
		StartDate: date(2030, time.January, 1),
		EndDate:   date(2030, time.January, 8),
	})
	resp, err := svc.SendNow(scheduled.ID)
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusActive), resp.Status)

	for _, status := range []model.AssessmentStatus{model.StatusDraft, model.StatusActive, model.StatusCancelled} {
		a := repo.add(model.Assessment{Status: status})
		_, err := svc.SendNow(a.ID)
		assert.True(t, apperror.IsValidation(err), "status %s should reject send-now", status)
	}
}

func TestCancel(t *testing.T) {
	svc, repo, _ := newAssessmentServiceForTest()

	for _, status := range []model.AssessmentStatus{model.StatusScheduled, model.StatusActive} {
		a := repo.add(model.Assessment{Status: status})
		resp, err := svc.Cancel(a.ID)
		require.NoError(t, err)
		assert.Equal(t, string(model.StatusCancelled), resp.Status)
	}

	// Idempotent on an already-cancelled assessment.
	cancelled := repo.add(model.Assessment{Status: model.StatusCancelled})
	resp, err := svc.Cancel(cancelled.ID)
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusCancelled), resp.Status)

	// Drafts are discarded, not cancelled.
	draft := repo.add(model.Assessment{Status: model.StatusDraft})
	_, err = svc.Cancel(draft.ID)
	assert.True(t, apperror.IsValidation(err))
}
