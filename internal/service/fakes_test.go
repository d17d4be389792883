package service

import (
	"time"

	"github.com/khwelo/classward/internal/apperror"
	"github.com/khwelo/classward/internal/model"
)

// In-memory repository fakes for service tests. They implement the
// repository interfaces over plain maps; ids are assigned sequentially.

type fixedClock struct {
	today time.Time
}

func (c fixedClock) Today() time.Time { return c.today }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fakeAssessmentRepo struct {
	assessments map[uint]*model.Assessment
	reviews     map[uint]*model.Review
	nextID      uint
}

func newFakeAssessmentRepo() *fakeAssessmentRepo {
	return &fakeAssessmentRepo{
		assessments: map[uint]*model.Assessment{},
		reviews:     map[uint]*model.Review{},
		nextID:      1,
	}
}

func (r *fakeAssessmentRepo) add(a model.Assessment) *model.Assessment {
	if a.ID == 0 {
		a.ID = r.nextID
		r.nextID++
	}
	stored := a
	r.assessments[stored.ID] = &stored
	return &stored
}

func (r *fakeAssessmentRepo) Create(a *model.Assessment) error {
	a.ID = r.nextID
	r.nextID++
	stored := *a
	r.assessments[a.ID] = &stored
	return nil
}

func (r *fakeAssessmentRepo) Update(a *model.Assessment) error {
	if _, ok := r.assessments[a.ID]; !ok {
		return apperror.NotFoundf("assessment %d", a.ID)
	}
	stored := *a
	r.assessments[a.ID] = &stored
	return nil
}

func (r *fakeAssessmentRepo) FindByID(id uint) (*model.Assessment, error) {
	a, ok := r.assessments[id]
	if !ok {
		return nil, apperror.NotFoundf("assessment %d", id)
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAssessmentRepo) FindByIDWithReview(id uint) (*model.Assessment, error) {
	a, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}
	if review, ok := r.reviews[a.ReviewID]; ok {
		a.Review = *review
	}
	return a, nil
}

func (r *fakeAssessmentRepo) FindVisible() ([]model.Assessment, error) {
	var out []model.Assessment
	for _, a := range r.assessments {
		if a.Status.VisibleToLearners() {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAssessmentRepo) FindByTeacher(teacherID uint) ([]model.Assessment, error) {
	var out []model.Assessment
	for _, a := range r.assessments {
		if a.CreatedBy == teacherID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAssessmentRepo) HasSentForReview(reviewID uint) (bool, error) {
	for _, a := range r.assessments {
		if a.ReviewID == reviewID && a.Status.VisibleToLearners() {
			return true, nil
		}
	}
	return false, nil
}

type fakeReviewRepo struct {
	reviews map[uint]*model.Review
	nextID  uint
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[uint]*model.Review{}, nextID: 1}
}

func (r *fakeReviewRepo) add(review model.Review) *model.Review {
	if review.ID == 0 {
		review.ID = r.nextID
		r.nextID++
	}
	stored := review
	r.reviews[stored.ID] = &stored
	return &stored
}

func (r *fakeReviewRepo) Create(review *model.Review) error {
	review.ID = r.nextID
	r.nextID++
	stored := *review
	r.reviews[review.ID] = &stored
	return nil
}

func (r *fakeReviewRepo) FindByID(id uint) (*model.Review, error) {
	review, ok := r.reviews[id]
	if !ok {
		return nil, apperror.NotFoundf("review %d", id)
	}
	cp := *review
	return &cp, nil
}

func (r *fakeReviewRepo) FindByIDWithQuestions(id uint) (*model.Review, error) {
	return r.FindByID(id)
}

func (r *fakeReviewRepo) FindByTeacher(teacherID uint) ([]model.Review, error) {
	var out []model.Review
	for _, review := range r.reviews {
		if review.CreatedBy == teacherID {
			out = append(out, *review)
		}
	}
	return out, nil
}

type fakeResponseRepo struct {
	responses map[uint]*model.LearnerResponse
	nextID    uint
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{responses: map[uint]*model.LearnerResponse{}, nextID: 1}
}

func (r *fakeResponseRepo) add(resp model.LearnerResponse) *model.LearnerResponse {
	if resp.ID == 0 {
		resp.ID = r.nextID
		r.nextID++
	}
	stored := resp
	r.responses[stored.ID] = &stored
	return &stored
}

func (r *fakeResponseRepo) FindByLearnerAndReview(learnerID, reviewID uint) (*model.LearnerResponse, error) {
	for _, resp := range r.responses {
		if resp.LearnerID == learnerID && resp.ReviewID == reviewID {
			cp := *resp
			return &cp, nil
		}
	}
	return nil, apperror.NotFoundf("response for learner %d review %d", learnerID, reviewID)
}

func (r *fakeResponseRepo) FindByID(id uint) (*model.LearnerResponse, error) {
	resp, ok := r.responses[id]
	if !ok {
		return nil, apperror.NotFoundf("response %d", id)
	}
	cp := *resp
	return &cp, nil
}

func (r *fakeResponseRepo) FindByReview(reviewID uint) ([]model.LearnerResponse, error) {
	var out []model.LearnerResponse
	for _, resp := range r.responses {
		if resp.ReviewID == reviewID {
			out = append(out, *resp)
		}
	}
	return out, nil
}

func (r *fakeResponseRepo) FindByLearner(learnerID uint) ([]model.LearnerResponse, error) {
	var out []model.LearnerResponse
	for _, resp := range r.responses {
		if resp.LearnerID == learnerID {
			out = append(out, *resp)
		}
	}
	return out, nil
}

func (r *fakeResponseRepo) UpsertProgress(resp *model.LearnerResponse) error {
	for _, existing := range r.responses {
		if existing.LearnerID == resp.LearnerID && existing.ReviewID == resp.ReviewID {
			resp.ID = existing.ID
			feedback := existing.Feedback
			stored := *resp
			// Teacher-authored column survives learner writes.
			if stored.Feedback == nil {
				stored.Feedback = feedback
			}
			r.responses[existing.ID] = &stored
			return nil
		}
	}
	resp.ID = r.nextID
	r.nextID++
	stored := *resp
	r.responses[resp.ID] = &stored
	return nil
}

func (r *fakeResponseRepo) UpdateFeedback(id uint, feedback string) error {
	resp, ok := r.responses[id]
	if !ok {
		return apperror.NotFoundf("response %d", id)
	}
	resp.Feedback = &feedback
	return nil
}

type fakeMembershipRepo struct {
	classrooms map[uint][]uint // learner -> classroom ids
	groups     map[uint][]uint // learner -> group ids
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{classrooms: map[uint][]uint{}, groups: map[uint][]uint{}}
}

func (r *fakeMembershipRepo) ClassroomIDs(learnerID uint) ([]uint, error) {
	return r.classrooms[learnerID], nil
}

func (r *fakeMembershipRepo) GroupIDs(learnerID uint) ([]uint, error) {
	return r.groups[learnerID], nil
}

func (r *fakeMembershipRepo) LearnersInClassrooms(classroomIDs []uint) ([]uint, error) {
	return r.learnersIn(r.classrooms, classroomIDs), nil
}

func (r *fakeMembershipRepo) LearnersInGroups(groupIDs []uint) ([]uint, error) {
	return r.learnersIn(r.groups, groupIDs), nil
}

func (r *fakeMembershipRepo) learnersIn(memberships map[uint][]uint, targetIDs []uint) []uint {
	targets := map[uint]struct{}{}
	for _, id := range targetIDs {
		targets[id] = struct{}{}
	}
	var out []uint
	for learnerID, ids := range memberships {
		for _, id := range ids {
			if _, ok := targets[id]; ok {
				out = append(out, learnerID)
				break
			}
		}
	}
	return out
}

type fakeDispatcher struct {
	sent map[uint][]uint // assessment id -> learner ids
}

func newFakeDispatcher() *fakeDispatcher {
	return &fakeDispatcher{sent: map[uint][]uint{}}
}

func (d *fakeDispatcher) Send(assessmentID uint, learnerIDs []uint, message string) error {
	d.sent[assessmentID] = append(d.sent[assessmentID], learnerIDs...)
	return nil
}
