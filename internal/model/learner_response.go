package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ResponseStatus is the submission state of a LearnerResponse.
type ResponseStatus string

const (
	ResponseIncomplete ResponseStatus = "incomplete"
	ResponseCompleted  ResponseStatus = "completed"
)

// AnswerMap maps question id to the submitted option letter ("A".."Z").
// JSON object keys are strings, so the map is keyed by the decimal string
// form of the question id when persisted.
type AnswerMap map[string]string

// LearnerResponse is the single persisted record of one learner's answers,
// progress and score for one review. Keyed by (learner id, review id) with
// upsert semantics; a review may outlive one assessment instance, so the
// row references the review rather than the assessment.
type LearnerResponse struct {
	ID          uint                               `gorm:"primarykey" json:"id"`
	LearnerID   uint                               `json:"learner_id" gorm:"not null;uniqueIndex:idx_learner_review"`
	ReviewID    uint                               `json:"review_id" gorm:"not null;uniqueIndex:idx_learner_review"`
	Answers     datatypes.JSONType[AnswerMap]      `json:"answers" gorm:"type:jsonb"`
	Status      ResponseStatus                     `json:"status" gorm:"not null;default:'incomplete';index"`
	Score       *int                               `json:"score,omitempty"`
	SubmittedAt *time.Time                         `json:"submitted_at,omitempty"`
	Feedback    *string                            `json:"feedback,omitempty" gorm:"type:text"`
	CreatedAt   time.Time                          `json:"created_at"`
	UpdatedAt   time.Time                          `json:"updated_at"`
	DeletedAt   gorm.DeletedAt                     `gorm:"index" json:"-"`
}

// Completed reports whether the learner has finalized this response.
func (r *LearnerResponse) Completed() bool {
	return r.Status == ResponseCompleted
}
