package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AssessmentStatus is the teacher-facing lifecycle state of an assessment.
// It is independent of the learner-facing temporal bucket derived from the
// date window.
type AssessmentStatus string

const (
	StatusDraft     AssessmentStatus = "draft"
	StatusScheduled AssessmentStatus = "scheduled"
	StatusActive    AssessmentStatus = "active"
	StatusCancelled AssessmentStatus = "cancelled"
)

func (s AssessmentStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusScheduled, StatusActive, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether the administrative state machine allows
// moving from s to next. Transitions are monotonic; cancelled is terminal
// and reachable only from scheduled or active.
func (s AssessmentStatus) CanTransition(next AssessmentStatus) bool {
	switch s {
	case StatusDraft:
		return next == StatusScheduled
	case StatusScheduled:
		return next == StatusActive || next == StatusCancelled
	case StatusActive:
		return next == StatusCancelled
	case StatusCancelled:
		return false
	}
	return false
}

// VisibleToLearners reports whether assessments in this status enter the
// learner-facing pipeline at all. Drafts and cancelled assessments never do.
func (s AssessmentStatus) VisibleToLearners() bool {
	return s == StatusScheduled || s == StatusActive
}

// AudienceKind is the targeting mode of an assessment. Exactly the
// membership set matching the kind is meaningful; the other two are ignored.
type AudienceKind string

const (
	AudienceClass      AudienceKind = "class"
	AudienceGroup      AudienceKind = "group"
	AudienceIndividual AudienceKind = "individual"
)

func (k AudienceKind) IsValid() bool {
	switch k {
	case AudienceClass, AudienceGroup, AudienceIndividual:
		return true
	}
	return false
}

// Assessment is one sendable instance of assessable work derived from a
// Review. Dates are inclusive calendar dates; comparisons never look at
// time-of-day.
type Assessment struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	ReviewID    uint   `json:"review_id" gorm:"not null;index"`
	Review      Review `json:"review,omitempty" gorm:"foreignKey:ReviewID"`
	Title       string `json:"title" gorm:"not null"`
	Subject     string `json:"subject" gorm:"not null;index"`
	Grade       string `json:"grade" gorm:"not null;index"`
	Description string `json:"description,omitempty" gorm:"type:text"`

	StartDate time.Time        `json:"start_date" gorm:"not null;index"`
	EndDate   time.Time        `json:"end_date" gorm:"not null;index"`
	Status    AssessmentStatus `json:"status" gorm:"not null;default:'draft';index"`

	AudienceKind     AudienceKind              `json:"audience_kind" gorm:"not null"`
	TargetClassIDs   datatypes.JSONSlice[uint] `json:"target_class_ids" gorm:"type:jsonb"`
	TargetGroupIDs   datatypes.JSONSlice[uint] `json:"target_group_ids" gorm:"type:jsonb"`
	TargetLearnerIDs datatypes.JSONSlice[uint] `json:"target_learner_ids" gorm:"type:jsonb"`

	CreatedBy uint           `json:"created_by" gorm:"not null;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TargetIDs returns the membership set matching the assessment's own
// audience kind, nil for an unknown kind.
func (a *Assessment) TargetIDs() []uint {
	switch a.AudienceKind {
	case AudienceClass:
		return a.TargetClassIDs
	case AudienceGroup:
		return a.TargetGroupIDs
	case AudienceIndividual:
		return a.TargetLearnerIDs
	}
	return nil
}
