package model

import "time"

// ClassroomMembership and GroupMembership are read-only membership facts
// consumed by audience resolution. Enrollment management itself lives with
// the registration side of the platform, not here.
type ClassroomMembership struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	LearnerID   uint      `json:"learner_id" gorm:"not null;uniqueIndex:idx_learner_classroom"`
	ClassroomID uint      `json:"classroom_id" gorm:"not null;uniqueIndex:idx_learner_classroom"`
	CreatedAt   time.Time `json:"created_at"`
}

type GroupMembership struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	LearnerID uint      `json:"learner_id" gorm:"not null;uniqueIndex:idx_learner_group"`
	GroupID   uint      `json:"group_id" gorm:"not null;uniqueIndex:idx_learner_group"`
	CreatedAt time.Time `json:"created_at"`
}
