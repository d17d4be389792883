package repository

import (
	"github.com/khwelo/classward/internal/model"
	"gorm.io/gorm"
)

// MembershipRepository exposes the read-only membership facts that audience
// resolution runs against.
type MembershipRepository interface {
	ClassroomIDs(learnerID uint) ([]uint, error)
	GroupIDs(learnerID uint) ([]uint, error)
	// LearnersInClassrooms returns the distinct learner ids enrolled in any
	// of the given classrooms. Used to expand a class-targeted roster.
	LearnersInClassrooms(classroomIDs []uint) ([]uint, error)
	LearnersInGroups(groupIDs []uint) ([]uint, error)
}

type membershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) ClassroomIDs(learnerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.ClassroomMembership{}).
		Where("learner_id = ?", learnerID).
		Pluck("classroom_id", &ids).Error
	return ids, err
}

func (r *membershipRepository) GroupIDs(learnerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.GroupMembership{}).
		Where("learner_id = ?", learnerID).
		Pluck("group_id", &ids).Error
	return ids, err
}

func (r *membershipRepository) LearnersInClassrooms(classroomIDs []uint) ([]uint, error) {
	if len(classroomIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.db.Model(&model.ClassroomMembership{}).
		Where("classroom_id IN ?", classroomIDs).
		Distinct().
		Pluck("learner_id", &ids).Error
	return ids, err
}

func (r *membershipRepository) LearnersInGroups(groupIDs []uint) ([]uint, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.db.Model(&model.GroupMembership{}).
		Where("group_id IN ?", groupIDs).
		Distinct().
		Pluck("learner_id", &ids).Error
	return ids, err
}
