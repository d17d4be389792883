package service

import (
	"github.com/khwelo/classward/internal/model"
	"github.com/rs/zerolog/log"
)

// AudienceService decides which learners an assessment's targeting applies
// to. Pure set logic; no persistence access.
type AudienceService interface {
	Applies(a *model.Assessment, learnerID uint, classroomIDs, groupIDs []uint) bool
}

type audienceService struct{}

func NewAudienceService() AudienceService {
	return &audienceService{}
}

// Applies reports whether the assessment targets the given learner.
// Class and group kinds match on set intersection against the learner's
// memberships; individual kind matches on direct membership of the target
// learner set. An empty target set for the assessment's own kind applies
// to nobody, and an unknown audience kind degrades to false rather than
// failing the caller.
func (s *audienceService) Applies(a *model.Assessment, learnerID uint, classroomIDs, groupIDs []uint) bool {
	switch a.AudienceKind {
	case model.AudienceClass:
		return intersects(a.TargetClassIDs, classroomIDs)
	case model.AudienceGroup:
		return intersects(a.TargetGroupIDs, groupIDs)
	case model.AudienceIndividual:
		return containsID(a.TargetLearnerIDs, learnerID)
	default:
		log.Warn().
			Uint("assessmentID", a.ID).
			Str("audienceKind", string(a.AudienceKind)).
			Msg("Audience resolution: unknown audience kind, treating as applies-to-nobody")
		return false
	}
}

func intersects(targets, memberships []uint) bool {
	if len(targets) == 0 || len(memberships) == 0 {
		return false
	}
	set := make(map[uint]struct{}, len(targets))
	for _, id := range targets {
		set[id] = struct{}{}
	}
	for _, id := range memberships {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}

func containsID(targets []uint, id uint) bool {
	for _, t := range targets {
		if t == id {
			return true
		}
	}
	return false
}
