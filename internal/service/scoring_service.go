package service

import (
	"math"
	"strconv"

	"github.com/khwelo/classward/internal/apperror"
	"github.com/khwelo/classward/internal/model"
	"github.com/rs/zerolog/log"
)

// ScoringService grades a learner's raw submitted answers against a
// review's answer key. Pure computation; persisting the result belongs to
// the caller.
type ScoringService interface {
	Score(answers model.AnswerMap, key []model.Question) (int, error)
}

type scoringService struct{}

func NewScoringService() ScoringService {
	return &scoringService{}
}

// Score counts matching answers and returns a half-up rounded integer
// percentage over the full question key. An absent or malformed letter
// counts as wrong rather than aborting the grade of the whole submission.
// An empty key scores 0 and returns a validation error so the caller can
// flag the data problem; reviews are required upstream to carry at least
// one question before an assessment may be created.
func (s *scoringService) Score(answers model.AnswerMap, key []model.Question) (int, error) {
	if len(key) == 0 {
		return 0, apperror.Validationf("answer key has no questions")
	}

	matches := 0
	for _, q := range key {
		letter, ok := answers[strconv.FormatUint(uint64(q.ID), 10)]
		if !ok {
			continue
		}
		value, ok := resolveLetter(letter, q.Options)
		if !ok {
			log.Warn().
				Uint("questionID", q.ID).
				Str("letter", letter).
				Int("optionCount", len(q.Options)).
				Msg("Scoring: malformed answer letter, counting as non-match")
			continue
		}
		if value == q.CorrectValue {
			matches++
		}
	}

	// Multiply before dividing so exact halves (57.5 for 23/40) stay exactly
	// representable; dividing first can land just below the half and round
	// the wrong way.
	pct := math.Round(float64(matches*100) / float64(len(key)))
	return int(pct), nil
}

// resolveLetter maps a submitted letter to an option value by 0-indexed
// alphabetic position within that question's own option list. The key
// stores correctness as a value string, so the comparison must go through
// the per-question option order, never a shared letter table.
func resolveLetter(letter string, options []string) (string, bool) {
	if len(letter) != 1 {
		return "", false
	}
	c := letter[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	if c < 'A' || c > 'Z' {
		return "", false
	}
	idx := int(c - 'A')
	if idx >= len(options) {
		return "", false
	}
	return options[idx], true
}
