// Package srs implements the scheduling core: given a review outcome it
// advances an item's ease/interval state and computes the next eligible
// review time, and it adapts per-item difficulty from observed performance.
package srs

import (
	"math"
	"time"

	"github.com/memoro-app/memoro-api/internal/domain"
)

// Outcome captures one completed review of an item.
type Outcome struct {
	// Correct reports whether the response counted as correct.
	Correct bool

	// Quality summarizes correctness and speed on the 0-5 scale.
	Quality int

	// ResponseTime is the elapsed answer time in seconds. Non-positive
	// values are not recorded in the item's history.
	ResponseTime float64

	// Confidence is the learner's self-reported confidence (1-5), when given.
	Confidence *int
}

// applyOutcome computes the item's next state after a review. It follows the
// immutable update pattern: the input item is never touched, a fully updated
// copy is returned. The whole sequence is one logical step; callers commit
// the returned state or none of it.
func applyOutcome(item *domain.Item, outcome Outcome, now time.Time, params *Params) *domain.Item {
	next := item.Clone()

	// History appends come first so difficulty_history records the value
	// that was in effect during the review.
	next.AppendDifficultyHistory(next.Difficulty)
	if outcome.ResponseTime > 0 {
		next.AppendResponseTime(outcome.ResponseTime)
	}
	if outcome.Confidence != nil {
		next.AppendConfidenceRating(*outcome.Confidence)
	}

	next.ReviewCount++
	if outcome.Correct {
		next.CorrectCount++
	}

	// Baseline difficulty step; a difficulty adapter may override the
	// resulting value afterwards, but the interval below is computed from
	// this baseline and is not recomputed.
	if outcome.Correct {
		next.Difficulty = math.Max(0, next.Difficulty-params.CorrectDifficultyStep)
	} else {
		next.Difficulty = math.Min(1, next.Difficulty+params.IncorrectDifficultyStep)
	}

	next.Ease = clampEase(next.Ease, params)

	intervalDays := calculateIntervalDays(next.Ease, next.Difficulty, outcome.Correct, params)
	next.NextReviewAt = now.AddDate(0, 0, intervalDays)

	reviewedAt := now
	next.LastReviewedAt = &reviewedAt
	next.UpdatedAt = now

	return next
}

// calculateIntervalDays computes the review interval in whole days.
//
// A correct answer schedules max(1, round(ease * (1 - difficulty))) days
// out; a miss always comes back after IncorrectIntervalDays. The formula is
// this system's own; it deliberately does not track a separate repetition
// count the way canonical SM-2 does.
func calculateIntervalDays(ease, difficulty float64, correct bool, params *Params) int {
	if !correct {
		return params.IncorrectIntervalDays
	}

	days := int(math.Round(ease * (1 - difficulty)))
	if days < 1 {
		days = 1
	}
	return days
}

// clampEase enforces the ease floor.
func clampEase(ease float64, params *Params) float64 {
	if ease < params.MinEase {
		return params.MinEase
	}
	return ease
}
