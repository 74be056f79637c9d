package srs

import (
	"testing"
	"time"

	"github.com/memoro-app/memoro-api/internal/domain"
)

func TestCalculateIntervalDays(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name       string
		ease       float64
		difficulty float64
		correct    bool
		expected   int
	}{
		{
			name:       "incorrect always comes back the next day",
			ease:       2.5,
			difficulty: 0.2,
			correct:    false,
			expected:   1,
		},
		{
			name:       "fresh item after first correct answer",
			ease:       2.5,
			difficulty: 0.45,
			correct:    true,
			expected:   1, // round(2.5 * 0.55) = 1
		},
		{
			name:       "easy item grows the interval",
			ease:       2.5,
			difficulty: 0.0,
			correct:    true,
			expected:   3, // round(2.5 * 1.0)
		},
		{
			name:       "hard item never drops below one day",
			ease:       1.3,
			difficulty: 0.95,
			correct:    true,
			expected:   1, // round(1.3 * 0.05) = 0, floored to 1
		},
		{
			name:       "mid difficulty rounds to nearest day",
			ease:       2.0,
			difficulty: 0.25,
			correct:    true,
			expected:   2, // round(2.0 * 0.75) = round(1.5) = 2
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := calculateIntervalDays(tc.ease, tc.difficulty, tc.correct, params)
			if got != tc.expected {
				t.Errorf("expected interval %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestApplyOutcomeFirstCorrectReview(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	item := newTestItem(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	next := applyOutcome(item, Outcome{Correct: true, Quality: 5, ResponseTime: 2}, now, params)

	if got, want := next.Difficulty, 0.45; !almostEqual(got, want) {
		t.Errorf("expected difficulty %v, got %v", want, got)
	}
	if got, want := next.NextReviewAt, now.AddDate(0, 0, 1); !got.Equal(want) {
		t.Errorf("expected next review at %v, got %v", want, got)
	}
	if next.ReviewCount != 1 || next.CorrectCount != 1 {
		t.Errorf("expected counters 1/1, got %d/%d", next.ReviewCount, next.CorrectCount)
	}
	if next.LastReviewedAt == nil || !next.LastReviewedAt.Equal(now) {
		t.Errorf("expected last reviewed at %v, got %v", now, next.LastReviewedAt)
	}
	if len(next.DifficultyHistory) != 1 || next.DifficultyHistory[0] != 0.5 {
		t.Errorf("expected difficulty history [0.5], got %v", next.DifficultyHistory)
	}
	if len(next.ResponseTimes) != 1 || next.ResponseTimes[0] != 2 {
		t.Errorf("expected response times [2], got %v", next.ResponseTimes)
	}

	// The input item is untouched.
	if item.ReviewCount != 0 || item.Difficulty != 0.5 || item.LastReviewedAt != nil {
		t.Error("applyOutcome mutated its input item")
	}
}

func TestApplyOutcomeIncorrect(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	item := newTestItem(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	next := applyOutcome(item, Outcome{Correct: false, Quality: 0, ResponseTime: 12}, now, params)

	if got, want := next.Difficulty, 0.6; !almostEqual(got, want) {
		t.Errorf("expected difficulty %v, got %v", want, got)
	}
	if got, want := next.NextReviewAt, now.AddDate(0, 0, 1); !got.Equal(want) {
		t.Errorf("expected next review at %v, got %v", want, got)
	}
	if next.CorrectCount != 0 {
		t.Errorf("expected correct count 0, got %d", next.CorrectCount)
	}
}

func TestApplyOutcomeSkipsUnrecordableHistory(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	item := newTestItem(t)
	now := time.Now().UTC()

	// Zero response time and absent confidence leave those histories empty.
	next := applyOutcome(item, Outcome{Correct: true, Quality: 4}, now, params)

	if len(next.ResponseTimes) != 0 {
		t.Errorf("expected no response times, got %v", next.ResponseTimes)
	}
	if len(next.ConfidenceRatings) != 0 {
		t.Errorf("expected no confidence ratings, got %v", next.ConfidenceRatings)
	}

	confidence := 4
	next = applyOutcome(item, Outcome{Correct: true, Quality: 4, ResponseTime: 3.5, Confidence: &confidence}, now, params)
	if len(next.ConfidenceRatings) != 1 || next.ConfidenceRatings[0] != 4 {
		t.Errorf("expected confidence ratings [4], got %v", next.ConfidenceRatings)
	}
}

func TestApplyOutcomeInvariantsHold(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Now().UTC()

	// Drive an item through a long alternating streak; the documented
	// bounds must hold after every single transition.
	item := newTestItem(t)
	for n := 0; n < 50; n++ {
		before := item.Difficulty
		item = applyOutcome(item, Outcome{Correct: n%3 != 0, Quality: 3, ResponseTime: 4}, now, params)

		if item.Difficulty < 0 || item.Difficulty > 1 {
			t.Fatalf("difficulty out of bounds after review %d: %v", n, item.Difficulty)
		}
		if item.Ease < params.MinEase {
			t.Fatalf("ease below floor after review %d: %v", n, item.Ease)
		}
		if item.CorrectCount > item.ReviewCount {
			t.Fatalf("correct count exceeds review count after review %d", n)
		}
		if change := item.Difficulty - before; change > 0.2 || change < -0.2 {
			t.Fatalf("difficulty moved more than 0.2 in one review: %v", change)
		}
		if len(item.DifficultyHistory) > domain.DifficultyHistoryCap {
			t.Fatalf("difficulty history exceeded capacity: %d", len(item.DifficultyHistory))
		}
		if len(item.ResponseTimes) > domain.ResponseTimeHistoryCap {
			t.Fatalf("response time history exceeded capacity: %d", len(item.ResponseTimes))
		}
	}
}

func TestApplyOutcomeClampsEase(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	item := newTestItem(t)
	item.Ease = 1.0 // below floor, e.g. from legacy persisted data
	now := time.Now().UTC()

	next := applyOutcome(item, Outcome{Correct: true, Quality: 4, ResponseTime: 3}, now, params)
	if next.Ease != params.MinEase {
		t.Errorf("expected ease clamped to %v, got %v", params.MinEase, next.Ease)
	}
}

func almostEqual(a, b float64) bool {
	diff := a - b
	return diff < 1e-9 && diff > -1e-9
}

func newTestItem(t *testing.T) *domain.Item {
	t.Helper()
	item, err := domain.NewItem("What is the capital of France?", "Paris", nil, nil)
	if err != nil {
		t.Fatalf("failed to create test item: %v", err)
	}
	return item
}
