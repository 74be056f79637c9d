package domain

import (
	"time"

	"github.com/google/uuid"
)

// Default state for a freshly created item.
const (
	DefaultDifficulty = 0.5
	DefaultEase       = 2.5

	// MinEase is the floor below which review intervals would degenerate.
	MinEase = 1.3

	// History capacities. Oldest observations are evicted first.
	ResponseTimeHistoryCap = 20
	ConfidenceHistoryCap   = 20
	DifficultyHistoryCap   = 10
)

// Item is the durable record for one piece of memorized content: the prompt,
// the set of acceptable answers, and the scheduling/difficulty state derived
// from the learner's performance history.
//
// Items are mutated only through the review pipeline (scheduler + difficulty
// adapter, driven by a quiz session); they are never partially updated. The
// item has exactly one writer at a time by contract.
type Item struct {
	ID            uuid.UUID `json:"id"`
	Prompt        string    `json:"prompt"`
	PrimaryAnswer string    `json:"primary_answer"`

	// AcceptedAnswers is an ordered, duplicate-free set of answer strings.
	// Its first member is always PrimaryAnswer; it is never empty.
	AcceptedAnswers []string `json:"accepted_answers"`

	Difficulty float64 `json:"difficulty"` // always in [0, 1]
	Ease       float64 `json:"ease"`       // always >= MinEase

	ReviewCount  int `json:"review_count"`
	CorrectCount int `json:"correct_count"`

	NextReviewAt           time.Time  `json:"next_review_at"`
	LastReviewedAt         *time.Time `json:"last_reviewed_at"`
	LastDifficultyUpdateAt *time.Time `json:"last_difficulty_update_at"`

	ResponseTimes     []float64 `json:"response_times"`     // seconds, last ResponseTimeHistoryCap
	ConfidenceRatings []int     `json:"confidence_ratings"` // 1-5, last ConfidenceHistoryCap
	DifficultyHistory []float64 `json:"difficulty_history"` // last DifficultyHistoryCap

	Tags []string `json:"tags"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewItem creates an item with default scheduling state: difficulty 0.5,
// ease 2.5, zero counters, due immediately. extraAnswers are appended after
// the primary answer, with duplicates and blanks dropped.
// Returns an error if validation fails; an invalid item is never
// partially constructed.
func NewItem(prompt, primaryAnswer string, extraAnswers []string, tags []string) (*Item, error) {
	now := time.Now().UTC()
	item := &Item{
		ID:              uuid.New(),
		Prompt:          prompt,
		PrimaryAnswer:   primaryAnswer,
		AcceptedAnswers: buildAnswerSet(primaryAnswer, extraAnswers),
		Difficulty:      DefaultDifficulty,
		Ease:            DefaultEase,
		NextReviewAt:    now,
		Tags:            tags,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// buildAnswerSet produces the ordered accepted-answer set: primary first,
// then any extras that are non-empty and not already present.
func buildAnswerSet(primary string, extras []string) []string {
	answers := []string{primary}
	seen := map[string]bool{primary: true}
	for _, a := range extras {
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		answers = append(answers, a)
	}
	return answers
}

// Validate checks every documented invariant on the item.
// Returns a sentinel error for the first invariant that does not hold.
func (i *Item) Validate() error {
	if i.ID == uuid.Nil {
		return ErrItemIDEmpty
	}

	if i.Prompt == "" {
		return ErrEmptyPrompt
	}

	if err := validateAnswerSet(i.PrimaryAnswer, i.AcceptedAnswers); err != nil {
		return err
	}

	if i.Difficulty < 0.0 || i.Difficulty > 1.0 {
		return ErrInvalidDifficulty
	}

	if i.Ease < MinEase {
		return ErrInvalidEase
	}

	if i.ReviewCount < 0 || i.CorrectCount < 0 || i.CorrectCount > i.ReviewCount {
		return ErrInvalidReviewCounts
	}

	for _, c := range i.ConfidenceRatings {
		if c < 1 || c > 5 {
			return ErrInvalidConfidence
		}
	}

	return nil
}

// validateAnswerSet enforces the accepted-answer invariants: non-empty,
// primary answer as the first member, no duplicates, no blank entries.
func validateAnswerSet(primary string, answers []string) error {
	if primary == "" || len(answers) == 0 || answers[0] != primary {
		return ErrInvalidAnswerSet
	}

	seen := make(map[string]bool, len(answers))
	for _, a := range answers {
		if a == "" || seen[a] {
			return ErrInvalidAnswerSet
		}
		seen[a] = true
	}

	return nil
}

// IsDue reports whether the item is eligible for review at the given time.
func (i *Item) IsDue(now time.Time) bool {
	return !now.Before(i.NextReviewAt)
}

// Accuracy returns the lifetime correct-answer rate, or 0 before any review.
func (i *Item) Accuracy() float64 {
	if i.ReviewCount == 0 {
		return 0
	}
	return float64(i.CorrectCount) / float64(i.ReviewCount)
}

// Clone returns a deep copy of the item. The scheduler operates on clones so
// a failed update never leaves the caller's item half-mutated.
func (i *Item) Clone() *Item {
	clone := *i
	clone.AcceptedAnswers = append([]string(nil), i.AcceptedAnswers...)
	clone.ResponseTimes = append([]float64(nil), i.ResponseTimes...)
	clone.ConfidenceRatings = append([]int(nil), i.ConfidenceRatings...)
	clone.DifficultyHistory = append([]float64(nil), i.DifficultyHistory...)
	clone.Tags = append([]string(nil), i.Tags...)
	if i.LastReviewedAt != nil {
		t := *i.LastReviewedAt
		clone.LastReviewedAt = &t
	}
	if i.LastDifficultyUpdateAt != nil {
		t := *i.LastDifficultyUpdateAt
		clone.LastDifficultyUpdateAt = &t
	}
	return &clone
}

// AppendResponseTime records an observed response time in seconds, evicting
// the oldest observation once the history is full.
func (i *Item) AppendResponseTime(seconds float64) {
	i.ResponseTimes = appendBoundedFloat(i.ResponseTimes, seconds, ResponseTimeHistoryCap)
}

// AppendConfidenceRating records a self-reported confidence rating (1-5),
// evicting the oldest once the history is full.
func (i *Item) AppendConfidenceRating(rating int) {
	i.ConfidenceRatings = appendBoundedInt(i.ConfidenceRatings, rating, ConfidenceHistoryCap)
}

// AppendDifficultyHistory records a prior difficulty value, evicting the
// oldest once the history is full.
func (i *Item) AppendDifficultyHistory(difficulty float64) {
	i.DifficultyHistory = appendBoundedFloat(i.DifficultyHistory, difficulty, DifficultyHistoryCap)
}

func appendBoundedFloat(history []float64, v float64, capacity int) []float64 {
	history = append(history, v)
	if len(history) > capacity {
		history = history[len(history)-capacity:]
	}
	return history
}

func appendBoundedInt(history []int, v int, capacity int) []int {
	history = append(history, v)
	if len(history) > capacity {
		history = history[len(history)-capacity:]
	}
	return history
}
