package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Parallel()

	item, err := NewItem("What is the capital of France?", "Paris",
		[]string{"Paris, France", "Paris"}, []string{"geography"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, item.ID)
	assert.Equal(t, "Paris", item.PrimaryAnswer)
	// Duplicate extras are dropped; primary stays first.
	assert.Equal(t, []string{"Paris", "Paris, France"}, item.AcceptedAnswers)
	assert.Equal(t, DefaultDifficulty, item.Difficulty)
	assert.Equal(t, DefaultEase, item.Ease)
	assert.Zero(t, item.ReviewCount)
	assert.Zero(t, item.CorrectCount)
	assert.Nil(t, item.LastReviewedAt)
	assert.True(t, item.IsDue(time.Now().UTC()))
}

func TestNewItemValidation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		prompt  string
		primary string
		wantErr error
	}{
		{
			name:    "empty prompt",
			prompt:  "",
			primary: "Paris",
			wantErr: ErrEmptyPrompt,
		},
		{
			name:    "empty primary answer",
			prompt:  "What is the capital of France?",
			primary: "",
			wantErr: ErrInvalidAnswerSet,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewItem(tc.prompt, tc.primary, nil, nil)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestItemValidateInvariants(t *testing.T) {
	t.Parallel()

	valid := func() *Item {
		item, err := NewItem("prompt", "answer", nil, nil)
		require.NoError(t, err)
		return item
	}

	testCases := []struct {
		name    string
		mutate  func(*Item)
		wantErr error
	}{
		{
			name:    "difficulty above 1",
			mutate:  func(i *Item) { i.Difficulty = 1.01 },
			wantErr: ErrInvalidDifficulty,
		},
		{
			name:    "difficulty below 0",
			mutate:  func(i *Item) { i.Difficulty = -0.01 },
			wantErr: ErrInvalidDifficulty,
		},
		{
			name:    "ease below floor",
			mutate:  func(i *Item) { i.Ease = 1.29 },
			wantErr: ErrInvalidEase,
		},
		{
			name:    "correct count exceeds review count",
			mutate:  func(i *Item) { i.CorrectCount = 1 },
			wantErr: ErrInvalidReviewCounts,
		},
		{
			name:    "negative review count",
			mutate:  func(i *Item) { i.ReviewCount = -1 },
			wantErr: ErrInvalidReviewCounts,
		},
		{
			name:    "confidence rating out of range",
			mutate:  func(i *Item) { i.ConfidenceRatings = []int{6} },
			wantErr: ErrInvalidConfidence,
		},
		{
			name:    "primary answer not first",
			mutate:  func(i *Item) { i.AcceptedAnswers = []string{"other", "answer"} },
			wantErr: ErrInvalidAnswerSet,
		},
		{
			name:    "duplicate accepted answers",
			mutate:  func(i *Item) { i.AcceptedAnswers = []string{"answer", "answer"} },
			wantErr: ErrInvalidAnswerSet,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			item := valid()
			tc.mutate(item)
			assert.ErrorIs(t, item.Validate(), tc.wantErr)
		})
	}
}

func TestItemBoundedHistories(t *testing.T) {
	t.Parallel()

	item, err := NewItem("prompt", "answer", nil, nil)
	require.NoError(t, err)

	for n := 0; n < ResponseTimeHistoryCap+5; n++ {
		item.AppendResponseTime(float64(n))
	}
	require.Len(t, item.ResponseTimes, ResponseTimeHistoryCap)
	// Oldest observations are evicted first.
	assert.Equal(t, 5.0, item.ResponseTimes[0])
	assert.Equal(t, float64(ResponseTimeHistoryCap+4), item.ResponseTimes[len(item.ResponseTimes)-1])

	for n := 0; n < ConfidenceHistoryCap+3; n++ {
		item.AppendConfidenceRating(1 + n%5)
	}
	assert.Len(t, item.ConfidenceRatings, ConfidenceHistoryCap)

	for n := 0; n < DifficultyHistoryCap+2; n++ {
		item.AppendDifficultyHistory(float64(n) / 100)
	}
	require.Len(t, item.DifficultyHistory, DifficultyHistoryCap)
	assert.Equal(t, 0.02, item.DifficultyHistory[0])
}

func TestItemAccuracy(t *testing.T) {
	t.Parallel()

	item, err := NewItem("prompt", "answer", nil, nil)
	require.NoError(t, err)
	assert.Zero(t, item.Accuracy())

	item.ReviewCount = 4
	item.CorrectCount = 3
	assert.InDelta(t, 0.75, item.Accuracy(), 1e-9)
}

func TestItemClone(t *testing.T) {
	t.Parallel()

	item, err := NewItem("prompt", "answer", []string{"alt"}, []string{"tag"})
	require.NoError(t, err)
	now := time.Now().UTC()
	item.LastReviewedAt = &now
	item.AppendResponseTime(2.5)

	clone := item.Clone()
	require.Equal(t, item, clone)

	// Mutating the clone must not touch the original.
	clone.AcceptedAnswers[0] = "changed"
	clone.ResponseTimes[0] = 99
	*clone.LastReviewedAt = now.Add(time.Hour)

	assert.Equal(t, "answer", item.AcceptedAnswers[0])
	assert.Equal(t, 2.5, item.ResponseTimes[0])
	assert.True(t, item.LastReviewedAt.Equal(now))
}

func TestItemJSONRoundTrip(t *testing.T) {
	t.Parallel()

	item, err := NewItem("What is the capital of France?", "Paris",
		[]string{"Paris, France"}, []string{"geography", "europe"})
	require.NoError(t, err)
	// Fixed timestamps: time.Now carries a monotonic reading that does not
	// survive serialization and would break the deep-equality check.
	created := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	reviewed := created.Add(48 * time.Hour)
	item.CreatedAt = created
	item.UpdatedAt = created
	item.NextReviewAt = reviewed.AddDate(0, 0, 3)
	item.LastReviewedAt = &reviewed
	item.ReviewCount = 5
	item.CorrectCount = 4
	item.AppendResponseTime(3.2)
	item.AppendConfidenceRating(4)
	item.AppendDifficultyHistory(0.5)

	data, err := json.Marshal(item)
	require.NoError(t, err)

	var decoded Item
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *item, decoded)
}
