package postgres

import (
	"database/sql"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memoro-app/memoro-api/internal/domain"
)

// fakeRow implements rowScanner over a fixed value slice in itemColumns order.
type fakeRow struct {
	values []any
}

func (r fakeRow) Scan(dest ...any) error {
	for i, d := range dest {
		src := reflect.ValueOf(r.values[i])
		reflect.ValueOf(d).Elem().Set(src)
	}
	return nil
}

func TestEncodeScanRoundTrip(t *testing.T) {
	t.Parallel()

	reviewed := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	adjusted := time.Date(2026, 2, 12, 8, 0, 0, 0, time.UTC)

	item := &domain.Item{
		ID:                     uuid.New(),
		Prompt:                 "capital of France",
		PrimaryAnswer:          "Paris",
		AcceptedAnswers:        []string{"Paris", "City of Light"},
		Difficulty:             0.42,
		Ease:                   2.3,
		ReviewCount:            7,
		CorrectCount:           5,
		NextReviewAt:           time.Date(2026, 2, 20, 8, 0, 0, 0, time.UTC),
		LastReviewedAt:         &reviewed,
		LastDifficultyUpdateAt: &adjusted,
		ResponseTimes:          []float64{2.5, 4.0, 3.1},
		ConfidenceRatings:      []int{4, 3, 5},
		DifficultyHistory:      []float64{0.5, 0.45, 0.42},
		Tags:                   []string{"geography"},
		CreatedAt:              time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:              time.Date(2026, 2, 12, 8, 0, 0, 0, time.UTC),
	}

	enc, err := encodeItemJSON(item)
	require.NoError(t, err)

	row := fakeRow{values: []any{
		item.ID,
		item.Prompt,
		item.PrimaryAnswer,
		enc.acceptedAnswers,
		item.Difficulty,
		item.Ease,
		item.ReviewCount,
		item.CorrectCount,
		item.NextReviewAt,
		sql.NullTime{Time: reviewed, Valid: true},
		sql.NullTime{Time: adjusted, Valid: true},
		enc.responseTimes,
		enc.confidenceRatings,
		enc.difficultyHistory,
		enc.tags,
		item.CreatedAt,
		item.UpdatedAt,
	}}

	got, err := scanItem(row)
	require.NoError(t, err)
	assert.Equal(t, item, got)
}

func TestScanItemNullTimestamps(t *testing.T) {
	t.Parallel()

	item, err := domain.NewItem("capital of France", "Paris", nil, nil)
	require.NoError(t, err)
	enc, err := encodeItemJSON(item)
	require.NoError(t, err)

	row := fakeRow{values: []any{
		item.ID,
		item.Prompt,
		item.PrimaryAnswer,
		enc.acceptedAnswers,
		item.Difficulty,
		item.Ease,
		item.ReviewCount,
		item.CorrectCount,
		item.NextReviewAt,
		sql.NullTime{},
		sql.NullTime{},
		enc.responseTimes,
		enc.confidenceRatings,
		enc.difficultyHistory,
		enc.tags,
		item.CreatedAt,
		item.UpdatedAt,
	}}

	got, err := scanItem(row)
	require.NoError(t, err)
	assert.Nil(t, got.LastReviewedAt)
	assert.Nil(t, got.LastDifficultyUpdateAt)
}

func TestDecodeJSONField(t *testing.T) {
	t.Parallel()

	var times []float64
	require.NoError(t, decodeJSONField([]byte(`[1.5,2.5]`), &times, "response times"))
	assert.Equal(t, []float64{1.5, 2.5}, times)

	var empty []string
	require.NoError(t, decodeJSONField(nil, &empty, "tags"))
	assert.Nil(t, empty)

	err := decodeJSONField([]byte(`{broken`), &times, "response times")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "response times")
}

func TestNewPostgresItemStorePanicsOnNilDB(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewPostgresItemStore(nil, nil)
	})
}
