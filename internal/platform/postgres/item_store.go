package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/memoro-app/memoro-api/internal/domain"
	"github.com/memoro-app/memoro-api/internal/store"
)

// PostgresItemStore implements the store.ItemStore interface
// using a PostgreSQL database as the storage backend.
//
// Variable-length fields (accepted answers, tags, and the bounded review
// histories) are stored as JSONB so the schema stays stable as the domain
// model evolves.
type PostgresItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresItemStore creates a new PostgreSQL implementation of the ItemStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresItemStore(db store.DBTX, logger *slog.Logger) *PostgresItemStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresItemStore{
		db:     db,
		logger: logger.With(slog.String("component", "item_store")),
	}
}

// Ensure PostgresItemStore implements store.ItemStore interface
var _ store.ItemStore = (*PostgresItemStore)(nil)

// itemColumns is the select list shared by every read query; scanItem expects
// columns in exactly this order.
const itemColumns = `id, prompt, primary_answer, accepted_answers, difficulty, ease,
	review_count, correct_count, next_review_at, last_reviewed_at,
	last_difficulty_update_at, response_times, confidence_ratings,
	difficulty_history, tags, created_at, updated_at`

// Create implements store.ItemStore.Create
func (s *PostgresItemStore) Create(ctx context.Context, item *domain.Item) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	enc, err := encodeItemJSON(item)
	if err != nil {
		return store.NewStoreError("item", "create", "failed to encode item", err)
	}

	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err = s.db.ExecContext(ctx, query,
		item.ID,
		item.Prompt,
		item.PrimaryAnswer,
		enc.acceptedAnswers,
		item.Difficulty,
		item.Ease,
		item.ReviewCount,
		item.CorrectCount,
		item.NextReviewAt,
		item.LastReviewedAt,
		item.LastDifficultyUpdateAt,
		enc.responseTimes,
		enc.confidenceRatings,
		enc.difficultyHistory,
		enc.tags,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		s.logger.Error("failed to create item",
			slog.String("item_id", item.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	s.logger.Debug("item created", slog.String("item_id", item.ID.String()))
	return nil
}

// GetByID implements store.ItemStore.GetByID
func (s *PostgresItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	row := s.db.QueryRowContext(ctx, query, id)
	item, err := scanItem(row)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, store.ErrItemNotFound
		}
		return nil, MapError(err)
	}
	return item, nil
}

// Update implements store.ItemStore.Update
func (s *PostgresItemStore) Update(ctx context.Context, item *domain.Item) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	enc, err := encodeItemJSON(item)
	if err != nil {
		return store.NewStoreError("item", "update", "failed to encode item", err)
	}

	query := `
		UPDATE items SET
			prompt = $2,
			primary_answer = $3,
			accepted_answers = $4,
			difficulty = $5,
			ease = $6,
			review_count = $7,
			correct_count = $8,
			next_review_at = $9,
			last_reviewed_at = $10,
			last_difficulty_update_at = $11,
			response_times = $12,
			confidence_ratings = $13,
			difficulty_history = $14,
			tags = $15,
			updated_at = $16
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		item.ID,
		item.Prompt,
		item.PrimaryAnswer,
		enc.acceptedAnswers,
		item.Difficulty,
		item.Ease,
		item.ReviewCount,
		item.CorrectCount,
		item.NextReviewAt,
		item.LastReviewedAt,
		item.LastDifficultyUpdateAt,
		enc.responseTimes,
		enc.confidenceRatings,
		enc.difficultyHistory,
		enc.tags,
		item.UpdatedAt,
	)
	if err != nil {
		s.logger.Error("failed to update item",
			slog.String("item_id", item.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "item"); err != nil {
		return err
	}

	s.logger.Debug("item updated", slog.String("item_id", item.ID.String()))
	return nil
}

// Delete implements store.ItemStore.Delete
func (s *PostgresItemStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("failed to delete item",
			slog.String("item_id", id.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "item"); err != nil {
		return err
	}

	s.logger.Debug("item deleted", slog.String("item_id", id.String()))
	return nil
}

// List implements store.ItemStore.List
func (s *PostgresItemStore) List(ctx context.Context) ([]*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return collectItems(rows)
}

// ListDue implements store.ItemStore.ListDue
func (s *PostgresItemStore) ListDue(ctx context.Context, now time.Time) ([]*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items
		WHERE next_review_at <= $1
		ORDER BY next_review_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return collectItems(rows)
}

// WithTxItemStore implements store.ItemStore.WithTxItemStore
func (s *PostgresItemStore) WithTxItemStore(tx *sql.Tx) store.ItemStore {
	return &PostgresItemStore{
		db:     tx,
		logger: s.logger,
	}
}

// encodedItem holds the JSONB representations of an item's slice fields.
type encodedItem struct {
	acceptedAnswers   []byte
	responseTimes     []byte
	confidenceRatings []byte
	difficultyHistory []byte
	tags              []byte
}

func encodeItemJSON(item *domain.Item) (encodedItem, error) {
	var enc encodedItem
	var err error

	if enc.acceptedAnswers, err = json.Marshal(item.AcceptedAnswers); err != nil {
		return enc, fmt.Errorf("failed to marshal accepted answers: %w", err)
	}
	if enc.responseTimes, err = json.Marshal(item.ResponseTimes); err != nil {
		return enc, fmt.Errorf("failed to marshal response times: %w", err)
	}
	if enc.confidenceRatings, err = json.Marshal(item.ConfidenceRatings); err != nil {
		return enc, fmt.Errorf("failed to marshal confidence ratings: %w", err)
	}
	if enc.difficultyHistory, err = json.Marshal(item.DifficultyHistory); err != nil {
		return enc, fmt.Errorf("failed to marshal difficulty history: %w", err)
	}
	if enc.tags, err = json.Marshal(item.Tags); err != nil {
		return enc, fmt.Errorf("failed to marshal tags: %w", err)
	}

	return enc, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*domain.Item, error) {
	var (
		item                   domain.Item
		acceptedAnswers        []byte
		responseTimes          []byte
		confidenceRatings      []byte
		difficultyHistory      []byte
		tags                   []byte
		lastReviewedAt         sql.NullTime
		lastDifficultyUpdateAt sql.NullTime
	)

	err := row.Scan(
		&item.ID,
		&item.Prompt,
		&item.PrimaryAnswer,
		&acceptedAnswers,
		&item.Difficulty,
		&item.Ease,
		&item.ReviewCount,
		&item.CorrectCount,
		&item.NextReviewAt,
		&lastReviewedAt,
		&lastDifficultyUpdateAt,
		&responseTimes,
		&confidenceRatings,
		&difficultyHistory,
		&tags,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastReviewedAt.Valid {
		t := lastReviewedAt.Time
		item.LastReviewedAt = &t
	}
	if lastDifficultyUpdateAt.Valid {
		t := lastDifficultyUpdateAt.Time
		item.LastDifficultyUpdateAt = &t
	}

	if err := decodeJSONField(acceptedAnswers, &item.AcceptedAnswers, "accepted answers"); err != nil {
		return nil, err
	}
	if err := decodeJSONField(responseTimes, &item.ResponseTimes, "response times"); err != nil {
		return nil, err
	}
	if err := decodeJSONField(confidenceRatings, &item.ConfidenceRatings, "confidence ratings"); err != nil {
		return nil, err
	}
	if err := decodeJSONField(difficultyHistory, &item.DifficultyHistory, "difficulty history"); err != nil {
		return nil, err
	}
	if err := decodeJSONField(tags, &item.Tags, "tags"); err != nil {
		return nil, err
	}

	return &item, nil
}

func decodeJSONField(data []byte, dst any, field string) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", field, err)
	}
	return nil
}

func collectItems(rows *sql.Rows) ([]*domain.Item, error) {
	var items []*domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, MapError(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return items, nil
}
