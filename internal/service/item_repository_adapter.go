package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/memoro-app/memoro-api/internal/domain"
	"github.com/memoro-app/memoro-api/internal/service/quiz"
	"github.com/memoro-app/memoro-api/internal/store"
)

// NewItemRepositoryAdapter creates an adapter that allows a store.ItemStore
// to be used where a quiz.ItemRepository is expected. Writes run inside a
// database transaction.
func NewItemRepositoryAdapter(itemStore store.ItemStore, db *sql.DB) quiz.ItemRepository {
	return &itemRepositoryAdapter{
		itemStore: itemStore,
		db:        db,
	}
}

// itemRepositoryAdapter adapts a store.ItemStore to the quiz.ItemRepository interface
type itemRepositoryAdapter struct {
	itemStore store.ItemStore
	db        *sql.DB
}

// List implements quiz.ItemRepository.List
func (a *itemRepositoryAdapter) List(ctx context.Context) ([]*domain.Item, error) {
	return a.itemStore.List(ctx)
}

// ListDue implements quiz.ItemRepository.ListDue
func (a *itemRepositoryAdapter) ListDue(ctx context.Context, now time.Time) ([]*domain.Item, error) {
	return a.itemStore.ListDue(ctx, now)
}

// GetByID implements quiz.ItemRepository.GetByID
func (a *itemRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	return a.itemStore.GetByID(ctx, id)
}

// Update implements quiz.ItemRepository.Update.
// The write runs in its own transaction so a review commit is all-or-nothing
// even if the schema later splits the item across tables.
func (a *itemRepositoryAdapter) Update(ctx context.Context, item *domain.Item) error {
	return store.RunInTransaction(ctx, a.db, func(ctx context.Context, tx *sql.Tx) error {
		return a.itemStore.WithTxItemStore(tx).Update(ctx, item)
	})
}
