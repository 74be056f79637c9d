package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/memoro-app/memoro-api/internal/domain"
)

// ItemStore defines the interface for flashcard item persistence.
type ItemStore interface {
	// Create saves a new item to the store.
	// The item must be valid according to domain validation rules.
	// Returns ErrDuplicate if an item with the same ID already exists.
	Create(ctx context.Context, item *domain.Item) error

	// GetByID retrieves an item by its unique ID.
	// Returns ErrItemNotFound if the item does not exist.
	// The returned item has its history fields populated from JSONB.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)

	// Update persists an item's full state, including scheduling fields and
	// bounded histories. Returns ErrItemNotFound if the item does not exist.
	Update(ctx context.Context, item *domain.Item) error

	// Delete removes an item from the store by its ID.
	// Returns ErrItemNotFound if the item does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns all items ordered by creation time, oldest first.
	List(ctx context.Context) ([]*domain.Item, error)

	// ListDue returns items whose next review is at or before the given
	// time, most overdue first.
	ListDue(ctx context.Context, now time.Time) ([]*domain.Item, error)

	// WithTxItemStore returns a new ItemStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller,
	// typically through store.RunInTransaction.
	WithTxItemStore(tx *sql.Tx) ItemStore
}
