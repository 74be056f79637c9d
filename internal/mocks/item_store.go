package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/memoro-app/memoro-api/internal/domain"
	"github.com/memoro-app/memoro-api/internal/store"
)

// MockItemStore implements store.ItemStore for testing
type MockItemStore struct {
	// Custom behavior functions
	CreateFn  func(ctx context.Context, item *domain.Item) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	UpdateFn  func(ctx context.Context, item *domain.Item) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error
	ListFn    func(ctx context.Context) ([]*domain.Item, error)
	ListDueFn func(ctx context.Context, now time.Time) ([]*domain.Item, error)

	// Default response values
	Item  *domain.Item
	Items []*domain.Item
	Err   error

	// Call tracking for verification
	mu          sync.Mutex
	CreateCalls []*domain.Item
	UpdateCalls []*domain.Item
	DeleteCalls []uuid.UUID
	GetCalls    []uuid.UUID
	ListCount   int
}

var _ store.ItemStore = (*MockItemStore)(nil)

// Create implements store.ItemStore
func (m *MockItemStore) Create(ctx context.Context, item *domain.Item) error {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, item)
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, item)
	}
	return m.Err
}

// GetByID implements store.ItemStore
func (m *MockItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, id)
	m.mu.Unlock()

	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Item, m.Err
}

// Update implements store.ItemStore
func (m *MockItemStore) Update(ctx context.Context, item *domain.Item) error {
	m.mu.Lock()
	m.UpdateCalls = append(m.UpdateCalls, item)
	m.mu.Unlock()

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, item)
	}
	return m.Err
}

// Delete implements store.ItemStore
func (m *MockItemStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	m.mu.Unlock()

	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}

// List implements store.ItemStore
func (m *MockItemStore) List(ctx context.Context) ([]*domain.Item, error) {
	m.mu.Lock()
	m.ListCount++
	m.mu.Unlock()

	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.Items, m.Err
}

// ListDue implements store.ItemStore
func (m *MockItemStore) ListDue(ctx context.Context, now time.Time) ([]*domain.Item, error) {
	if m.ListDueFn != nil {
		return m.ListDueFn(ctx, now)
	}
	return m.Items, m.Err
}

// WithTxItemStore implements store.ItemStore; the mock ignores transactions.
func (m *MockItemStore) WithTxItemStore(tx *sql.Tx) store.ItemStore {
	return m
}
