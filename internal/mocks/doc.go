// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these
// standardized implementations are shared across test packages. Each mock
// exposes a function field per interface method for overriding behavior,
// plus default response values and call tracking.
//
// Usage:
//
//	import "github.com/memoro-app/memoro-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    itemStore := &mocks.MockItemStore{
//	        GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
//	            return nil, store.ErrItemNotFound
//	        },
//	    }
//
//	    // Use the mock in your test...
//	}
package mocks
