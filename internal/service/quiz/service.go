package quiz

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/memoro-app/memoro-api/internal/domain"
)

// ItemRepository is the deck abstraction the quiz service studies from:
// an ordered collection of items supporting iteration, due queries, and
// lookup by ID. Implementations live in the storage layer.
type ItemRepository interface {
	// List returns every item in the deck, stable order.
	List(ctx context.Context) ([]*domain.Item, error)

	// ListDue returns the items due for review at the given time, most
	// overdue first.
	ListDue(ctx context.Context, now time.Time) ([]*domain.Item, error)

	// GetByID retrieves a single item.
	// Returns a not-found error when the item does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)

	// Update persists an item's full state after a committed review.
	Update(ctx context.Context, item *domain.Item) error
}

// Service manages live quiz sessions over a deck of items.
type Service interface {
	// StartSession creates a session per the config and returns its ID.
	StartSession(ctx context.Context, cfg Config) (*SessionInfo, error)

	// NextQuestion advances the session and returns the next item to
	// present, or nil when the session just completed.
	NextQuestion(ctx context.Context, sessionID uuid.UUID) (*domain.Item, error)

	// SubmitAnswer validates a response for the session's current
	// question, commits the review outcome, and persists the item.
	SubmitAnswer(ctx context.Context, sessionID uuid.UUID, response string, opts SubmitOptions) (Feedback, error)

	// SkipQuestion records the current question as skipped.
	SkipQuestion(ctx context.Context, sessionID uuid.UUID) error

	// CancelSession terminates a session early.
	CancelSession(ctx context.Context, sessionID uuid.UUID) error

	// SessionStats returns the running aggregates for a session.
	SessionStats(ctx context.Context, sessionID uuid.UUID) (Stats, error)
}

// SessionInfo is the external view of a freshly started session.
type SessionInfo struct {
	ID    uuid.UUID `json:"id"`
	Mode  Mode      `json:"mode"`
	State State     `json:"state"`
	Limit int       `json:"limit"`
	Pool  int       `json:"pool"`
}
