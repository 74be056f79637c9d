package srs

import (
	"errors"
	"time"

	"github.com/memoro-app/memoro-api/internal/domain"
)

// Common errors
var (
	ErrNilItem        = errors.New("item cannot be nil")
	ErrInvalidQuality = errors.New("quality score must be between 0 and 5")
	ErrInvalidDays    = errors.New("postpone days must be at least 1")
)

// Service defines the interface for scheduling operations.
type Service interface {
	// RecordOutcome computes the item's next scheduling state after a
	// review. The returned item is a new value; the caller commits it.
	RecordOutcome(item *domain.Item, outcome Outcome, now time.Time) (*domain.Item, error)

	// PostponeReview pushes the next review time forward by a number of days.
	PostponeReview(item *domain.Item, days int, now time.Time) (*domain.Item, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a scheduling service with default parameters.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a scheduling service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

// RecordOutcome implements the Service interface.
func (s *defaultService) RecordOutcome(
	item *domain.Item,
	outcome Outcome,
	now time.Time,
) (*domain.Item, error) {
	if item == nil {
		return nil, ErrNilItem
	}

	if outcome.Quality < 0 || outcome.Quality > 5 {
		return nil, ErrInvalidQuality
	}

	if outcome.Confidence != nil && (*outcome.Confidence < 1 || *outcome.Confidence > 5) {
		return nil, domain.ErrInvalidConfidence
	}

	// Validation happens before any state is derived, so a rejected
	// outcome leaves no trace on the item.
	if err := item.Validate(); err != nil {
		return nil, err
	}

	return applyOutcome(item, outcome, now, s.params), nil
}

// PostponeReview implements the Service interface.
func (s *defaultService) PostponeReview(
	item *domain.Item,
	days int,
	now time.Time,
) (*domain.Item, error) {
	if item == nil {
		return nil, ErrNilItem
	}

	if days < 1 {
		return nil, ErrInvalidDays
	}

	next := item.Clone()
	next.NextReviewAt = item.NextReviewAt.AddDate(0, 0, days)
	next.UpdatedAt = now

	return next, nil
}
