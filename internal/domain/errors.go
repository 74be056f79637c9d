// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidAnswerSet is returned when an item's accepted answer set is
	// empty or malformed (duplicates, or primary answer missing from the set).
	ErrInvalidAnswerSet = errors.New("invalid accepted answer set")

	// ErrInvalidDifficulty is returned when a difficulty value is outside [0, 1].
	ErrInvalidDifficulty = errors.New("difficulty must be between 0.0 and 1.0")

	// ErrInvalidEase is returned when an ease factor is below the 1.3 floor.
	ErrInvalidEase = errors.New("ease factor must be at least 1.3")

	// ErrInvalidReviewCounts is returned when review counters are negative or
	// the correct count exceeds the review count.
	ErrInvalidReviewCounts = errors.New("invalid review counters")

	// ErrInvalidConfidence is returned when a self-reported confidence rating
	// is outside the 1-5 scale.
	ErrInvalidConfidence = errors.New("confidence rating must be between 1 and 5")

	// ErrEmptyPrompt is returned when an item is created without prompt text.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrItemIDEmpty is returned when an item ID is empty or nil.
	ErrItemIDEmpty = errors.New("item ID cannot be empty")
)
