package quiz

import "errors"

// Service-level errors for quiz sessions.
var (
	// ErrInvalidMode is returned when a session is started with an
	// unrecognized selection mode.
	ErrInvalidMode = errors.New("invalid session mode")

	// ErrInvalidLimit is returned when a session question cap is negative.
	ErrInvalidLimit = errors.New("question limit cannot be negative")

	// ErrNoItems is returned when a session is started with no items at all.
	ErrNoItems = errors.New("no items available for a session")

	// ErrSessionNotFound is returned when a session ID does not resolve to
	// a live session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionFinished is returned for operations on a session that has
	// already completed or been cancelled.
	ErrSessionFinished = errors.New("session already finished")

	// ErrQuestionPending is returned when Next is called while a presented
	// question has not been answered or skipped yet.
	ErrQuestionPending = errors.New("current question not yet answered")

	// ErrNoCurrentQuestion is returned when an answer or skip arrives with
	// no question outstanding.
	ErrNoCurrentQuestion = errors.New("no question is currently presented")
)
