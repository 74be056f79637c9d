package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/memoro-app/memoro-api/internal/domain"
	"github.com/memoro-app/memoro-api/internal/service/quiz"
)

// MockQuizService implements quiz.Service for testing
type MockQuizService struct {
	// Custom behavior functions
	StartSessionFn  func(ctx context.Context, cfg quiz.Config) (*quiz.SessionInfo, error)
	NextQuestionFn  func(ctx context.Context, sessionID uuid.UUID) (*domain.Item, error)
	SubmitAnswerFn  func(ctx context.Context, sessionID uuid.UUID, response string, opts quiz.SubmitOptions) (quiz.Feedback, error)
	SkipQuestionFn  func(ctx context.Context, sessionID uuid.UUID) error
	CancelSessionFn func(ctx context.Context, sessionID uuid.UUID) error
	SessionStatsFn  func(ctx context.Context, sessionID uuid.UUID) (quiz.Stats, error)

	// Default response values
	Info     *quiz.SessionInfo
	Item     *domain.Item
	Feedback quiz.Feedback
	Stats    quiz.Stats
	Err      error

	// Call tracking for verification
	mu                sync.Mutex
	StartSessionCalls []quiz.Config
	SubmitCalls       []string
}

var _ quiz.Service = (*MockQuizService)(nil)

// StartSession implements quiz.Service
func (m *MockQuizService) StartSession(ctx context.Context, cfg quiz.Config) (*quiz.SessionInfo, error) {
	m.mu.Lock()
	m.StartSessionCalls = append(m.StartSessionCalls, cfg)
	m.mu.Unlock()

	if m.StartSessionFn != nil {
		return m.StartSessionFn(ctx, cfg)
	}
	return m.Info, m.Err
}

// NextQuestion implements quiz.Service
func (m *MockQuizService) NextQuestion(ctx context.Context, sessionID uuid.UUID) (*domain.Item, error) {
	if m.NextQuestionFn != nil {
		return m.NextQuestionFn(ctx, sessionID)
	}
	return m.Item, m.Err
}

// SubmitAnswer implements quiz.Service
func (m *MockQuizService) SubmitAnswer(ctx context.Context, sessionID uuid.UUID, response string, opts quiz.SubmitOptions) (quiz.Feedback, error) {
	m.mu.Lock()
	m.SubmitCalls = append(m.SubmitCalls, response)
	m.mu.Unlock()

	if m.SubmitAnswerFn != nil {
		return m.SubmitAnswerFn(ctx, sessionID, response, opts)
	}
	return m.Feedback, m.Err
}

// SkipQuestion implements quiz.Service
func (m *MockQuizService) SkipQuestion(ctx context.Context, sessionID uuid.UUID) error {
	if m.SkipQuestionFn != nil {
		return m.SkipQuestionFn(ctx, sessionID)
	}
	return m.Err
}

// CancelSession implements quiz.Service
func (m *MockQuizService) CancelSession(ctx context.Context, sessionID uuid.UUID) error {
	if m.CancelSessionFn != nil {
		return m.CancelSessionFn(ctx, sessionID)
	}
	return m.Err
}

// SessionStats implements quiz.Service
func (m *MockQuizService) SessionStats(ctx context.Context, sessionID uuid.UUID) (quiz.Stats, error) {
	if m.SessionStatsFn != nil {
		return m.SessionStatsFn(ctx, sessionID)
	}
	return m.Stats, m.Err
}
