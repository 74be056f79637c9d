package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/memoro-app/memoro-api/internal/domain"
	"github.com/memoro-app/memoro-api/internal/domain/match"
	"github.com/memoro-app/memoro-api/internal/domain/srs"
)

// service is the in-memory session manager backing the Service interface.
// Sessions live for the life of the process; committed item state is
// persisted through the repository after every answer.
type service struct {
	repo      ItemRepository
	scheduler srs.Service
	adapter   *srs.Adapter
	matcher   *match.Matcher
	logger    *slog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// NewService creates the quiz session manager.
func NewService(
	repo ItemRepository,
	scheduler srs.Service,
	adapter *srs.Adapter,
	matcher *match.Matcher,
	logger *slog.Logger,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("item repository cannot be nil")
	}
	if scheduler == nil {
		return nil, fmt.Errorf("scheduler cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &service{
		repo:      repo,
		scheduler: scheduler,
		adapter:   adapter,
		matcher:   matcher,
		logger:    logger.With(slog.String("component", "quiz_service")),
		sessions:  make(map[uuid.UUID]*Session),
	}, nil
}

func (s *service) StartSession(ctx context.Context, cfg Config) (*SessionInfo, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load items for session: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	session, err := NewSession(items, cfg, s.scheduler, s.adapter, s.matcher)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[session.ID()] = session
	s.mu.Unlock()

	s.logger.Info("session started",
		slog.String("session_id", session.ID().String()),
		slog.String("mode", string(cfg.Mode)),
		slog.Int("pool", len(items)),
		slog.Int("limit", cfg.Limit))

	return &SessionInfo{
		ID:    session.ID(),
		Mode:  session.Mode(),
		State: session.State(),
		Limit: cfg.Limit,
		Pool:  len(items),
	}, nil
}

func (s *service) NextQuestion(ctx context.Context, sessionID uuid.UUID) (*domain.Item, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := session.Next()
	if err != nil {
		return nil, err
	}
	if item == nil {
		s.logger.Info("session completed",
			slog.String("session_id", sessionID.String()),
			slog.Int("asked", len(session.Asked())))
	}
	return item, nil
}

func (s *service) SubmitAnswer(ctx context.Context, sessionID uuid.UUID, response string, opts SubmitOptions) (Feedback, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return Feedback{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := session.Current()
	feedback, err := session.Submit(response, opts)
	if err != nil {
		return Feedback{}, err
	}

	// The session mutated the item in memory; make it durable.
	if err := s.repo.Update(ctx, current); err != nil {
		s.logger.Error("failed to persist reviewed item",
			slog.String("session_id", sessionID.String()),
			slog.String("item_id", current.ID.String()),
			slog.String("error", err.Error()))
		return Feedback{}, fmt.Errorf("failed to persist reviewed item: %w", err)
	}

	s.logger.Debug("answer recorded",
		slog.String("session_id", sessionID.String()),
		slog.String("item_id", current.ID.String()),
		slog.Bool("correct", feedback.Correct),
		slog.Int("quality", feedback.Quality))

	return feedback, nil
}

func (s *service) SkipQuestion(ctx context.Context, sessionID uuid.UUID) error {
	session, err := s.lookup(sessionID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return session.Skip()
}

func (s *service) CancelSession(ctx context.Context, sessionID uuid.UUID) error {
	session, err := s.lookup(sessionID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := session.Cancel(); err != nil {
		return err
	}

	s.logger.Info("session cancelled", slog.String("session_id", sessionID.String()))
	return nil
}

func (s *service) SessionStats(ctx context.Context, sessionID uuid.UUID) (Stats, error) {
	session, err := s.lookup(sessionID)
	if err != nil {
		return Stats{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return session.Stats(), nil
}

// lookup finds a live session by ID.
func (s *service) lookup(id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}
