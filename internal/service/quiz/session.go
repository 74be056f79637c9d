// Package quiz orchestrates study sessions: it selects the next item per a
// selection policy, validates answers through the fuzzy matcher, delegates
// difficulty changes to the adapter and rescheduling to the scheduler, and
// accumulates session statistics.
package quiz

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/memoro-app/memoro-api/internal/domain"
	"github.com/memoro-app/memoro-api/internal/domain/match"
	"github.com/memoro-app/memoro-api/internal/domain/srs"
)

// Config controls a single session.
type Config struct {
	// Mode is the selection policy.
	Mode Mode

	// Limit caps the number of questions; 0 means no cap.
	Limit int

	// FuzzyMatching enables matcher-based validation for responses that
	// miss the exact/case-insensitive checks.
	FuzzyMatching bool
}

// AskedQuestion captures one presented question and what became of it.
type AskedQuestion struct {
	ItemID      uuid.UUID     `json:"item_id"`
	Prompt      string        `json:"prompt"`
	PresentedAt time.Time     `json:"presented_at"`
	AnsweredAt  time.Time     `json:"answered_at"`
	Response    string        `json:"response"`
	Skipped     bool          `json:"skipped"`
	Correct     bool          `json:"correct"`
	Quality     int           `json:"quality"`
	Confidence  *int          `json:"confidence,omitempty"`
	Match       *match.Result `json:"match,omitempty"`

	// DifficultyDelta is the total difficulty change committed for this
	// answer (baseline step plus any adapter override).
	DifficultyDelta float64 `json:"difficulty_delta"`
}

// Feedback is returned to the caller after each submission.
type Feedback struct {
	Correct         bool          `json:"correct"`
	Quality         int           `json:"quality"`
	Match           *match.Result `json:"match,omitempty"`
	DifficultyDelta float64       `json:"difficulty_delta"`
	NextReviewAt    time.Time     `json:"next_review_at"`
}

// SubmitOptions carries the optional explicit signals a caller may attach
// to an answer.
type SubmitOptions struct {
	// Quality overrides the speed-derived quality score when set.
	Quality *int

	// Confidence is the learner's self-reported confidence (1-5).
	Confidence *int
}

// Stats are the running aggregates for a session.
type Stats struct {
	Mode            Mode          `json:"mode"`
	State           State         `json:"state"`
	Asked           int           `json:"asked"`
	Correct         int           `json:"correct"`
	Incorrect       int           `json:"incorrect"`
	Skipped         int           `json:"skipped"`
	Accuracy        float64       `json:"accuracy"`
	AvgResponseTime float64       `json:"avg_response_time"`
	Duration        time.Duration `json:"duration"`
}

// Session runs one study session over a fixed pool of items.
//
// A session is not safe for concurrent use; it expects exactly one caller
// at a time, and each item has the session as its only writer while the
// session is live.
type Session struct {
	id    uuid.UUID
	mode  Mode
	state State
	limit int

	remaining []*domain.Item
	asked     []AskedQuestion

	current     *domain.Item
	presentedAt time.Time

	// outcomes tracks per-item correct/incorrect signals observed during
	// this session, feeding the difficulty adapter's trend window.
	outcomes map[uuid.UUID][]bool

	scheduler srs.Service
	adapter   *srs.Adapter
	matcher   *match.Matcher
	fuzzy     bool

	correctCount  int
	incorrect     int
	skipped       int
	totalResponse float64

	startedAt time.Time
	endedAt   *time.Time

	now func() time.Time
}

// NewSession creates a session over the given item pool.
// The pool slice is copied; the items themselves are shared and will be
// mutated as outcomes are committed.
func NewSession(
	items []*domain.Item,
	cfg Config,
	scheduler srs.Service,
	adapter *srs.Adapter,
	matcher *match.Matcher,
) (*Session, error) {
	if _, err := ParseMode(string(cfg.Mode)); err != nil {
		return nil, err
	}
	if cfg.Limit < 0 {
		return nil, ErrInvalidLimit
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if cfg.FuzzyMatching && matcher == nil {
		return nil, match.ErrUnknownSensitivity
	}

	pool := make([]*domain.Item, len(items))
	copy(pool, items)

	if cfg.Mode == ModeRandom {
		rand.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
	}

	return &Session{
		id:        uuid.New(),
		mode:      cfg.Mode,
		state:     StateStarting,
		limit:     cfg.Limit,
		remaining: pool,
		outcomes:  make(map[uuid.UUID][]bool),
		scheduler: scheduler,
		adapter:   adapter,
		matcher:   matcher,
		fuzzy:     cfg.FuzzyMatching,
		startedAt: time.Now().UTC(),
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Mode returns the session's selection policy.
func (s *Session) Mode() Mode { return s.mode }

// Asked returns the record of presented questions, oldest first.
func (s *Session) Asked() []AskedQuestion { return s.asked }

// Current returns the item awaiting an answer, or nil.
func (s *Session) Current() *domain.Item { return s.current }

// Next selects and presents the next item per the session's policy.
//
// When the question cap is reached or the pool is exhausted the session
// transitions to Completed and Next returns (nil, nil); exhaustion is
// normal control flow, not an error. Calling Next again after completion
// or cancellation returns ErrSessionFinished.
func (s *Session) Next() (*domain.Item, error) {
	if s.state.finished() {
		return nil, ErrSessionFinished
	}
	if s.current != nil {
		return nil, ErrQuestionPending
	}

	if s.exhausted() {
		s.complete()
		return nil, nil
	}

	idx := s.selectNext()
	item := s.remaining[idx]
	s.remaining = append(s.remaining[:idx], s.remaining[idx+1:]...)

	s.current = item
	s.presentedAt = s.now()
	s.state = StateInProgress

	return item, nil
}

// exhausted reports whether the session has nothing left to present.
func (s *Session) exhausted() bool {
	if len(s.remaining) == 0 {
		return true
	}
	return s.limit > 0 && len(s.asked) >= s.limit
}

// selectNext picks the index of the next item in remaining per the mode.
// Ties resolve to the earliest index, keeping selection stable.
func (s *Session) selectNext() int {
	switch s.mode {
	case ModeDifficultyFirst:
		best := 0
		for i, item := range s.remaining {
			if item.Difficulty > s.remaining[best].Difficulty {
				best = i
			}
		}
		return best
	case ModeSpaced:
		return s.selectMostOverdue()
	default:
		// Sequential keeps input order; random pools were shuffled once
		// at session start.
		return 0
	}
}

// selectMostOverdue prefers the earliest-due item among those currently
// due; when nothing is due it falls back to the full pool, still earliest
// first.
func (s *Session) selectMostOverdue() int {
	now := s.now()

	best := -1
	for i, item := range s.remaining {
		if !item.IsDue(now) {
			continue
		}
		if best == -1 || item.NextReviewAt.Before(s.remaining[best].NextReviewAt) {
			best = i
		}
	}
	if best >= 0 {
		return best
	}

	best = 0
	for i, item := range s.remaining {
		if item.NextReviewAt.Before(s.remaining[best].NextReviewAt) {
			best = i
		}
	}
	return best
}

// Submit validates the response for the currently presented item, runs the
// full review pipeline, and commits the item's new state.
//
// The pipeline is one atomic transition: if any validation fails, neither
// the item nor the session records change.
func (s *Session) Submit(response string, opts SubmitOptions) (Feedback, error) {
	if s.state.finished() {
		return Feedback{}, ErrSessionFinished
	}
	if s.current == nil {
		return Feedback{}, ErrNoCurrentQuestion
	}

	item := s.current
	if len(item.AcceptedAnswers) == 0 {
		// Fail fast rather than silently marking everything incorrect.
		return Feedback{}, domain.ErrInvalidAnswerSet
	}

	now := s.now()
	responseTime := now.Sub(s.presentedAt).Seconds()

	correct, matchResult, err := s.evaluate(response, item.AcceptedAnswers)
	if err != nil {
		return Feedback{}, err
	}

	quality := QualityForOutcome(correct, responseTime)
	if opts.Quality != nil {
		quality = *opts.Quality
	}

	updated, err := s.scheduler.RecordOutcome(item, srs.Outcome{
		Correct:      correct,
		Quality:      quality,
		ResponseTime: responseTime,
		Confidence:   opts.Confidence,
	}, now)
	if err != nil {
		return Feedback{}, err
	}

	itemOutcomes := append(s.outcomes[item.ID], correct)

	// The adapter may override the baseline difficulty step. The interval
	// was already computed from the baseline value and is kept as-is.
	// ShouldAdjust is false while the item has too little review history.
	if s.adapter != nil {
		metrics := srs.ComputeMetrics(updated, itemOutcomes)
		if s.adapter.ShouldAdjust(updated, metrics) {
			proposal := s.adapter.Propose(updated, itemOutcomes, opts.Confidence)
			updated.Difficulty = proposal.Difficulty
			adjustedAt := now
			updated.LastDifficultyUpdateAt = &adjustedAt
		}
	}

	before := item.Difficulty

	// Commit point: a single assignment makes the whole transition
	// visible at once.
	*item = *updated
	s.outcomes[item.ID] = itemOutcomes

	record := AskedQuestion{
		ItemID:          item.ID,
		Prompt:          item.Prompt,
		PresentedAt:     s.presentedAt,
		AnsweredAt:      now,
		Response:        response,
		Correct:         correct,
		Quality:         quality,
		Confidence:      opts.Confidence,
		Match:           matchResult,
		DifficultyDelta: item.Difficulty - before,
	}
	s.asked = append(s.asked, record)

	if correct {
		s.correctCount++
	} else {
		s.incorrect++
	}
	s.totalResponse += responseTime
	s.current = nil

	return Feedback{
		Correct:         correct,
		Quality:         quality,
		Match:           matchResult,
		DifficultyDelta: record.DifficultyDelta,
		NextReviewAt:    item.NextReviewAt,
	}, nil
}

// evaluate decides correctness: the cheap exact/case-insensitive pass runs
// first and always; the fuzzy matcher only runs when that pass misses and
// fuzzy matching is enabled. A fuzzy result is retained for feedback even
// when it is not good enough to flip correctness.
func (s *Session) evaluate(response string, candidates []string) (bool, *match.Result, error) {
	trimmed := strings.TrimSpace(response)
	for _, candidate := range candidates {
		if trimmed == strings.TrimSpace(candidate) ||
			strings.EqualFold(trimmed, strings.TrimSpace(candidate)) {
			return true, nil, nil
		}
	}

	if !s.fuzzy || s.matcher == nil {
		return false, nil, nil
	}

	result, err := s.matcher.Match(response, candidates)
	if err != nil {
		return false, nil, err
	}

	return s.matcher.ShouldAutoAccept(result), &result, nil
}

// Skip records the current question as skipped without touching the item's
// scheduling state.
func (s *Session) Skip() error {
	if s.state.finished() {
		return ErrSessionFinished
	}
	if s.current == nil {
		return ErrNoCurrentQuestion
	}

	now := s.now()
	s.asked = append(s.asked, AskedQuestion{
		ItemID:      s.current.ID,
		Prompt:      s.current.Prompt,
		PresentedAt: s.presentedAt,
		AnsweredAt:  now,
		Skipped:     true,
	})
	s.skipped++
	s.current = nil

	return nil
}

// Cancel terminates the session early. Already-committed item mutations are
// not rolled back; cancellation only stops further presentation.
func (s *Session) Cancel() error {
	if s.state.finished() {
		return ErrSessionFinished
	}

	s.state = StateCancelled
	ended := s.now()
	s.endedAt = &ended
	s.current = nil

	return nil
}

// complete marks the session finished by exhaustion or cap.
func (s *Session) complete() {
	s.state = StateCompleted
	ended := s.now()
	s.endedAt = &ended
}

// Stats returns the session's running aggregates.
func (s *Session) Stats() Stats {
	answered := s.correctCount + s.incorrect

	stats := Stats{
		Mode:      s.mode,
		State:     s.state,
		Asked:     len(s.asked),
		Correct:   s.correctCount,
		Incorrect: s.incorrect,
		Skipped:   s.skipped,
	}
	if answered > 0 {
		stats.Accuracy = float64(s.correctCount) / float64(answered)
		stats.AvgResponseTime = s.totalResponse / float64(answered)
	}

	end := s.now()
	if s.endedAt != nil {
		end = *s.endedAt
	}
	stats.Duration = end.Sub(s.startedAt)

	return stats
}
