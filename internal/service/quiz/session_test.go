package quiz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memoro-app/memoro-api/internal/domain"
	"github.com/memoro-app/memoro-api/internal/domain/match"
	"github.com/memoro-app/memoro-api/internal/domain/srs"
)

func newSessionItem(t *testing.T, prompt, answer string) *domain.Item {
	t.Helper()
	item, err := domain.NewItem(prompt, answer, nil, nil)
	require.NoError(t, err)
	return item
}

// newTestSession builds a session with a controllable clock. The returned
// setter advances the clock; Next and Submit observe the value it holds.
func newTestSession(t *testing.T, items []*domain.Item, cfg Config) (*Session, func(time.Time)) {
	t.Helper()

	matcher, err := match.New(match.SensitivityMedium)
	require.NoError(t, err)

	session, err := NewSession(items, cfg, srs.NewDefaultService(), srs.NewAdapter(), matcher)
	require.NoError(t, err)

	current := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	session.now = func() time.Time { return current }
	return session, func(at time.Time) { current = at }
}

func TestNewSessionValidation(t *testing.T) {
	t.Parallel()

	item, err := domain.NewItem("capital of France", "Paris", nil, nil)
	require.NoError(t, err)

	scheduler := srs.NewDefaultService()

	t.Run("rejects unknown mode", func(t *testing.T) {
		t.Parallel()
		_, err := NewSession([]*domain.Item{item}, Config{Mode: "speedrun"}, scheduler, nil, nil)
		assert.ErrorIs(t, err, ErrInvalidMode)
	})

	t.Run("rejects negative limit", func(t *testing.T) {
		t.Parallel()
		_, err := NewSession([]*domain.Item{item}, Config{Mode: ModeSequential, Limit: -1}, scheduler, nil, nil)
		assert.ErrorIs(t, err, ErrInvalidLimit)
	})

	t.Run("rejects empty pool", func(t *testing.T) {
		t.Parallel()
		_, err := NewSession(nil, Config{Mode: ModeSequential}, scheduler, nil, nil)
		assert.ErrorIs(t, err, ErrNoItems)
	})

	t.Run("fuzzy matching requires a matcher", func(t *testing.T) {
		t.Parallel()
		_, err := NewSession([]*domain.Item{item}, Config{Mode: ModeSequential, FuzzyMatching: true}, scheduler, nil, nil)
		assert.Error(t, err)
	})

	t.Run("starts in the starting state", func(t *testing.T) {
		t.Parallel()
		session, err := NewSession([]*domain.Item{item}, Config{Mode: ModeSequential}, scheduler, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, StateStarting, session.State())
		assert.Equal(t, ModeSequential, session.Mode())
	})
}

func TestSessionSequentialOrder(t *testing.T) {
	t.Parallel()

	items := []*domain.Item{
		newSessionItem(t, "one", "1"),
		newSessionItem(t, "two", "2"),
		newSessionItem(t, "three", "3"),
	}

	session, _ := newTestSession(t, items, Config{Mode: ModeSequential})

	for _, want := range []string{"one", "two", "three"} {
		item, err := session.Next()
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, want, item.Prompt)
		require.NoError(t, session.Skip())
	}
}

func TestSessionDifficultyFirstOrder(t *testing.T) {
	t.Parallel()

	easy := newSessionItem(t, "easy", "a")
	easy.Difficulty = 0.2
	hard := newSessionItem(t, "hard", "b")
	hard.Difficulty = 0.9
	mid := newSessionItem(t, "mid", "c")
	mid.Difficulty = 0.5

	session, _ := newTestSession(t, []*domain.Item{easy, hard, mid}, Config{Mode: ModeDifficultyFirst})

	for _, want := range []string{"hard", "mid", "easy"} {
		item, err := session.Next()
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, want, item.Prompt)
		require.NoError(t, session.Skip())
	}
}

func TestSessionSpacedPrefersMostOverdue(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	recent := newSessionItem(t, "recent", "a")
	recent.NextReviewAt = now.Add(-1 * time.Hour)
	overdue := newSessionItem(t, "overdue", "b")
	overdue.NextReviewAt = now.Add(-72 * time.Hour)
	future := newSessionItem(t, "future", "c")
	future.NextReviewAt = now.Add(48 * time.Hour)

	session, _ := newTestSession(t, []*domain.Item{recent, overdue, future}, Config{Mode: ModeSpaced})

	// Due items first, most overdue leading; the not-yet-due item only
	// appears once nothing else is due.
	for _, want := range []string{"overdue", "recent", "future"} {
		item, err := session.Next()
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, want, item.Prompt)
		require.NoError(t, session.Skip())
	}
}

func TestSessionRandomCoversPool(t *testing.T) {
	t.Parallel()

	items := []*domain.Item{
		newSessionItem(t, "one", "1"),
		newSessionItem(t, "two", "2"),
		newSessionItem(t, "three", "3"),
	}

	session, _ := newTestSession(t, items, Config{Mode: ModeRandom})

	seen := make(map[string]bool)
	for range items {
		item, err := session.Next()
		require.NoError(t, err)
		require.NotNil(t, item)
		seen[item.Prompt] = true
		require.NoError(t, session.Skip())
	}
	assert.Len(t, seen, 3, "every item should be presented exactly once")
}

func TestSessionLimitCompletesEarly(t *testing.T) {
	t.Parallel()

	items := []*domain.Item{
		newSessionItem(t, "one", "1"),
		newSessionItem(t, "two", "2"),
		newSessionItem(t, "three", "3"),
	}

	session, _ := newTestSession(t, items, Config{Mode: ModeSequential, Limit: 2})

	for i := 0; i < 2; i++ {
		item, err := session.Next()
		require.NoError(t, err)
		require.NotNil(t, item)
		require.NoError(t, session.Skip())
	}

	item, err := session.Next()
	require.NoError(t, err)
	assert.Nil(t, item, "reaching the cap ends the session without error")
	assert.Equal(t, StateCompleted, session.State())

	_, err = session.Next()
	assert.ErrorIs(t, err, ErrSessionFinished)
}

func TestSessionExhaustionCompletes(t *testing.T) {
	t.Parallel()

	session, _ := newTestSession(t, []*domain.Item{newSessionItem(t, "one", "1")}, Config{Mode: ModeSequential})

	item, err := session.Next()
	require.NoError(t, err)
	require.NotNil(t, item)
	require.NoError(t, session.Skip())

	item, err = session.Next()
	require.NoError(t, err)
	assert.Nil(t, item)
	assert.Equal(t, StateCompleted, session.State())
}

func TestSessionNextWhileQuestionPending(t *testing.T) {
	t.Parallel()

	session, _ := newTestSession(t, []*domain.Item{newSessionItem(t, "one", "1")}, Config{Mode: ModeSequential})

	_, err := session.Next()
	require.NoError(t, err)

	_, err = session.Next()
	assert.ErrorIs(t, err, ErrQuestionPending)
}

func TestSessionSubmitWithoutQuestion(t *testing.T) {
	t.Parallel()

	session, _ := newTestSession(t, []*domain.Item{newSessionItem(t, "one", "1")}, Config{Mode: ModeSequential})

	_, err := session.Submit("1", SubmitOptions{})
	assert.ErrorIs(t, err, ErrNoCurrentQuestion)
	assert.ErrorIs(t, session.Skip(), ErrNoCurrentQuestion)
}

func TestSessionSubmitCorrectAnswer(t *testing.T) {
	t.Parallel()

	item := newSessionItem(t, "capital of France", "Paris")
	session, advance := newTestSession(t, []*domain.Item{item}, Config{Mode: ModeSequential})

	presented, err := session.Next()
	require.NoError(t, err)
	presentedAt := session.presentedAt

	// Answer two seconds later; fast enough for top quality.
	advance(presentedAt.Add(2 * time.Second))

	feedback, err := session.Submit("paris", SubmitOptions{})
	require.NoError(t, err)

	assert.True(t, feedback.Correct, "case differences alone never fail an answer")
	assert.Equal(t, 5, feedback.Quality)
	assert.Nil(t, feedback.Match, "exact-path answers skip the fuzzy matcher")
	assert.Equal(t, 1, presented.ReviewCount)
	assert.Equal(t, 1, presented.CorrectCount)
	assert.InDelta(t, 0.45, presented.Difficulty, 1e-9)
	assert.Equal(t, presentedAt.Add(2*time.Second).AddDate(0, 0, 1), presented.NextReviewAt)
}

func TestSessionSubmitQualityFromResponseTime(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		elapsed     time.Duration
		answer      string
		wantQuality int
		wantCorrect bool
	}{
		{name: "fast correct", elapsed: 2 * time.Second, answer: "Paris", wantQuality: 5, wantCorrect: true},
		{name: "moderate correct", elapsed: 4 * time.Second, answer: "Paris", wantQuality: 4, wantCorrect: true},
		{name: "slow correct", elapsed: 8 * time.Second, answer: "Paris", wantQuality: 3, wantCorrect: true},
		{name: "very slow correct", elapsed: 15 * time.Second, answer: "Paris", wantQuality: 2, wantCorrect: true},
		{name: "fast incorrect", elapsed: 1 * time.Second, answer: "London", wantQuality: 0, wantCorrect: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			item := newSessionItem(t, "capital of France", "Paris")
			session, advance := newTestSession(t, []*domain.Item{item}, Config{Mode: ModeSequential})

			_, err := session.Next()
			require.NoError(t, err)
			advance(session.presentedAt.Add(tc.elapsed))

			feedback, err := session.Submit(tc.answer, SubmitOptions{})
			require.NoError(t, err)
			assert.Equal(t, tc.wantCorrect, feedback.Correct)
			assert.Equal(t, tc.wantQuality, feedback.Quality)
		})
	}
}

func TestSessionSubmitExplicitQualityOverride(t *testing.T) {
	t.Parallel()

	item := newSessionItem(t, "capital of France", "Paris")
	session, advance := newTestSession(t, []*domain.Item{item}, Config{Mode: ModeSequential})

	_, err := session.Next()
	require.NoError(t, err)
	advance(session.presentedAt.Add(2 * time.Second))

	quality := 3
	feedback, err := session.Submit("Paris", SubmitOptions{Quality: &quality})
	require.NoError(t, err)
	assert.Equal(t, 3, feedback.Quality, "an explicit quality beats the speed heuristic")
}

func TestSessionSubmitFuzzyAutoAccept(t *testing.T) {
	t.Parallel()

	item := newSessionItem(t, "longest river in North America", "Mississippi")
	session, advance := newTestSession(t, []*domain.Item{item}, Config{Mode: ModeSequential, FuzzyMatching: true})

	_, err := session.Next()
	require.NoError(t, err)
	advance(session.presentedAt.Add(2 * time.Second))

	// One dropped character in a long answer: minor typo with confidence
	// above the medium auto-accept bar.
	feedback, err := session.Submit("Missisippi", SubmitOptions{})
	require.NoError(t, err)
	assert.True(t, feedback.Correct)
	require.NotNil(t, feedback.Match)
	assert.Equal(t, match.ClassificationMinorTypo, feedback.Match.Classification)
}

func TestSessionSubmitFuzzyNearMissKeepsResult(t *testing.T) {
	t.Parallel()

	item := newSessionItem(t, "capital of France", "Paris")
	session, advance := newTestSession(t, []*domain.Item{item}, Config{Mode: ModeSequential, FuzzyMatching: true})

	_, err := session.Next()
	require.NoError(t, err)
	advance(session.presentedAt.Add(2 * time.Second))

	feedback, err := session.Submit("Pari", SubmitOptions{})
	require.NoError(t, err)
	assert.False(t, feedback.Correct)
	require.NotNil(t, feedback.Match, "near misses keep the match result for feedback")
	assert.NotEmpty(t, feedback.Match.Suggestion)
}

func TestSessionSubmitFuzzyDisabled(t *testing.T) {
	t.Parallel()

	item := newSessionItem(t, "capital of France", "Paris")
	session, advance := newTestSession(t, []*domain.Item{item}, Config{Mode: ModeSequential, FuzzyMatching: false})

	_, err := session.Next()
	require.NoError(t, err)
	advance(session.presentedAt.Add(2 * time.Second))

	feedback, err := session.Submit("Pairs", SubmitOptions{})
	require.NoError(t, err)
	assert.False(t, feedback.Correct)
	assert.Nil(t, feedback.Match)
}

func TestSessionSubmitEmptyAnswerSetFailsFast(t *testing.T) {
	t.Parallel()

	item := newSessionItem(t, "capital of France", "Paris")
	session, _ := newTestSession(t, []*domain.Item{item}, Config{Mode: ModeSequential})

	_, err := session.Next()
	require.NoError(t, err)

	item.AcceptedAnswers = nil

	_, err = session.Submit("Paris", SubmitOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidAnswerSet)
	assert.Equal(t, 0, item.ReviewCount, "a failed submission must not touch the item")
}

func TestSessionCancel(t *testing.T) {
	t.Parallel()

	session, _ := newTestSession(t, []*domain.Item{newSessionItem(t, "one", "1")}, Config{Mode: ModeSequential})

	require.NoError(t, session.Cancel())
	assert.Equal(t, StateCancelled, session.State())

	_, err := session.Next()
	assert.ErrorIs(t, err, ErrSessionFinished)
	assert.ErrorIs(t, session.Cancel(), ErrSessionFinished)
}

func TestSessionStats(t *testing.T) {
	t.Parallel()

	items := []*domain.Item{
		newSessionItem(t, "one", "1"),
		newSessionItem(t, "two", "2"),
		newSessionItem(t, "three", "3"),
	}

	session, advance := newTestSession(t, items, Config{Mode: ModeSequential})

	// Correct in 2s.
	_, err := session.Next()
	require.NoError(t, err)
	advance(session.presentedAt.Add(2 * time.Second))
	_, err = session.Submit("1", SubmitOptions{})
	require.NoError(t, err)

	// Incorrect in 4s.
	_, err = session.Next()
	require.NoError(t, err)
	advance(session.presentedAt.Add(4 * time.Second))
	_, err = session.Submit("wrong", SubmitOptions{})
	require.NoError(t, err)

	// Skipped.
	_, err = session.Next()
	require.NoError(t, err)
	require.NoError(t, session.Skip())

	stats := session.Stats()
	assert.Equal(t, 3, stats.Asked)
	assert.Equal(t, 1, stats.Correct)
	assert.Equal(t, 1, stats.Incorrect)
	assert.Equal(t, 1, stats.Skipped)
	assert.InDelta(t, 0.5, stats.Accuracy, 1e-9)
	assert.InDelta(t, 3.0, stats.AvgResponseTime, 1e-9, "skips do not count toward response time")
}

func TestQualityForOutcome(t *testing.T) {
	t.Parallel()

	cases := []struct {
		correct bool
		seconds float64
		want    int
	}{
		{true, 1.0, 5},
		{true, 3.0, 5},
		{true, 4.5, 4},
		{true, 5.0, 4},
		{true, 9.9, 3},
		{true, 10.0, 3},
		{true, 10.1, 2},
		{false, 1.0, 0},
		{false, 60.0, 0},
	}

	for _, tc := range cases {
		got := QualityForOutcome(tc.correct, tc.seconds)
		if got != tc.want {
			t.Errorf("QualityForOutcome(%v, %v) = %d, want %d", tc.correct, tc.seconds, got, tc.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"spaced", "difficulty_first", "random", "sequential"} {
		mode, err := ParseMode(valid)
		require.NoError(t, err)
		assert.Equal(t, Mode(valid), mode)
	}

	_, err := ParseMode("cramming")
	assert.ErrorIs(t, err, ErrInvalidMode)
}
