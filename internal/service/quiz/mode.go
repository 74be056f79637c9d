package quiz

import "fmt"

// Mode is the selection policy a session uses to pick the next item.
type Mode string

// Supported session modes.
const (
	// ModeSpaced presents the most overdue due items first, falling back
	// to the full pool when nothing is due.
	ModeSpaced Mode = "spaced"

	// ModeDifficultyFirst presents items in descending difficulty order.
	ModeDifficultyFirst Mode = "difficulty_first"

	// ModeRandom presents items in uniform random order. The order is not
	// reproducible; there is no seed contract.
	ModeRandom Mode = "random"

	// ModeSequential presents items in stable input order.
	ModeSequential Mode = "sequential"
)

// ParseMode validates a mode name from an external caller.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSpaced, ModeDifficultyFirst, ModeRandom, ModeSequential:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// State is the lifecycle phase of a session.
//
// The machine is Starting -> InProgress -> {Completed, Cancelled}. There is
// no pause state; any pause/resume is presentation-layer bookkeeping.
type State string

// Session lifecycle states.
const (
	StateStarting   State = "starting"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
	StateCancelled  State = "cancelled"
)

// finished reports whether the state is terminal.
func (s State) finished() bool {
	return s == StateCompleted || s == StateCancelled
}
