package srs

import (
	"github.com/memoro-app/memoro-api/internal/domain"
)

// metricsWindow is the number of most-recent outcomes the consistency and
// trend calculations look at.
const metricsWindow = 10

// PerformanceMetrics summarizes an item's recent performance for the
// difficulty adapter.
type PerformanceMetrics struct {
	// Accuracy is the lifetime correct-answer rate.
	Accuracy float64

	// AvgResponseTime is the mean recorded response time in seconds, or a
	// heuristic estimate when no timing history exists.
	AvgResponseTime float64

	// Consistency is 1 minus the variance of the recent correct/incorrect
	// signal; higher means steadier performance.
	Consistency float64

	// RecentTrend is the accuracy of the latest half of the recent window
	// minus the accuracy of the earlier half. Positive means improving.
	RecentTrend float64

	// ConfidenceTrend is a coarse signal: +1 for strong sustained
	// performance, -1 for struggling, 0 otherwise.
	ConfidenceTrend float64
}

// ComputeMetrics derives performance metrics from an item's state and the
// recent review outcomes supplied by the caller (newest last).
func ComputeMetrics(item *domain.Item, recentOutcomes []bool) PerformanceMetrics {
	accuracy := item.Accuracy()

	window := recentOutcomes
	if len(window) > metricsWindow {
		window = window[len(window)-metricsWindow:]
	}

	return PerformanceMetrics{
		Accuracy:        accuracy,
		AvgResponseTime: estimateResponseTime(item, accuracy),
		Consistency:     consistencyScore(window, accuracy),
		RecentTrend:     recentTrend(window),
		ConfidenceTrend: confidenceTrend(accuracy, item.ReviewCount),
	}
}

// estimateResponseTime averages the recorded history, falling back to a
// heuristic proportional to difficulty and inverse to accuracy when the
// item has no timing data yet.
func estimateResponseTime(item *domain.Item, accuracy float64) float64 {
	if len(item.ResponseTimes) > 0 {
		sum := 0.0
		for _, t := range item.ResponseTimes {
			sum += t
		}
		return sum / float64(len(item.ResponseTimes))
	}

	floor := accuracy
	if floor < 0.1 {
		floor = 0.1
	}
	return 3.0 * (1 + item.Difficulty) / floor
}

// consistencyScore is 1 minus the variance of the binary outcome signal.
// With fewer than 3 outcomes the same form is computed from the lifetime
// accuracy instead.
func consistencyScore(window []bool, accuracy float64) float64 {
	if len(window) < 3 {
		return 1 - accuracy*(1-accuracy)
	}

	p := fractionCorrect(window)
	return 1 - p*(1-p)
}

// recentTrend compares the two halves of the recent window. It needs at
// least two outcomes per half to say anything.
func recentTrend(window []bool) float64 {
	if len(window) < 4 {
		return 0
	}

	mid := len(window) / 2
	return fractionCorrect(window[mid:]) - fractionCorrect(window[:mid])
}

// confidenceTrend is a heuristic: sustained high accuracy reads as growing
// confidence, low accuracy as eroding confidence.
func confidenceTrend(accuracy float64, reviewCount int) float64 {
	switch {
	case accuracy > 0.8 && reviewCount >= 5:
		return 1
	case accuracy < 0.5:
		return -1
	default:
		return 0
	}
}

func fractionCorrect(outcomes []bool) float64 {
	if len(outcomes) == 0 {
		return 0
	}
	correct := 0
	for _, ok := range outcomes {
		if ok {
			correct++
		}
	}
	return float64(correct) / float64(len(outcomes))
}
