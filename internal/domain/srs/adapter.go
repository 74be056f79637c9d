package srs

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/memoro-app/memoro-api/internal/domain"
)

// Factor weights for the adapter's adjustment sum.
const (
	accuracyWeight    = 0.3
	responseWeight    = 0.4
	confidenceWeight  = 0.3
	trendWeight       = 0.1
	consistencyWeight = 0.1
)

// rationaleThreshold is the net change below which no rationale is emitted.
const rationaleThreshold = 0.01

// Proposal is a bounded difficulty adjustment with a human-readable
// rationale citing the dominant contributing factors.
type Proposal struct {
	// Difficulty is the proposed new value, in [0, 1], never more than
	// MaxAdapterDelta away from the current value.
	Difficulty float64

	// Delta is Difficulty minus the item's current difficulty.
	Delta float64

	// Rationale explains the change; empty when the net change is
	// negligible or the item has too little history.
	Rationale string
}

// Adapter proposes per-item difficulty adjustments from observed
// performance. It never applies anything itself; callers gate application
// through ShouldAdjust and commit the result.
type Adapter struct {
	params *Params
}

// NewAdapter creates an adapter with default parameters.
func NewAdapter() *Adapter {
	return &Adapter{params: NewDefaultParams()}
}

// NewAdapterWithParams creates an adapter with custom parameters.
func NewAdapterWithParams(params *Params) *Adapter {
	return &Adapter{params: params}
}

// Propose computes a bounded difficulty adjustment for the item.
// With fewer than MinAdapterReviews reviews there is not enough signal:
// the current difficulty is returned unchanged, which is not an error.
func (a *Adapter) Propose(item *domain.Item, recentOutcomes []bool, confidence *int) Proposal {
	if item == nil || item.ReviewCount < a.params.MinAdapterReviews {
		if item == nil {
			return Proposal{}
		}
		return Proposal{Difficulty: item.Difficulty}
	}

	metrics := ComputeMetrics(item, recentOutcomes)
	contributions := a.weightedContributions(metrics, confidence)

	adjustment := 0.0
	for _, c := range contributions {
		adjustment += c.value
	}

	target := clampUnit(item.Difficulty + adjustment)
	delta := target - item.Difficulty
	if delta > a.params.MaxAdapterDelta {
		delta = a.params.MaxAdapterDelta
	} else if delta < -a.params.MaxAdapterDelta {
		delta = -a.params.MaxAdapterDelta
	}

	proposal := Proposal{
		Difficulty: item.Difficulty + delta,
		Delta:      delta,
	}
	if math.Abs(delta) > rationaleThreshold {
		proposal.Rationale = buildRationale(delta, metrics, contributions)
	}

	return proposal
}

// ShouldAdjust reports whether the caller should apply a proposal: only
// when performance is clearly out of band (accuracy very high or very low,
// a strong recent trend, or response times outside the comfortable range).
// Callers must not apply a proposal when this returns false.
func (a *Adapter) ShouldAdjust(item *domain.Item, metrics PerformanceMetrics) bool {
	if item == nil || item.ReviewCount < a.params.MinAdapterReviews {
		return false
	}

	if metrics.Accuracy > 0.85 || metrics.Accuracy < 0.60 {
		return true
	}
	if math.Abs(metrics.RecentTrend) > 0.2 {
		return true
	}
	if metrics.AvgResponseTime < a.params.FastResponseSeconds ||
		metrics.AvgResponseTime > a.params.SlowResponseSeconds {
		return true
	}

	return false
}

// contribution is one weighted factor of the adjustment sum, labeled for
// the rationale.
type contribution struct {
	label string
	value float64
}

func (a *Adapter) weightedContributions(m PerformanceMetrics, confidence *int) []contribution {
	contributions := []contribution{
		{label: "accuracy", value: accuracyWeight * accuracyFactor(m.Accuracy)},
		{label: "response time", value: responseWeight * a.responseTimeFactor(m.AvgResponseTime)},
		{label: "recent trend", value: trendWeight * (m.RecentTrend * 0.1)},
		{label: "consistency", value: consistencyWeight * consistencyFactor(m.Consistency)},
	}

	if confidence != nil {
		contributions = append(contributions, contribution{
			label: "self-reported confidence",
			value: confidenceWeight * confidenceFactor(*confidence),
		})
	}

	return contributions
}

// accuracyFactor pushes difficulty up for very accurate items and down for
// struggling ones; in the comfortable band it nudges gently toward 0.75.
func accuracyFactor(accuracy float64) float64 {
	switch {
	case accuracy > 0.85:
		return (accuracy - 0.85) * 0.5
	case accuracy < 0.60:
		return (accuracy - 0.60) * 0.5 // negative below the threshold
	default:
		return (accuracy - 0.75) * 0.1
	}
}

func (a *Adapter) responseTimeFactor(seconds float64) float64 {
	switch {
	case seconds < a.params.FastResponseSeconds:
		return 0.1
	case seconds > a.params.SlowResponseSeconds:
		return -0.1
	default:
		return 0
	}
}

// confidenceFactor maps the 1-5 self-report onto an adjustment.
func confidenceFactor(confidence int) float64 {
	switch confidence {
	case 1:
		return -0.15
	case 2:
		return -0.05
	case 4:
		return 0.05
	case 5:
		return 0.15
	default:
		return 0
	}
}

func consistencyFactor(consistency float64) float64 {
	switch {
	case consistency > 0.8:
		return 0.05
	case consistency < 0.4:
		return -0.05
	default:
		return 0
	}
}

// buildRationale names the dominant contributing factors, strongest first.
func buildRationale(delta float64, metrics PerformanceMetrics, contributions []contribution) string {
	sorted := make([]contribution, len(contributions))
	copy(sorted, contributions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return math.Abs(sorted[i].value) > math.Abs(sorted[j].value)
	})

	var reasons []string
	for _, c := range sorted {
		if math.Abs(c.value) < 1e-9 || len(reasons) >= 2 {
			continue
		}
		reasons = append(reasons, describeFactor(c.label, c.value, metrics))
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "overall performance")
	}

	direction := "Increasing"
	if delta < 0 {
		direction = "Decreasing"
	}

	return fmt.Sprintf("%s difficulty by %.2f: %s.", direction, math.Abs(delta), strings.Join(reasons, "; "))
}

func describeFactor(label string, value float64, metrics PerformanceMetrics) string {
	switch label {
	case "accuracy":
		if value > 0 {
			return fmt.Sprintf("accuracy is high (%.0f%%)", metrics.Accuracy*100)
		}
		return fmt.Sprintf("accuracy is low (%.0f%%)", metrics.Accuracy*100)
	case "response time":
		if value > 0 {
			return fmt.Sprintf("responses are fast (%.1fs)", metrics.AvgResponseTime)
		}
		return fmt.Sprintf("responses are slow (%.1fs)", metrics.AvgResponseTime)
	case "recent trend":
		if value > 0 {
			return "recent results are improving"
		}
		return "recent results are declining"
	case "self-reported confidence":
		if value > 0 {
			return "the learner reports high confidence"
		}
		return "the learner reports low confidence"
	case "consistency":
		if value > 0 {
			return "performance is very consistent"
		}
		return "performance is erratic"
	default:
		return label
	}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
