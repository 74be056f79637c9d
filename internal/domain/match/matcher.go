// Package match scores free-text responses against a set of acceptable
// answers using Levenshtein edit distance and length/affix heuristics,
// producing a classification and a confidence in [0, 1].
package match

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Matching errors.
var (
	// ErrEmptyCandidateSet is returned when Match is invoked with no
	// candidate answers. An empty *input* is not an error; it yields NoMatch.
	ErrEmptyCandidateSet = errors.New("candidate set cannot be empty")

	// ErrUnknownSensitivity is returned for an unrecognized preset name.
	ErrUnknownSensitivity = errors.New("unknown sensitivity preset")
)

// Classification is the discrete bucket a fuzzy match falls into based on
// distance thresholds.
type Classification string

// Possible classification values, from best to worst.
const (
	ClassificationExact           Classification = "exact"
	ClassificationCaseInsensitive Classification = "case_insensitive"
	ClassificationMinorTypo       Classification = "minor_typo"
	ClassificationModerateTypo    Classification = "moderate_typo"
	ClassificationMajorTypo       Classification = "major_typo"
	ClassificationNoMatch         Classification = "no_match"
)

// InfiniteDistance is the sentinel distance reported when no candidate was
// actually compared (empty input).
const InfiniteDistance = math.MaxInt

// Affix boost ceilings applied on top of the distance-derived confidence.
const (
	prefixBoostMax = 0.05
	suffixBoostMax = 0.05
)

// Result is the outcome of scoring one response against a candidate set.
// It is a pure value; identical inputs always produce an identical Result.
type Result struct {
	Classification Classification `json:"classification"`

	// MatchedAnswer is the accepted answer that produced the result.
	// Empty when Classification is NoMatch.
	MatchedAnswer string `json:"matched_answer,omitempty"`

	// Confidence is in [0, 1]: 1.0 for exact, 0.98 for case-only
	// differences, distance-derived otherwise.
	Confidence float64 `json:"confidence"`

	// Distance is the Levenshtein distance to MatchedAnswer, or
	// InfiniteDistance when no candidate was compared.
	Distance int `json:"distance"`

	// Suggestion is a human-readable "did you mean" hint, populated when
	// the confidence clears the preset's suggest threshold.
	Suggestion string `json:"suggestion,omitempty"`
}

// Matcher scores responses under a fixed threshold bundle.
type Matcher struct {
	thresholds Thresholds
}

// New creates a matcher for the named sensitivity preset.
func New(sensitivity Sensitivity) (*Matcher, error) {
	thresholds, err := ThresholdsFor(sensitivity)
	if err != nil {
		return nil, err
	}
	return &Matcher{thresholds: thresholds}, nil
}

// NewWithThresholds creates a matcher with explicit thresholds.
func NewWithThresholds(thresholds Thresholds) *Matcher {
	return &Matcher{thresholds: thresholds}
}

// Thresholds returns the threshold bundle the matcher operates under.
func (m *Matcher) Thresholds() Thresholds {
	return m.thresholds
}

// Match scores input against the candidates, in order, and returns the
// single best result. Ties on confidence keep the first candidate
// encountered; that stable tie-break is part of the contract.
//
// Returns ErrEmptyCandidateSet if candidates is empty. An empty or
// whitespace-only input returns a NoMatch result, not an error.
func (m *Matcher) Match(input string, candidates []string) (Result, error) {
	if len(candidates) == 0 {
		return Result{}, ErrEmptyCandidateSet
	}

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Result{
			Classification: ClassificationNoMatch,
			Distance:       InfiniteDistance,
		}, nil
	}

	best := Result{
		Classification: ClassificationNoMatch,
		Confidence:     -1, // any real score beats the zero value
		Distance:       InfiniteDistance,
	}

	for _, candidate := range candidates {
		result := m.scoreCandidate(trimmed, strings.TrimSpace(candidate))
		// Strictly-higher only: equal confidence keeps the earlier candidate.
		if result.Confidence > best.Confidence {
			best = result
		}
		if best.Classification == ClassificationExact {
			break
		}
	}

	if best.Classification == ClassificationNoMatch {
		best.MatchedAnswer = ""
		if best.Confidence < 0 {
			best.Confidence = 0
		}
		return best, nil
	}

	if best.Confidence >= m.thresholds.Suggest {
		best.Suggestion = fmt.Sprintf("Did you mean %q?", best.MatchedAnswer)
	}

	return best, nil
}

// scoreCandidate produces the Result for a single candidate.
func (m *Matcher) scoreCandidate(input, candidate string) Result {
	if input == candidate {
		return Result{
			Classification: ClassificationExact,
			MatchedAnswer:  candidate,
			Confidence:     1.0,
			Distance:       0,
		}
	}

	lowerInput := strings.ToLower(input)
	lowerCandidate := strings.ToLower(candidate)
	if lowerInput == lowerCandidate {
		return Result{
			Classification: ClassificationCaseInsensitive,
			MatchedAnswer:  candidate,
			Confidence:     0.98,
			Distance:       0,
		}
	}

	distance := Levenshtein(lowerInput, lowerCandidate)

	return Result{
		Classification: m.classify(distance),
		MatchedAnswer:  candidate,
		Confidence:     m.confidence(lowerInput, lowerCandidate, distance),
		Distance:       distance,
	}
}

// classify buckets a distance against the preset's ascending thresholds.
func (m *Matcher) classify(distance int) Classification {
	switch {
	case distance <= m.thresholds.MinorDistance:
		return ClassificationMinorTypo
	case distance <= m.thresholds.ModerateDistance:
		return ClassificationModerateTypo
	case distance <= m.thresholds.MajorDistance:
		return ClassificationMajorTypo
	default:
		return ClassificationNoMatch
	}
}

// confidence derives a score in [0, 1] for a non-exact candidate:
// 1 - distance/maxLen, scaled down by the length ratio when the strings
// differ too much in length, then boosted by shared prefix and suffix.
func (m *Matcher) confidence(input, candidate string, distance int) float64 {
	ra := []rune(input)
	rb := []rune(candidate)

	maxLen := len(ra)
	minLen := len(rb)
	if minLen > maxLen {
		maxLen, minLen = minLen, maxLen
	}
	if maxLen == 0 {
		return 0
	}

	confidence := clamp01(1.0 - float64(distance)/float64(maxLen))

	lengthRatio := float64(minLen) / float64(maxLen)
	if lengthRatio < m.thresholds.MinLengthRatio {
		confidence *= lengthRatio
	}

	if minLen > 0 {
		prefixRatio := math.Min(1, float64(commonPrefixLen(ra, rb))/float64(minLen))
		suffixRatio := math.Min(1, float64(commonSuffixLen(ra, rb))/float64(minLen))
		confidence += prefixBoostMax*prefixRatio + suffixBoostMax*suffixRatio
	}

	return clamp01(confidence)
}

// ShouldAutoAccept reports whether the result is trustworthy enough to count
// as a correct answer without confirmation: the confidence must clear the
// preset's auto-accept threshold and the classification must be Exact,
// CaseInsensitive, or MinorTypo. Moderate and worse never auto-accept,
// regardless of confidence.
func (m *Matcher) ShouldAutoAccept(result Result) bool {
	if result.Confidence < m.thresholds.AutoAccept {
		return false
	}
	switch result.Classification {
	case ClassificationExact, ClassificationCaseInsensitive, ClassificationMinorTypo:
		return true
	default:
		return false
	}
}

// ShouldSuggest reports whether a rejected result is still close enough to
// surface a "did you mean" hint to the learner.
func (m *Matcher) ShouldSuggest(result Result) bool {
	return result.Confidence >= m.thresholds.Suggest &&
		result.Classification != ClassificationNoMatch &&
		!m.ShouldAutoAccept(result)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
