package match

import "fmt"

// Sensitivity names a bundle of distance/ratio/confidence thresholds
// controlling how forgiving fuzzy matching is.
type Sensitivity string

// Supported sensitivity presets.
const (
	SensitivityStrict  Sensitivity = "strict"
	SensitivityMedium  Sensitivity = "medium"
	SensitivityLenient Sensitivity = "lenient"
)

// Thresholds holds the tunable parameters the matcher operates under.
type Thresholds struct {
	// Distance ceilings for the typo classifications, ascending.
	MinorDistance    int
	ModerateDistance int
	MajorDistance    int

	// MinLengthRatio is the min_len/max_len ratio below which confidence
	// is scaled down proportionally.
	MinLengthRatio float64

	// AutoAccept is the confidence at or above which a close match is
	// treated as correct without asking the learner.
	AutoAccept float64

	// Suggest is the confidence at or above which a rejected match still
	// produces a "did you mean" suggestion.
	Suggest float64
}

// ThresholdsFor returns the threshold bundle for a named preset.
// Returns an error for unknown sensitivity names.
func ThresholdsFor(s Sensitivity) (Thresholds, error) {
	switch s {
	case SensitivityStrict:
		return Thresholds{
			MinorDistance:    1,
			ModerateDistance: 2,
			MajorDistance:    3,
			MinLengthRatio:   0.8,
			AutoAccept:       0.95,
			Suggest:          0.70,
		}, nil
	case SensitivityMedium:
		return Thresholds{
			MinorDistance:    2,
			ModerateDistance: 3,
			MajorDistance:    5,
			MinLengthRatio:   0.6,
			AutoAccept:       0.90,
			Suggest:          0.60,
		}, nil
	case SensitivityLenient:
		return Thresholds{
			MinorDistance:    3,
			ModerateDistance: 5,
			MajorDistance:    7,
			MinLengthRatio:   0.4,
			AutoAccept:       0.80,
			Suggest:          0.50,
		}, nil
	default:
		return Thresholds{}, fmt.Errorf("%w: %q", ErrUnknownSensitivity, s)
	}
}
