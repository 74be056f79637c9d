package srs

// Params defines all configurable parameters for the scheduling and
// difficulty-adaptation algorithms.
type Params struct {
	// MinEase is the floor applied to the ease factor on every mutation.
	MinEase float64

	// Baseline difficulty steps applied by the scheduler before any
	// adapter override.
	CorrectDifficultyStep   float64
	IncorrectDifficultyStep float64

	// IncorrectIntervalDays is the interval assigned after a miss.
	IncorrectIntervalDays int

	// MaxAdapterDelta caps the magnitude of a single difficulty
	// adjustment proposed by the adapter.
	MaxAdapterDelta float64

	// MinAdapterReviews is the review count below which the adapter
	// proposes no change.
	MinAdapterReviews int

	// Response-time bounds (seconds) considered "comfortable"; estimated
	// times outside the band feed the adapter's response-time factor.
	FastResponseSeconds float64
	SlowResponseSeconds float64
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values keep the defaults.
type ParamsConfig struct {
	MinEase                 float64
	CorrectDifficultyStep   float64
	IncorrectDifficultyStep float64
	IncorrectIntervalDays   int
	MaxAdapterDelta         float64
	MinAdapterReviews       int
	FastResponseSeconds     float64
	SlowResponseSeconds     float64
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		MinEase:                 1.3,
		CorrectDifficultyStep:   0.05,
		IncorrectDifficultyStep: 0.1,
		IncorrectIntervalDays:   1,
		MaxAdapterDelta:         0.2,
		MinAdapterReviews:       3,
		FastResponseSeconds:     3.0,
		SlowResponseSeconds:     10.0,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEase > 0 {
		params.MinEase = config.MinEase
	}
	if config.CorrectDifficultyStep > 0 {
		params.CorrectDifficultyStep = config.CorrectDifficultyStep
	}
	if config.IncorrectDifficultyStep > 0 {
		params.IncorrectDifficultyStep = config.IncorrectDifficultyStep
	}
	if config.IncorrectIntervalDays > 0 {
		params.IncorrectIntervalDays = config.IncorrectIntervalDays
	}
	if config.MaxAdapterDelta > 0 {
		params.MaxAdapterDelta = config.MaxAdapterDelta
	}
	if config.MinAdapterReviews > 0 {
		params.MinAdapterReviews = config.MinAdapterReviews
	}
	if config.FastResponseSeconds > 0 {
		params.FastResponseSeconds = config.FastResponseSeconds
	}
	if config.SlowResponseSeconds > 0 {
		params.SlowResponseSeconds = config.SlowResponseSeconds
	}

	return params
}
