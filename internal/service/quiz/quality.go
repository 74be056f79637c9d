package quiz

// QualityForOutcome derives a 0-5 quality score from correctness and
// response speed, used when the caller supplies no explicit quality.
// Incorrect answers always score 0; correct answers score by speed.
func QualityForOutcome(correct bool, responseSeconds float64) int {
	if !correct {
		return 0
	}

	switch {
	case responseSeconds <= 3:
		return 5
	case responseSeconds <= 5:
		return 4
	case responseSeconds <= 10:
		return 3
	default:
		return 2
	}
}
