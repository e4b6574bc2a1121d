// Package riskscore computes risk scores and their severity bands. Every
// view that colors or counts risks uses these functions, so the banding has
// exactly one definition.
package riskscore

// Probability and impact are integers on a 1..5 scale, scores on 1..25.
const (
	ScaleMin = 1
	ScaleMax = 5
)

// Band is the severity classification of a score.
type Band string

const (
	BandLow      Band = "low"
	BandMedium   Band = "medium"
	BandHigh     Band = "high"
	BandCritical Band = "critical"
)

// Clamp forces a probability or impact value into the valid 1..5 scale.
func Clamp(v int) int {
	if v < ScaleMin {
		return ScaleMin
	}
	if v > ScaleMax {
		return ScaleMax
	}
	return v
}

// Score is probability * impact. Inputs outside the scale are clamped first,
// so the result is always in 1..25.
func Score(probability, impact int) int {
	return Clamp(probability) * Clamp(impact)
}

// Classify maps a score to its severity band: <=5 low, <=10 medium, <=15 high,
// above that critical.
func Classify(score int) Band {
	switch {
	case score <= 5:
		return BandLow
	case score <= 10:
		return BandMedium
	case score <= 15:
		return BandHigh
	default:
		return BandCritical
	}
}

// IsCritical reports whether a score falls in the critical band. Dashboard
// and report "high risk" counts are defined as this predicate.
func IsCritical(score int) bool {
	return Classify(score) == BandCritical
}
