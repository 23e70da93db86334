// Package prediction turns a questionnaire into a success probability and the
// feedback derived from it. Everything here is a pure function of its input: no I/O,
// no randomness, no shared mutable state, so it is safe for concurrent use.
package prediction

import (
	"math"

	"github.com/jonathan/success-predictor/internal/types"
)

// Category thresholds on the rounded success probability.
const (
	highThreshold   = 75
	mediumThreshold = 50
)

// Contribution is the share of the score produced by one factor.
type Contribution struct {
	Factor string  `json:"factor"`
	Rule   string  `json:"rule"`
	Weight float64 `json:"weight"`
	Points float64 `json:"points"`
}

// Breakdown explains how a score was reached.
type Breakdown struct {
	Base          float64        `json:"base"`
	Contributions []Contribution `json:"contributions"`
	RawScore      float64        `json:"rawScore"`
	Score         int            `json:"score"`
	Category      types.Category `json:"category"`
}

// Predict computes the full prediction for one questionnaire. The caller is expected
// to have checked required answers; Predict never fails.
func Predict(in types.AssessmentInput) types.PredictionResult {
	b := Explain(in)

	result := types.PredictionResult{
		SuccessProbability:  b.Score,
		Category:            b.Category,
		Strengths:           Strengths(&in),
		Weaknesses:          Weaknesses(&in),
		Recommendations:     Recommendations(b.Category, &in),
		Resources:           Resources(in.DreamJob),
		Schedule:            BuildSchedule(&in),
		MotivationalMessage: MotivationalMessage(b.Category, in.Name),
	}
	if b.Category == types.CategoryLow {
		result.RealityCheck = RealityCheck(&in)
	}
	return result
}

// Explain runs the weighted scoring and reports every factor's contribution.
func Explain(in types.AssessmentInput) Breakdown {
	b := Breakdown{
		Base:          baseScore,
		Contributions: make([]Contribution, 0, len(factors)),
	}

	score := baseScore
	for _, f := range factors {
		delta, rule := f.rule(&in)
		points := delta * f.weight * 100
		score += points
		b.Contributions = append(b.Contributions, Contribution{
			Factor: f.name,
			Rule:   rule,
			Weight: f.weight,
			Points: points,
		})
	}

	b.RawScore = score
	b.Score = int(math.Round(clamp(score, minScore, maxScore)))
	b.Category = Classify(b.Score)
	return b
}

// Classify maps a success probability to its category.
func Classify(score int) types.Category {
	switch {
	case score >= highThreshold:
		return types.CategoryHigh
	case score >= mediumThreshold:
		return types.CategoryMedium
	default:
		return types.CategoryLow
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
