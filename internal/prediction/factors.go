package prediction

import (
	"unicode/utf16"

	"github.com/jonathan/success-predictor/internal/types"
)

// Factor weights. Each factor contributes delta*weight*100 points to the score.
// The float64 variables keep the arithmetic in IEEE doubles at run time.
var (
	studyWeight      = 0.2
	sleepWeight      = 0.15
	exerciseWeight   = 0.1
	recreationWeight = 0.1
	motivationWeight = 0.125
	experienceWeight = 0.075
	timeframeWeight  = 0.05
)

const (
	baseScore = 50.0
	minScore  = 15.0
	maxScore  = 95.0
)

// timeframeAdjustments rewards realistic horizons. Unknown timeframes score 0.
var timeframeAdjustments = map[types.Timeframe]float64{
	types.Timeframe6Months: -20,
	types.Timeframe1Year:   10,
	types.Timeframe2Years:  15,
	types.Timeframe3Years:  10,
	types.Timeframe5Years:  0,
}

// factor is one weighted term of the score. rule returns the base delta and a short
// description of the branch that fired.
type factor struct {
	name   string
	weight float64
	rule   func(in *types.AssessmentInput) (float64, string)
}

// factors is evaluated in order; every factor applies independently.
var factors = []factor{
	{name: "studyHours", weight: studyWeight, rule: studyRule},
	{name: "sleepHours", weight: sleepWeight, rule: sleepRule},
	{name: "exerciseHours", weight: exerciseWeight, rule: exerciseRule},
	{name: "recreationHours", weight: recreationWeight, rule: recreationRule},
	{name: "motivation", weight: motivationWeight, rule: func(in *types.AssessmentInput) (float64, string) {
		return ratingDelta(in.Motivation), "(motivation-5)*4"
	}},
	{name: "consistency", weight: motivationWeight, rule: func(in *types.AssessmentInput) (float64, string) {
		return ratingDelta(in.Consistency), "(consistency-5)*4"
	}},
	{name: "previousExperience", weight: experienceWeight, rule: func(in *types.AssessmentInput) (float64, string) {
		return textDetailRule(in.PreviousExperience)
	}},
	{name: "futureLearningPlan", weight: experienceWeight, rule: func(in *types.AssessmentInput) (float64, string) {
		return textDetailRule(in.FutureLearningPlan)
	}},
	{name: "timeframe", weight: timeframeWeight, rule: timeframeRule},
}

func studyRule(in *types.AssessmentInput) (float64, string) {
	switch {
	case in.StudyHours >= 4:
		return 25, ">=4h"
	case in.StudyHours >= 2:
		return 15, ">=2h"
	case in.StudyHours >= 1:
		return 5, ">=1h"
	default:
		return -10, "<1h"
	}
}

func sleepRule(in *types.AssessmentInput) (float64, string) {
	switch {
	case in.SleepHours >= 7 && in.SleepHours <= 9:
		return 20, "7-9h"
	case in.SleepHours >= 6 && in.SleepHours <= 10:
		return 10, "6-10h"
	default:
		return -15, "outside 6-10h"
	}
}

func exerciseRule(in *types.AssessmentInput) (float64, string) {
	if in.ExerciseHours >= 1 {
		return 15, ">=1h"
	}
	return -5, "<1h"
}

func recreationRule(in *types.AssessmentInput) (float64, string) {
	switch {
	case in.RecreationHours >= 1 && in.RecreationHours <= 4:
		return 10, "1-4h"
	case in.RecreationHours > 6:
		return -15, ">6h"
	default:
		return 0, "neutral"
	}
}

func ratingDelta(rating int) float64 {
	return float64(rating-5) * 4
}

func textDetailRule(text string) (float64, string) {
	n := textLength(text)
	switch {
	case n > 100:
		return 20, ">100 chars"
	case n > 50:
		return 10, ">50 chars"
	default:
		return 0, "<=50 chars"
	}
}

func timeframeRule(in *types.AssessmentInput) (float64, string) {
	adj, ok := timeframeAdjustments[in.Timeframe]
	if !ok {
		return 0, "unknown timeframe"
	}
	return adj, string(in.Timeframe)
}

// textLength counts UTF-16 code units, so characters outside the BMP count twice.
// Browsers measure free-text answers the same way.
func textLength(s string) int {
	return len(utf16.Encode([]rune(s)))
}
