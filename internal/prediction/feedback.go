package prediction

import "github.com/jonathan/success-predictor/internal/types"

const (
	defaultStrength = "Willingness to learn and improve"
	defaultWeakness = "Areas for minor improvements"
)

// check pairs a predicate with the feedback it produces.
type check struct {
	when func(in *types.AssessmentInput) bool
	text string
}

// strengthChecks is ordered; motivation and consistency each yield at most one entry.
var strengthChecks = []check{
	{func(in *types.AssessmentInput) bool { return in.Motivation >= 8 }, "Exceptionally high motivation level"},
	{func(in *types.AssessmentInput) bool { return in.Motivation >= 6 && in.Motivation < 8 }, "Good motivation and drive"},
	{func(in *types.AssessmentInput) bool { return in.Consistency >= 8 }, "Excellent learning consistency"},
	{func(in *types.AssessmentInput) bool { return in.Consistency >= 6 && in.Consistency < 8 }, "Decent learning routine"},
	{func(in *types.AssessmentInput) bool { return in.StudyHours >= 3 }, "Dedicated study time allocation"},
	{func(in *types.AssessmentInput) bool { return in.SleepHours >= 7 && in.SleepHours <= 9 }, "Healthy sleep patterns"},
	{func(in *types.AssessmentInput) bool { return in.ExerciseHours >= 1 }, "Regular physical activity"},
	{func(in *types.AssessmentInput) bool { return textLength(in.PreviousExperience) > 50 }, "Relevant background experience"},
	{func(in *types.AssessmentInput) bool { return textLength(in.FutureLearningPlan) > 50 }, "Well-thought-out learning plan"},
}

var weaknessChecks = []check{
	{func(in *types.AssessmentInput) bool { return in.StudyHours < 2 }, "Limited daily study time"},
	{func(in *types.AssessmentInput) bool { return in.SleepHours < 7 }, "Insufficient sleep affecting performance"},
	{func(in *types.AssessmentInput) bool { return in.SleepHours > 9 }, "Excessive sleep reducing productive hours"},
	{func(in *types.AssessmentInput) bool { return in.RecreationHours > 6 }, "High recreational time reducing focus"},
	{func(in *types.AssessmentInput) bool { return in.ExerciseHours < 0.5 }, "Lack of physical activity affecting energy"},
	{func(in *types.AssessmentInput) bool { return in.Motivation < 6 }, "Low motivation levels"},
	{func(in *types.AssessmentInput) bool { return in.Consistency < 6 }, "Inconsistent learning habits"},
	{func(in *types.AssessmentInput) bool { return textLength(in.PreviousExperience) < 30 }, "Limited relevant experience"},
	{func(in *types.AssessmentInput) bool { return textLength(in.FutureLearningPlan) < 30 }, "Vague future learning plans"},
}

// Strengths lists what the person already does well. Never empty.
func Strengths(in *types.AssessmentInput) []string {
	return collect(strengthChecks, in, defaultStrength)
}

// Weaknesses lists habits holding the person back. Never empty.
func Weaknesses(in *types.AssessmentInput) []string {
	return collect(weaknessChecks, in, defaultWeakness)
}

func collect(checks []check, in *types.AssessmentInput, fallback string) []string {
	var out []string
	for _, c := range checks {
		if c.when(in) {
			out = append(out, c.text)
		}
	}
	if len(out) == 0 {
		return []string{fallback}
	}
	return out
}
