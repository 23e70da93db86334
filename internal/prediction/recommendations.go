package prediction

import (
	"fmt"
	"strconv"

	"github.com/jonathan/success-predictor/internal/types"
)

// maintainMomentum closes the high and medium plans.
var maintainMomentum = types.Recommendation{
	Title:       "Maintain Learning Momentum",
	Description: "Continue your current learning pace and stay consistent",
	Priority:    types.PriorityMedium,
	Timeframe:   "Ongoing",
}

// Recommendations returns the three-step plan for a category. Medium and low plans
// quote the person's own study hours and timeframe back to them.
func Recommendations(category types.Category, in *types.AssessmentInput) []types.Recommendation {
	switch category {
	case types.CategoryHigh:
		return []types.Recommendation{
			{
				Title:       "Network and Build Portfolio",
				Description: "Start networking in your industry and create impressive portfolio projects",
				Priority:    types.PriorityHigh,
				Timeframe:   "Next 2 months",
			},
			{
				Title:       "Apply Strategically",
				Description: "Begin applying to positions that match your skills and goals",
				Priority:    types.PriorityHigh,
				Timeframe:   "Next month",
			},
			maintainMomentum,
		}
	case types.CategoryMedium:
		return []types.Recommendation{
			{
				Title:       "Increase Study Time",
				Description: fmt.Sprintf("Increase daily study time from %s to at least 3 hours", formatHours(in.StudyHours)),
				Priority:    types.PriorityHigh,
				Timeframe:   "This week",
			},
			{
				Title:       "Improve Consistency",
				Description: "Establish and stick to a daily learning routine",
				Priority:    types.PriorityHigh,
				Timeframe:   "Next 2 weeks",
			},
			maintainMomentum,
		}
	default:
		return []types.Recommendation{
			{
				Title:       "Complete Learning Schedule Overhaul",
				Description: "Restructure your entire daily schedule to prioritize learning",
				Priority:    types.PriorityHigh,
				Timeframe:   "This week",
			},
			{
				Title:       "Set More Realistic Timeline",
				Description: fmt.Sprintf("Consider extending your %s goal to allow for proper skill development", in.Timeframe),
				Priority:    types.PriorityHigh,
				Timeframe:   "Immediately",
			},
			{
				Title:       "Find Accountability Partner",
				Description: "Get someone to help keep you on track with your goals",
				Priority:    types.PriorityMedium,
				Timeframe:   "Next 2 weeks",
			},
		}
	}
}

// formatHours prints hours the shortest way that round-trips: 3 -> "3", 2.5 -> "2.5".
func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
