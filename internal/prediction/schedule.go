package prediction

import (
	"fmt"
	"math"

	"github.com/jonathan/success-predictor/internal/types"
)

// minDailyStudyHours is the floor for the suggested focused-learning block.
const minDailyStudyHours = 3.0

// BuildSchedule suggests a routine. The focused-learning block is one hour more than
// the person studies today, and never less than three hours.
func BuildSchedule(in *types.AssessmentInput) types.Schedule {
	studyHours := math.Max(minDailyStudyHours, in.StudyHours+1)

	return types.Schedule{
		Daily: []string{
			fmt.Sprintf("Focused learning: %s hours", formatHours(studyHours)),
			"Practice/project work: 1 hour",
			"Industry reading: 30 minutes",
			"Progress review: 15 minutes",
		},
		Weekly: []string{
			"Complete 1 major project or assignment",
			"Network with 2-3 industry professionals",
			"Review and adjust learning plan",
			"Skills assessment and gap analysis",
		},
		Monthly: []string{
			"Complete a certification or major course",
			"Update portfolio and resume",
			"Conduct mock interviews",
			"Reassess goals and timeline",
		},
	}
}

// MotivationalMessage greets the person by name with a note matching their category.
func MotivationalMessage(category types.Category, name string) string {
	switch category {
	case types.CategoryHigh:
		return fmt.Sprintf("Outstanding work, %s! 🌟 Your dedication and structured approach show you're truly committed to achieving your goals. You're on the right path - keep pushing forward with confidence!", name)
	case types.CategoryMedium:
		return fmt.Sprintf("Great progress, %s! 💪 You're building good habits and showing real potential. With some focused improvements and consistency, you'll significantly boost your chances of success!", name)
	default:
		return fmt.Sprintf("%s, every expert was once a beginner! 🚀 Your journey starts with recognizing where you are and taking action. The fact that you're here shows you're ready to change - let's build that future together!", name)
	}
}

// RealityCheck is the cautionary note attached to low predictions.
func RealityCheck(in *types.AssessmentInput) string {
	return fmt.Sprintf("Based on your current habits and the %s timeline for achieving %s, there are some significant challenges ahead. This isn't meant to discourage you - it's meant to help you succeed. Consider the recommendations below as your roadmap to transformation. Remember, many successful people had to completely restructure their approach before achieving their goals.", in.Timeframe, in.DreamJob)
}
