package prediction

import (
	"strings"
	"testing"

	"github.com/jonathan/success-predictor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSchedule_FocusedLearningBlock(t *testing.T) {
	tests := []struct {
		study float64
		want  string
	}{
		{0, "Focused learning: 3 hours"},
		{1, "Focused learning: 3 hours"},
		{2, "Focused learning: 3 hours"},
		{3, "Focused learning: 4 hours"},
		{4.5, "Focused learning: 5.5 hours"},
	}

	for _, tt := range tests {
		in := mediumInput()
		in.StudyHours = tt.study

		s := BuildSchedule(&in)

		require.Len(t, s.Daily, 4)
		assert.Equal(t, tt.want, s.Daily[0])
		assert.Len(t, s.Weekly, 4)
		assert.Len(t, s.Monthly, 4)
	}
}

func TestMotivationalMessage(t *testing.T) {
	assert.True(t, strings.HasPrefix(MotivationalMessage(types.CategoryHigh, "Ada"), "Outstanding work, Ada! 🌟"))
	assert.True(t, strings.HasPrefix(MotivationalMessage(types.CategoryMedium, "Ada"), "Great progress, Ada! 💪"))
	assert.True(t, strings.HasPrefix(MotivationalMessage(types.CategoryLow, "Ada"), "Ada, every expert was once a beginner! 🚀"))
}

func TestRealityCheck_QuotesGoal(t *testing.T) {
	in := weakInput()

	got := RealityCheck(&in)

	assert.Contains(t, got, "the 6months timeline for achieving Product Manager")
}

func TestRecommendations_Medium_FormatsFractionalHours(t *testing.T) {
	in := mediumInput()
	in.StudyHours = 1.5

	recs := Recommendations(types.CategoryMedium, &in)

	require.Len(t, recs, 3)
	assert.Equal(t, "Increase daily study time from 1.5 to at least 3 hours", recs[0].Description)
	assert.Equal(t, types.PriorityHigh, recs[0].Priority)
	assert.Equal(t, types.PriorityMedium, recs[2].Priority)
}

func TestRecommendations_HighAndMediumShareClosingItem(t *testing.T) {
	in := strongInput()

	high := Recommendations(types.CategoryHigh, &in)
	medium := Recommendations(types.CategoryMedium, &in)

	assert.Equal(t, high[2], medium[2])
	assert.Equal(t, "Ongoing", high[2].Timeframe)
}
