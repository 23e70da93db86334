package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/success-predictor/internal/types"
	"github.com/stretchr/testify/require"
)

func sampleAssessment() types.AssessmentInput {
	return types.AssessmentInput{
		Name:               "Ada",
		Age:                "29",
		CurrentRole:        "QA Analyst",
		StudyHours:         5,
		SleepHours:         8,
		ExerciseHours:      1.5,
		RecreationHours:    2,
		WorkHours:          8,
		CurrentSkills:      "Go, SQL, testing",
		LearningStyle:      types.LearningStyleHandsOn,
		Motivation:         9,
		Consistency:        9,
		DreamJob:           "Software Engineer",
		Timeframe:          types.Timeframe2Years,
		PreviousExperience: strings.Repeat("Automated regression suites. ", 5),
		FutureLearningPlan: strings.Repeat("Finish the distributed systems course. ", 4),
	}
}

// writeJSON writes v to name inside dir and returns the path.
func writeJSON(t *testing.T, dir, name string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return writeFile(t, dir, name, string(data))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
