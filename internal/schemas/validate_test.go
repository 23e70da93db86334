package schemas

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/success-predictor/internal/prediction"
	"github.com/jonathan/success-predictor/internal/types"
	embedded "github.com/jonathan/success-predictor/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const simpleSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"}
	}
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T: %v", err, err)
	out := make([]string, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		out = append(out, fe.Field)
	}
	return out
}

func TestValidateDocument_Assessment(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		wantFields []string
	}{
		{
			name: "minimal valid",
			doc:  `{"name":"Ada","dreamJob":"Engineer","timeframe":"1year"}`,
		},
		{
			name: "full valid",
			doc: `{"name":"Ada","age":"29","currentRole":"QA","studyHours":2.5,"sleepHours":8,
				"exerciseHours":1,"recreationHours":3,"workHours":8,"currentSkills":"Go",
				"learningStyle":"hands-on","motivation":7,"consistency":6,"dreamJob":"Engineer",
				"timeframe":"2years","previousExperience":"x","futureLearningPlan":"y","challenges":""}`,
		},
		{
			name:       "missing required",
			doc:        `{"name":"Ada"}`,
			wantFields: []string{"(root)", "(root)"},
		},
		{
			name:       "unknown timeframe",
			doc:        `{"name":"Ada","dreamJob":"Engineer","timeframe":"10years"}`,
			wantFields: []string{"timeframe"},
		},
		{
			name:       "wrong types",
			doc:        `{"name":"Ada","dreamJob":"Engineer","timeframe":"1year","studyHours":"lots","motivation":7.5}`,
			wantFields: []string{"studyHours", "motivation"},
		},
		{
			name:       "rating out of range",
			doc:        `{"name":"Ada","dreamJob":"Engineer","timeframe":"1year","consistency":11}`,
			wantFields: []string{"consistency"},
		},
		{
			name:       "negative hours",
			doc:        `{"name":"Ada","dreamJob":"Engineer","timeframe":"1year","sleepHours":-1}`,
			wantFields: []string{"sleepHours"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(embedded.Assessment, []byte(tt.doc))
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			assert.ElementsMatch(t, tt.wantFields, fieldsOf(t, err))
		})
	}
}

func TestValidateDocument_EngineOutputMatchesResultSchema(t *testing.T) {
	inputs := []types.AssessmentInput{types.DefaultAssessmentInput()}
	low := types.DefaultAssessmentInput()
	low.StudyHours, low.SleepHours, low.Motivation, low.Timeframe = 0, 4, 1, types.Timeframe6Months
	inputs = append(inputs, low)

	for _, in := range inputs {
		in.Name, in.DreamJob = "Ada", "Data Engineer"
		if in.Timeframe == "" {
			in.Timeframe = types.Timeframe1Year
		}

		doc, err := json.Marshal(prediction.Predict(in))
		require.NoError(t, err)

		assert.NoError(t, ValidateDocument(embedded.PredictionResult, doc))
	}
}

func TestValidateDocument_ResultRejectsEmptyStrengths(t *testing.T) {
	doc := `{"successProbability":50,"category":"medium","strengths":[],"weaknesses":["x"],
		"recommendations":[],"resources":[{"title":"a","type":"course","description":"d"},
		{"title":"b","type":"practice","description":"d"}],
		"schedule":{"daily":[],"weekly":[],"monthly":[]},"motivationalMessage":"m"}`

	err := ValidateDocument(embedded.PredictionResult, []byte(doc))

	assert.Equal(t, []string{"strengths"}, fieldsOf(t, err))
}

func TestValidateDocument_UnknownSchema(t *testing.T) {
	err := ValidateDocument("missing.schema.json", []byte(`{}`))

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "missing.schema.json", loadErr.Path)
}

func TestValidateDocument_MalformedJSON(t *testing.T) {
	err := ValidateDocument(embedded.Assessment, []byte(`{ invalid json }`))

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateFile(t *testing.T) {
	path := writeFile(t, "assessment.json", `{"name":"Ada","dreamJob":"Engineer","timeframe":"5years"}`)
	assert.NoError(t, ValidateFile(embedded.Assessment, path))

	err := ValidateFile(embedded.Assessment, filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestValidateJSON_Files(t *testing.T) {
	schemaPath := writeFile(t, "schema.json", simpleSchema)

	assert.NoError(t, ValidateJSON(schemaPath, writeFile(t, "ok.json", `{"name":"test"}`)))

	err := ValidateJSON(schemaPath, writeFile(t, "bad.json", `{"name": 3}`))
	assert.Equal(t, []string{"name"}, fieldsOf(t, err))
}

func TestValidateJSON_NonExistentFiles(t *testing.T) {
	schemaPath := writeFile(t, "schema.json", simpleSchema)
	jsonPath := writeFile(t, "ok.json", `{"name":"test"}`)

	err := ValidateJSON(filepath.Join(t.TempDir(), "nonexistent_schema.json"), jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = ValidateJSON(schemaPath, filepath.Join(t.TempDir(), "nonexistent_json.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "1. name: is required")
	assert.Contains(t, msg, "2. age: must be a number")
}
