// Package types provides type definitions for the assessment and prediction records
// exchanged between callers and the prediction engine.
package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// LearningStyle is the preferred way a person picks up new skills.
type LearningStyle string

// Learning styles offered by the questionnaire.
const (
	LearningStyleVisual     LearningStyle = "visual"
	LearningStyleHandsOn    LearningStyle = "hands-on"
	LearningStyleStructured LearningStyle = "structured"
	LearningStyleSocial     LearningStyle = "social"
	LearningStyleMixed      LearningStyle = "mixed"
)

// Timeframe is the horizon in which the person wants to land their dream job.
type Timeframe string

// Timeframes offered by the questionnaire.
const (
	Timeframe6Months Timeframe = "6months"
	Timeframe1Year   Timeframe = "1year"
	Timeframe2Years  Timeframe = "2years"
	Timeframe3Years  Timeframe = "3years"
	Timeframe5Years  Timeframe = "5years"
)

// AssessmentInput is the self-reported questionnaire record.
// Hours are per day. Motivation and consistency are self ratings from 1 to 10.
type AssessmentInput struct {
	// Personal info
	Name        string `json:"name" validate:"notblank"`
	Age         string `json:"age" validate:"notblank,numeric"`
	CurrentRole string `json:"currentRole" validate:"notblank"`

	// Daily habits
	StudyHours      float64 `json:"studyHours" validate:"gte=0,lte=24"`
	SleepHours      float64 `json:"sleepHours" validate:"gte=0,lte=24"`
	ExerciseHours   float64 `json:"exerciseHours" validate:"gte=0,lte=24"`
	RecreationHours float64 `json:"recreationHours" validate:"gte=0,lte=24"`
	WorkHours       float64 `json:"workHours" validate:"gte=0,lte=24"`

	// Learning and skills
	CurrentSkills string        `json:"currentSkills" validate:"notblank"`
	LearningStyle LearningStyle `json:"learningStyle" validate:"required,oneof=visual hands-on structured social mixed"`
	Motivation    int           `json:"motivation" validate:"min=1,max=10"`
	Consistency   int           `json:"consistency" validate:"min=1,max=10"`

	// Goal
	DreamJob           string    `json:"dreamJob" validate:"notblank"`
	Timeframe          Timeframe `json:"timeframe" validate:"required,oneof=6months 1year 2years 3years 5years"`
	PreviousExperience string    `json:"previousExperience" validate:"notblank"`
	FutureLearningPlan string    `json:"futureLearningPlan" validate:"notblank"`
	Challenges         string    `json:"challenges"`
}

// DefaultAssessmentInput returns the questionnaire's starting values: habit sliders
// preset to typical numbers and every text field empty.
func DefaultAssessmentInput() AssessmentInput {
	return AssessmentInput{
		StudyHours:      2,
		SleepHours:      8,
		ExerciseHours:   1,
		RecreationHours: 3,
		WorkHours:       8,
		Motivation:      7,
		Consistency:     6,
	}
}

// MissingRequiredFields reports which of the fields the prediction endpoint insists
// on (name, dreamJob, timeframe) are empty, in that order.
func (a *AssessmentInput) MissingRequiredFields() []string {
	var missing []string
	if a.Name == "" {
		missing = append(missing, "name")
	}
	if a.DreamJob == "" {
		missing = append(missing, "dreamJob")
	}
	if a.Timeframe == "" {
		missing = append(missing, "timeframe")
	}
	return missing
}

// QuestionnaireSteps is the number of pages in the questionnaire.
const QuestionnaireSteps = 4

// stepFields lists the struct fields each questionnaire page collects.
var stepFields = map[int][]string{
	1: {"Name", "Age", "CurrentRole"},
	2: {"StudyHours", "SleepHours", "ExerciseHours", "RecreationHours", "WorkHours"},
	3: {"CurrentSkills", "LearningStyle", "Motivation", "Consistency"},
	4: {"DreamJob", "Timeframe", "PreviousExperience", "FutureLearningPlan"},
}

// ErrUnknownStep is returned by ValidateStep for a step outside 1..QuestionnaireSteps.
var ErrUnknownStep = errors.New("unknown questionnaire step")

// FieldError describes one failed rule on one field, keyed by its JSON name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every field that failed validation.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation error: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// The questionnaire treats whitespace-only answers as unanswered.
	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(fmt.Sprintf("failed to register notblank validation: %v", err))
	}
	return v
}

// Validate checks the whole record against the caller-side contract: every required
// answer present, enums in range, hours non-negative, ratings within 1..10.
func (a *AssessmentInput) Validate() error {
	return toValidationError(validate.Struct(a))
}

// ValidateStep checks only the fields collected on one questionnaire page.
func (a *AssessmentInput) ValidateStep(step int) error {
	fields, ok := stepFields[step]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownStep, step)
	}
	return toValidationError(validate.StructPartial(a, fields...))
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Errors = append(out.Errors, FieldError{
			Field:   fe.Field(),
			Message: describeRule(fe),
		})
	}
	return out
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank", "required":
		return "is required"
	case "numeric":
		return "must be a number"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gte", "min":
		return "must be at least " + fe.Param()
	case "lte", "max":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
