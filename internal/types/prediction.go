package types

// Category is the coarse band a success probability falls into.
type Category string

// Categories, from best to worst.
const (
	CategoryHigh   Category = "high"
	CategoryMedium Category = "medium"
	CategoryLow    Category = "low"
)

// Priority ranks how urgently a recommendation should be acted on.
type Priority string

// Recommendation priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ResourceType classifies a suggested learning resource.
type ResourceType string

// Resource types.
const (
	ResourceCourse   ResourceType = "course"
	ResourceBook     ResourceType = "book"
	ResourcePractice ResourceType = "practice"
	ResourceTool     ResourceType = "tool"
)

// Recommendation is a single suggested action.
type Recommendation struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Timeframe   string   `json:"timeframe"`
}

// Resource is an external learning resource.
type Resource struct {
	Title       string       `json:"title"`
	Type        ResourceType `json:"type"`
	Description string       `json:"description"`
	URL         string       `json:"url"`
}

// Schedule is a suggested routine split by cadence.
type Schedule struct {
	Daily   []string `json:"daily"`
	Weekly  []string `json:"weekly"`
	Monthly []string `json:"monthly"`
}

// PredictionResult is everything derived from one AssessmentInput.
// RealityCheck is only set for the low category and is omitted from JSON otherwise.
type PredictionResult struct {
	SuccessProbability  int              `json:"successProbability"`
	Category            Category         `json:"category"`
	Strengths           []string         `json:"strengths"`
	Weaknesses          []string         `json:"weaknesses"`
	Recommendations     []Recommendation `json:"recommendations"`
	Resources           []Resource       `json:"resources"`
	Schedule            Schedule         `json:"schedule"`
	MotivationalMessage string           `json:"motivationalMessage"`
	RealityCheck        string           `json:"realityCheck,omitempty"`
}
