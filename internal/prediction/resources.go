package prediction

import (
	"strings"

	"github.com/jonathan/success-predictor/internal/types"
)

// baseResources are suggested to everyone.
var baseResources = []types.Resource{
	{
		Title:       "Coursera Professional Certificates",
		Type:        types.ResourceCourse,
		Description: "Industry-recognized certificates for career advancement",
		URL:         "https://coursera.org",
	},
	{
		Title:       "GitHub Portfolio Development",
		Type:        types.ResourcePractice,
		Description: "Build and showcase your projects on GitHub",
		URL:         "https://github.com",
	},
}

// resourceRule adds a resource when the dream job mentions any of its keywords.
type resourceRule struct {
	keywords []string
	resource types.Resource
}

// resourceRules are evaluated independently and in order; several may match.
var resourceRules = []resourceRule{
	{
		keywords: []string{"software", "developer", "engineer"},
		resource: types.Resource{
			Title:       "LeetCode Technical Practice",
			Type:        types.ResourcePractice,
			Description: "Essential coding practice for technical interviews",
			URL:         "https://leetcode.com",
		},
	},
	{
		keywords: []string{"data", "analyst", "scientist"},
		resource: types.Resource{
			Title:       "Kaggle Data Science Courses",
			Type:        types.ResourceCourse,
			Description: "Hands-on data science learning and competitions",
			URL:         "https://kaggle.com/learn",
		},
	},
}

// Resources returns the base resources plus one entry per matching keyword group.
// Matching is a case-insensitive substring search on the dream job.
func Resources(dreamJob string) []types.Resource {
	job := strings.ToLower(dreamJob)

	out := make([]types.Resource, len(baseResources), len(baseResources)+len(resourceRules))
	copy(out, baseResources)
	for _, rule := range resourceRules {
		if containsAny(job, rule.keywords) {
			out = append(out, rule.resource)
		}
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
