package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResources(t *testing.T) {
	tests := []struct {
		dreamJob string
		want     []string
	}{
		{"Software Engineer", []string{"Coursera Professional Certificates", "GitHub Portfolio Development", "LeetCode Technical Practice"}},
		{"Data Scientist", []string{"Coursera Professional Certificates", "GitHub Portfolio Development", "Kaggle Data Science Courses"}},
		{"Data Engineer", []string{"Coursera Professional Certificates", "GitHub Portfolio Development", "LeetCode Technical Practice", "Kaggle Data Science Courses"}},
		{"DEVELOPER ADVOCATE", []string{"Coursera Professional Certificates", "GitHub Portfolio Development", "LeetCode Technical Practice"}},
		{"Pastry Chef", []string{"Coursera Professional Certificates", "GitHub Portfolio Development"}},
		{"", []string{"Coursera Professional Certificates", "GitHub Portfolio Development"}},
	}

	for _, tt := range tests {
		t.Run(tt.dreamJob, func(t *testing.T) {
			got := Resources(tt.dreamJob)

			titles := make([]string, 0, len(got))
			for _, r := range got {
				titles = append(titles, r.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestResources_ReturnsFreshSlice(t *testing.T) {
	first := Resources("Chef")
	require.Len(t, first, 2)
	first[0].Title = "changed"

	second := Resources("Chef")
	assert.Equal(t, "Coursera Professional Certificates", second[0].Title)
	assert.Equal(t, "https://coursera.org", second[0].URL)
}
