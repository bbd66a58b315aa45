package diagnostics

import (
	"testing"

	"github.com/andreypavlenko/matchengine/modules/matching"
	"github.com/stretchr/testify/assert"
)

func TestAttach_TopContributorsOrderedByWeightedScore(t *testing.T) {
	result := &matching.MatchResult{
		ComponentScores: []matching.ComponentScore{
			{Name: "semantic", RawScore: 0.9, Weight: 0.24, WeightedScore: 0.216},
			{Name: "salary", RawScore: 0.5, Weight: 0.19, WeightedScore: 0.095},
			{Name: "experience", RawScore: 0.95, Weight: 0.14, WeightedScore: 0.133},
			{Name: "location", RawScore: 0.2, Weight: 0.09, WeightedScore: 0.018},
		},
	}
	Attach(result)
	assert.Equal(t, []string{"semantic", "experience", "salary"}, result.TopContributors)
}

func TestAttach_StrengthsAndWeaknesses(t *testing.T) {
	result := &matching.MatchResult{
		ComponentScores: []matching.ComponentScore{
			{Name: "semantic", RawScore: 0.9, Weight: 0.24},
			{Name: "sector", RawScore: 0.1, Weight: 0.06, Details: map[string]any{"excluded": true}},
			{Name: "timing", RawScore: 0.2, Weight: 0.01}, // below weight threshold, excluded
		},
	}
	Attach(result)
	assert.Equal(t, []string{"semantic"}, result.Strengths)
	assert.Equal(t, []string{"sector"}, result.Weaknesses)
	assert.Equal(t, []string{"Job sector is in candidate's excluded list"}, result.Suggestions)
}

func TestAttach_NoWeaknesses_NoSuggestions(t *testing.T) {
	result := &matching.MatchResult{
		ComponentScores: []matching.ComponentScore{
			{Name: "semantic", RawScore: 0.9, Weight: 0.24},
		},
	}
	Attach(result)
	assert.Empty(t, result.Suggestions)
}

func TestAttach_SuggestionPicksHighestWeightWeakness(t *testing.T) {
	result := &matching.MatchResult{
		ComponentScores: []matching.ComponentScore{
			{Name: "salary", RawScore: 0.1, Weight: 0.19},
			{Name: "timing", RawScore: 0.1, Weight: 0.06},
		},
	}
	Attach(result)
	assert.Equal(t, []string{"Compensation range does not overlap candidate's desired salary"}, result.Suggestions)
}
