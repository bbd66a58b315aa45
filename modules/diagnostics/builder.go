// Package diagnostics implements the Diagnostics Builder (C7): derives
// top_contributors, strengths, weaknesses, and suggestions from a
// scored MatchResult's components (spec.md §4.7).
package diagnostics

import (
	"sort"

	"github.com/andreypavlenko/matchengine/modules/matching"
)

const (
	minWeightForSignal = 0.05
	strengthThreshold  = 0.75
	weaknessThreshold  = 0.35
	topContributorsN   = 3
)

// Attach populates TopContributors, Strengths, Weaknesses, and
// Suggestions on result in place, from its already-computed
// ComponentScores.
func Attach(result *matching.MatchResult) {
	result.TopContributors = topContributors(result.ComponentScores)
	result.Strengths = filterNames(result.ComponentScores, func(c matching.ComponentScore) bool {
		return c.RawScore >= strengthThreshold && c.Weight >= minWeightForSignal
	})
	result.Weaknesses = filterNames(result.ComponentScores, func(c matching.ComponentScore) bool {
		return c.RawScore <= weaknessThreshold && c.Weight >= minWeightForSignal
	})
	result.Suggestions = suggestionsFor(result.ComponentScores)
}

func topContributors(cs []matching.ComponentScore) []string {
	sorted := make([]matching.ComponentScore, len(cs))
	copy(sorted, cs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WeightedScore > sorted[j].WeightedScore
	})
	n := topContributorsN
	if len(sorted) < n {
		n = len(sorted)
	}
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = sorted[i].Name
	}
	return names
}

func filterNames(cs []matching.ComponentScore, pred func(matching.ComponentScore) bool) []string {
	var names []string
	for _, c := range cs {
		if pred(c) {
			names = append(names, c.Name)
		}
	}
	return names
}

// suggestionsFor builds the templated, data-driven suggestion list
// keyed by the highest-weight weakness, per spec.md §4.7's example.
func suggestionsFor(cs []matching.ComponentScore) []string {
	var weakest *matching.ComponentScore
	for i := range cs {
		c := &cs[i]
		if c.RawScore > weaknessThreshold || c.Weight < minWeightForSignal {
			continue
		}
		if weakest == nil || c.Weight > weakest.Weight {
			weakest = c
		}
	}
	if weakest == nil {
		return nil
	}
	if s := templatedSuggestion(*weakest); s != "" {
		return []string{s}
	}
	return nil
}

func templatedSuggestion(c matching.ComponentScore) string {
	switch c.Name {
	case "sector":
		if excluded, _ := c.Details["excluded"].(bool); excluded {
			return "Job sector is in candidate's excluded list"
		}
		return "Job sector has low proximity to candidate's preferred sectors"
	case "salary":
		return "Compensation range does not overlap candidate's desired salary"
	case "location":
		if feasible, ok := c.Details["feasible"].(bool); ok && !feasible {
			return "No transport mode reaches the job within the candidate's travel-time limits"
		}
		return "Commute time is at the edge of the candidate's tolerance"
	case "experience":
		return "Candidate's years of experience fall outside the job's expected band"
	case "hierarchical":
		return "Candidate and job seniority levels are substantially misaligned"
	case "work_modality":
		return "Remote/on-site policy does not match candidate's preference"
	case "contract":
		return "Job's contract type is not among the candidate's preferred contract types"
	case "timing":
		return "Candidate's availability does not align with the job's desired start date"
	case "motivations":
		return "Candidate's stated motivations do not align with this position"
	case "semantic":
		return "Candidate's skills do not closely match the job's required skills"
	case "salary_progression":
		return "Offered salary growth does not match candidate's expected trajectory"
	case "listening_reason":
		return "Candidate's reason for looking does not appear addressed by this role"
	case "candidate_status":
		return "Candidate's current status suggests lower availability for this role"
	default:
		return ""
	}
}
