package scoring

import (
	"context"

	"github.com/andreypavlenko/matchengine/modules/hierarchy"
	"github.com/andreypavlenko/matchengine/modules/matching"
)

type hierarchicalScorer struct {
	classify HierarchyFunc
}

func newHierarchicalScorer(classify HierarchyFunc) *hierarchicalScorer {
	return &hierarchicalScorer{classify: classify}
}

func (s *hierarchicalScorer) Name() string { return "hierarchical" }

func (s *hierarchicalScorer) Score(ctx context.Context, c *matching.CandidateProfile, j *matching.JobPosting) Output {
	if s.classify == nil {
		return Output{RawScore: 0.5, Confidence: 0, Details: map[string]any{"reason": "no_hierarchy_classifier_configured"}}
	}

	candLevel, candConf := s.classify(ctx, c.CurrentTitle, c.RawText, c.YearsTotal, candidateTeamSize(c))

	var jobLevel matching.HierarchyLevel
	var jobConf float64
	if j.RequiredLevel != nil {
		jobLevel, jobConf = *j.RequiredLevel, 1.0
	} else {
		jobLevel, jobConf = s.classify(ctx, j.Title, j.RawText, j.MinYears, nil)
	}

	raw := hierarchy.Compatibility(candLevel, jobLevel)
	confidence := (candConf + jobConf) / 2

	return Output{
		RawScore:   clamp(raw, 0, 1),
		Confidence: confidence,
		Details: map[string]any{
			"candidate_level": candLevel.String(),
			"job_level":       jobLevel.String(),
			"step_gap":        hierarchy.StepGap(candLevel, jobLevel),
			"critical_mismatch": hierarchy.CriticalMismatch(candLevel, jobLevel),
			"overqualified":     hierarchy.Overqualified(candLevel, jobLevel),
		},
	}
}

func candidateTeamSize(c *matching.CandidateProfile) *int {
	for _, e := range c.Experience {
		if e.TeamSize != nil {
			return e.TeamSize
		}
	}
	return nil
}
