package scoring

import (
	"context"

	"github.com/andreypavlenko/matchengine/modules/matching"
)

type motivationsScorer struct{}

func newMotivationsScorer() *motivationsScorer { return &motivationsScorer{} }

func (s *motivationsScorer) Name() string { return "motivations" }

// rankWeight implements w(k) = 1/(k+1) for a 1-indexed rank k.
func rankWeight(k int) float64 { return 1.0 / float64(k+1) }

func (s *motivationsScorer) Score(_ context.Context, c *matching.CandidateProfile, j *matching.JobPosting) Output {
	if len(c.Motivations) == 0 {
		return Output{RawScore: 0.5, Confidence: 0.2, Details: map[string]any{"reason": "no_candidate_motivations"}}
	}

	jobRank := make(map[string]int, len(j.PositionMotivations))
	for i, m := range j.PositionMotivations {
		jobRank[m] = i + 1
	}

	sum := 0.0
	maxPossible := 0.0
	for i, m := range c.Motivations {
		r := i + 1
		wr := rankWeight(r)
		maxPossible += wr * wr
		if s, ok := jobRank[m]; ok {
			sum += wr * rankWeight(s)
		}
	}

	raw := 0.0
	if maxPossible > 0 {
		raw = sum / maxPossible
	}

	return Output{
		RawScore:   clamp(raw, 0, 1),
		Confidence: 1.0,
		Details:    map[string]any{"matched_weight": sum, "max_possible": maxPossible},
	}
}
