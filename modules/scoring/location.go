package scoring

import (
	"context"

	"github.com/andreypavlenko/matchengine/modules/matching"
)

type locationScorer struct {
	filter TransportFilterFunc
}

func newLocationScorer(filter TransportFilterFunc) *locationScorer {
	return &locationScorer{filter: filter}
}

func (s *locationScorer) Name() string { return "location" }

func (s *locationScorer) Score(ctx context.Context, c *matching.CandidateProfile, j *matching.JobPosting) Output {
	if s.filter == nil {
		return Output{RawScore: 0.5, Confidence: 0, Details: map[string]any{"reason": "no_transport_filter_configured"}}
	}

	res := s.filter(ctx, c, j)
	confidence := 1.0
	if res.Reason == "address_ambiguous" {
		confidence = 0.4
	}
	if !res.Feasible {
		confidence = 1.0
	}

	return Output{
		RawScore:   clamp(res.LocationSubScore, 0, 1),
		Confidence: confidence,
		Details: map[string]any{
			"feasible": res.Feasible,
			"reason":   res.Reason,
		},
	}
}
