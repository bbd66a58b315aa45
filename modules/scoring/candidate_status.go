package scoring

import (
	"context"

	"github.com/andreypavlenko/matchengine/modules/matching"
)

type candidateStatusScorer struct{}

func newCandidateStatusScorer() *candidateStatusScorer { return &candidateStatusScorer{} }

func (s *candidateStatusScorer) Name() string { return "candidate_status" }

var statusMultiplier = map[matching.CandidateStatus]float64{
	matching.StatusActivelySearching: 1.0,
	matching.StatusEmployed:          0.7,
	matching.StatusBetweenJobs:       0.8,
	matching.StatusFreelancer:        0.6,
	matching.StatusStudent:           0.5,
}

func (s *candidateStatusScorer) Score(_ context.Context, c *matching.CandidateProfile, _ *matching.JobPosting) Output {
	raw, ok := statusMultiplier[c.Status]
	if !ok {
		raw = 0.6
	}
	return Output{RawScore: raw, Confidence: 1.0, Details: map[string]any{"status": c.Status}}
}
