package scoring

import (
	"context"

	"github.com/andreypavlenko/matchengine/modules/matching"
)

type contractScorer struct{}

func newContractScorer() *contractScorer { return &contractScorer{} }

func (s *contractScorer) Name() string { return "contract" }

var contractRankScore = map[int]float64{1: 1.0, 2: 0.75, 3: 0.5, 4: 0.25}

func (s *contractScorer) Score(_ context.Context, c *matching.CandidateProfile, j *matching.JobPosting) Output {
	for i, ct := range c.ContractRanking {
		if ct == j.ContractType {
			rank := i + 1
			return Output{
				RawScore:   contractRankScore[rank],
				Confidence: 1.0,
				Details:    map[string]any{"rank": rank},
			}
		}
	}
	return Output{RawScore: 0.0, Confidence: 1.0, Details: map[string]any{"rank": nil}}
}
