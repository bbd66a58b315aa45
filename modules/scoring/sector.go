package scoring

import (
	"context"
	"strings"

	"github.com/andreypavlenko/matchengine/modules/matching"
)

type sectorScorer struct{}

func newSectorScorer() *sectorScorer { return &sectorScorer{} }

func (s *sectorScorer) Name() string { return "sector" }

// sectorProximity holds cross-sector affinity scores for sectors that
// are not an exact preferred/excluded match but are close enough to
// be worth more than the openness-only baseline.
var sectorProximity = map[[2]string]float64{
	{"fintech", "banking"}:        0.8,
	{"banking", "fintech"}:        0.8,
	{"insurance", "banking"}:      0.7,
	{"banking", "insurance"}:      0.7,
	{"healthtech", "healthcare"}:  0.8,
	{"healthcare", "healthtech"}:  0.8,
	{"edtech", "education"}:       0.75,
	{"education", "edtech"}:       0.75,
}

func (s *sectorScorer) Score(_ context.Context, c *matching.CandidateProfile, j *matching.JobPosting) Output {
	sector := strings.ToLower(strings.TrimSpace(j.Sector))

	if c.ExcludedSectors[j.Sector] || c.ExcludedSectors[sector] {
		return Output{RawScore: 0.0, Confidence: 1.0, Details: map[string]any{"excluded": true}}
	}
	if c.PreferredSectors[j.Sector] || c.PreferredSectors[sector] {
		return Output{RawScore: 1.0, Confidence: 1.0, Details: map[string]any{"preferred": true}}
	}

	openness := c.SectorOpenness
	if openness <= 0 {
		openness = 3
	}
	baseline := 0.4 + 0.1*float64(openness)

	best := baseline
	for pref := range c.PreferredSectors {
		if prox, ok := sectorProximity[[2]string{strings.ToLower(pref), sector}]; ok && prox > best {
			best = prox
		}
	}

	return Output{RawScore: clamp(best, 0, 1), Confidence: 0.8, Details: map[string]any{"openness": openness}}
}
