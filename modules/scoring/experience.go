package scoring

import (
	"context"

	"github.com/andreypavlenko/matchengine/modules/matching"
)

type experienceScorer struct{}

func newExperienceScorer() *experienceScorer { return &experienceScorer{} }

func (s *experienceScorer) Name() string { return "experience" }

func (s *experienceScorer) Score(_ context.Context, c *matching.CandidateProfile, j *matching.JobPosting) Output {
	years := c.YearsTotal
	min := j.MinYears

	raw := 1.0
	switch {
	case years < min:
		raw = 1.0 - 0.1*float64(min-years)
	case j.MaxYears != nil && years > *j.MaxYears:
		over := float64(years - *j.MaxYears)
		raw = 1.0 - 0.1*over - 0.05*over
	}

	return Output{
		RawScore:   clamp(raw, 0, 1),
		Confidence: 1.0,
		Details: map[string]any{
			"candidate_years": years,
			"min_years":       min,
			"max_years":       j.MaxYears,
		},
	}
}
