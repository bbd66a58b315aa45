package scoring

import (
	"math"

	"context"

	"github.com/andreypavlenko/matchengine/modules/matching"
)

type salaryScorer struct{}

func newSalaryScorer() *salaryScorer { return &salaryScorer{} }

func (s *salaryScorer) Name() string { return "salary" }

func (s *salaryScorer) Score(_ context.Context, c *matching.CandidateProfile, j *matching.JobPosting) Output {
	if c.DesiredSalary == nil {
		return Output{RawScore: 0.5, Confidence: 0.2, Details: map[string]any{"reason": "no_desired_salary"}}
	}

	desired := float64(*c.DesiredSalary)
	candLow, candHigh := desired*0.9, desired*1.1
	jobLow, jobHigh := float64(j.SalaryMin), float64(j.SalaryMax)

	overlap := candLow <= jobHigh && jobLow <= candHigh
	details := map[string]any{"overlap": overlap}

	var raw float64
	if overlap {
		candMid := desired
		jobMid := (jobLow + jobHigh) / 2
		dist := math.Abs(candMid - jobMid)
		norm := 0.0
		if desired > 0 {
			norm = dist / desired
		}
		raw = math.Max(0.5, 1-norm)
	} else {
		var gap float64
		if jobHigh < candLow {
			gap = candLow - jobHigh
		} else {
			gap = jobLow - candHigh
		}
		if desired > 0 {
			raw = math.Max(0, 1-gap/desired)
		}
	}

	return Output{RawScore: clamp(raw, 0, 1), Confidence: 1.0, Details: details}
}
