package scoring

import (
	"context"

	"github.com/andreypavlenko/matchengine/modules/matching"
)

type salaryProgressionScorer struct{}

func newSalaryProgressionScorer() *salaryProgressionScorer { return &salaryProgressionScorer{} }

func (s *salaryProgressionScorer) Name() string { return "salary_progression" }

func (s *salaryProgressionScorer) Score(_ context.Context, c *matching.CandidateProfile, j *matching.JobPosting) Output {
	if c.CurrentSalary == nil || *c.CurrentSalary <= 0 {
		return Output{RawScore: 0.5, Confidence: 0.2, Details: map[string]any{"reason": "no_current_salary"}}
	}

	current := float64(*c.CurrentSalary)
	jobMid := (float64(j.SalaryMin) + float64(j.SalaryMax)) / 2
	pct := (jobMid - current) / current

	raw := progressionCurve(pct)

	return Output{
		RawScore:   clamp(raw, 0, 1),
		Confidence: 1.0,
		Details:    map[string]any{"progression_pct": pct},
	}
}

// progressionCurve implements the piecewise-linear mapping from
// spec.md §4.4: 0% -> 0.3, 10% -> 0.7, 20%+ -> 1.0, negative -> 0.1.
func progressionCurve(pct float64) float64 {
	switch {
	case pct < 0:
		return 0.1
	case pct < 0.10:
		return lerp(pct, 0, 0.10, 0.3, 0.7)
	case pct < 0.20:
		return lerp(pct, 0.10, 0.20, 0.7, 1.0)
	default:
		return 1.0
	}
}

func lerp(x, x0, x1, y0, y1 float64) float64 {
	if x1 == x0 {
		return y0
	}
	t := (x - x0) / (x1 - x0)
	return y0 + t*(y1-y0)
}
