package scoring

import (
	"context"

	"github.com/andreypavlenko/matchengine/modules/matching"
)

type timingScorer struct{}

func newTimingScorer() *timingScorer { return &timingScorer{} }

func (s *timingScorer) Name() string { return "timing" }

func (s *timingScorer) Score(_ context.Context, c *matching.CandidateProfile, j *matching.JobPosting) Output {
	if j.DesiredStartDate == nil || c.AvailabilityDate.IsZero() {
		return Output{RawScore: 0.8, Confidence: 0.3, Details: map[string]any{"reason": "no_start_date_constraint"}}
	}

	availableFrom := c.AvailabilityDate.AddDate(0, 0, 7*c.NoticePeriodWeeks)
	gapWeeks := j.DesiredStartDate.Sub(availableFrom).Hours() / (24 * 7)

	var raw float64
	switch {
	case gapWeeks <= 0:
		raw = 1.0
	case gapWeeks <= float64(c.FlexibilityWeeks):
		raw = 0.8
	case j.MaxWaitWeeks != nil && gapWeeks <= float64(*j.MaxWaitWeeks):
		weeksOver := gapWeeks - float64(c.FlexibilityWeeks)
		raw = 0.5 - 0.02*weeksOver
	default:
		raw = 0.1
	}

	return Output{
		RawScore:   clamp(raw, 0, 1),
		Confidence: 1.0,
		Details:    map[string]any{"gap_weeks": gapWeeks},
	}
}
