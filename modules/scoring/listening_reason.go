package scoring

import (
	"context"

	"github.com/andreypavlenko/matchengine/modules/matching"
)

type listeningReasonScorer struct{}

func newListeningReasonScorer() *listeningReasonScorer { return &listeningReasonScorer{} }

func (s *listeningReasonScorer) Name() string { return "listening_reason" }

func (s *listeningReasonScorer) Score(ctx context.Context, c *matching.CandidateProfile, j *matching.JobPosting) Output {
	reason, ok := ResolvedReasonFromContext(ctx)
	if !ok {
		return Output{RawScore: 0.5, Confidence: 0.2, Details: map[string]any{"reason": "no_resolved_reason_in_context"}}
	}

	consistent := isConsistent(reason, c, j)
	raw := 0.5
	if consistent {
		raw = 1.0
	}

	return Output{RawScore: raw, Confidence: 0.7, Details: map[string]any{"listening_reason": reason, "consistent": consistent}}
}

// isConsistent checks the listening reason against signals derivable
// from the profile, per spec.md §4.4's COMPENSATION_LOW example.
func isConsistent(reason matching.ListeningReason, c *matching.CandidateProfile, j *matching.JobPosting) bool {
	switch reason {
	case matching.ReasonCompensationLow:
		if c.CurrentSalary == nil {
			return false
		}
		marketMid := (float64(j.SalaryMin) + float64(j.SalaryMax)) / 2
		return float64(*c.CurrentSalary) < marketMid
	case matching.ReasonLocationIssue:
		return c.HomeAddress != "" && j.Location != "" && c.HomeAddress != j.Location
	case matching.ReasonFlexibilityLack:
		return c.PreferredModality != matching.ModalityOnSite
	case matching.ReasonGrowthLack:
		return len(c.Experience) > 0
	case matching.ReasonRoleMismatch:
		return c.CurrentTitle != "" && c.CurrentTitle != j.Title
	default:
		// MARKET_CURIOSITY, MANAGEMENT_ISSUES, GENERAL_DISSATISFACTION
		// have no structured corroborating signal in this profile
		// shape; treat as neither confirmed nor contradicted.
		return true
	}
}
