package scoring

import (
	"context"

	"github.com/andreypavlenko/matchengine/modules/matching"
)

type workModalityScorer struct{}

func newWorkModalityScorer() *workModalityScorer { return &workModalityScorer{} }

func (s *workModalityScorer) Name() string { return "work_modality" }

func (s *workModalityScorer) Score(_ context.Context, c *matching.CandidateProfile, j *matching.JobPosting) Output {
	pref := c.PreferredModality
	policy := j.ModalityPolicy

	details := map[string]any{"preferred": pref, "policy": policy}

	if pref == policy {
		return Output{RawScore: 1.0, Confidence: 1.0, Details: details}
	}

	if pref == matching.ModalityHybrid || policy == matching.ModalityHybrid {
		raw := 0.7
		if abs(c.RemoteDaysPerWeek-j.RemoteDaysAllowed) <= 1 {
			raw += 0.1
		}
		return Output{RawScore: clamp(raw, 0, 1), Confidence: 1.0, Details: details}
	}

	// Remaining case: REMOTE vs ON_SITE (in either direction).
	if c.TransportModes[matching.ModeRemote] {
		return Output{RawScore: 0.6, Confidence: 0.8, Details: details}
	}
	return Output{RawScore: 0.1, Confidence: 1.0, Details: details}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
