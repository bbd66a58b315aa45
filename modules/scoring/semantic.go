package scoring

import (
	"context"

	"github.com/andreypavlenko/matchengine/modules/matching"
)

type semanticScorer struct {
	synonyms  SynonymTable
	embedding EmbeddingProvider
}

func newSemanticScorer(synonyms SynonymTable, embedding EmbeddingProvider) *semanticScorer {
	if synonyms == nil {
		synonyms = DefaultSynonyms()
	}
	return &semanticScorer{synonyms: synonyms, embedding: embedding}
}

func (s *semanticScorer) Name() string { return "semantic" }

func (s *semanticScorer) Score(ctx context.Context, c *matching.CandidateProfile, j *matching.JobPosting) Output {
	requiredFrac, requiredMatched := matchFraction(s.synonyms, c.Skills, j.RequiredSkills)
	preferredFrac, preferredMatched := matchFraction(s.synonyms, c.Skills, j.PreferredSkills)

	raw := 0.7*requiredFrac + 0.3*preferredFrac

	details := map[string]any{
		"required_matched":  requiredMatched,
		"preferred_matched":  preferredMatched,
		"required_fraction":  requiredFrac,
		"preferred_fraction": preferredFrac,
	}

	bonus := 0.0
	if s.embedding != nil && j.Title != "" && c.CurrentTitle != "" {
		if sim, ok := s.embedding.TitleSimilarity(ctx, c.CurrentTitle, j.Title); ok {
			bonus = clamp(sim, 0, 1) * 0.2
			details["title_embedding_bonus"] = bonus
		}
	}

	raw = clamp(raw+bonus, 0, 1)

	confidence := 1.0
	if len(j.RequiredSkills) == 0 && len(j.PreferredSkills) == 0 {
		confidence = 0.3
	}

	return Output{RawScore: raw, Confidence: confidence, Details: details}
}

// matchFraction returns, of the "wanted" list, the fraction satisfied
// by "have" (directly or via synonyms), defaulting to 1.0 when wanted
// is empty (nothing required means nothing to fail).
func matchFraction(table SynonymTable, have, wanted []string) (float64, []string) {
	if len(wanted) == 0 {
		return 1.0, nil
	}
	var matched []string
	for _, w := range wanted {
		for _, h := range have {
			if table.Matches(h, w) {
				matched = append(matched, w)
				break
			}
		}
	}
	return float64(len(matched)) / float64(len(wanted)), matched
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
