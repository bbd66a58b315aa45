// Package scoring implements the individual scorer components (C4):
// twelve weighted scorers (listening-reason consistency and candidate
// status among them, spec.md §4.4 footnote) plus the hierarchical
// scorer, which carries weight 0 and feeds the hard gate.
package scoring

import (
	"context"

	"github.com/andreypavlenko/matchengine/modules/matching"
)

// Output is a scorer's verdict before weighting is applied. ElapsedMS
// is stamped by the engine after Score returns, not by the scorer
// itself.
type Output struct {
	RawScore   float64
	Confidence float64
	Details    map[string]any
	ElapsedMS  int64
}

// Neutral is substituted whenever a scorer misses its deadline or
// panics (spec.md §4.4, §7).
func Neutral(reason string) Output {
	return Output{
		RawScore:   0.5,
		Confidence: 0,
		Details:    map[string]any{"timeout": true, "reason": reason},
	}
}

// Scorer is the single capability interface every component
// implements, replacing the deep scorer class hierarchies the source
// used (spec.md §9).
type Scorer interface {
	Name() string
	Score(ctx context.Context, candidate *matching.CandidateProfile, job *matching.JobPosting) Output
}

// CanonicalOrder fixes the iteration order used everywhere sums must
// be deterministic (spec.md §4.6 "Ordering guarantees").
var CanonicalOrder = []string{
	"semantic",
	"salary",
	"experience",
	"location",
	"motivations",
	"sector",
	"contract",
	"timing",
	"work_modality",
	"salary_progression",
	"listening_reason",
	"candidate_status",
	"hierarchical",
}

// Deps bundles the optional collaborators (transport pre-filter,
// hierarchy detector, embedding/synonym providers) that NewRegistry
// wires into the scorers that need them.
type Deps struct {
	TransportFilter TransportFilterFunc
	HierarchyOf     HierarchyFunc
	Synonyms        SynonymTable
	Embedding       EmbeddingProvider
}

// TransportFilterFunc evaluates location feasibility for a candidate
// against a job; implemented by modules/transportfilter.Evaluate bound
// to a concrete geo gateway.
type TransportFilterFunc func(ctx context.Context, candidate *matching.CandidateProfile, job *matching.JobPosting) TransportFilterResult

// TransportFilterResult mirrors transportfilter.Result without this
// package importing it directly, keeping scoring's dependency surface
// to matching + its own small interfaces.
type TransportFilterResult struct {
	Feasible         bool
	LocationSubScore float64
	Reason           string
}

// HierarchyFunc classifies a person (candidate or job) into a level
// with a confidence, implemented by modules/hierarchy.Detect.
type HierarchyFunc func(ctx context.Context, title, text string, years int, teamSize *int) (level matching.HierarchyLevel, confidence float64)

// EmbeddingProvider is the optional title-embedding similarity
// capability consumed by the Semantic scorer's bonus term. A nil
// provider means the bonus is skipped and the scorer stays
// deterministic and synonym-table-only.
type EmbeddingProvider interface {
	TitleSimilarity(ctx context.Context, a, b string) (float64, bool)
}

// NewRegistry returns all thirteen scorers (the twelve weighted
// components plus the zero-weight hierarchical scorer), in
// CanonicalOrder.
func NewRegistry(deps Deps) []Scorer {
	return []Scorer{
		newSemanticScorer(deps.Synonyms, deps.Embedding),
		newSalaryScorer(),
		newExperienceScorer(),
		newLocationScorer(deps.TransportFilter),
		newMotivationsScorer(),
		newSectorScorer(),
		newContractScorer(),
		newTimingScorer(),
		newWorkModalityScorer(),
		newSalaryProgressionScorer(),
		newListeningReasonScorer(),
		newCandidateStatusScorer(),
		newHierarchicalScorer(deps.HierarchyOf),
	}
}
