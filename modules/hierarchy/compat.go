package hierarchy

import "github.com/andreypavlenko/matchengine/modules/matching"

// StepGap is the absolute ordinal distance between two levels.
func StepGap(a, b matching.HierarchyLevel) int {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d
}

// compatByGap is the symmetric step-gap -> score table from spec.md
// §4.2; index by StepGap, clamped to the largest defined bucket.
var compatByGap = []float64{1.0, 0.7, 0.35, 0.05}

// Compatibility returns the hierarchical compatibility score between a
// candidate level and a job level, including the overqualification
// penalty (candidate >= 2 steps above job multiplies by 0.7).
func Compatibility(candidate, job matching.HierarchyLevel) float64 {
	gap := StepGap(candidate, job)
	idx := gap
	if idx >= len(compatByGap) {
		idx = len(compatByGap) - 1
	}
	score := compatByGap[idx]

	if candidate >= job+2 {
		score *= 0.7
	}
	return score
}

// CriticalMismatch reports whether the step gap is large enough to
// trigger the CRITICAL_MISMATCH hard gate (gap >= 3).
func CriticalMismatch(candidate, job matching.HierarchyLevel) bool {
	return StepGap(candidate, job) >= 3
}

// Overqualified reports whether the candidate is >= 2 steps above the
// job level.
func Overqualified(candidate, job matching.HierarchyLevel) bool {
	return candidate >= job+2
}
