// Package weights implements the Weight Matrix Registry (C5): the
// base matrix and the five listening-reason adaptive matrices, held
// as data and validated at load time, never at request time.
package weights

import "github.com/andreypavlenko/matchengine/modules/matching"

// Matrix maps a scorer name (scoring.CanonicalOrder) to its weight.
// "hierarchical" is always present with weight 0: it contributes to
// the hard-gate decision, never to the weighted sum (spec.md §4.4
// footnote, §4.5 invariant I1 speaks of "the twelve" weighted
// components).
type Matrix map[string]float64

// MatrixID names a stored matrix: "base" or a listening reason.
type MatrixID string

const (
	MatrixBase MatrixID = "base"
)

func matrixIDForReason(r matching.ListeningReason) (MatrixID, bool) {
	switch r {
	case matching.ReasonCompensationLow,
		matching.ReasonLocationIssue,
		matching.ReasonFlexibilityLack,
		matching.ReasonGrowthLack,
		matching.ReasonRoleMismatch:
		return MatrixID(r), true
	default:
		return "", false
	}
}

// baseMatrix is spec.md §4.5's exact base weight table.
var baseMatrix = Matrix{
	"semantic":            0.24,
	"salary":               0.19,
	"experience":           0.14,
	"location":             0.09,
	"motivations":          0.08,
	"sector":               0.06,
	"contract":             0.05,
	"timing":               0.04,
	"work_modality":        0.04,
	"salary_progression":   0.03,
	"listening_reason":     0.02,
	"candidate_status":     0.02,
	"hierarchical":         0.00,
}

// adaptiveMatrices holds one tunable matrix per listening reason in
// the closed set. Each reassigns weight toward the dimension that
// reason implies matters most, shrinking the rest proportionally so
// the sum stays 1.000. Where the source carried conflicting numeric
// variants for the same matrix id (REDESIGN note in spec.md §10), the
// values below are the one set kept per id.
var adaptiveMatrices = map[MatrixID]Matrix{
	MatrixID(matching.ReasonCompensationLow): {
		"semantic":           0.20,
		"salary":              0.32,
		"experience":          0.12,
		"location":            0.08,
		"motivations":         0.06,
		"sector":              0.05,
		"contract":            0.04,
		"timing":              0.03,
		"work_modality":       0.03,
		"salary_progression":  0.05,
		"listening_reason":    0.01,
		"candidate_status":    0.01,
		"hierarchical":        0.00,
	},
	MatrixID(matching.ReasonLocationIssue): {
		"semantic":           0.20,
		"salary":              0.15,
		"experience":          0.11,
		"location":            0.25,
		"motivations":         0.06,
		"sector":              0.05,
		"contract":            0.04,
		"timing":              0.04,
		"work_modality":       0.05,
		"salary_progression":  0.02,
		"listening_reason":    0.02,
		"candidate_status":    0.01,
		"hierarchical":        0.00,
	},
	MatrixID(matching.ReasonFlexibilityLack): {
		"semantic":           0.21,
		"salary":              0.14,
		"experience":          0.11,
		"location":            0.08,
		"motivations":         0.08,
		"sector":              0.05,
		"contract":            0.06,
		"timing":              0.05,
		"work_modality":       0.18,
		"salary_progression":  0.02,
		"listening_reason":    0.01,
		"candidate_status":    0.01,
		"hierarchical":        0.00,
	},
	MatrixID(matching.ReasonGrowthLack): {
		"semantic":           0.20,
		"salary":              0.14,
		"experience":          0.13,
		"location":            0.07,
		"motivations":         0.18,
		"sector":              0.06,
		"contract":            0.04,
		"timing":              0.03,
		"work_modality":       0.03,
		"salary_progression":  0.09,
		"listening_reason":    0.02,
		"candidate_status":    0.01,
		"hierarchical":        0.00,
	},
	MatrixID(matching.ReasonRoleMismatch): {
		"semantic":           0.32,
		"salary":              0.15,
		"experience":          0.14,
		"location":            0.07,
		"motivations":         0.10,
		"sector":              0.08,
		"contract":            0.04,
		"timing":              0.03,
		"work_modality":       0.03,
		"salary_progression":  0.02,
		"listening_reason":    0.01,
		"candidate_status":    0.01,
		"hierarchical":        0.00,
	},
}
