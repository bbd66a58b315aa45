package weights

import (
	"fmt"
	"os"

	"github.com/andreypavlenko/matchengine/modules/matching"
	"gopkg.in/yaml.v3"
)

const sumTolerance = 1e-6

// fileFormat mirrors the on-disk YAML shape: a base matrix plus a map
// of adaptive matrices keyed by listening-reason token.
type fileFormat struct {
	Base     Matrix            `yaml:"base"`
	Adaptive map[string]Matrix `yaml:"adaptive"`
}

// Registry holds the validated base matrix and adaptive matrices,
// resolving one per request by listening reason (spec.md §4.5, I4).
type Registry struct {
	base     Matrix
	adaptive map[MatrixID]Matrix
}

// NewRegistry builds a Registry from the compiled-in defaults. Use
// LoadFromPath to override with a configs/matrices.yaml file, or
// LoadFromBytes for a matrixstore-backed object.
func NewRegistry() (*Registry, error) {
	return build(baseMatrix, adaptiveMatrices)
}

// LoadFromPath reads matrix definitions from a local YAML file and
// validates every matrix sums to 1.000±1e-6. For s3:// paths, use
// internal/platform/matrixstore to fetch the bytes and call
// LoadFromBytes instead.
func LoadFromPath(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("weights: read %s: %w", path, err)
	}
	return LoadFromBytes(raw)
}

// LoadFromBytes parses YAML matrix definitions already fetched by the
// caller (local read or matrixstore.Store.Load) and validates them.
func LoadFromBytes(raw []byte) (*Registry, error) {
	var ff fileFormat
	if err := yaml.Unmarshal(raw, &ff); err != nil {
		return nil, fmt.Errorf("weights: parse matrix definitions: %w", err)
	}
	adaptive := make(map[MatrixID]Matrix, len(ff.Adaptive))
	for k, m := range ff.Adaptive {
		adaptive[MatrixID(k)] = m
	}
	return build(ff.Base, adaptive)
}

func build(base Matrix, adaptive map[MatrixID]Matrix) (*Registry, error) {
	if err := validate("base", base); err != nil {
		return nil, err
	}
	for id, m := range adaptive {
		if err := validate(string(id), m); err != nil {
			return nil, err
		}
	}
	return &Registry{base: base, adaptive: adaptive}, nil
}

// validate enforces I4: Σ weight = 1.000 ± 1e-6, including the
// always-zero hierarchical entry, and rejects negative weights.
func validate(id string, m Matrix) error {
	if len(m) == 0 {
		return fmt.Errorf("%w: matrix %q is empty", matching.ErrMatrixInvalid, id)
	}
	sum := 0.0
	for name, w := range m {
		if w < 0 || w > 1 {
			return fmt.Errorf("%w: matrix %q weight %q=%.6f out of [0,1]", matching.ErrMatrixInvalid, id, name, w)
		}
		sum += w
	}
	if diff := sum - 1.0; diff > sumTolerance || diff < -sumTolerance {
		return fmt.Errorf("%w: matrix %q sums to %.9f, want 1.000±%.0e", matching.ErrMatrixInvalid, id, sum, sumTolerance)
	}
	return nil
}

// Resolve returns the adaptive matrix for reason if one exists in the
// closed set, else the base matrix. The returned MatrixID is echoed
// back in MatchResult.MatrixID for auditability (spec.md §8 S4).
func (r *Registry) Resolve(reason matching.ListeningReason) (MatrixID, Matrix) {
	if id, ok := matrixIDForReason(reason); ok {
		if m, ok := r.adaptive[id]; ok {
			return id, m
		}
	}
	return MatrixBase, r.base
}
