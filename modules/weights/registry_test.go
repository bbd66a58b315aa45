package weights

import (
	"errors"
	"testing"

	"github.com/andreypavlenko/matchengine/modules/matching"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_ValidatesAllMatrices(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)
	require.NotNil(t, reg)
}

func TestResolve_CompensationLow_BoostsSalary(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	id, m := reg.Resolve(matching.ReasonCompensationLow)
	assert.Equal(t, MatrixID(matching.ReasonCompensationLow), id)
	assert.GreaterOrEqual(t, m["salary"], 0.30)
}

func TestResolve_UnmappedReason_ReturnsBase(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	id, m := reg.Resolve(matching.ReasonMarketCuriosity)
	assert.Equal(t, MatrixBase, id)
	assert.Equal(t, baseMatrix["semantic"], m["semantic"])
}

func TestBuild_RejectsBadSum(t *testing.T) {
	bad := Matrix{"semantic": 0.5, "salary": 0.4, "hierarchical": 0.0}
	_, err := build(bad, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, matching.ErrMatrixInvalid))
}

func TestBuild_RejectsOutOfRangeWeight(t *testing.T) {
	bad := Matrix{"semantic": 1.5, "salary": -0.5}
	_, err := build(bad, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, matching.ErrMatrixInvalid))
}

func TestAllAdaptiveMatricesSumToOne(t *testing.T) {
	for id, m := range adaptiveMatrices {
		sum := 0.0
		for _, w := range m {
			sum += w
		}
		assert.InDelta(t, 1.0, sum, 1e-6, "matrix %s", id)
	}
}
