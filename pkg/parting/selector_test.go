package parting

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/philipparndt/gomold/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSelector(t *testing.T, opts Options) *Selector {
	t.Helper()
	s, err := NewSelector(opts)
	require.NoError(t, err)
	return s
}

func TestSelectPlaneCube(t *testing.T) {
	s := newSelector(t, DefaultOptions())
	m := cube(t)

	axis, err := s.SelectPlane(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, XY, axis)

	result, err := s.Analyze(context.Background(), m)
	require.NoError(t, err)

	assert.Equal(t, []Axis{XY, XZ, YZ}, result.SymmetricAxes)
	assert.Equal(t, XY, result.BestAxis)
	assert.Equal(t, XY, result.RawBest)
	assert.False(t, result.SymmetryPreferred())

	for _, axis := range Axes {
		metrics := result.Metrics[axis]
		assert.Equal(t, axis, metrics.Axis)
		assert.InDelta(t, result.Metrics[XY].UndercutRatio, metrics.UndercutRatio, 1e-12)
		assert.InDelta(t, 40.0, metrics.Complexity, 1e-9)
		assert.InDelta(t, result.Scores[XY], result.Scores[axis], 1e-12)
		assert.True(t, metrics.Symmetric)
		assert.True(t, result.IsSymmetric(axis))
	}

	if diff := cmp.Diff([]int{8, 9}, result.UndercutFaces); diff != "" {
		t.Errorf("undercut faces mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, result.UndercutCount())
	assert.Equal(t, DefaultWeights(), result.Weights)
}

func TestSelectPlaneAvoidsOverhang(t *testing.T) {
	s := newSelector(t, DefaultOptions())
	m := overhang(t)

	result, err := s.Analyze(context.Background(), m)
	require.NoError(t, err)

	assert.Greater(t, result.Metrics[XY].UndercutRatio, 0.0)
	assert.Greater(t, result.Metrics[XY].UndercutRatio, result.Metrics[XZ].UndercutRatio)
	assert.Greater(t, result.Scores[XY], result.Scores[XZ])
	assert.Greater(t, result.Scores[XY], result.Scores[YZ])
	assert.NotEqual(t, XY, result.BestAxis)
	assert.Equal(t, XZ, result.BestAxis)
	assert.Equal(t, []Axis{XZ, YZ}, result.SymmetricAxes)

	for _, f := range result.UndercutFaces {
		assert.True(t, f >= 0 && f < m.FaceCount(), "face %d out of range", f)
	}
}

func TestSelectPlaneWithoutSections(t *testing.T) {
	opts := DefaultOptions()
	opts.Section = nil
	s := newSelector(t, opts)

	result, err := s.Analyze(context.Background(), cube(t))
	require.NoError(t, err)

	assert.Equal(t, XY, result.BestAxis)
	for _, axis := range Axes {
		assert.Zero(t, result.Metrics[axis].Complexity)
	}
}

func TestSelectPlaneRejectsInvalidMesh(t *testing.T) {
	s := newSelector(t, DefaultOptions())

	_, err := s.SelectPlane(context.Background(), nil)
	assert.ErrorIs(t, err, mesh.ErrInvalidMesh)
	assert.True(t, IsInvalidMesh(err))
}

func TestSelectPlaneCancelled(t *testing.T) {
	s := newSelector(t, DefaultOptions())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Analyze(ctx, cube(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewSelectorValidatesOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Weights.Undercut = -1
	_, err := NewSelector(opts)
	assert.Error(t, err)

	opts = DefaultOptions()
	opts.DraftToleranceDeg = 120
	_, err = NewSelector(opts)
	assert.Error(t, err)

	opts = DefaultOptions()
	opts.SymmetryTolerance = -0.1
	_, err = NewSelector(opts)
	assert.Error(t, err)

	opts = DefaultOptions()
	opts.Cosmetic = nil
	s, err := NewSelector(opts)
	require.NoError(t, err)
	assert.NotNil(t, s.Options().Cosmetic)
}

func undercutOnly() Weights {
	return Weights{Undercut: 1}
}

func TestChooseAxisPrefersSymmetricWithinEpsilon(t *testing.T) {
	metrics := [3]AxisMetrics{
		XY: {Axis: XY, UndercutRatio: 0.5},
		XZ: {Axis: XZ, UndercutRatio: 0.105, Symmetric: true},
		YZ: {Axis: YZ, UndercutRatio: 0.1},
	}

	best, rawBest, scores := ChooseAxis(metrics, undercutOnly())
	assert.Equal(t, YZ, rawBest)
	assert.Equal(t, XZ, best)
	assert.InDelta(t, 0.1, scores[YZ], 1e-12)
}

func TestChooseAxisIgnoresDistantSymmetricAxis(t *testing.T) {
	metrics := [3]AxisMetrics{
		XY: {Axis: XY, UndercutRatio: 0.5, Symmetric: true},
		XZ: {Axis: XZ, UndercutRatio: 0.13, Symmetric: true},
		YZ: {Axis: YZ, UndercutRatio: 0.1},
	}

	best, rawBest, _ := ChooseAxis(metrics, undercutOnly())
	assert.Equal(t, YZ, rawBest)
	assert.Equal(t, YZ, best)
}

func TestChooseAxisFirstSymmetricWins(t *testing.T) {
	metrics := [3]AxisMetrics{
		XY: {Axis: XY, UndercutRatio: 0.2},
		XZ: {Axis: XZ, UndercutRatio: 0.205, Symmetric: true},
		YZ: {Axis: YZ, UndercutRatio: 0.2, Symmetric: true},
	}

	best, rawBest, _ := ChooseAxis(metrics, undercutOnly())
	assert.Equal(t, XY, rawBest)
	assert.Equal(t, XZ, best)
}

func TestChooseAxisTiesKeepFixedOrder(t *testing.T) {
	var metrics [3]AxisMetrics
	for _, a := range Axes {
		metrics[a] = AxisMetrics{Axis: a, DraftCompliance: 0.5, UndercutRatio: 0.25, Complexity: 10}
	}

	best, rawBest, _ := ChooseAxis(metrics, DefaultWeights())
	assert.Equal(t, XY, rawBest)
	assert.Equal(t, XY, best)
}

func TestScoreNormalizesComplexity(t *testing.T) {
	metrics := [3]AxisMetrics{
		XY: {Complexity: 10},
		XZ: {Complexity: 40},
		YZ: {Complexity: 20},
	}
	scores := Score(metrics, Weights{Complexity: 2})

	assert.InDelta(t, 0.5, scores[XY], 1e-12)
	assert.InDelta(t, 2.0, scores[XZ], 1e-12)
	assert.InDelta(t, 1.0, scores[YZ], 1e-12)
}

func TestScoreWithoutComplexity(t *testing.T) {
	metrics := [3]AxisMetrics{
		XY: {DraftCompliance: 1, Cosmetic: 0.5},
		XZ: {DraftCompliance: 0},
		YZ: {UndercutRatio: 1},
	}
	scores := Score(metrics, DefaultWeights())

	assert.InDelta(t, -0.5, scores[XY], 1e-12)
	assert.InDelta(t, 3.0, scores[XZ], 1e-12)
	assert.InDelta(t, 7.0, scores[YZ], 1e-12)
}

func TestWeightsValidate(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())
	assert.NoError(t, Weights{}.Validate())
	assert.Error(t, Weights{Cosmetic: -0.1}.Validate())
}
