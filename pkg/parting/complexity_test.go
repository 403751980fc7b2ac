package parting

import (
	"errors"
	"math"
	"testing"

	"github.com/philipparndt/gomold/pkg/mesh"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

type fixedSection struct {
	length float64
	err    error
}

func (f fixedSection) SectionLength(*mesh.TriangleMesh, r3.Vec, r3.Vec) (float64, error) {
	return f.length, f.err
}

func TestComplexityOfCube(t *testing.T) {
	e := ComplexityEvaluator{Section: PlanarSection{}, Logger: zerolog.Nop()}
	m := cube(t)

	for _, axis := range Axes {
		assert.InDelta(t, 40.0, e.Complexity(m, axis), 1e-9, "axis %v", axis)
	}
}

func TestComplexityOfOverhang(t *testing.T) {
	e := ComplexityEvaluator{Section: PlanarSection{}}
	m := overhang(t)

	// The XZ and YZ sections also run along one row of spike bases
	assert.InDelta(t, 40.0, e.Complexity(m, XY), 1e-9)
	assert.InDelta(t, 50.0, e.Complexity(m, XZ), 1e-9)
	assert.InDelta(t, 50.0, e.Complexity(m, YZ), 1e-9)
}

func TestComplexityMissedPlaneIsZero(t *testing.T) {
	e := ComplexityEvaluator{Section: PlanarSection{}}

	assert.Zero(t, e.ComplexityAt(cube(t), r3.Vec{Z: 50}, XY))
	assert.Zero(t, e.ComplexityAt(cube(t), r3.Vec{X: -50}, YZ))
}

func TestComplexityDegradesToZero(t *testing.T) {
	tests := []struct {
		name    string
		section SectionLength
	}{
		{"no capability", nil},
		{"disabled", NoSection{}},
		{"error", fixedSection{length: 12, err: errors.New("kernel crashed")}},
		{"unavailable", fixedSection{err: mesh.ErrCapabilityUnavailable}},
		{"nan", fixedSection{length: math.NaN()}},
		{"inf", fixedSection{length: math.Inf(1)}},
		{"negative", fixedSection{length: -3}},
	}

	m := cube(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := ComplexityEvaluator{Section: tt.section, Logger: zerolog.Nop()}
			for _, axis := range Axes {
				assert.Zero(t, e.Complexity(m, axis))
			}
		})
	}
}

func TestComplexityPassesThroughLength(t *testing.T) {
	e := ComplexityEvaluator{Section: fixedSection{length: 7.5}}
	assert.Equal(t, 7.5, e.Complexity(cube(t), XZ))
}

func TestNeutralCosmetic(t *testing.T) {
	var scorer CosmeticScorer = NeutralCosmetic{}
	for _, axis := range Axes {
		assert.Zero(t, scorer.Cosmetic(cube(t), axis))
	}
}
