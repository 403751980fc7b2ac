package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/philipparndt/gomold/pkg/analysis"
	"github.com/philipparndt/gomold/pkg/parting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() parting.SelectionResult {
	return parting.SelectionResult{
		SymmetricAxes: []parting.Axis{parting.XZ, parting.YZ},
		BestAxis:      parting.XZ,
		RawBest:       parting.YZ,
		UndercutFaces: []int{3, 7, 9},
		Metrics: [3]parting.AxisMetrics{
			{Axis: parting.XY, DraftCompliance: 0.05, UndercutRatio: 0.8, Complexity: 0.8},
			{Axis: parting.XZ, DraftCompliance: 0.05, UndercutRatio: 0.2, Complexity: 1, Symmetric: true},
			{Axis: parting.YZ, DraftCompliance: 0.05, UndercutRatio: 0.2, Complexity: 1, Symmetric: true},
		},
		Scores:  [3]float64{7.65, 5.65, 5.649},
		Weights: parting.DefaultWeights(),
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	err := WriteText(&buf, Report{
		Name:     "overhang",
		File:     "overhang.stl",
		Result:   sampleResult(),
		Features: &analysis.Features{Volume: 1000, AspectRatio: 1.5, TriangleCount: 76},
	})
	require.NoError(t, err)

	out := buf.String()
	for _, want := range []string{
		"Name: overhang",
		"File: overhang.stl",
		"Symmetric planes: XZ, YZ",
		"Best parting plane: XZ",
		"lowest score was YZ",
		"Undercut faces: 3",
		"Volume: 1000.000000",
		"Triangles: 76",
	} {
		assert.Contains(t, out, want)
	}

	var bestLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasSuffix(line, " *") {
			bestLine = line
		}
	}
	assert.True(t, strings.HasPrefix(strings.TrimSpace(bestLine), "XZ"), "marked line: %q", bestLine)
}

func TestWriteTextWithoutSymmetry(t *testing.T) {
	res := sampleResult()
	res.SymmetricAxes = nil
	res.RawBest = res.BestAxis

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Report{Result: res}))

	out := buf.String()
	assert.Contains(t, out, "Symmetric planes: none")
	assert.NotContains(t, out, "lowest score was")
	assert.NotContains(t, out, "Features:")
}

func TestWriteScorePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteScoreChart(&buf, "scores", sampleResult(), FormatPNG))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")))
}

func TestWriteScoreHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteScoreChart(&buf, "scores", sampleResult(), FormatHTML))

	out := buf.String()
	assert.Contains(t, out, "echarts")
	assert.Contains(t, out, "best=XZ")
}

func TestWriteScoreChartUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteScoreChart(&buf, "scores", sampleResult(), "svg"))
	assert.Zero(t, buf.Len())
}
