package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/philipparndt/gomold/pkg/parting"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, parting.DefaultWeights(), cfg.Analysis.Weights)
	assert.Equal(t, 3.0, cfg.Analysis.DraftToleranceDeg)
	assert.Equal(t, 1e-2, cfg.Analysis.SymmetryTolerance)
	assert.Equal(t, 5*time.Minute, cfg.HeatmapTTL())
}

func TestLoadPartialConfig(t *testing.T) {
	path := writeConfig(t, "gomold.json", `{
		"analysis": {"weights": {"draft": 1, "undercut": 10, "complexity": 0, "cosmetic": 0}},
		"cooling": {"cavities": 4}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, parting.Weights{Draft: 1, Undercut: 10}, cfg.Analysis.Weights)
	assert.Equal(t, 4, cfg.Cooling.Cavities)
	// untouched fields keep their defaults
	assert.Equal(t, 3.0, cfg.Analysis.DraftToleranceDeg)
	assert.Equal(t, 6.0, cfg.Cooling.ChannelDiameter)
	assert.Equal(t, 800, cfg.Preview.Width)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"negative weight": `{"analysis": {"weights": {"draft": -1}}}`,
		"draft tolerance": `{"analysis": {"draft_tolerance_deg": 95}}`,
		"cavities":        `{"cooling": {"cavities": 0}}`,
		"channels":        `{"cooling": {"channels_z": 9}}`,
		"format":          `{"preview": {"format": "gif"}}`,
		"ttl":             `{"heatmap": {"ttl": "soon"}}`,
		"log level":       `{"log_level": "shouting"}`,
		"malformed":       `{"analysis": `,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "gomold.json", content))
			assert.Error(t, err)
		})
	}
}

func TestLoadRequiresJSONExtension(t *testing.T) {
	_, err := Load(writeConfig(t, "gomold.yaml", "{}"))
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	draft := 5.0
	cfg := Default()
	cfg.Resolve(Flags{
		LogLevel:          "debug",
		DraftToleranceDeg: &draft,
		NoCrossSections:   true,
		HistoryPath:       "/tmp/h.db",
	})

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5.0, cfg.Analysis.DraftToleranceDeg)
	assert.Equal(t, 1e-2, cfg.Analysis.SymmetryTolerance)
	assert.False(t, cfg.Analysis.CrossSections)
	assert.Equal(t, "/tmp/h.db", cfg.History.Path)
}

func TestResolveZeroAndNegativeOverrides(t *testing.T) {
	zero, negative := 0.0, -1.0

	cfg := Default()
	cfg.Resolve(Flags{DraftToleranceDeg: &zero, SymmetryTolerance: &zero})
	assert.Equal(t, 0.0, cfg.Analysis.DraftToleranceDeg)
	assert.Equal(t, 0.0, cfg.Analysis.SymmetryTolerance)
	assert.NoError(t, cfg.Validate())

	cfg = Default()
	cfg.Resolve(Flags{DraftToleranceDeg: &negative})
	assert.Equal(t, -1.0, cfg.Analysis.DraftToleranceDeg)
	assert.Error(t, cfg.Validate())
}

func TestSelectorOptions(t *testing.T) {
	cfg := Default()
	opts := cfg.SelectorOptions(zerolog.Nop())
	assert.IsType(t, parting.PlanarSection{}, opts.Section)
	assert.Equal(t, cfg.Analysis.Weights, opts.Weights)

	cfg.Analysis.CrossSections = false
	opts = cfg.SelectorOptions(zerolog.Nop())
	assert.IsType(t, parting.NoSection{}, opts.Section)

	_, err := parting.NewSelector(opts)
	assert.NoError(t, err)
}

func TestPreviewOptionsAndCoolingLayout(t *testing.T) {
	cfg := Default()

	opts := cfg.PreviewOptions()
	assert.NoError(t, opts.Validate())
	assert.Equal(t, 800, opts.Width)
	assert.Equal(t, 2, opts.Supersample)
	assert.True(t, opts.ShowPlane)

	layout := cfg.CoolingLayout()
	assert.Equal(t, 6.0, layout.Diameter)
	assert.Equal(t, 8.0, layout.Distance)
	assert.Equal(t, 2, layout.ChannelsX)
	assert.Zero(t, layout.ChannelsZ)
}
