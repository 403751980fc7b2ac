// Package config holds the analysis and tooling settings
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/philipparndt/gomold/internal/cooling"
	"github.com/philipparndt/gomold/pkg/parting"
	"github.com/philipparndt/gomold/pkg/preview"
	"github.com/rs/zerolog"
)

// Config is the root configuration. Every section has working defaults, so
// a config file only needs to list what it changes.
type Config struct {
	LogLevel string         `json:"log_level"`
	Analysis AnalysisConfig `json:"analysis"`
	Preview  PreviewConfig  `json:"preview"`
	Cooling  CoolingConfig  `json:"cooling"`
	Heatmap  HeatmapConfig  `json:"heatmap"`
	History  HistoryConfig  `json:"history"`
}

// AnalysisConfig controls parting plane selection
type AnalysisConfig struct {
	DraftToleranceDeg float64         `json:"draft_tolerance_deg"`
	SymmetryTolerance float64         `json:"symmetry_tolerance"`
	Weights           parting.Weights `json:"weights"`
	// CrossSections enables the parting line length measurement
	CrossSections bool `json:"cross_sections"`
}

// PreviewConfig controls the rendered preview image
type PreviewConfig struct {
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	Supersample  int     `json:"supersample"`
	Format       string  `json:"format"` // png or webp
	Yaw          float64 `json:"yaw_deg"`
	Pitch        float64 `json:"pitch_deg"`
	ShowPlane    bool    `json:"show_plane"`
	ShowChannels bool    `json:"show_channels"`
}

// CoolingConfig describes the cooling layout of the mold
type CoolingConfig struct {
	Cavities        int     `json:"cavities"`
	ChannelDiameter float64 `json:"channel_diameter_mm"`
	ChannelDistance float64 `json:"channel_distance_mm"`
	ChannelsX       int     `json:"channels_x"`
	ChannelsY       int     `json:"channels_y"`
	ChannelsZ       int     `json:"channels_z"`
}

// HeatmapConfig controls the volumetric temperature overlay
type HeatmapConfig struct {
	Enabled bool   `json:"enabled"`
	Samples int    `json:"samples"`
	TTL     string `json:"ttl"` // duration string like "5m"
}

// HistoryConfig controls the run history database
type HistoryConfig struct {
	Path string `json:"path"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		LogLevel: "warn",
		Analysis: AnalysisConfig{
			DraftToleranceDeg: parting.DefaultDraftToleranceDeg,
			SymmetryTolerance: parting.DefaultSymmetryTolerance,
			Weights:           parting.DefaultWeights(),
			CrossSections:     true,
		},
		Preview: PreviewConfig{
			Width:       800,
			Height:      600,
			Supersample: 2,
			Format:      "png",
			Yaw:         35,
			Pitch:       25,
			ShowPlane:   true,
		},
		Cooling: CoolingConfig{
			Cavities:        1,
			ChannelDiameter: 6.0,
			ChannelDistance: 8.0,
			ChannelsX:       2,
		},
		Heatmap: HeatmapConfig{
			Samples: 500,
			TTL:     "5m",
		},
		History: HistoryConfig{
			Path: defaultHistoryPath(),
		},
	}
}

func defaultHistoryPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "gomold-history.db"
	}
	return filepath.Join(dir, "gomold", "history.db")
}

// Load reads a JSON config file on top of the defaults and validates it
func Load(path string) (Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return Config{}, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are valid
func (c Config) Validate() error {
	a := c.Analysis
	if err := a.Weights.Validate(); err != nil {
		return err
	}
	if a.DraftToleranceDeg < 0 || a.DraftToleranceDeg > 90 {
		return fmt.Errorf("draft_tolerance_deg must be between 0 and 90, got %f", a.DraftToleranceDeg)
	}
	if a.SymmetryTolerance < 0 {
		return fmt.Errorf("symmetry_tolerance must be non-negative, got %f", a.SymmetryTolerance)
	}

	p := c.Preview
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("preview size must be positive, got %dx%d", p.Width, p.Height)
	}
	if p.Supersample < 1 || p.Supersample > 4 {
		return fmt.Errorf("preview supersample must be between 1 and 4, got %d", p.Supersample)
	}
	if f := strings.ToLower(p.Format); f != "png" && f != "webp" {
		return fmt.Errorf("preview format must be png or webp, got %q", p.Format)
	}

	k := c.Cooling
	if k.Cavities < 1 || k.Cavities > 16 {
		return fmt.Errorf("cavities must be between 1 and 16, got %d", k.Cavities)
	}
	if k.ChannelDiameter < 2 || k.ChannelDiameter > 20 {
		return fmt.Errorf("channel_diameter_mm must be between 2 and 20, got %f", k.ChannelDiameter)
	}
	if k.ChannelDistance < 2 || k.ChannelDistance > 20 {
		return fmt.Errorf("channel_distance_mm must be between 2 and 20, got %f", k.ChannelDistance)
	}
	for name, n := range map[string]int{"channels_x": k.ChannelsX, "channels_y": k.ChannelsY, "channels_z": k.ChannelsZ} {
		if n < 0 || n > 5 {
			return fmt.Errorf("%s must be between 0 and 5, got %d", name, n)
		}
	}

	if c.Heatmap.Samples <= 0 {
		return fmt.Errorf("heatmap samples must be positive, got %d", c.Heatmap.Samples)
	}
	if _, err := time.ParseDuration(c.Heatmap.TTL); err != nil {
		return fmt.Errorf("invalid heatmap ttl '%s': %w", c.Heatmap.TTL, err)
	}

	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
			return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
		}
	}
	return nil
}

// HeatmapTTL returns the parsed cache lifetime of heat-map samples
func (c Config) HeatmapTTL() time.Duration {
	d, err := time.ParseDuration(c.Heatmap.TTL)
	if err != nil {
		return 5 * time.Minute
	}
	return d
}

// SelectorOptions builds parting plane selector options from the analysis
// section
func (c Config) SelectorOptions(logger zerolog.Logger) parting.Options {
	opts := parting.DefaultOptions()
	opts.Weights = c.Analysis.Weights
	opts.DraftToleranceDeg = c.Analysis.DraftToleranceDeg
	opts.SymmetryTolerance = c.Analysis.SymmetryTolerance
	opts.Logger = logger
	if !c.Analysis.CrossSections {
		opts.Section = parting.NoSection{}
	}
	return opts
}

// PreviewOptions converts the preview section for the renderer
func (c Config) PreviewOptions() preview.Options {
	p := c.Preview
	return preview.Options{
		Width:       p.Width,
		Height:      p.Height,
		Supersample: p.Supersample,
		Yaw:         p.Yaw,
		Pitch:       p.Pitch,
		ShowPlane:   p.ShowPlane,
	}
}

// CoolingLayout converts the cooling section into a channel layout
func (c Config) CoolingLayout() cooling.Layout {
	k := c.Cooling
	return cooling.Layout{
		Diameter:  k.ChannelDiameter,
		Distance:  k.ChannelDistance,
		ChannelsX: k.ChannelsX,
		ChannelsY: k.ChannelsY,
		ChannelsZ: k.ChannelsZ,
	}
}

// Flags are command line overrides. Empty strings and nil values leave the
// config unchanged.
type Flags struct {
	LogLevel          string
	DraftToleranceDeg *float64
	SymmetryTolerance *float64
	NoCrossSections   bool
	HistoryPath       string
}

// Resolve applies command line overrides
func (c *Config) Resolve(flags Flags) {
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.DraftToleranceDeg != nil {
		c.Analysis.DraftToleranceDeg = *flags.DraftToleranceDeg
	}
	if flags.SymmetryTolerance != nil {
		c.Analysis.SymmetryTolerance = *flags.SymmetryTolerance
	}
	if flags.NoCrossSections {
		c.Analysis.CrossSections = false
	}
	if flags.HistoryPath != "" {
		c.History.Path = flags.HistoryPath
	}
}
