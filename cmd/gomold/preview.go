package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gomold/internal/heatmap"
	"github.com/philipparndt/gomold/pkg/preview"
	"github.com/spf13/cobra"
)

var (
	previewOut      string
	previewHeatmap  bool
	previewChannels bool
	previewNoPlane  bool
	previewYaw      float64
	previewPitch    float64
	previewWidth    int
	previewHeight   int
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Render a preview image of the parting analysis",
	Long: `Render the part with its undercut faces in red and the selected parting plane
as a translucent quad. The cooling channels and a temperature heat map can be
overlaid. The image format follows the output extension (.png or .webp).`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	f := previewCmd.Flags()
	f.StringVarP(&previewOut, "out", "o", "", "Output image (default <part>-preview.<format>)")
	f.BoolVar(&previewHeatmap, "heatmap", false, "Overlay the temperature heat map")
	f.BoolVar(&previewChannels, "channels", false, "Draw the cooling channels")
	f.BoolVar(&previewNoPlane, "no-plane", false, "Hide the parting plane")
	f.Float64Var(&previewYaw, "yaw", 0, "Camera yaw in degrees")
	f.Float64Var(&previewPitch, "pitch", 0, "Camera pitch in degrees")
	f.IntVar(&previewWidth, "width", 0, "Image width in pixels")
	f.IntVar(&previewHeight, "height", 0, "Image height in pixels")
}

func runPreview(cmd *cobra.Command, args []string) error {
	filename := args[0]
	ctx := cmd.Context()

	m, result, err := analyzePart(ctx, filename)
	if err != nil {
		return err
	}

	opts := cfg.PreviewOptions()
	f := cmd.Flags()
	if f.Changed("yaw") {
		opts.Yaw = previewYaw
	}
	if f.Changed("pitch") {
		opts.Pitch = previewPitch
	}
	if f.Changed("width") {
		opts.Width = previewWidth
	}
	if f.Changed("height") {
		opts.Height = previewHeight
	}
	if previewNoPlane {
		opts.ShowPlane = false
	}

	scene := preview.Scene{Mesh: m, Result: &result}
	if previewChannels || cfg.Preview.ShowChannels {
		scene.Channels = cfg.CoolingLayout().Channels(m.BoundingBox())
	}
	if previewHeatmap || cfg.Heatmap.Enabled {
		points, err := heatmap.NewCache(cfg.HeatmapTTL()).Samples(ctx, m, cfg.Heatmap.Samples)
		if err != nil {
			logger.Warn().Err(err).Msg("heat map unavailable")
		}
		scene.Heatmap = points
	}

	img, err := preview.Render(ctx, scene, opts)
	if err != nil {
		return err
	}

	out := previewOut
	if out == "" {
		out = defaultPreviewPath(filename, cfg.Preview.Format)
	}
	if err := preview.Save(out, img, cfg.Preview.Format); err != nil {
		return err
	}

	fmt.Printf("Preview written to %s (plane %s, %d undercut faces)\n", out, result.BestAxis, result.UndercutCount())
	return nil
}

func defaultPreviewPath(filename, format string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return filepath.Join(filepath.Dir(filename), fmt.Sprintf("%s-preview.%s", base, strings.ToLower(format)))
}
