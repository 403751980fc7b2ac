package main

import (
	"fmt"

	"github.com/philipparndt/gomold/internal/cooling"
	"github.com/philipparndt/gomold/pkg/analysis"
	"github.com/spf13/cobra"
)

var coolingFlags struct {
	cavities  int
	diameter  float64
	distance  float64
	channelsX int
	channelsY int
	channelsZ int
}

var coolingCmd = &cobra.Command{
	Use:   "cooling [file]",
	Short: "Lay out cooling channels and estimate the cooling power",
	Long: `Place cooling channels around the part and estimate the cooling power needed
from its volume, surface area and aspect ratio, the number of cavities and the
channel geometry.`,
	Args: cobra.ExactArgs(1),
	RunE: runCooling,
}

func init() {
	rootCmd.AddCommand(coolingCmd)

	f := coolingCmd.Flags()
	f.IntVar(&coolingFlags.cavities, "cavities", 0, "Number of cavities (1-16)")
	f.Float64Var(&coolingFlags.diameter, "diameter", 0, "Channel diameter in mm (2-20)")
	f.Float64Var(&coolingFlags.distance, "distance", 0, "Channel distance to the cavity in mm (2-20)")
	f.IntVar(&coolingFlags.channelsX, "channels-x", 0, "Channels along X (0-5)")
	f.IntVar(&coolingFlags.channelsY, "channels-y", 0, "Channels along Y (0-5)")
	f.IntVar(&coolingFlags.channelsZ, "channels-z", 0, "Channels along Z (0-5)")
}

func runCooling(cmd *cobra.Command, args []string) error {
	filename := args[0]

	f := cmd.Flags()
	k := &cfg.Cooling
	if f.Changed("cavities") {
		k.Cavities = coolingFlags.cavities
	}
	if f.Changed("diameter") {
		k.ChannelDiameter = coolingFlags.diameter
	}
	if f.Changed("distance") {
		k.ChannelDistance = coolingFlags.distance
	}
	if f.Changed("channels-x") {
		k.ChannelsX = coolingFlags.channelsX
	}
	if f.Changed("channels-y") {
		k.ChannelsY = coolingFlags.channelsY
	}
	if f.Changed("channels-z") {
		k.ChannelsZ = coolingFlags.channelsZ
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	m, err := loadPart(cmd.Context(), filename)
	if err != nil {
		return err
	}
	features, err := analysis.ExtractFeatures(m)
	if err != nil {
		return err
	}

	estimator, err := cooling.Default(logger)
	if err != nil {
		return err
	}
	power, err := estimator.Estimate(cooling.Input{
		Cavities:        k.Cavities,
		Volume:          features.Volume,
		SurfaceArea:     features.SurfaceArea,
		AspectRatio:     features.AspectRatio,
		ChannelDiameter: k.ChannelDiameter,
		ChannelDistance: k.ChannelDistance,
	})
	if err != nil {
		return err
	}

	fmt.Println("Cooling")
	fmt.Println("=======")
	fmt.Printf("Part: %s\n", m.Name())
	fmt.Printf("Cavities: %d\n", k.Cavities)
	fmt.Printf("Volume: %.2f mm³\n", features.Volume)
	fmt.Printf("Surface Area: %.2f mm²\n", features.SurfaceArea)
	fmt.Printf("Aspect Ratio: %.3f\n\n", features.AspectRatio)

	channels := cfg.CoolingLayout().Channels(m.BoundingBox())
	fmt.Printf("Channels: %d (diameter %.1f mm, distance %.1f mm)\n", len(channels), k.ChannelDiameter, k.ChannelDistance)
	for _, ch := range channels {
		fmt.Printf("  %s: %s -> %s, length %.2f mm\n", ch.Name,
			analysis.FormatVector(ch.Start), analysis.FormatVector(ch.End), ch.Length())
	}

	fmt.Printf("\nEstimated cooling power: %.2f kW\n", power)
	return nil
}
