package main

import (
	"fmt"

	"github.com/philipparndt/gomold/pkg/analysis"
	"github.com/spf13/cobra"
)

var featuresCmd = &cobra.Command{
	Use:   "features [file]",
	Short: "Display the geometric features of a part",
	Long:  "Show volume, surface area, bounding box, aspect ratio and edge statistics used by the mold estimators.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFeatures,
}

func init() {
	rootCmd.AddCommand(featuresCmd)
}

func runFeatures(cmd *cobra.Command, args []string) error {
	filename := args[0]

	m, err := loadPart(cmd.Context(), filename)
	if err != nil {
		return err
	}

	result, err := analysis.ExtractFeatures(m)
	if err != nil {
		return err
	}

	fmt.Println("Part Features")
	fmt.Println("=============")
	if m.Name() != "" {
		fmt.Printf("Name: %s\n", m.Name())
	}
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Mesh Statistics:")
	fmt.Printf("  Triangles: %d\n", result.TriangleCount)
	fmt.Printf("  Vertices: %d\n", result.VertexCount)
	fmt.Printf("  Edges: %d\n", result.EdgeCount)
	fmt.Printf("  Surface Area: %.6f square units\n\n", result.SurfaceArea)

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Printf("  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %.6f units\n", result.Extents.X)
	fmt.Printf("  Depth (Y): %.6f units\n", result.Extents.Y)
	fmt.Printf("  Height (Z): %.6f units\n", result.Extents.Z)
	fmt.Printf("  Diagonal: %.6f units\n", result.BoundingBox.Diagonal())
	fmt.Printf("  Aspect Ratio: %.6f\n\n", result.AspectRatio)

	fmt.Println("Volume:")
	fmt.Printf("  Enclosed: %.6f cubic units\n", result.Volume)
	fmt.Printf("  Centroid: %s\n", analysis.FormatVector(result.Centroid))
	fmt.Printf("  Center of Mass: %s\n\n", analysis.FormatVector(result.CenterOfMass))

	fmt.Println("Edge Lengths:")
	fmt.Printf("  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Printf("  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Printf("  Average: %.6f units\n", result.AvgEdgeLength)
	return nil
}
