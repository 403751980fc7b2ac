package main

import (
	"fmt"
	"sort"

	"github.com/philipparndt/gomold/pkg/analysis"
	"github.com/philipparndt/gomold/pkg/mesh"
	"github.com/philipparndt/gomold/pkg/parting"
	"github.com/spf13/cobra"
)

var (
	undercutAxis    string
	undercutCount   int
	undercutLargest bool
)

type undercutInfo struct {
	Index    int
	Area     float64
	Angle    float64
	Vertices string
}

var undercutsCmd = &cobra.Command{
	Use:   "undercuts [file]",
	Short: "List the undercut faces of a part",
	Long: `List the faces facing against the pull direction of a parting plane.
Without --axis the plane chosen by the analysis is used.`,
	Args: cobra.ExactArgs(1),
	RunE: runUndercuts,
}

func init() {
	rootCmd.AddCommand(undercutsCmd)

	undercutsCmd.Flags().StringVarP(&undercutAxis, "axis", "a", "", "Parting plane (XY, XZ or YZ)")
	undercutsCmd.Flags().IntVarP(&undercutCount, "count", "n", 10, "Number of faces to display")
	undercutsCmd.Flags().BoolVarP(&undercutLargest, "largest", "l", false, "Show largest faces by area first")
}

func runUndercuts(cmd *cobra.Command, args []string) error {
	filename := args[0]
	ctx := cmd.Context()

	m, err := loadPart(ctx, filename)
	if err != nil {
		return err
	}

	axis, err := axisFlag(undercutAxis, 0)
	if err != nil {
		return err
	}
	if undercutAxis == "" {
		selector, err := newSelector()
		if err != nil {
			return err
		}
		if axis, err = selector.SelectPlane(ctx, m); err != nil {
			return err
		}
	}

	normals := mesh.ComputeNormals(m)
	faces := parting.UndercutFaces(normals, axis)
	partition := parting.PartitionFaces(normals, axis)

	infos := make([]undercutInfo, 0, len(faces))
	totalArea := 0.0
	for _, i := range faces {
		tri := m.Triangle(i)
		area := tri.Area()
		totalArea += area
		infos = append(infos, undercutInfo{
			Index: i,
			Area:  area,
			Angle: parting.DraftAngle(normals.At(i), axis),
			Vertices: fmt.Sprintf("%s, %s, %s",
				analysis.FormatVector(tri.V1),
				analysis.FormatVector(tri.V2),
				analysis.FormatVector(tri.V3)),
		})
	}

	if undercutLargest {
		sort.SliceStable(infos, func(i, j int) bool {
			return infos[i].Area > infos[j].Area
		})
	}

	fmt.Printf("Undercuts for parting plane %s\n", axis)
	fmt.Println("==============================")
	fmt.Printf("Total faces: %d\n", m.FaceCount())
	fmt.Printf("Undercut faces: %d (%.2f%%)\n", len(faces), partition.Undercut*100)
	fmt.Printf("Releasing faces: %.2f%%\n", partition.Positive*100)
	fmt.Printf("Parallel faces: %.2f%%\n", partition.Zero*100)
	fmt.Printf("Undercut area: %.6f square units\n\n", totalArea)

	n := min(undercutCount, len(infos))
	for _, info := range infos[:n] {
		fmt.Printf("Face #%d:\n", info.Index)
		fmt.Printf("  Area: %.6f square units\n", info.Area)
		fmt.Printf("  Angle to pull direction: %.2f°\n", info.Angle)
		fmt.Printf("  Vertices: %s\n\n", info.Vertices)
	}
	return nil
}
