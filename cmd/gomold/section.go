package main

import (
	"fmt"

	"github.com/philipparndt/gomold/pkg/geometry"
	"github.com/philipparndt/gomold/pkg/parting"
	"github.com/spf13/cobra"
)

var (
	sectionAxis   string
	sectionOffset float64
)

var sectionCmd = &cobra.Command{
	Use:   "section [file]",
	Short: "Measure the parting line of a plane",
	Long: `Cut the part with a parting plane through the bounding box centre and report
the length and contours of the resulting parting line.`,
	Args: cobra.ExactArgs(1),
	RunE: runSection,
}

func init() {
	rootCmd.AddCommand(sectionCmd)

	sectionCmd.Flags().StringVarP(&sectionAxis, "axis", "a", "XY", "Parting plane (XY, XZ or YZ)")
	sectionCmd.Flags().Float64Var(&sectionOffset, "offset", 0, "Shift of the plane from the bounding box centre along its normal")
}

func runSection(cmd *cobra.Command, args []string) error {
	filename := args[0]

	m, err := loadPart(cmd.Context(), filename)
	if err != nil {
		return err
	}
	axis, err := parting.ParseAxis(sectionAxis)
	if err != nil {
		return err
	}

	normal := axis.Normal()
	origin := m.Centroid()
	component := axis.MirrorComponent()
	origin = geometry.WithComponent(origin, component, geometry.Component(origin, component)+sectionOffset)

	fmt.Printf("Parting line for plane %s\n", axis)
	fmt.Println("========================")
	fmt.Printf("Plane origin: (%.6f, %.6f, %.6f)\n", origin.X, origin.Y, origin.Z)

	section, ok := m.CrossSection(origin, normal)
	if !ok {
		fmt.Println("The plane does not cut the part.")
		return nil
	}

	fmt.Printf("Segments: %d\n", len(section.Segments))
	fmt.Printf("Length: %.6f units\n", section.Length())
	fmt.Printf("Contours: %d\n\n", len(section.Contours))

	for i, c := range section.Contours {
		state := "open"
		if c.Closed {
			state = "closed"
		}
		fmt.Printf("Contour #%d: %d points, %s, length %.6f units\n", i+1, len(c.Points), state, c.Length())
	}
	return nil
}
