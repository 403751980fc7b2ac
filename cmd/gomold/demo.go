package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/philipparndt/gomold/internal/sample"
	"github.com/philipparndt/gomold/pkg/mesh"
	"github.com/philipparndt/gomold/pkg/stl"
	"github.com/spf13/cobra"
)

var (
	demoOut   string
	demoCells int
	demoList  bool
)

var analyticParts = []struct {
	name        string
	description string
	build       func() (*mesh.TriangleMesh, error)
}{
	{"cube", "40 mm cube, symmetric across every plane", func() (*mesh.TriangleMesh, error) {
		return sample.Cube(40)
	}},
	{"overhang", "40 mm cube with 3x3 spikes hanging below it", func() (*mesh.TriangleMesh, error) {
		return sample.Overhang(40, 3, 10)
	}},
}

var demoCmd = &cobra.Command{
	Use:   "demo [part...]",
	Short: "Write demonstration parts as STL files",
	Long: `Generate sample parts for trying the analysis. Analytic parts are exact
meshes; the others are signed distance solids meshed with marching cubes.
Without arguments every part is written.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().StringVarP(&demoOut, "out", "o", ".", "Output directory")
	demoCmd.Flags().IntVar(&demoCells, "cells", sample.DefaultMeshCells, "Marching cubes resolution")
	demoCmd.Flags().BoolVarP(&demoList, "list", "l", false, "List the available parts")
}

func buildDemoPart(name string) (*mesh.TriangleMesh, error) {
	for _, p := range analyticParts {
		if p.name == name {
			return p.build()
		}
	}
	return sample.Generate(name, demoCells)
}

func runDemo(cmd *cobra.Command, args []string) error {
	if demoList {
		fmt.Println("Demo parts")
		fmt.Println("==========")
		for _, p := range analyticParts {
			fmt.Printf("  %-12s %s\n", p.name, p.description)
		}
		for _, p := range sample.Parts() {
			fmt.Printf("  %-12s %s\n", p.Name, p.Description)
		}
		return nil
	}

	names := args
	if len(names) == 0 {
		for _, p := range analyticParts {
			names = append(names, p.name)
		}
		for _, p := range sample.Parts() {
			names = append(names, p.Name)
		}
	}

	if err := os.MkdirAll(demoOut, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, name := range names {
		if err := cmd.Context().Err(); err != nil {
			return err
		}

		m, err := buildDemoPart(name)
		if err != nil {
			return err
		}
		path := filepath.Join(demoOut, name+".stl")
		if err := stl.Save(path, m); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%d triangles)\n", path, m.FaceCount())
	}
	return nil
}
