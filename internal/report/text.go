// Package report formats analysis results for people
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/philipparndt/gomold/pkg/analysis"
	"github.com/philipparndt/gomold/pkg/parting"
)

// Report bundles everything printed for one analyzed part
type Report struct {
	Name     string
	File     string
	Result   parting.SelectionResult
	Features *analysis.Features
}

// SymmetricPlanes returns the symmetric planes as a readable list
func SymmetricPlanes(r parting.SelectionResult) string {
	if len(r.SymmetricAxes) == 0 {
		return "none"
	}
	names := make([]string, len(r.SymmetricAxes))
	for i, a := range r.SymmetricAxes {
		names[i] = a.String()
	}
	return strings.Join(names, ", ")
}

// WriteText prints the report in the plain-text layout of the CLI
func WriteText(w io.Writer, rep Report) error {
	var b strings.Builder

	b.WriteString("Parting Plane Analysis\n")
	b.WriteString("======================\n")
	if rep.Name != "" {
		fmt.Fprintf(&b, "Name: %s\n", rep.Name)
	}
	if rep.File != "" {
		fmt.Fprintf(&b, "File: %s\n", rep.File)
	}
	b.WriteString("\n")

	res := rep.Result
	fmt.Fprintf(&b, "Symmetric planes: %s\n", SymmetricPlanes(res))
	fmt.Fprintf(&b, "Best parting plane: %s\n", res.BestAxis)
	if res.SymmetryPreferred() {
		fmt.Fprintf(&b, "  (lowest score was %s, symmetric plane preferred)\n", res.RawBest)
	}
	fmt.Fprintf(&b, "Undercut faces: %d\n\n", res.UndercutCount())

	b.WriteString("Per-plane metrics:\n")
	fmt.Fprintf(&b, "  %-5s %8s %9s %10s %8s %9s %8s\n", "Plane", "Draft", "Undercut", "Complexity", "Cosmetic", "Symmetric", "Score")
	for i, m := range res.Metrics {
		sym := "no"
		if m.Symmetric {
			sym = "yes"
		}
		marker := ""
		if m.Axis == res.BestAxis {
			marker = " *"
		}
		fmt.Fprintf(&b, "  %-5s %8.4f %9.4f %10.4f %8.4f %9s %8.4f%s\n",
			m.Axis, m.DraftCompliance, m.UndercutRatio, m.Complexity, m.Cosmetic, sym, res.Scores[i], marker)
	}

	if f := rep.Features; f != nil {
		b.WriteString("\nFeatures:\n")
		fmt.Fprintf(&b, "  Volume: %.6f cubic units\n", f.Volume)
		fmt.Fprintf(&b, "  Surface Area: %.6f square units\n", f.SurfaceArea)
		fmt.Fprintf(&b, "  Extents: %s\n", analysis.FormatVector(f.Extents))
		fmt.Fprintf(&b, "  Centroid: %s\n", analysis.FormatVector(f.Centroid))
		fmt.Fprintf(&b, "  Aspect Ratio: %.6f\n", f.AspectRatio)
		fmt.Fprintf(&b, "  Triangles: %d\n", f.TriangleCount)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
