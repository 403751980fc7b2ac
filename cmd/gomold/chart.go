package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gomold/internal/report"
	"github.com/spf13/cobra"
)

var chartOut string

var chartCmd = &cobra.Command{
	Use:   "chart [file]",
	Short: "Chart the parting plane scores",
	Long:  "Write the per-plane scores as a bar chart, a PNG image or an interactive HTML page depending on the output extension.",
	Args:  cobra.ExactArgs(1),
	RunE:  runChart,
}

func init() {
	rootCmd.AddCommand(chartCmd)

	chartCmd.Flags().StringVarP(&chartOut, "out", "o", "scores.png", "Output file (.png or .html)")
}

func runChart(cmd *cobra.Command, args []string) (err error) {
	filename := args[0]

	m, result, err := analyzePart(cmd.Context(), filename)
	if err != nil {
		return err
	}

	format := report.FormatPNG
	if ext := strings.ToLower(filepath.Ext(chartOut)); ext == ".html" || ext == ".htm" {
		format = report.FormatHTML
	}

	f, err := os.Create(chartOut)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	title := fmt.Sprintf("Parting plane scores: %s", m.Name())
	if err := report.WriteScoreChart(f, title, result, format); err != nil {
		return err
	}

	fmt.Printf("Chart written to %s\n", chartOut)
	return nil
}
