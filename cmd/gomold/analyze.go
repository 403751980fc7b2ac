package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/philipparndt/gomold/internal/history"
	"github.com/philipparndt/gomold/internal/report"
	"github.com/philipparndt/gomold/pkg/analysis"
	"github.com/philipparndt/gomold/pkg/mesh"
	"github.com/philipparndt/gomold/pkg/parting"
	"github.com/spf13/cobra"
)

var (
	analyzeJSON      bool
	analyzeNoHistory bool
)

type analyzeOutput struct {
	File     string                  `json:"file"`
	Name     string                  `json:"name"`
	RunID    string                  `json:"run_id,omitempty"`
	Result   parting.SelectionResult `json:"result"`
	Features *analysis.Features      `json:"features,omitempty"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Select the parting plane of a part",
	Long: `Evaluate the XY, XZ and YZ planes as parting planes and report the symmetric
planes, the selected plane, its undercut faces and the per-plane metrics.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the result as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeNoHistory, "no-history", false, "Do not record the run in the history database")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	filename := args[0]
	ctx := cmd.Context()

	m, result, err := analyzePart(ctx, filename)
	if err != nil {
		return err
	}

	out := analyzeOutput{File: filename, Name: m.Name(), Result: result}
	features, err := analysis.ExtractFeatures(m)
	switch {
	case err == nil:
		out.Features = &features
	case errors.Is(err, mesh.ErrGeometryDegenerate):
		logger.Warn().Err(err).Msg("features unavailable")
	default:
		return err
	}

	if !analyzeNoHistory {
		out.RunID = recordRun(ctx, filename, m, result)
	}

	if analyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	return report.WriteText(os.Stdout, report.Report{
		Name:     m.Name(),
		File:     filename,
		Result:   result,
		Features: out.Features,
	})
}

// recordRun stores the run in the history database. Failures are logged
// and do not fail the analysis.
func recordRun(ctx context.Context, filename string, m *mesh.TriangleMesh, result parting.SelectionResult) string {
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.History.Path).Msg("history unavailable")
		return ""
	}
	defer store.Close()

	run, err := store.Record(ctx, history.NewRun(filename, m.Fingerprint(), result))
	if err != nil {
		logger.Warn().Err(err).Msg("failed to record analysis run")
		return ""
	}
	logger.Debug().Str("run", run.ID).Msg("analysis recorded")
	return run.ID
}
