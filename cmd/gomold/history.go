package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/philipparndt/gomold/internal/history"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded analysis runs",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one recorded analysis run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to display (0 for all)")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No analysis runs recorded.")
		return nil
	}

	fmt.Printf("%-36s  %-19s  %-5s  %-9s  %s\n", "ID", "Time", "Plane", "Undercuts", "File")
	for _, run := range runs {
		fmt.Printf("%-36s  %-19s  %-5s  %9d  %s\n",
			run.ID, run.CreatedAt.Local().Format(time.DateTime), run.BestAxis, run.UndercutCount, run.FileName)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	symmetric := make([]string, len(run.SymmetricAxes))
	for i, a := range run.SymmetricAxes {
		symmetric[i] = a.String()
	}
	if len(symmetric) == 0 {
		symmetric = []string{"none"}
	}

	fmt.Printf("Run: %s\n", run.ID)
	fmt.Printf("File: %s\n", run.FileName)
	fmt.Printf("Fingerprint: %s\n", run.Fingerprint)
	fmt.Printf("Time: %s\n", run.CreatedAt.Local().Format(time.RFC3339))
	fmt.Printf("Symmetric planes: %s\n", strings.Join(symmetric, ", "))
	fmt.Printf("Best parting plane: %s\n", run.BestAxis)
	if run.RawBest != run.BestAxis {
		fmt.Printf("  (lowest score was %s, symmetric plane preferred)\n", run.RawBest)
	}
	fmt.Printf("Undercut faces: %d\n", run.UndercutCount)
	fmt.Printf("Scores: XY %.4f, XZ %.4f, YZ %.4f\n", run.Scores[0], run.Scores[1], run.Scores[2])
	return nil
}
