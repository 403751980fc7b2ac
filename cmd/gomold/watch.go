package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/philipparndt/gomold/internal/loader"
	"github.com/philipparndt/gomold/internal/report"
	"github.com/philipparndt/gomold/pkg/preview"
	"github.com/philipparndt/gomold/pkg/watcher"
	"github.com/spf13/cobra"
)

var watchPreview string

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Re-run the analysis whenever a part changes",
	Long: `Analyze a part and analyze it again each time the file, or any file an
OpenSCAD part uses or includes, is saved. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchPreview, "preview", "", "Also render a preview image to this path on every change")
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := args[0]
	ctx := cmd.Context()

	fw, err := watcher.NewFileWatcher(watcher.DefaultDebounce, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	var mu sync.Mutex
	var rerun func(string)
	rerun = func(changed string) {
		mu.Lock()
		defer mu.Unlock()

		if changed != "" {
			fmt.Printf("\n%s changed, re-analyzing\n\n", changed)
		}
		if err := watchAnalyze(ctx, filename); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		deps, err := loader.New(logger).Dependencies(filename)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to resolve dependencies")
			return
		}
		if err := fw.Watch(deps, rerun); err != nil {
			logger.Warn().Err(err).Msg("failed to watch dependencies")
		}
	}

	rerun("")
	if fw.Files() == 0 {
		return fmt.Errorf("nothing to watch for %s", filename)
	}
	fmt.Printf("\nWatching %d file(s) for changes, press Ctrl+C to stop\n", fw.Files())

	if err := fw.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func watchAnalyze(ctx context.Context, filename string) error {
	m, result, err := analyzePart(ctx, filename)
	if err != nil {
		return err
	}

	if err := report.WriteText(os.Stdout, report.Report{Name: m.Name(), File: filename, Result: result}); err != nil {
		return err
	}

	if watchPreview == "" {
		return nil
	}
	img, err := preview.Render(ctx, preview.Scene{Mesh: m, Result: &result}, cfg.PreviewOptions())
	if err != nil {
		return err
	}
	return preview.Save(watchPreview, img, cfg.Preview.Format)
}
