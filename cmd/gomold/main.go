package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/philipparndt/gomold/internal/config"
	"github.com/philipparndt/gomold/internal/monitoring"
	"github.com/philipparndt/gomold/version"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	configPath        string
	flags             config.Flags
	draftTolerance    float64
	symmetryTolerance float64

	cfg    = config.Default()
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "gomold",
	Short: "Find the parting plane of injection molded parts",
	Long: `gomold analyzes STL and OpenSCAD parts for injection molding.
It evaluates the XY, XZ and YZ planes as parting planes using mirror symmetry,
draft compliance, undercuts and parting line length, and picks the best one.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "Path to a JSON config file")
	pf.StringVar(&flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.Float64Var(&draftTolerance, "draft-tolerance", 0, "Draft tolerance in degrees (default from config)")
	pf.Float64Var(&symmetryTolerance, "symmetry-tolerance", 0, "Mirror symmetry tolerance (default from config)")
	pf.BoolVar(&flags.NoCrossSections, "no-cross-sections", false, "Skip parting line length measurement")
	pf.StringVar(&flags.HistoryPath, "history", "", "Path of the analysis history database")
}

func setup(cmd *cobra.Command, args []string) error {
	loaded := config.Default()
	if configPath != "" {
		var err error
		if loaded, err = config.Load(configPath); err != nil {
			return err
		}
	}

	overrides := flags
	if cmd.Flags().Changed("draft-tolerance") {
		overrides.DraftToleranceDeg = &draftTolerance
	}
	if cmd.Flags().Changed("symmetry-tolerance") {
		overrides.SymmetryTolerance = &symmetryTolerance
	}
	loaded.Resolve(overrides)
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded

	l, err := monitoring.Setup(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger = l
	logger.Debug().Str("config", configPath).Msg("configuration loaded")
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
