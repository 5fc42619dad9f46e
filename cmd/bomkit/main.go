package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pedalbuild/bomkit/pkg/interfaces/cli/commands"
)

var (
	// Global flags
	verbose    bool
	tablesFile string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bomkit",
	Short: "bomkit - BOM normalization and net-needs planning",
	Long: `bomkit merges bills of materials from text and CSV sources into a
canonical part map, nets the requirements against on-hand inventory, and
produces a purchase-ready shopping list with buffer quantities, supplier
search links, and substitution advice.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config = zap.NewDevelopmentConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	SilenceUsage: true,
}

var (
	planBOMFiles   []string
	planCSVFiles   []string
	planInventory  string
	planBuilds     int
	planFormat     string
	planOutputDir  string
	planNoInject   bool
	planNoHardware bool
)

// planCmd merges BOM sources and computes the shopping list
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Merge BOM sources and compute net needs against inventory",
	Long: `Reads one or more BOM files, merges identical parts across sources,
injects support components (IC sockets, adapter boards, enclosure
hardware), subtracts on-hand inventory, and prints the resulting
shopping list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		planner := commands.NewPlanCommand(commands.Config{
			BOMFiles:      planBOMFiles,
			CSVFiles:      planCSVFiles,
			InventoryFile: planInventory,
			TablesFile:    tablesFile,
			Builds:        planBuilds,
			Format:        planFormat,
			OutputDir:     planOutputDir,
			NoInject:      planNoInject,
			NoHardware:    planNoHardware,
			Verbose:       verbose,
			Logger:        logger,
		})
		return planner.Execute(cmd.Context())
	},
}

var normalizeCategory string

// normalizeCmd resolves raw value tokens for debugging
var normalizeCmd = &cobra.Command{
	Use:   "normalize [value]...",
	Short: "Show the canonical form of raw component values",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		norm := commands.NewNormalizeCommand(commands.NormalizeConfig{
			Values:     args,
			Category:   normalizeCategory,
			TablesFile: tablesFile,
		})
		return norm.Execute(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&tablesFile, "tables", "", "YAML file overriding the built-in knowledge tables")

	planCmd.Flags().StringArrayVarP(&planBOMFiles, "bom", "b", nil, "text BOM file (repeatable)")
	planCmd.Flags().StringArrayVarP(&planCSVFiles, "csv", "c", nil, "CSV BOM file (repeatable)")
	planCmd.Flags().StringVarP(&planInventory, "inventory", "i", "", "on-hand inventory CSV")
	planCmd.Flags().IntVar(&planBuilds, "builds", 0, "number of builds to add standard hardware for")
	planCmd.Flags().StringVarP(&planFormat, "format", "f", "text", "output format (text, csv)")
	planCmd.Flags().StringVarP(&planOutputDir, "output-dir", "o", ".", "directory for CSV output files")
	planCmd.Flags().BoolVar(&planNoInject, "no-inject", false, "skip support component injection")
	planCmd.Flags().BoolVar(&planNoHardware, "no-hardware", false, "skip standard enclosure hardware")

	normalizeCmd.Flags().
		StringVar(&normalizeCategory, "category", "", "category context for implied units (e.g. Resistors)")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(normalizeCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
