package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/junitmig/formatter"
	"github.com/gnoswap-labs/junitmig/migrate"
)

var (
	dryRun   bool
	showDiff bool
)

var runCmd = &cobra.Command{
	Use:   "run [paths...]",
	Short: "Migrate JUnit 4 tests in place",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := newEngine()
		if err != nil {
			return err
		}
		opts := engineOptions(engine)
		opts.DryRun = dryRun
		opts.Diff = showDiff

		return runMigration(ctx, cmd.OutOrStdout(), logger, engine, args, opts)
	},
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report the migration without writing files")
	runCmd.Flags().BoolVar(&showDiff, "diff", false, "Print a unified diff of every changed file")
	addEngineFlags(runCmd)
}

// runMigration migrates paths, prints what could not be migrated and a
// summary. Per-file errors are returned after every file was tried.
func runMigration(ctx context.Context, out io.Writer, logger *zap.Logger, engine migrate.Engine, paths []string, opts migrate.Options) error {
	reports, err := migrate.ProcessFiles(ctx, logger, engine, paths, opts)
	for _, report := range reports {
		fmt.Fprint(out, formatter.FormatReport(report, verbose))
	}
	fmt.Fprint(out, formatter.FormatSummary(reports, opts.DryRun))

	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		return fmt.Errorf("migration incomplete: %w", err)
	}
	return nil
}
