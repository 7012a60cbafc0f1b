package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/junitmig/formatter"
	"github.com/gnoswap-labs/junitmig/internal/fixer"
	tt "github.com/gnoswap-labs/junitmig/internal/types"
	"github.com/gnoswap-labs/junitmig/migrate"
)

// errPending makes check exit non-zero.
var errPending = errors.New("files need migration")

var (
	jsonOutput bool
	outPath    string
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Report pending migrations without writing files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := newEngine()
		if err != nil {
			return err
		}
		opts := engineOptions(engine)
		opts.DryRun = true
		opts.Diff = !jsonOutput

		return runCheck(ctx, cmd.OutOrStdout(), logger, engine, args, opts)
	},
}

func init() {
	checkCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output reports in JSON format")
	checkCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	addEngineFlags(checkCmd)
}

type jsonReport struct {
	Filename string     `json:"filename"`
	Changed  bool       `json:"changed"`
	Failed   bool       `json:"failed"`
	Issues   []tt.Issue `json:"issues"`
}

func runCheck(ctx context.Context, out io.Writer, logger *zap.Logger, engine migrate.Engine, paths []string, opts migrate.Options) error {
	opts.DryRun = true
	reports, err := migrate.ProcessFiles(ctx, logger, engine, paths, opts)

	if jsonOutput {
		if werr := writeJSON(out, reports, outPath); werr != nil {
			return werr
		}
	} else {
		for _, report := range reports {
			fmt.Fprint(out, formatter.FormatReport(report, verbose))
		}
		fmt.Fprint(out, formatter.FormatSummary(reports, true))
	}

	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		return fmt.Errorf("check incomplete: %w", err)
	}
	for _, report := range reports {
		if report.Changed || report.Failed() {
			return errPending
		}
	}
	return nil
}

func writeJSON(out io.Writer, reports []*fixer.Report, path string) error {
	payload := make([]jsonReport, 0, len(reports))
	for _, r := range reports {
		payload = append(payload, jsonReport{
			Filename: r.Filename,
			Changed:  r.Changed,
			Failed:   r.Failed(),
			Issues:   r.Issues,
		})
	}
	d, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshalling reports to JSON: %w", err)
	}

	if path == "" {
		_, err = fmt.Fprintln(out, string(d))
		return err
	}
	if err := os.WriteFile(path, d, 0o644); err != nil {
		return fmt.Errorf("error writing JSON output file: %w", err)
	}
	return nil
}
