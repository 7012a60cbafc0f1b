package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/junitmig/formatter"
	"github.com/gnoswap-labs/junitmig/internal/fixer"
	"github.com/gnoswap-labs/junitmig/migrate"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-check Java files as they are written",
	RunE: func(cmd *cobra.Command, args []string) error {
		dirs := args
		if len(dirs) == 0 {
			dirs = []string{"."}
		}

		engine, err := newEngine()
		if err != nil {
			return err
		}
		opts := engineOptions(engine)
		opts.Diff = true

		w, err := migrate.NewWatcher(engine, logger, dirs, opts)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		w.OnReport(func(r *fixer.Report) {
			fmt.Fprint(out, formatter.FormatReport(r, verbose))
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("watching", zap.Strings("dirs", dirs))
		return w.Watch(ctx)
	},
}

func init() {
	addEngineFlags(watchCmd)
}
