package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/junitmig/migrate"
)

const defaultTimeout = 5 * time.Minute

var (
	cfgFile string
	timeout time.Duration
	verbose bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:              "junitmig [paths...]",
	Short:            "junitmig - migrate JUnit 4 tests to JUnit 5",
	TraverseChildren: true, // Prioritize subcommands
	SilenceUsage:     true,
	SilenceErrors:    true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := applyEnv(cmd); err != nil {
			return err
		}
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		logger = l
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// display help when only 'junitmig' is entered
		if len(args) == 0 {
			return cmd.Help()
		}
		// Format: junitmig [path1 path2 ...] => behaves like the run subcommand
		return runCmd.RunE(runCmd, args)
	},
}

func Execute() error {
	defer func() { _ = logger.Sync() }()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", migrate.DefaultConfigFile, "Path to the configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Abort the migration after this duration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output and list every applied change")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(watchCmd)
}

// newLogger returns a development logger when verbose, otherwise a
// production logger that only reports warnings and errors.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return config.Build()
}

// engine flags shared by run, check and watch
var (
	ignoreRules string
	ignorePaths string
	workers     int
)

func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of rules to skip")
	cmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of path globs to skip")
	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "Files migrated at once (default: config value, then one per CPU)")
}

func newEngine() (*migrate.Migrator, error) {
	engine, err := migrate.New(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize migration engine: %w", err)
	}
	for _, rule := range splitList(ignoreRules) {
		engine.IgnoreRule(rule)
	}
	for _, path := range splitList(ignorePaths) {
		engine.IgnorePath(path)
	}
	return engine, nil
}

func engineOptions(engine *migrate.Migrator) migrate.Options {
	opts := migrate.Options{Workers: workers}
	if opts.Workers == 0 {
		opts.Workers = engine.Config().Workers
	}
	return opts
}

func splitList(list string) []string {
	var out []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
