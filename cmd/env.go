package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "JUNITMIG"

// applyEnv lets JUNITMIG_* variables stand in for flags that were not set
// on the command line, e.g. JUNITMIG_IGNORE_PATHS for --ignore-paths.
func applyEnv(cmd *cobra.Command) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	cfgFile = v.GetString("config")
	timeout = v.GetDuration("timeout")
	verbose = v.GetBool("verbose")
	if v.IsSet("workers") {
		workers = v.GetInt("workers")
	}
	if v.IsSet("ignore") {
		ignoreRules = v.GetString("ignore")
	}
	if v.IsSet("ignore-paths") {
		ignorePaths = v.GetString("ignore-paths")
	}
	return nil
}
