package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/cfkit-labs/cfkit/internal/config"
	"github.com/cfkit-labs/cfkit/internal/errs"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: heredoc.Docf(`
		Read and write cfkit configuration stored at %s.

		Keys:
		  log_level       zap level used when --verbose is not set
		  templates_dir   directory that replaces the built-in template bundles
		  template_host   base URL the cx-server scripts are downloaded from
		  npm_registry    registry queried when version_lookup is "registry"
		  version_lookup  "npm" (npm view) or "registry" (HTTP)

		Every key can also be set through the environment, e.g. CFKIT_LOG_LEVEL.
	`, config.FilePath()),
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  usageArgs(cobra.ExactArgs(2)),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  usageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !config.IsKnownKey(args[0]) {
			return errs.New(errs.KindUsage, "config.get", "unknown config key %q", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, k := range config.Keys {
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", k, config.Get(k))
		}
		return nil
	},
}
