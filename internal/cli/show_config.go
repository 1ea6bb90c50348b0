// internal/cli/show_config.go
package frameworkstats

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/frameworkstats/internal/appconfig"
)

var showConfigFile string

// showConfigCmd prints the merged configuration.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long: `Show config settings ensuring that the JSON configs are loaded properly and overridden by flags accordingly.
With --file, the given JSON file is loaded and validated on its own and printed instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShowConfig(cmd.OutOrStdout(), showConfigFile, GetConfig())
	},
}

// runShowConfig prints either the active configuration or, when file is set,
// a standalone configuration file validated through appconfig.Load.
func runShowConfig(out io.Writer, file string, current *appconfig.Config) error {
	if file != "" {
		cfg, err := appconfig.Load(file)
		if err != nil {
			return err
		}
		appconfig.ShowConfig(out, cfg.ConfigPath, &cfg)
		return nil
	}
	if current == nil {
		return errors.New("configuration is not initialized")
	}
	appconfig.ShowConfig(out, viper.ConfigFileUsed(), current)
	return nil
}

func init() {
	showConfigCmd.Flags().StringVar(&showConfigFile, "file", "", "Load and validate this JSON config file instead of showing the active one")
	showCmd.AddCommand(showConfigCmd)
}
