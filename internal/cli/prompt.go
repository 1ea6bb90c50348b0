// internal/cli/prompt.go
package frameworkstats

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwiater/frameworkstats/internal/complexity"
	"github.com/mwiater/frameworkstats/internal/source"
)

// promptCmd prints the complexity prompt without calling a model.
var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the complexity-scoring prompt for the current implementations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return errors.New("configuration is not initialized")
		}
		ids, err := cfg.FrameworkIDs()
		if err != nil {
			return err
		}
		impls, err := source.NewReader(cfg.ImplementationsPath(), cfg.Extensions()).ReadAll(ids)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), complexity.BuildPrompt(impls))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)
}
