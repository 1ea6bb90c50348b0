// internal/cli/normalize.go
package frameworkstats

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwiater/frameworkstats/internal/appconfig"
	"github.com/mwiater/frameworkstats/internal/logging"
	"github.com/mwiater/frameworkstats/internal/stats"
)

// normalizeCmd recomputes z-scores in the existing stats file.
var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Recompute z-scores in the current stats file from its raw values",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return errors.New("configuration is not initialized")
		}
		file, err := runNormalize(*cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Normalized %d frameworks in %s\n", len(file.Frameworks), cfg.StatsFilePath())
		return nil
	},
}

func runNormalize(cfg appconfig.Config) (*stats.File, error) {
	ms, err := stats.MetricsByName(cfg.Metrics)
	if err != nil {
		return nil, err
	}
	file, err := stats.Load(cfg.StatsFilePath())
	if err != nil {
		return nil, err
	}
	if len(file.Frameworks) == 0 {
		return nil, fmt.Errorf("no framework records in %s", cfg.StatsFilePath())
	}

	file.Frameworks = stats.Normalize(file.Frameworks, ms)
	file.Metadata.Metrics = stats.Descriptions(ms)
	if err := stats.Save(cfg.StatsFilePath(), file, cfg.FlatOutput); err != nil {
		return nil, err
	}
	logging.LogEvent("Recomputed z-scores for %d frameworks", len(file.Frameworks))
	return file, nil
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}
