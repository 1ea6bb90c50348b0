// internal/cli/generate.go
package frameworkstats

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwiater/frameworkstats/internal/appconfig"
	"github.com/mwiater/frameworkstats/internal/benchmark"
	"github.com/mwiater/frameworkstats/internal/browser"
	"github.com/mwiater/frameworkstats/internal/complexity"
	"github.com/mwiater/frameworkstats/internal/providerfactory"
	"github.com/mwiater/frameworkstats/internal/source"
)

// measurer is a Measurer that owns a browser process.
type measurer interface {
	browser.Measurer
	Close() error
}

var (
	launchBrowser = func(ctx context.Context, opts browser.Options) (measurer, error) {
		return browser.Launch(ctx, opts)
	}
	newCompleter = providerfactory.NewCompleter
)

// generateCmd measures every framework and rewrites the stats file.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Measure bundle size and render time, score complexity, and write the stats file",
	Long: `Load each framework's demo route in a headless browser, take the median bundle
size and render time over the configured iterations, score complexity with the
configured model (or carry previous scores forward), compute z-scores, and
replace the stats file. Nothing is written unless every framework succeeds.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return errors.New("configuration is not initialized")
		}
		return runGenerate(cmd.Context(), cmd, *cfg)
	},
}

func runGenerate(ctx context.Context, cmd *cobra.Command, cfg appconfig.Config) error {
	reader := source.NewReader(cfg.ImplementationsPath(), cfg.Extensions())

	var scorer complexity.Scorer
	if cfg.UpdateComplexityScores {
		completer, err := newCompleter(ctx, &cfg)
		if err != nil {
			return err
		}
		defer completer.Close()
		scorer = complexity.NewEvaluator(completer, cfg.ModelName())
	}

	chrome, err := launchBrowser(ctx, browser.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}
	defer chrome.Close()

	runner, err := benchmark.NewRunner(cfg, reader, browser.NewHarness(chrome, cfg), scorer)
	if err != nil {
		return err
	}
	file, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	printSummary(cmd.OutOrStdout(), file)
	return nil
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
