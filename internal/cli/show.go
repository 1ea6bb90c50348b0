// internal/cli/show.go
package frameworkstats

import (
	"errors"
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/mwiater/frameworkstats/internal/ranking"
	"github.com/mwiater/frameworkstats/internal/stats"
)

var (
	showSort string
	showRaw  bool
)

// showCmd renders the current stats file and groups the other display commands.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the current stats file as a table",
	Long: `Render the stats file sorted by a metric and direction. With --sort none
the persisted display order is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return errors.New("configuration is not initialized")
		}
		opt, err := ranking.ParseSortOption(showSort)
		if err != nil {
			return err
		}

		file, err := stats.Load(cfg.StatsFilePath())
		if err != nil {
			return err
		}
		if showRaw {
			_, err := pp.Fprintln(cmd.OutOrStdout(), file)
			return err
		}

		ids := summaryOrder(file)
		order := ranking.Sort(ids, file.Frameworks, opt, ranking.LoadOrder(cfg.OrderFilePath()))
		fmt.Fprintln(cmd.OutOrStdout(), renderStatsTable(file.Frameworks, order))
		if !file.Metadata.GeneratedAt.IsZero() {
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %s, sorted by %s\n", file.Metadata.GeneratedAt.Format("2006-01-02 15:04:05 MST"), opt)
		}
		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&showSort, "sort", string(ranking.None), "sort option (none, bundleSizeAsc, bundleSizeDsc, complexityAsc, complexityDsc, renderTimeAsc, renderTimeDsc, characterCountAsc, characterCountDsc)")
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "dump the parsed stats file")
	rootCmd.AddCommand(showCmd)
}
