// internal/cli/order.go
package frameworkstats

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwiater/frameworkstats/internal/frameworks"
	"github.com/mwiater/frameworkstats/internal/ranking"
)

// orderCmd groups the commands that manage the persisted display order.
var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Group commands for the persisted framework display order",
}

var orderShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved framework display order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return errors.New("configuration is not initialized")
		}
		printOrder(cmd.OutOrStdout(), ranking.LoadOrder(cfg.OrderFilePath()))
		return nil
	},
}

var orderSetCmd = &cobra.Command{
	Use:   "set <id>...",
	Short: "Save a framework display order; unlisted frameworks follow in canonical order",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return errors.New("configuration is not initialized")
		}
		order, err := ranking.SaveOrder(cfg.OrderFilePath(), args)
		if err != nil {
			return err
		}
		printOrder(cmd.OutOrStdout(), order)
		return nil
	},
}

var orderResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the saved display order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return errors.New("configuration is not initialized")
		}
		if err := ranking.ResetOrder(cfg.OrderFilePath()); err != nil {
			return err
		}
		printOrder(cmd.OutOrStdout(), frameworks.IDs())
		return nil
	},
}

func printOrder(w io.Writer, ids []string) {
	names := make([]string, 0, len(ids))
	for i, id := range ids {
		names = append(names, fmt.Sprintf("%d. %s (%s)", i+1, frameworks.DisplayName(id), id))
	}
	fmt.Fprintln(w, strings.Join(names, "\n"))
}

func init() {
	orderCmd.AddCommand(orderShowCmd, orderSetCmd, orderResetCmd)
	rootCmd.AddCommand(orderCmd)
}
