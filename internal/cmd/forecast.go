package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartshelf/inventory-system/internal/client/guard"
	"github.com/smartshelf/inventory-system/internal/client/pages"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Show predicted demand for the next week (store managers and admins)",
	RunE: func(cmd *cobra.Command, args []string) error {
		restockOnly, _ := cmd.Flags().GetBool("restock")

		env, err := setup(cmd)
		if err != nil {
			return err
		}
		if err := env.open(guard.PathForecast); err != nil {
			return err
		}

		page := pages.NewForecast(env.api)
		if err := page.Load(cmd.Context()); err != nil {
			return pageError(page.Error, err)
		}

		items := page.Items
		if restockOnly {
			items = page.NeedsRestock()
		}
		printForecast(cmd.OutOrStdout(), items)
		fmt.Fprintf(cmd.OutOrStdout(), "\nRestock needed: %d of %d\n", len(page.NeedsRestock()), len(page.Items))
		return nil
	},
}

func init() {
	forecastCmd.Flags().Bool("restock", false, "only show products that need restocking")
	rootCmd.AddCommand(forecastCmd)
}
