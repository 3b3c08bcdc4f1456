package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartshelf/inventory-system/internal/client/guard"
	"github.com/smartshelf/inventory-system/internal/client/pages"
)

var salesCmd = &cobra.Command{
	Use:   "sales",
	Short: "Record sales and view reports",
}

var salesRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a sale from the inventory dashboard",
	Long: `Record units of a product as sold. The sale is rejected when stock is
insufficient.

Examples:
  smartshelf sales record --product 665f1c --quantity 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, _ := cmd.Flags().GetString("product")
		qty, _ := cmd.Flags().GetInt("quantity")
		if qty <= 0 {
			return fmt.Errorf("--quantity must be positive")
		}

		env, err := setup(cmd)
		if err != nil {
			return err
		}
		if err := env.open(guard.PathDashboard); err != nil {
			return err
		}

		page := pages.NewInventory(env.api)
		sale, err := page.RecordSale(cmd.Context(), productID, qty)
		if err != nil {
			return pageError(page.Error, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d x %s (sale %s)\n", page.Notice, sale.QuantitySold, sale.ProductName, sale.ID)
		return nil
	},
}

var salesReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show sales in a date range (store managers and admins)",
	Long: `Show recorded sales. Dates are YYYY-MM-DD or RFC 3339; without them the
server reports everything.

Examples:
  smartshelf sales report
  smartshelf sales report --from 2024-05-01 --to 2024-05-31`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fromRaw, _ := cmd.Flags().GetString("from")
		toRaw, _ := cmd.Flags().GetString("to")

		from, err := parseDate(fromRaw, false)
		if err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		to, err := parseDate(toRaw, true)
		if err != nil {
			return fmt.Errorf("--to: %w", err)
		}

		env, err := setup(cmd)
		if err != nil {
			return err
		}
		if err := env.open(guard.PathSalesReport); err != nil {
			return err
		}

		page := pages.NewSalesReport(env.api)
		page.Start, page.End = from, to
		if err := page.Load(cmd.Context()); err != nil {
			return pageError(page.Error, err)
		}
		printSales(cmd.OutOrStdout(), page.Sales)
		fmt.Fprintf(cmd.OutOrStdout(), "\nSales: %d   Units sold: %d\n", len(page.Sales), page.UnitsSold)
		return nil
	},
}

var buyCmd = &cobra.Command{
	Use:   "buy <productId>:<quantity>...",
	Short: "Purchase products from the storefront",
	Long: `Check out a cart from the storefront. Each line is recorded as its own
sale, in order; checkout stops at the first rejected line.

Examples:
  smartshelf buy 665f1c:2 665f2a:1`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cart, err := parseCart(args)
		if err != nil {
			return err
		}

		env, err := setup(cmd)
		if err != nil {
			return err
		}
		if err := env.open(guard.PathUserDashboard); err != nil {
			return err
		}

		page := pages.NewStorefront(env.api)
		sales, err := page.Purchase(cmd.Context(), cart)
		for _, s := range sales {
			fmt.Fprintf(cmd.OutOrStdout(), "Bought %d x %s\n", s.QuantitySold, s.ProductName)
		}
		if err != nil {
			return pageError(page.Error, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), page.Notice)
		return nil
	},
}

func parseCart(args []string) ([]pages.CartLine, error) {
	cart := make([]pages.CartLine, 0, len(args))
	for _, arg := range args {
		id, rawQty, ok := strings.Cut(arg, ":")
		if !ok {
			rawQty = "1"
		}
		qty, err := strconv.Atoi(rawQty)
		if err != nil || qty <= 0 || id == "" {
			return nil, fmt.Errorf("invalid cart line %q: want <productId>:<quantity>", arg)
		}
		cart = append(cart, pages.CartLine{ProductID: id, Quantity: qty})
	}
	return cart, nil
}

// parseDate accepts YYYY-MM-DD or RFC 3339. A bare end date covers the whole
// day.
func parseDate(raw string, endOfDay bool) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return t, nil
}

func init() {
	salesRecordCmd.Flags().String("product", "", "product ID")
	salesRecordCmd.Flags().Int("quantity", 1, "units sold")
	_ = salesRecordCmd.MarkFlagRequired("product")

	salesReportCmd.Flags().String("from", "", "start date")
	salesReportCmd.Flags().String("to", "", "end date")

	salesCmd.AddCommand(salesRecordCmd, salesReportCmd)
	rootCmd.AddCommand(salesCmd, buyCmd)
}
