package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartshelf/inventory-system/internal/client/gateway"
	"github.com/smartshelf/inventory-system/internal/client/guard"
	"github.com/smartshelf/inventory-system/internal/client/pages"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse and manage inventory",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products on your dashboard",
	Long: `List products. Store managers see the inventory dashboard, admins the
admin dashboard and users the storefront.

Examples:
  smartshelf products list
  smartshelf products list --category tools --max-stock 20`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := productFilter(cmd)
		if err != nil {
			return err
		}

		env, err := setup(cmd)
		if err != nil {
			return err
		}

		role, ok := env.session.Role()
		if !ok {
			return errNotLoggedIn
		}
		home := guard.HomeRoute(role)
		if err := env.open(home); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch home {
		case guard.PathDashboard:
			page := pages.NewInventory(env.api)
			page.Filter = filter
			if err := page.Load(cmd.Context()); err != nil {
				return pageError(page.Error, err)
			}
			printProducts(out, page.Products)
			printStats(out, page.Stats)
		case guard.PathAdminDashboard:
			page := pages.NewAdminInventory(env.api)
			page.Filter = filter
			if err := page.Load(cmd.Context()); err != nil {
				return pageError(page.Error, err)
			}
			printProducts(out, page.Products)
			printStats(out, page.Stats)
		default:
			page := pages.NewStorefront(env.api)
			page.Filter = filter
			if err := page.Load(cmd.Context()); err != nil {
				return pageError(page.Error, err)
			}
			printProducts(out, page.Products)
		}
		return nil
	},
}

var productsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a product (store managers and admins)",
	Long: `Add a product to the inventory.

Examples:
  smartshelf products add --name Hammer --category tools --quantity 40 --price 12.5 --supplier Acme`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := productInput(cmd)

		env, err := setup(cmd)
		if err != nil {
			return err
		}
		if err := env.open(guard.PathDashboard); err != nil {
			return err
		}

		page := pages.NewInventory(env.api)
		p, err := page.Create(cmd.Context(), in)
		if err != nil {
			return pageError(page.Error, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (id %s)\n", page.Notice, p.ID)
		return nil
	},
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a product's details (store managers and admins)",
	Long: `Replace every field of a product. Fields not given are sent empty, as
the web form does.

Examples:
  smartshelf products update 665f1c --name Hammer --category tools --quantity 35 --price 12.5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := productInput(cmd)

		env, err := setup(cmd)
		if err != nil {
			return err
		}
		if err := env.open(guard.PathDashboard); err != nil {
			return err
		}

		page := pages.NewInventory(env.api)
		if _, err := page.Update(cmd.Context(), args[0], in); err != nil {
			return pageError(page.Error, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), page.Notice)
		return nil
	},
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product (store managers and admins)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd)
		if err != nil {
			return err
		}
		if err := env.open(guard.PathDashboard); err != nil {
			return err
		}

		page := pages.NewInventory(env.api)
		if err := page.Delete(cmd.Context(), args[0]); err != nil {
			return pageError(page.Error, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), page.Notice)
		return nil
	},
}

func productFilter(cmd *cobra.Command) (gateway.ProductFilter, error) {
	category, _ := cmd.Flags().GetString("category")
	supplier, _ := cmd.Flags().GetString("supplier")
	f := gateway.ProductFilter{Category: category, Supplier: supplier}

	if cmd.Flags().Changed("max-stock") {
		limit, _ := cmd.Flags().GetInt("max-stock")
		if limit < 0 {
			return f, fmt.Errorf("--max-stock must not be negative")
		}
		f.MaxStock = &limit
	}
	return f, nil
}

func productInput(cmd *cobra.Command) gateway.ProductInput {
	name, _ := cmd.Flags().GetString("name")
	category, _ := cmd.Flags().GetString("category")
	quantity, _ := cmd.Flags().GetInt("quantity")
	price, _ := cmd.Flags().GetFloat64("price")
	supplier, _ := cmd.Flags().GetString("supplier")
	image, _ := cmd.Flags().GetString("image-url")
	return gateway.ProductInput{
		ProductName: name,
		Category:    category,
		Quantity:    quantity,
		Price:       price,
		Supplier:    supplier,
		ImageURL:    image,
	}
}

func init() {
	productsListCmd.Flags().String("category", "", "only this category")
	productsListCmd.Flags().String("supplier", "", "only this supplier")
	productsListCmd.Flags().Int("max-stock", 0, "only products with at most this many units")

	for _, c := range []*cobra.Command{productsAddCmd, productsUpdateCmd} {
		c.Flags().String("name", "", "product name")
		c.Flags().String("category", "", "category")
		c.Flags().Int("quantity", 0, "units in stock")
		c.Flags().Float64("price", 0, "unit price")
		c.Flags().String("supplier", "", "supplier")
		c.Flags().String("image-url", "", "image URL")
		_ = c.MarkFlagRequired("name")
	}

	productsCmd.AddCommand(productsListCmd, productsAddCmd, productsUpdateCmd, productsDeleteCmd)
	rootCmd.AddCommand(productsCmd)
}
