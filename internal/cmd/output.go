package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/smartshelf/inventory-system/internal/client/pages"
	"github.com/smartshelf/inventory-system/internal/core/domain"
)

func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return tw
}

func printProducts(w io.Writer, products []domain.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found.")
		return
	}
	tw := newTable(w, "ID", "NAME", "CATEGORY", "QTY", "PRICE", "SUPPLIER", "")
	for _, p := range products {
		flag := ""
		if p.LowStock() {
			flag = "low stock"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.2f\t%s\t%s\n", p.ID, p.ProductName, p.Category, p.Quantity, p.Price, p.Supplier, flag)
	}
	tw.Flush()
}

func printStats(w io.Writer, s pages.Stats) {
	fmt.Fprintf(w, "\nProducts: %d   Low stock: %d   Total value: %.2f\n", s.Products, s.LowStock, s.TotalValue)
}

func printSales(w io.Writer, sales []domain.Sale) {
	if len(sales) == 0 {
		fmt.Fprintln(w, "No sales in this period.")
		return
	}
	tw := newTable(w, "DATE", "PRODUCT", "QTY", "SALE ID")
	for _, s := range sales {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", s.SaleDate.Local().Format(time.DateTime), s.ProductName, s.QuantitySold, s.ID)
	}
	tw.Flush()
}

func printForecast(w io.Writer, items []domain.ForecastItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No forecast data.")
		return
	}
	tw := newTable(w, "PRODUCT", "STOCK", "PREDICTED (7D)", "STATUS")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%d\t%.1f\t%s\n", it.ProductName, it.CurrentStock, it.PredictedDemand, it.Status)
	}
	tw.Flush()
}

func printUsers(w io.Writer, users []domain.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users.")
		return
	}
	tw := newTable(w, "ID", "NAME", "EMAIL", "ROLE")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, u.FullName, u.Email, u.Role)
	}
	tw.Flush()
}
