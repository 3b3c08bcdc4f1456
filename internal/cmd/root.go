// Package cmd implements the smartshelf command line client.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "smartshelf",
	Short: "Terminal client for the SmartShelf inventory API",
	Long: `smartshelf signs in to a SmartShelf backend and opens the pages your role
can reach: the store manager dashboard, the admin dashboard, the storefront,
sales reports, demand forecasts and user management.

The session (token and role) is kept in a file readable only by you.
Set SMARTSHELF_API_URL to point at a backend other than http://localhost:8080/api.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
