package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartshelf/inventory-system/internal/client/guard"
	"github.com/smartshelf/inventory-system/internal/client/pages"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage accounts (admins)",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := openUsersPage(cmd)
		if err != nil {
			return err
		}
		if err := page.Load(cmd.Context()); err != nil {
			return pageError(page.Error, err)
		}
		printUsers(cmd.OutOrStdout(), page.Users)
		return nil
	},
}

var usersPromoteCmd = &cobra.Command{
	Use:   "promote <id>",
	Short: "Promote a user to STORE_MANAGER",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := openUsersPage(cmd)
		if err != nil {
			return err
		}
		if err := page.Promote(cmd.Context(), args[0]); err != nil {
			return pageError(page.Error, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), page.Notice)
		return nil
	},
}

var usersDemoteCmd = &cobra.Command{
	Use:   "demote <id>",
	Short: "Demote a store manager to USER",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := openUsersPage(cmd)
		if err != nil {
			return err
		}
		if err := page.Demote(cmd.Context(), args[0]); err != nil {
			return pageError(page.Error, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), page.Notice)
		return nil
	},
}

func openUsersPage(cmd *cobra.Command) (*pages.Users, error) {
	env, err := setup(cmd)
	if err != nil {
		return nil, err
	}
	if err := env.open(guard.PathAdminUsers); err != nil {
		return nil, err
	}
	return pages.NewUsers(env.api), nil
}

func init() {
	usersCmd.AddCommand(usersListCmd, usersPromoteCmd, usersDemoteCmd)
	rootCmd.AddCommand(usersCmd)
}
