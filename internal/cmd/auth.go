package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartshelf/inventory-system/internal/client/gateway"
	"github.com/smartshelf/inventory-system/internal/client/guard"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and open your home page",
	Long: `Sign in to SmartShelf. On success the token and role are saved and your
home page is opened: admins land on the admin dashboard, store managers on
the inventory dashboard and users on the storefront.

Examples:
  smartshelf login --email manager@shop.com --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		env, err := setup(cmd)
		if err != nil {
			return err
		}

		home, err := env.app.Login(cmd.Context(), email, password)
		if err != nil {
			return pageError("", err)
		}

		role, _ := env.session.Role()
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", email, role)
		fmt.Fprintf(cmd.OutOrStdout(), "Home: %s\n", home)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `Create a SmartShelf account. New accounts start with the USER role; an
admin can promote them later.

Examples:
  smartshelf register --name "Ana Diaz" --email ana@shop.com --password secret
  smartshelf register --name "Ana Diaz" --email ana@shop.com --password secret --contact 555-0100 --location Lisbon`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		contact, _ := cmd.Flags().GetString("contact")
		location, _ := cmd.Flags().GetString("location")

		env, err := setup(cmd)
		if err != nil {
			return err
		}

		msg, err := env.app.Register(cmd.Context(), gateway.Registration{
			FullName: name,
			Email:    email,
			Password: password,
			Contact:  contact,
			Location: location,
		})
		if err != nil {
			return pageError("", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), msg)
		fmt.Fprintln(cmd.OutOrStdout(), "You can now log in with `smartshelf login`.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd)
		if err != nil {
			return err
		}
		if _, err := env.app.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd)
		if err != nil {
			return err
		}

		role, ok := env.session.Role()
		if _, hasToken := env.session.Token(); !ok || !hasToken {
			fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Role: %s\nHome: %s\nAPI:  %s\n", role, guard.HomeRoute(role), env.cfg.APIURL)
		return nil
	},
}

var openCmd = &cobra.Command{
	Use:   "open <route>",
	Short: "Navigate to a page and show where the guard lands you",
	Long: `Navigate to a route the way the web client would. Routes your role cannot
open redirect to your home page; without a session every protected route
redirects to /login.

Routes:
  /login /register /dashboard /admin-dashboard /user-dashboard
  /sales-report /forecast /admin/users

Examples:
  smartshelf open /forecast`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd)
		if err != nil {
			return err
		}

		landed, err := env.app.Navigator.Navigate(args[0])
		if err != nil {
			return err
		}
		if landed != args[0] {
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> redirected to %s\n", args[0], landed)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), landed)
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().String("name", "", "full name")
	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("password", "", "account password (min 6 characters)")
	registerCmd.Flags().String("contact", "", "phone or other contact")
	registerCmd.Flags().String("location", "", "store location")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd, openCmd)
}
