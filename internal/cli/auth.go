package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCmd(app *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a staff account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(); err != nil {
				return err
			}

			user, err := app.client.Register(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			fmt.Printf("Account %q created. Log in with `classtrack login`.\n", user.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd(app *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify credentials and stay signed in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(); err != nil {
				return err
			}

			if err := app.sess.Login(cmd.Context(), username, password); err != nil {
				return err
			}
			fmt.Printf("Logged in as %s.\n", app.sess.Username())
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(); err != nil {
				return err
			}
			if err := app.sess.Logout(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			fmt.Println(app.sess.Username())
			return nil
		},
	}
}
