package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the appliance's UAA",
		Long:  "Prompts for the operator username and password, exchanges them for a bearer token via the owner-password grant, and caches the token for later commands. Other commands authenticate lazily; login just warms the session eagerly.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := app.settings()
			if err != nil {
				return err
			}

			if _, err := app.session(settings).Authenticate(cmd.Context()); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged in.")
			return nil
		},
	}
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the cached session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.store.SetToken(""); err != nil {
				return fmt.Errorf("clear session token: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}
