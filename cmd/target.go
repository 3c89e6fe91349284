package cmd

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newTargetCmd(app *app) *cobra.Command {
	var skipSSLValidation bool

	cmd := &cobra.Command{
		Use:   "target [url]",
		Short: "Set or show the appliance to operate against",
		Long:  "With a URL, persists the appliance target and its TLS posture. Skipping certificate validation is for appliances with self-signed certificates and applies to every later command against this target. Without arguments, prints the current target.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return showTarget(cmd, app)
			}
			return setTarget(cmd, app, args[0], skipSSLValidation)
		},
	}

	cmd.Flags().BoolVar(&skipSSLValidation, "skip-ssl-validation", false, "Do not verify the appliance's TLS certificate (self-signed appliances)")

	return cmd
}

func showTarget(cmd *cobra.Command, app *app) error {
	settings, err := app.store.Settings()
	if err != nil {
		return err
	}
	if settings.TargetURL == "" {
		return errors.New("no target configured")
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), settings.TargetURL)
	if settings.SkipSSLValidation {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "warning: TLS certificate validation is disabled for this target")
	}
	return nil
}

func setTarget(cmd *cobra.Command, app *app, target string, skipSSLValidation bool) error {
	parsed, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("parse target url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("target url must use http or https")
	}
	if parsed.Host == "" {
		return errors.New("target url host is required")
	}

	if err := app.store.SetTarget(target, skipSSLValidation); err != nil {
		return fmt.Errorf("persist target: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Targeting %s\n", target)
	if skipSSLValidation {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "warning: TLS certificate validation is disabled for this target")
	}
	return nil
}
