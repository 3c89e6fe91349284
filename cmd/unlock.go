package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/opsman-cli/internal/domain"
)

func newUnlockCmd(app *app) *cobra.Command {
	var passphraseFile string

	cmd := &cobra.Command{
		Use:   "unlock",
		Short: "Unlock the encrypted appliance installation",
		Long:  "Submits the decryption passphrase to the appliance. The passphrase is prompted for interactively, or read from --passphrase-file for scripting (\"-\" forces the prompt). No UAA session is involved; the passphrase itself is the credential.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := app.settings()
			if err != nil {
				return err
			}

			passphrase, err := readPassphrase(app, passphraseFile)
			if err != nil {
				return err
			}

			client := app.applianceClient(settings)
			if err := client.Unlock(cmd.Context(), passphrase); err != nil {
				if errors.Is(err, domain.ErrWrongPassphrase) {
					return errors.New("the appliance rejected the passphrase: wrong decryption passphrase")
				}
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Unlocked.")
			return nil
		},
	}

	cmd.Flags().StringVar(&passphraseFile, "passphrase-file", "", "Path to a file containing the passphrase, or - to prompt interactively (default: prompt)")

	return cmd
}

func readPassphrase(app *app, passphraseFile string) (string, error) {
	if passphraseFile == "" || passphraseFile == "-" {
		passphrase, err := app.prompter.ReadSecret("Decryption passphrase")
		if err != nil {
			return "", fmt.Errorf("read passphrase: %w", err)
		}
		return passphrase, nil
	}

	data, err := os.ReadFile(passphraseFile)
	if err != nil {
		return "", fmt.Errorf("read passphrase file: %w", err)
	}

	return strings.TrimRight(string(data), "\r\n"), nil
}
