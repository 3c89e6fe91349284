package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bnema/opsman-cli/internal/application"
	"github.com/bnema/opsman-cli/internal/domain"
)

func newUploadCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <files...>",
		Short: "Upload stemcells and product tiles to the appliance",
		Long:  "Classifies each file by naming convention (stemcell tarballs go to the stemcell endpoint, everything else to available_products) and uploads them sequentially in the given order. The command stops at the first failure; earlier uploads stand.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := app.settings()
			if err != nil {
				return err
			}

			uploader := application.NewUploader(app.applianceClient(settings))

			type result struct {
				path   string
				target domain.UploadTarget
			}
			var uploaded []result
			work := func(ctx context.Context) error {
				return uploader.UploadAll(ctx, args, func(path string, target domain.UploadTarget) {
					uploaded = append(uploaded, result{path: path, target: target})
				})
			}

			var runErr error
			if term.IsTerminal(int(os.Stderr.Fd())) {
				label := fmt.Sprintf("Uploading %d artifact(s)...", len(args))
				runErr = runUploadSpinner(cmd.Context(), cmd.ErrOrStderr(), label, work)
			} else {
				runErr = work(cmd.Context())
			}

			for _, r := range uploaded {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s (%s)\n", r.path, r.target)
			}

			return runErr
		},
	}
}
